package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, corsOrigins []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORS(corsOrigins))
	r.Use(CorrelationID)
	r.Use(RequestLogger(logger))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.ListMenu)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Get("/fragments/{name}", h.CartFragment)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{itemId}", h.ChangeQuantity)
			r.Delete("/items/{itemId}", h.RemoveItem)
		})

		r.Post("/checkout/validate", h.ValidateCheckout)

		r.Post("/orders", h.PlaceOrder)
		r.Get("/orders/last", h.LastOrder)
	})

	return r
}
