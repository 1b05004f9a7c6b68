package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/securedevx/Bitecraft-footweb/internal/cart"
	"github.com/securedevx/Bitecraft-footweb/internal/menu"
	"github.com/securedevx/Bitecraft-footweb/internal/order"
	"github.com/securedevx/Bitecraft-footweb/internal/presentation"
)

type CartEngine interface {
	Add(ctx context.Context, itemID int, details cart.ItemDetails) error
	Remove(ctx context.Context, itemID int) error
	ChangeQuantity(ctx context.Context, itemID int, delta int) error
	Clear(ctx context.Context) error
	Snapshot() cart.Snapshot
}

type Checkout interface {
	Submit(ctx context.Context, sub order.Submission) (order.Result, error)
	LastOrder(ctx context.Context) (order.Order, bool, error)
}

type Fragments interface {
	Render(w io.Writer, fragment string) error
}

type Handler struct {
	cart      CartEngine
	catalog   *menu.Catalog
	checkout  Checkout
	fragments Fragments
	form      *order.Form
	timeout   time.Duration
	logger    *zap.Logger
}

func NewHandler(c CartEngine, catalog *menu.Catalog, checkout Checkout, fragments Fragments, timeout time.Duration, logger *zap.Logger) *Handler {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cart:      c,
		catalog:   catalog,
		checkout:  checkout,
		fragments: fragments,
		form:      order.NewForm(),
		timeout:   timeout,
		logger:    logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type menuItemResponse struct {
	menu.Item
	DisplayPrice string `json:"displayPrice"`
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.Filter(r.URL.Query().Get("category"))
	out := make([]menuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, menuItemResponse{Item: it, DisplayPrice: presentation.FormatCurrency(it.Price.Decimal)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.catalog.Categories(),
		"items":      out,
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presentation.NewView(h.cart.Snapshot()))
}

func (h *Handler) CartFragment(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.fragments.Render(&buf, chi.URLParam(r, "name")); err != nil {
		if errors.Is(err, presentation.ErrUnknownFragment) {
			writeError(w, http.StatusNotFound, "fragment not found")
			return
		}
		h.logger.Error("render fragment", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render fragment")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type cartResponse struct {
	Cart   presentation.View    `json:"cart"`
	Banner *presentation.Banner `json:"banner,omitempty"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID int `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, ok := h.catalog.Lookup(body.ItemID)
	if !ok {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.Add(ctx, item.ID, item.Details()); err != nil {
		h.logger.Error("add item", zap.Int("item_id", item.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	banner := presentation.Success(presentation.MsgItemAdded)
	writeJSON(w, http.StatusOK, cartResponse{Cart: presentation.NewView(h.cart.Snapshot()), Banner: &banner})
}

func (h *Handler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Delta > cart.MaxDelta || body.Delta < -cart.MaxDelta {
		writeError(w, http.StatusBadRequest, "invalid delta")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.ChangeQuantity(ctx, itemID, body.Delta); err != nil {
		h.logger.Error("change quantity", zap.Int("item_id", itemID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: presentation.NewView(h.cart.Snapshot())})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.Remove(ctx, itemID); err != nil {
		h.logger.Error("remove item", zap.Int("item_id", itemID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: presentation.NewView(h.cart.Snapshot())})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.Clear(ctx); err != nil {
		h.logger.Error("clear cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: presentation.NewView(h.cart.Snapshot())})
}

type validateRequest struct {
	// Single field mode. Event is "blur" (default) or "input".
	Field string `json:"field"`
	Value string `json:"value"`
	Event string `json:"event"`

	Customer *order.CustomerInfo `json:"customer"`
}

func (h *Handler) ValidateCheckout(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Customer != nil {
		writeJSON(w, http.StatusOK, h.form.Submit(*req.Customer))
		return
	}

	field, ok := order.ParseField(req.Field)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown field")
		return
	}

	var valid bool
	var msg string
	switch req.Event {
	case "", "blur":
		valid, msg = h.form.Blur(field, req.Value)
	case "input":
		valid, msg = h.form.Input(field, req.Value)
	default:
		writeError(w, http.StatusBadRequest, "unknown event")
		return
	}

	writeJSON(w, http.StatusOK, order.Validation{
		Valid:    valid,
		Messages: map[order.Field]string{field: msg},
	})
}

type placeOrderResponse struct {
	Order           *order.Order           `json:"order,omitempty"`
	Errors          map[order.Field]string `json:"errors,omitempty"`
	Banner          presentation.Banner    `json:"banner"`
	Redirect        string                 `json:"redirect,omitempty"`
	RedirectAfterMS int64                  `json:"redirectAfterMs,omitempty"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var sub order.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.checkout.Submit(ctx, sub)
	banner := presentation.BannerForSubmit(err)

	switch {
	case err == nil:
		h.form.Submit(sub.Customer)
		writeJSON(w, http.StatusCreated, placeOrderResponse{
			Order:           res.Order,
			Banner:          banner,
			Redirect:        res.Redirect,
			RedirectAfterMS: res.RedirectIn.Milliseconds(),
		})
	case errors.Is(err, order.ErrInvalidFields):
		h.form.Submit(sub.Customer)
		writeJSON(w, http.StatusUnprocessableEntity, placeOrderResponse{
			Errors: res.Validation.Messages,
			Banner: banner,
		})
	case errors.Is(err, order.ErrEmptyCart):
		writeJSON(w, http.StatusConflict, placeOrderResponse{Banner: banner})
	default:
		h.logger.Error("place order", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, placeOrderResponse{Banner: banner})
	}
}

type lastOrderResponse struct {
	Order order.Order `json:"order"`
	Total string      `json:"displayTotal"`
	Items int         `json:"itemCount"`
}

func (h *Handler) LastOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	o, found, err := h.checkout.LastOrder(ctx)
	if err != nil {
		h.logger.Error("load last order", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no order placed")
		return
	}
	writeJSON(w, http.StatusOK, lastOrderResponse{
		Order: o,
		Total: presentation.FormatCurrency(o.Total),
		Items: o.ItemCount(),
	})
}

func itemIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid itemId")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
