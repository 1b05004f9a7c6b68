package presentation

import (
	"github.com/securedevx/Bitecraft-footweb/internal/cart"
)

type LineView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// View is the cart as the page displays it.
type View struct {
	Count int        `json:"count"`
	Total string     `json:"total"`
	Empty bool       `json:"empty"`
	Lines []LineView `json:"items"`
}

func NewView(s cart.Snapshot) View {
	v := View{
		Count: s.Count,
		Total: FormatCurrency(s.Total),
		Empty: s.Empty(),
		Lines: make([]LineView, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		v.Lines = append(v.Lines, LineView{
			ID:       l.ID,
			Name:     l.Name,
			Image:    l.ImageRef,
			Quantity: l.Quantity,
			Price:    FormatCurrency(l.UnitPrice),
			Subtotal: FormatCurrency(l.Subtotal()),
		})
	}
	return v
}
