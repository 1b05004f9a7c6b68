package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Line struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order is built once per successful checkout and never mutated afterwards.
type Order struct {
	ID                  string          `json:"orderId"`
	CreatedAt           time.Time       `json:"timestamp"`
	Customer            CustomerInfo    `json:"customer"`
	Lines               []Line          `json:"items"`
	Total               decimal.Decimal `json:"total"`
	PaymentMethod       string          `json:"paymentMethod"`
	SpecialInstructions string          `json:"specialInstructions"`
}

func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// Submission is the raw checkout form.
type Submission struct {
	Customer            CustomerInfo `json:"customer"`
	PaymentMethod       string       `json:"paymentMethod"`
	SpecialInstructions string       `json:"specialInstructions"`
}
