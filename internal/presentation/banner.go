package presentation

import (
	"errors"

	"github.com/securedevx/Bitecraft-footweb/internal/order"
)

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

const (
	MsgItemAdded     = "Item added to cart!"
	MsgInvalidFields = "Please fill in all required fields correctly"
	MsgCartEmpty     = "Your cart is empty!"
	MsgOrderPlaced   = "Order placed successfully! Redirecting..."
	MsgOrderFailed   = "We could not place your order. Please try again."
)

// Banner is a transient notification shown above the page.
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message"`
}

func Success(msg string) Banner { return Banner{Kind: BannerSuccess, Message: msg} }

func Error(msg string) Banner { return Banner{Kind: BannerError, Message: msg} }

// BannerForSubmit maps a checkout outcome to the banner the page shows.
func BannerForSubmit(err error) Banner {
	switch {
	case err == nil:
		return Success(MsgOrderPlaced)
	case errors.Is(err, order.ErrInvalidFields):
		return Error(MsgInvalidFields)
	case errors.Is(err, order.ErrEmptyCart):
		return Error(MsgCartEmpty)
	default:
		return Error(MsgOrderFailed)
	}
}
