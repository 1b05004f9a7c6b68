package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/securedevx/Bitecraft-footweb/internal/order"
)

const (
	OrderPlacedEventName    = "OrderPlaced"
	OrderPlacedEventVersion = 1
	OrderPlacedSchema       = "bitecraft/order-placed/v1"
)

type OrderPlacedItem struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderPlacedPayload struct {
	OrderID             string             `json:"orderId"`
	PlacedAt            time.Time          `json:"timestamp"`
	Customer            order.CustomerInfo `json:"customer"`
	Items               []OrderPlacedItem  `json:"items"`
	Total               decimal.Decimal    `json:"total"`
	PaymentMethod       string             `json:"paymentMethod"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
}

func NewOrderPlacedEnvelope(o order.Order, md EnvelopeMetadata, now time.Time) EventEnvelope[OrderPlacedPayload] {
	items := make([]OrderPlacedItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderPlacedItem{
			ID:        l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}

	return EventEnvelope[OrderPlacedPayload]{
		EventName:     OrderPlacedEventName,
		EventVersion:  OrderPlacedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: md.CorrelationID,
		CausationID:   md.CausationID,
		Producer:      producerName,
		PartitionKey:  o.ID,
		OccurredAt:    now.UTC(),
		Schema:        OrderPlacedSchema,
		Payload: OrderPlacedPayload{
			OrderID:             o.ID,
			PlacedAt:            o.CreatedAt,
			Customer:            o.Customer,
			Items:               items,
			Total:               o.Total,
			PaymentMethod:       o.PaymentMethod,
			SpecialInstructions: o.SpecialInstructions,
		},
	}
}
