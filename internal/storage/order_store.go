package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/securedevx/Bitecraft-footweb/internal/order"
)

// OrderStore keeps the most recently placed order for the confirmation view.
type OrderStore struct {
	slots  Slots
	logger *zap.Logger
}

func NewOrderStore(slots Slots, logger *zap.Logger) *OrderStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderStore{slots: slots, logger: logger}
}

func (s *OrderStore) SaveLastOrder(ctx context.Context, o order.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	if err := s.slots.Put(ctx, LastOrderKey, string(body)); err != nil {
		return fmt.Errorf("write last order slot: %w", err)
	}
	return nil
}

// LastOrder reports found=false when nothing was saved or the saved value
// cannot be parsed. Only read failures are returned as errors.
func (s *OrderStore) LastOrder(ctx context.Context) (order.Order, bool, error) {
	raw, found, err := s.slots.Get(ctx, LastOrderKey)
	if err != nil {
		return order.Order{}, false, fmt.Errorf("read last order slot: %w", err)
	}
	if !found || raw == "" {
		return order.Order{}, false, nil
	}

	var o order.Order
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		s.logger.Warn("parse last order slot", zap.Error(err))
		return order.Order{}, false, nil
	}
	if o.ID == "" {
		return order.Order{}, false, nil
	}
	return o, true, nil
}
