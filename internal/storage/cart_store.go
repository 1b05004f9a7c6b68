package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/securedevx/Bitecraft-footweb/internal/cart"
)

// CartStore keeps the cart as a JSON array in the cart slot.
type CartStore struct {
	slots  Slots
	logger *zap.Logger
}

func NewCartStore(slots Slots, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{slots: slots, logger: logger}
}

// Load returns the saved cart. Missing, unreadable or malformed data all
// yield an empty cart.
func (s *CartStore) Load(ctx context.Context) []cart.Line {
	raw, found, err := s.slots.Get(ctx, CartKey)
	if err != nil {
		s.logger.Warn("read cart slot", zap.Error(err))
		return nil
	}
	if !found || raw == "" {
		return nil
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logger.Warn("parse cart slot", zap.Error(err))
		return nil
	}
	return sanitize(lines)
}

func (s *CartStore) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	body, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.slots.Put(ctx, CartKey, string(body)); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}

// sanitize drops lines with a quantity below one and merges duplicate ids
// into the first occurrence.
func sanitize(lines []cart.Line) []cart.Line {
	out := make([]cart.Line, 0, len(lines))
	pos := make(map[int]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i, ok := pos[l.ID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		pos[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}
