package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store persists the whole cart. Load never fails: absent or unreadable
// data is an empty cart.
type Store interface {
	Load(ctx context.Context) []Line
	Save(ctx context.Context, lines []Line) error
}

// MaxDelta bounds a single quantity change.
const MaxDelta = 999

var ErrDeltaOutOfRange = errors.New("quantity delta out of range")

// Observer is called after every successful save with the new state.
type Observer func(Snapshot)

type subscription struct {
	id int
	fn Observer
}

// Engine owns the live cart. Every mutation is saved before observers
// are notified; a failed save skips notification.
type Engine struct {
	mu      sync.Mutex
	lines   []Line
	version uint64
	store   Store
	logger  *zap.Logger

	subMu     sync.Mutex
	subs      []subscription
	nextSubID int
}

func NewEngine(store Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger}
}

// Open hydrates the engine from its store.
func (e *Engine) Open(ctx context.Context) {
	lines := e.store.Load(ctx)

	e.mu.Lock()
	e.lines = slices.Clone(lines)
	e.mu.Unlock()

	e.logger.Info("cart loaded", zap.Int("lines", len(lines)), zap.Int("count", count(lines)))
}

func (e *Engine) Add(ctx context.Context, itemID int, details ItemDetails) error {
	return e.mutate(ctx, "add", func(lines []Line) ([]Line, bool) {
		if i := indexOf(lines, itemID); i >= 0 {
			lines[i].Quantity++
			return lines, true
		}
		return append(lines, Line{
			ID:        itemID,
			Name:      details.Name,
			UnitPrice: details.UnitPrice,
			ImageRef:  details.ImageRef,
			Quantity:  1,
		}), true
	})
}

// Remove drops the line. Removing an absent id still saves and notifies.
func (e *Engine) Remove(ctx context.Context, itemID int) error {
	return e.mutate(ctx, "remove", func(lines []Line) ([]Line, bool) {
		return removeLine(lines, itemID), true
	})
}

// ChangeQuantity applies delta to the line. A result of zero or less
// removes the line. Unknown ids are ignored. A delta beyond MaxDelta in
// either direction is rejected with ErrDeltaOutOfRange.
func (e *Engine) ChangeQuantity(ctx context.Context, itemID int, delta int) error {
	if delta > MaxDelta || delta < -MaxDelta {
		return fmt.Errorf("%w: %d", ErrDeltaOutOfRange, delta)
	}
	return e.mutate(ctx, "change_quantity", func(lines []Line) ([]Line, bool) {
		i := indexOf(lines, itemID)
		if i < 0 {
			return lines, false
		}
		if delta <= -lines[i].Quantity {
			return removeLine(lines, itemID), true
		}
		lines[i].Quantity += delta
		return lines, true
	})
}

func (e *Engine) Clear(ctx context.Context) error {
	return e.mutate(ctx, "clear", func([]Line) ([]Line, bool) {
		return nil, true
	})
}

// Drain hands the current snapshot to fn and clears the cart only if fn
// succeeds. The cart is held for the whole call, so no mutation can land
// between the snapshot fn sees and the clear. An error from fn is returned
// unchanged and leaves the cart as it was.
func (e *Engine) Drain(ctx context.Context, fn func(Snapshot) error) error {
	e.mu.Lock()
	if err := fn(e.snapshotLocked()); err != nil {
		e.mu.Unlock()
		return err
	}
	return e.commitLocked(ctx, "drain", nil)
}

func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return total(e.lines)
}

func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return count(e.lines)
}

// Lines returns a copy of the current lines.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.lines)
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn and returns a function that removes it.
func (e *Engine) Subscribe(fn Observer) (unsubscribe func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	e.nextSubID++
	id := e.nextSubID
	e.subs = append(e.subs, subscription{id: id, fn: fn})

	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		e.subs = slices.DeleteFunc(e.subs, func(s subscription) bool { return s.id == id })
	}
}

func (e *Engine) mutate(ctx context.Context, op string, fn func([]Line) ([]Line, bool)) error {
	e.mu.Lock()
	lines, changed := fn(e.lines)
	if !changed {
		e.mu.Unlock()
		return nil
	}
	return e.commitLocked(ctx, op, lines)
}

// commitLocked installs lines, saves them and notifies. It must be called
// with e.mu held and releases it.
func (e *Engine) commitLocked(ctx context.Context, op string, lines []Line) error {
	e.lines = lines
	e.version++

	if err := e.store.Save(ctx, slices.Clone(lines)); err != nil {
		e.mu.Unlock()
		e.logger.Error("save cart", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("save cart after %s: %w", op, err)
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
	return nil
}

func (e *Engine) notify(snap Snapshot) {
	e.subMu.Lock()
	subs := slices.Clone(e.subs)
	e.subMu.Unlock()

	for _, s := range subs {
		s.fn(snap)
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Lines:   slices.Clone(e.lines),
		Total:   total(e.lines),
		Count:   count(e.lines),
		Version: e.version,
	}
}

func indexOf(lines []Line, id int) int {
	return slices.IndexFunc(lines, func(l Line) bool { return l.ID == id })
}

func removeLine(lines []Line, id int) []Line {
	return slices.DeleteFunc(lines, func(l Line) bool { return l.ID == id })
}
