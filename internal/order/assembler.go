package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/securedevx/Bitecraft-footweb/internal/cart"
)

var (
	ErrInvalidFields = errors.New("invalid customer fields")
	ErrEmptyCart     = errors.New("cart is empty")
)

const (
	DefaultConfirmationPage = "order-confirmation.html"
	DefaultRedirectDelay    = 2 * time.Second
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseInvalid
	PhaseCartEmpty
	PhaseSubmitted
	PhaseNavigating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseInvalid:
		return "invalid"
	case PhaseCartEmpty:
		return "cart_empty"
	case PhaseSubmitted:
		return "submitted"
	case PhaseNavigating:
		return "navigating"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Cart is the part of the cart engine the assembler drains into an order.
type Cart interface {
	Drain(ctx context.Context, fn func(cart.Snapshot) error) error
}

type Store interface {
	SaveLastOrder(ctx context.Context, o Order) error
	LastOrder(ctx context.Context) (Order, bool, error)
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o Order) error
}

type Config struct {
	ConfirmationPage string
	RedirectDelay    time.Duration

	// Navigate is called once the redirect delay has elapsed.
	Navigate func(target string)

	Now  func() time.Time
	Rand IntNSource
}

// Result describes the outcome of one submission.
type Result struct {
	Phase      Phase
	Validation Validation
	Order      *Order
	Redirect   string
	RedirectIn time.Duration
}

type Assembler struct {
	cart      Cart
	store     Store
	publisher Publisher
	logger    *zap.Logger
	cfg       Config

	mu    sync.Mutex
	phase Phase
}

func NewAssembler(c Cart, store Store, publisher Publisher, logger *zap.Logger, cfg Config) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ConfirmationPage == "" {
		cfg.ConfirmationPage = DefaultConfirmationPage
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Assembler{cart: c, store: store, publisher: publisher, logger: logger, cfg: cfg}
}

func (a *Assembler) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Submit runs one checkout attempt. Invalid fields and an empty cart are
// reported through ErrInvalidFields and ErrEmptyCart without building an
// order or touching the cart.
func (a *Assembler) Submit(ctx context.Context, sub Submission) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.phase = PhaseValidating

	validation := ValidateAll(sub.Customer)
	if !validation.Valid {
		a.phase = PhaseInvalid
		return Result{Phase: a.phase, Validation: validation}, ErrInvalidFields
	}

	var (
		o     Order
		saved bool
	)
	err := a.cart.Drain(ctx, func(snap cart.Snapshot) error {
		if snap.Empty() {
			return ErrEmptyCart
		}
		o = a.build(sub, snap)
		if err := a.store.SaveLastOrder(ctx, o); err != nil {
			return fmt.Errorf("save order %s: %w", o.ID, err)
		}
		saved = true
		return nil
	})
	switch {
	case errors.Is(err, ErrEmptyCart):
		a.phase = PhaseCartEmpty
		return Result{Phase: a.phase, Validation: validation}, ErrEmptyCart
	case err != nil && !saved:
		a.phase = PhaseIdle
		return Result{Phase: a.phase, Validation: validation}, err
	case err != nil:
		a.logger.Warn("clear cart after order", zap.String("order_id", o.ID), zap.Error(err))
	}

	a.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", o.ItemCount()),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("payment_method", o.PaymentMethod))

	if a.publisher != nil {
		if err := a.publisher.PublishOrderPlaced(ctx, o); err != nil {
			a.logger.Error("publish order placed", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	a.phase = PhaseSubmitted

	a.scheduleNavigation(o.ID)
	a.phase = PhaseNavigating

	return Result{
		Phase:      a.phase,
		Validation: validation,
		Order:      &o,
		Redirect:   a.cfg.ConfirmationPage,
		RedirectIn: a.cfg.RedirectDelay,
	}, nil
}

func (a *Assembler) LastOrder(ctx context.Context) (Order, bool, error) {
	return a.store.LastOrder(ctx)
}

func (a *Assembler) build(sub Submission, snap cart.Snapshot) Order {
	lines := make([]Line, 0, len(snap.Lines))
	total := decimal.Zero
	for _, l := range snap.Lines {
		subtotal := l.Subtotal()
		lines = append(lines, Line{
			ID:        l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	now := a.cfg.Now()
	return Order{
		ID:                  NewOrderID(now, a.cfg.Rand),
		CreatedAt:           now.UTC(),
		Customer:            sub.Customer.trimmed(),
		Lines:               lines,
		Total:               total,
		PaymentMethod:       sub.PaymentMethod,
		SpecialInstructions: strings.TrimSpace(sub.SpecialInstructions),
	}
}

func (a *Assembler) scheduleNavigation(orderID string) {
	target := a.cfg.ConfirmationPage
	navigate := a.cfg.Navigate
	logger := a.logger
	time.AfterFunc(a.cfg.RedirectDelay, func() {
		logger.Debug("navigate", zap.String("order_id", orderID), zap.String("target", target))
		if navigate != nil {
			navigate(target)
		}
	})
}
