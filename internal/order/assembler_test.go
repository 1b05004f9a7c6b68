package order_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/securedevx/Bitecraft-footweb/internal/cart"
	"github.com/securedevx/Bitecraft-footweb/internal/order"
)

type memCartStore struct{ lines []cart.Line }

func (s *memCartStore) Load(context.Context) []cart.Line { return s.lines }
func (s *memCartStore) Save(_ context.Context, lines []cart.Line) error {
	s.lines = lines
	return nil
}

type StoreMock struct {
	SaveLastOrderFunc func(ctx context.Context, o order.Order) error

	mu    sync.Mutex
	saved []order.Order
}

func (m *StoreMock) SaveLastOrder(ctx context.Context, o order.Order) error {
	if m.SaveLastOrderFunc != nil {
		if err := m.SaveLastOrderFunc(ctx, o); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, o)
	return nil
}

func (m *StoreMock) LastOrder(context.Context) (order.Order, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return order.Order{}, false, nil
	}
	return m.saved[len(m.saved)-1], true, nil
}

type PublisherMock struct {
	PublishFunc func(ctx context.Context, o order.Order) error
	published   []order.Order
}

func (m *PublisherMock) PublishOrderPlaced(ctx context.Context, o order.Order) error {
	m.published = append(m.published, o)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, o)
	}
	return nil
}

var validCustomer = order.CustomerInfo{
	Name:    "  Alice  ",
	Email:   "alice@example.com",
	Phone:   "555-123-4567",
	Address: "12 Baker Street, London",
}

func filledEngine(t *testing.T) *cart.Engine {
	t.Helper()
	ctx := context.Background()
	e := cart.NewEngine(&memCartStore{}, nil)
	e.Open(ctx)
	burger := cart.ItemDetails{Name: "Burger", UnitPrice: decimal.RequireFromString("5.00")}
	fries := cart.ItemDetails{Name: "Fries", UnitPrice: decimal.RequireFromString("3.50")}
	require.NoError(t, e.Add(ctx, 1, burger))
	require.NoError(t, e.Add(ctx, 1, burger))
	require.NoError(t, e.Add(ctx, 2, fries))
	return e
}

func fixedConfig(navigate func(string)) order.Config {
	return order.Config{
		RedirectDelay: 10 * time.Millisecond,
		Navigate:      navigate,
		Now:           func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
		Rand:          rand.New(rand.NewPCG(1, 1)),
	}
}

func TestSubmitSuccess(t *testing.T) {
	ctx := context.Background()
	engine := filledEngine(t)
	store := &StoreMock{}
	pub := &PublisherMock{}
	navigated := make(chan string, 1)

	a := order.NewAssembler(engine, store, pub, nil, fixedConfig(func(target string) { navigated <- target }))

	res, err := a.Submit(ctx, order.Submission{
		Customer:            validCustomer,
		PaymentMethod:       "cash",
		SpecialInstructions: "  no onions ",
	})
	require.NoError(t, err)
	require.Equal(t, order.PhaseNavigating, res.Phase)
	require.Equal(t, "order-confirmation.html", res.Redirect)
	require.Equal(t, 10*time.Millisecond, res.RedirectIn)

	o := res.Order
	require.NotNil(t, o)
	require.Regexp(t, `^ORD-[0-9A-Z]+-[0-9A-Z]{4}$`, o.ID)
	require.True(t, o.Total.Equal(decimal.RequireFromString("13.50")))
	require.Len(t, o.Lines, 2)
	require.True(t, o.Lines[0].Subtotal.Equal(decimal.RequireFromString("10.00")))
	require.True(t, o.Lines[1].Subtotal.Equal(decimal.RequireFromString("3.50")))
	require.Equal(t, 2, o.Lines[0].Quantity, "order keeps quantities from before the cart was cleared")
	require.Equal(t, "Alice", o.Customer.Name)
	require.Equal(t, "no onions", o.SpecialInstructions)
	require.Equal(t, "cash", o.PaymentMethod)

	require.Zero(t, engine.Count(), "cart cleared")
	require.Len(t, store.saved, 1)
	require.Equal(t, o.ID, store.saved[0].ID)
	require.Len(t, pub.published, 1)

	select {
	case target := <-navigated:
		require.Equal(t, "order-confirmation.html", target)
	case <-time.After(time.Second):
		t.Fatal("navigation was not signalled")
	}

	last, found, err := a.LastOrder(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, o.ID, last.ID)
}

func TestSubmitInvalidFields(t *testing.T) {
	engine := filledEngine(t)
	store := &StoreMock{}
	a := order.NewAssembler(engine, store, nil, nil, fixedConfig(nil))

	bad := validCustomer
	bad.Email = "a@b"
	res, err := a.Submit(context.Background(), order.Submission{Customer: bad})

	require.ErrorIs(t, err, order.ErrInvalidFields)
	require.Equal(t, order.PhaseInvalid, res.Phase)
	require.Nil(t, res.Order)
	require.Equal(t, "Please enter a valid email address", res.Validation.Message(order.FieldEmail))
	require.Equal(t, 3, engine.Count(), "cart untouched")
	require.Empty(t, store.saved)
}

func TestSubmitEmptyCart(t *testing.T) {
	engine := cart.NewEngine(&memCartStore{}, nil)
	engine.Open(context.Background())
	store := &StoreMock{}
	pub := &PublisherMock{}
	a := order.NewAssembler(engine, store, pub, nil, fixedConfig(nil))

	res, err := a.Submit(context.Background(), order.Submission{Customer: validCustomer})

	require.ErrorIs(t, err, order.ErrEmptyCart)
	require.Equal(t, order.PhaseCartEmpty, res.Phase)
	require.Nil(t, res.Order)
	require.Empty(t, store.saved)
	require.Empty(t, pub.published)
}

func TestSubmitSaveFailureKeepsCart(t *testing.T) {
	engine := filledEngine(t)
	saveErr := errors.New("db down")
	store := &StoreMock{SaveLastOrderFunc: func(context.Context, order.Order) error { return saveErr }}
	a := order.NewAssembler(engine, store, nil, nil, fixedConfig(nil))

	res, err := a.Submit(context.Background(), order.Submission{Customer: validCustomer})

	require.ErrorIs(t, err, saveErr)
	require.Equal(t, order.PhaseIdle, res.Phase)
	require.Equal(t, 3, engine.Count())
}

func TestSubmitKeepsItemAddedDuringCheckout(t *testing.T) {
	ctx := context.Background()
	engine := filledEngine(t)
	shake := cart.ItemDetails{Name: "Shake", UnitPrice: decimal.RequireFromString("4.00")}

	var (
		wg     sync.WaitGroup
		addErr error
	)
	store := &StoreMock{SaveLastOrderFunc: func(context.Context, order.Order) error {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addErr = engine.Add(ctx, 3, shake)
		}()
		return nil
	}}
	a := order.NewAssembler(engine, store, nil, nil, fixedConfig(nil))

	res, err := a.Submit(ctx, order.Submission{Customer: validCustomer})
	require.NoError(t, err)
	wg.Wait()
	require.NoError(t, addErr)

	for _, l := range res.Order.Lines {
		require.NotEqual(t, 3, l.ID)
	}
	lines := engine.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 3, lines[0].ID)
	require.Equal(t, 1, engine.Count())
}

func TestSubmitPublishFailureIsNotSurfaced(t *testing.T) {
	engine := filledEngine(t)
	pub := &PublisherMock{PublishFunc: func(context.Context, order.Order) error { return errors.New("broker down") }}
	a := order.NewAssembler(engine, &StoreMock{}, pub, nil, fixedConfig(nil))

	res, err := a.Submit(context.Background(), order.Submission{Customer: validCustomer})
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	require.Zero(t, engine.Count())
}

func TestSubmitRestartsFromIdle(t *testing.T) {
	engine := filledEngine(t)
	a := order.NewAssembler(engine, &StoreMock{}, nil, nil, fixedConfig(nil))
	require.Equal(t, order.PhaseIdle, a.Phase())

	bad := validCustomer
	bad.Name = "A"
	_, err := a.Submit(context.Background(), order.Submission{Customer: bad})
	require.ErrorIs(t, err, order.ErrInvalidFields)
	require.Equal(t, order.PhaseInvalid, a.Phase())

	_, err = a.Submit(context.Background(), order.Submission{Customer: validCustomer})
	require.NoError(t, err)
	require.Equal(t, order.PhaseNavigating, a.Phase())
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "cart_empty", order.PhaseCartEmpty.String())
	require.Equal(t, "phase(42)", order.Phase(42).String())
}
