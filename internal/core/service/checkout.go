package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/port"
	"github.com/niksmo/bloomora/pkg/task"
)

const orderIDPrefix = "BLM-"

type CheckoutOpt func(*Checkout)

// OrderIDOpt replaces the random order id generator.
func OrderIDOpt(fn func() string) CheckoutOpt {
	return func(c *Checkout) {
		c.orderID = fn
	}
}

func ClockOpt(now func() time.Time) CheckoutOpt {
	return func(c *Checkout) {
		c.now = now
	}
}

// OrderEventsOpt publishes placed orders. Without it orders are not published.
func OrderEventsOpt(p port.OrderEventsProducer) CheckoutOpt {
	return func(c *Checkout) {
		c.events = p
	}
}

// A Checkout creates checkout flows over the shared cart and session.
type Checkout struct {
	cart    *CartStore
	session *SessionStore
	gateway port.PaymentGateway
	events  port.OrderEventsProducer
	orderID func() string
	now     func() time.Time
}

func NewCheckout(
	cart *CartStore,
	session *SessionStore,
	gateway port.PaymentGateway,
	opts ...CheckoutOpt,
) *Checkout {
	c := &Checkout{
		cart:    cart,
		session: session,
		gateway: gateway,
		orderID: randomOrderID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFlow starts a checkout attempt. An empty cart blocks the flow.
func (c *Checkout) NewFlow() *CheckoutFlow {
	state := domain.CheckoutForm
	if c.cart.IsEmpty() {
		state = domain.CheckoutBlocked
	}
	return &CheckoutFlow{checkout: c, state: state}
}

func randomOrderID() string {
	return fmt.Sprintf("%s%d", orderIDPrefix, rand.IntN(10000))
}

// A CheckoutFlow is one checkout attempt:
//
//	Blocked (empty cart, initial only)
//	Form -> Submitting -> Success
//	            |
//	            +-> Failed -> Submitting
type CheckoutFlow struct {
	checkout *Checkout

	mu    sync.RWMutex
	state domain.CheckoutState
	order *domain.Order
	err   error
}

func (f *CheckoutFlow) State() domain.CheckoutState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Order returns the placed order once the flow succeeded.
func (f *CheckoutFlow) Order() (domain.Order, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.order == nil {
		return domain.Order{}, false
	}
	return *f.order, true
}

// Err returns the cause of the last failed payment.
func (f *CheckoutFlow) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// Prefill returns the contact email of the signed-in visitor.
func (f *CheckoutFlow) Prefill() string {
	identity, _ := f.checkout.session.Identity()
	return identity.Email
}

func (f *CheckoutFlow) Summary() ([]domain.CartLine, int64) {
	lines := f.checkout.cart.Lines()
	return lines, domain.CartTotal(lines)
}

// PlaceOrder submits the order and returns the pending payment.
//
// The payment runs detached from ctx cancellation. On success the ordered
// lines leave the cart once and the order gets an id; on failure the cart
// stays and the flow accepts another submission.
func (f *CheckoutFlow) PlaceOrder(
	ctx context.Context,
	shipping domain.ShippingDetails,
	method domain.PaymentMethod,
) (*task.Task[domain.Order], error) {
	const op = "CheckoutFlow.PlaceOrder"

	lines, total := f.Summary()

	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case domain.CheckoutBlocked:
		return nil, fmt.Errorf("%s: %w", op, ErrCheckoutBlocked)
	case domain.CheckoutSubmitting:
		return nil, fmt.Errorf("%s: %w", op, ErrOrderInFlight)
	case domain.CheckoutSuccess:
		return nil, fmt.Errorf("%s: %w", op, ErrOrderPlaced)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrCheckoutBlocked)
	}

	if _, err := domain.ParsePaymentMethod(string(method)); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidPaymentMethod, err)
	}
	if err := validateShipping(shipping); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f.state = domain.CheckoutSubmitting
	f.err = nil

	order := domain.Order{
		Lines:    lines,
		Total:    total,
		Payment:  method,
		Shipping: shipping,
	}

	return task.Go(ctx, func(ctx context.Context) (domain.Order, error) {
		return f.submit(ctx, order)
	}), nil
}

func (f *CheckoutFlow) submit(
	ctx context.Context, order domain.Order,
) (domain.Order, error) {
	const op = "CheckoutFlow.submit"
	log := slog.With("op", op)

	c := f.checkout

	if err := c.gateway.Charge(ctx, order); err != nil {
		f.mu.Lock()
		f.state = domain.CheckoutFailed
		f.err = err
		f.mu.Unlock()
		log.Warn("payment failed", "err", err)
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	c.cart.removeOrdered(order.Lines)
	order.ID = c.orderID()
	order.PlacedAt = c.now()

	f.mu.Lock()
	f.state = domain.CheckoutSuccess
	f.order = &order
	f.mu.Unlock()

	log.Info("order placed",
		"orderID", order.ID, "total", order.Total, "payment", order.Payment)

	if c.events != nil {
		if err := c.events.ProduceOrder(ctx, order); err != nil {
			log.Error("failed to publish order", "orderID", order.ID, "err", err)
		}
	}

	return order, nil
}

func validateShipping(s domain.ShippingDetails) error {
	required := []struct{ name, value string }{
		{"email", s.Email},
		{"first name", s.FirstName},
		{"last name", s.LastName},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
		{"zip", s.Zip},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf("%w: missing %s",
			ErrInvalidShipping, strings.Join(missing, ", "))
	}
	return nil
}
