// Package simulated provides stand-ins for the identity provider and the
// payment gateway. Both answer after a fixed delay and never fail.
package simulated

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/port"
)

const (
	DefaultSignInDelay  = 1500 * time.Millisecond
	DefaultPaymentDelay = 2 * time.Second
)

var (
	_ port.FederatedProvider = (*GoogleProvider)(nil)
	_ port.PaymentGateway    = (*PaymentGateway)(nil)
)

var googleAccount = domain.Identity{
	Name:     "Alex Smith",
	Email:    "alex.smith@gmail.com",
	Avatar:   "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?auto=format&fit=crop&q=80&w=100",
	IsGoogle: true,
}

type GoogleProvider struct {
	delay time.Duration
}

func NewGoogleProvider(delay time.Duration) GoogleProvider {
	return GoogleProvider{delay}
}

// SignIn returns the canned Google account after the delay.
func (p GoogleProvider) SignIn(ctx context.Context) (domain.Identity, error) {
	const op = "GoogleProvider.SignIn"

	if err := sleep(ctx, p.delay); err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("MOCK google sign-in successfull", "op", op)
	return googleAccount, nil
}

type PaymentGateway struct {
	delay time.Duration
}

func NewPaymentGateway(delay time.Duration) PaymentGateway {
	return PaymentGateway{delay}
}

func (g PaymentGateway) Charge(ctx context.Context, order domain.Order) error {
	const op = "PaymentGateway.Charge"

	if err := sleep(ctx, g.delay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("MOCK payment successfull", "op", op,
		"amount", order.Total, "method", order.Payment)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
