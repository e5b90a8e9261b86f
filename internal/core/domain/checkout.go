package domain

import (
	"fmt"
	"time"
)

type CheckoutState string

const (
	CheckoutBlocked    CheckoutState = "blocked"
	CheckoutForm       CheckoutState = "form"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSuccess    CheckoutState = "success"
	CheckoutFailed     CheckoutState = "failed"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCard, PaymentUPI, PaymentCOD:
		return m, nil
	}
	return "", fmt.Errorf("payment method %q: %w", s, ErrUnknownEnumValue)
}

type ShippingDetails struct {
	Email      string
	FirstName  string
	LastName   string
	Address    string
	Apartment  string
	City       string
	State      string
	Zip        string
	Newsletter bool
}

type Order struct {
	ID       string
	Lines    []CartLine
	Total    int64
	Payment  PaymentMethod
	Shipping ShippingDetails
	PlacedAt time.Time
}
