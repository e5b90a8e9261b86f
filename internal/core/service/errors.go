package service

import "errors"

var (
	ErrUnauthenticated      = errors.New("not signed in")
	ErrProductNotFound      = errors.New("product not found")
	ErrTaskNotFound         = errors.New("care task not found")
	ErrPostNotFound         = errors.New("blog post not found")
	ErrCheckoutBlocked      = errors.New("cart is empty")
	ErrOrderInFlight        = errors.New("order is being processed")
	ErrOrderPlaced          = errors.New("order is already placed")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidShipping      = errors.New("invalid shipping details")
	ErrInvalidQuizAnswers   = errors.New("invalid quiz answers")
)
