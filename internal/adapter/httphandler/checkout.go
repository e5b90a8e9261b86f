package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/service"
)

// POST v1/checkout (200 OK) mounts a new checkout flow
// GET  v1/checkout (200 OK, 404 when no flow is mounted)
// POST v1/checkout/order JSON {"shipping" {...}, "payment" string} (202 Accepted, 400, 404, 409, 422)

var errNoCheckout = errors.New("checkout is not started")

type CheckoutHandler struct {
	checkout *service.Checkout

	mu   sync.Mutex
	flow *service.CheckoutFlow
}

func RegisterCheckout(mux *http.ServeMux, checkout *service.Checkout) {
	h := &CheckoutHandler{checkout: checkout}
	mux.HandleFunc("POST /v1/checkout", h.Start)
	mux.HandleFunc("GET /v1/checkout", h.GetCheckout)
	mux.HandleFunc("POST /v1/checkout/order", h.PlaceOrder)
}

func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.Start"
	log := slog.With("op", op)

	flow := h.checkout.NewFlow()
	h.mu.Lock()
	h.flow = flow
	h.mu.Unlock()

	log.Info("checkout started", "state", flow.State())
	writeJSON(w, log, http.StatusOK, checkoutView(flow))
}

func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetCheckout"
	log := slog.With("op", op)

	flow := h.current()
	if flow == nil {
		writeError(w, log, http.StatusNotFound, errNoCheckout)
		return
	}
	writeJSON(w, log, http.StatusOK, checkoutView(flow))
}

// PlaceOrder answers once the payment is submitted; clients poll
// GET v1/checkout for the outcome.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PlaceOrder"
	log := slog.With("op", op)

	flow := h.current()
	if flow == nil {
		writeError(w, log, http.StatusNotFound, errNoCheckout)
		return
	}

	var req PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	_, err := flow.PlaceOrder(
		r.Context(),
		req.Shipping.toDomain(),
		domain.PaymentMethod(req.Payment),
	)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusAccepted, checkoutView(flow))
}

func (h *CheckoutHandler) current() *service.CheckoutFlow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flow
}

func checkoutView(flow *service.CheckoutFlow) Checkout {
	lines, total := flow.Summary()
	v := Checkout{
		State:   string(flow.State()),
		Prefill: flow.Prefill(),
		Lines:   linesFromDomain(lines),
		Total:   total,
	}
	if order, ok := flow.Order(); ok {
		v.Order = orderFromDomain(order)
	}
	if err := flow.Err(); err != nil {
		v.Error = err.Error()
	}
	return v
}
