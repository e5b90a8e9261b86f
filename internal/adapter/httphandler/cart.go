package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/bloomora/internal/core/service"
)

// GET    v1/cart (200 OK)
// DELETE v1/cart (200 OK)
// POST   v1/cart/items JSON {"product_id" string} (200 OK, 400, 404)
// PATCH  v1/cart/items/{id} JSON {"delta" int} (200 OK, 400)
// DELETE v1/cart/items/{id} (200 OK)
// POST   v1/cart/toggle (200 OK)

type CartHandler struct {
	cart    *service.CartStore
	catalog CatalogReader
}

func RegisterCart(
	mux *http.ServeMux, cart *service.CartStore, catalog CatalogReader,
) {
	h := CartHandler{cart, catalog}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("POST /v1/cart/toggle", h.Toggle)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	writeJSON(w, slog.With("op", op), http.StatusOK, h.snapshot())
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	h.cart.ClearCart()
	writeJSON(w, slog.With("op", op), http.StatusOK, h.snapshot())
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.catalog.Product(req.ProductID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	h.cart.AddToCart(p)
	log.Info("added to cart", "productID", p.ID)
	writeJSON(w, log, http.StatusOK, h.snapshot())
}

func (h CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.UpdateQuantity"
	log := slog.With("op", op)

	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.UpdateQuantity(r.PathValue("id"), req.Delta)
	writeJSON(w, log, http.StatusOK, h.snapshot())
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	h.cart.RemoveFromCart(r.PathValue("id"))
	writeJSON(w, slog.With("op", op), http.StatusOK, h.snapshot())
}

func (h CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Toggle"
	h.cart.ToggleCart()
	writeJSON(w, slog.With("op", op), http.StatusOK, h.snapshot())
}

func (h CartHandler) snapshot() Cart {
	lines := h.cart.Lines()
	c := Cart{
		Lines: linesFromDomain(lines),
		Open:  h.cart.IsOpen(),
	}
	for _, l := range lines {
		c.Total += l.LineTotal()
		c.Count += l.Quantity
	}
	return c
}
