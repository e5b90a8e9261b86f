package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/service"
)

// GET v1/products?q=&category=&max_price=&sort= (200 OK, 400 Bad request)
// GET v1/products/{id} (200 OK, 404 Not found)

type CatalogReader interface {
	Filter(domain.CatalogFilter) []domain.Product
	Product(id string) (domain.Product, error)
	Categories() []domain.Category
}

type CatalogHandler struct {
	catalog CatalogReader
}

func RegisterCatalog(mux *http.ServeMux, catalog CatalogReader) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	filter, err := parseCatalogFilter(r)
	if err != nil {
		writeError(w, log, http.StatusBadRequest, err)
		return
	}

	categories := h.catalog.Categories()
	page := CatalogPage{
		Products:   productsFromDomain(h.catalog.Filter(filter)),
		Categories: make([]string, len(categories)),
		MaxPrice:   filter.MaxPrice,
	}
	for i, c := range categories {
		page.Categories[i] = string(c)
	}

	writeJSON(w, log, http.StatusOK, page)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.Product(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productFromDomain(p))
}

func parseCatalogFilter(r *http.Request) (domain.CatalogFilter, error) {
	q := r.URL.Query()

	category, err := domain.ParseCategoryFilter(q.Get("category"))
	if err != nil {
		return domain.CatalogFilter{}, err
	}

	sort, err := domain.ParseSortOption(q.Get("sort"))
	if err != nil {
		return domain.CatalogFilter{}, err
	}

	maxPrice := int64(service.DefaultMaxPrice)
	if v := q.Get("max_price"); v != "" {
		maxPrice, err = strconv.ParseInt(v, 10, 64)
		if err != nil || maxPrice < 0 {
			return domain.CatalogFilter{}, errors.New("invalid max_price")
		}
	}

	return domain.CatalogFilter{
		Search:   q.Get("q"),
		Category: category,
		MaxPrice: maxPrice,
		Sort:     sort,
	}, nil
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(
	w http.ResponseWriter, log *slog.Logger, status int, err error,
) {
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Warn("request rejected", "err", err)
	}
	writeJSON(w, log, status, ErrorBody{Error: err.Error()})
}

// writeServiceError maps core errors to response codes.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrPostNotFound):
		writeError(w, log, http.StatusNotFound, err)
	case errors.Is(err, service.ErrUnauthenticated):
		log.Warn("request rejected", "err", err)
		writeJSON(w, log, http.StatusUnauthorized,
			Redirect{Redirect: service.SignInPath})
	case errors.Is(err, service.ErrCheckoutBlocked),
		errors.Is(err, service.ErrOrderInFlight),
		errors.Is(err, service.ErrOrderPlaced):
		writeError(w, log, http.StatusConflict, err)
	case errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidShipping),
		errors.Is(err, service.ErrInvalidQuizAnswers):
		writeError(w, log, http.StatusUnprocessableEntity, err)
	default:
		writeError(w, log, http.StatusServiceUnavailable, err)
	}
}
