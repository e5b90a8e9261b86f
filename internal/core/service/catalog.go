package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/niksmo/bloomora/internal/core/domain"
)

const (
	DefaultMaxPrice = 5000
	newArrivalsSize = 4
)

// FilterCatalog returns the products matching every predicate of f in
// source order: case-insensitive name containment, category ("All"
// matches any) and base price within [0, f.MaxPrice].
//
// A sort option other than Recommended reorders the result stably.
func FilterCatalog(
	products []domain.Product, f domain.CatalogFilter,
) []domain.Product {
	search := strings.ToLower(f.Search)

	res := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if f.Category != domain.CategoryAll && f.Category != "" &&
			p.Category != f.Category {
			continue
		}
		if p.Price < 0 || p.Price > f.MaxPrice {
			continue
		}
		res = append(res, p)
	}

	sortProducts(res, f.Sort)
	return res
}

func sortProducts(ps []domain.Product, o domain.SortOption) {
	switch o {
	case domain.SortPriceLow:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(a.EffectivePrice(), b.EffectivePrice())
		})
	case domain.SortPriceHigh:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.EffectivePrice(), a.EffectivePrice())
		})
	case domain.SortNewest:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			switch {
			case a.IsNew == b.IsNew:
				return 0
			case a.IsNew:
				return -1
			default:
				return 1
			}
		})
	}
}

// A Catalog serves the static product set.
type Catalog struct {
	products []domain.Product
}

func NewCatalog(products []domain.Product) Catalog {
	return Catalog{slices.Clone(products)}
}

func (c Catalog) Filter(f domain.CatalogFilter) []domain.Product {
	return FilterCatalog(c.products, f)
}

func (c Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

func (c Catalog) Product(id string) (domain.Product, error) {
	i := slices.IndexFunc(c.products, func(p domain.Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

func (c Catalog) NewArrivals() []domain.Product {
	return slices.Clone(c.products[:min(newArrivalsSize, len(c.products))])
}

func (Catalog) Categories() []domain.Category {
	return []domain.Category{
		domain.CategoryAll,
		domain.CategoryIndoor,
		domain.CategoryPetFriendly,
		domain.CategoryBundle,
		domain.CategoryOutdoor,
	}
}
