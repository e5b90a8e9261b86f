package service_test

import (
	"testing"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(ps []domain.Product) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestFilterCatalog(t *testing.T) {
	all := domain.CatalogFilter{
		Category: domain.CategoryAll,
		MaxPrice: service.DefaultMaxPrice,
	}

	t.Run("NoRestrictionsReturnsAll", func(t *testing.T) {
		got := service.FilterCatalog(testProducts(), all)
		assert.Equal(t, productIDs(testProducts()), productIDs(got))
	})

	t.Run("Idempotent", func(t *testing.T) {
		f := all
		f.Search = "PLANT"
		first := service.FilterCatalog(testProducts(), f)
		second := service.FilterCatalog(testProducts(), f)
		assert.Equal(t, first, second)
	})

	tests := []struct {
		name   string
		filter domain.CatalogFilter
		want   []string
	}{
		{
			name:   "SearchCaseInsensitive",
			filter: domain.CatalogFilter{Search: "snake", Category: domain.CategoryAll, MaxPrice: 5000},
			want:   []string{"B"},
		},
		{
			name:   "Category",
			filter: domain.CatalogFilter{Category: domain.CategoryIndoor, MaxPrice: 5000},
			want:   []string{"A", "C"},
		},
		{
			name:   "MaxPriceInclusiveOnBasePrice",
			filter: domain.CatalogFilter{Category: domain.CategoryAll, MaxPrice: 850},
			want:   []string{"B"},
		},
		{
			name:   "Conjunction",
			filter: domain.CatalogFilter{Search: "i", Category: domain.CategoryIndoor, MaxPrice: 1000},
			want:   []string{"A"},
		},
		{
			name:   "Empty",
			filter: domain.CatalogFilter{Search: "cactus", Category: domain.CategoryAll, MaxPrice: 5000},
			want:   []string{},
		},
		{
			name:   "SortPriceLow",
			filter: domain.CatalogFilter{Category: domain.CategoryAll, MaxPrice: 5000, Sort: domain.SortPriceLow},
			want:   []string{"B", "A", "C", "D"},
		},
		{
			name:   "SortPriceHigh",
			filter: domain.CatalogFilter{Category: domain.CategoryAll, MaxPrice: 5000, Sort: domain.SortPriceHigh},
			want:   []string{"D", "C", "A", "B"},
		},
		{
			name:   "SortNewestIsStable",
			filter: domain.CatalogFilter{Category: domain.CategoryAll, MaxPrice: 5000, Sort: domain.SortNewest},
			want:   []string{"A", "D", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.FilterCatalog(testProducts(), tt.filter)
			assert.Equal(t, tt.want, productIDs(got))
		})
	}
}

func TestCatalog(t *testing.T) {
	c := service.NewCatalog(testProducts())

	t.Run("Product", func(t *testing.T) {
		p, err := c.Product("B")
		require.NoError(t, err)
		assert.Equal(t, productB, p)
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		_, err := c.Product("unknown")
		assert.ErrorIs(t, err, service.ErrProductNotFound)
	})

	t.Run("NewArrivals", func(t *testing.T) {
		assert.Equal(t, []string{"A", "B", "C", "D"}, productIDs(c.NewArrivals()))
		small := service.NewCatalog([]domain.Product{productA})
		assert.Len(t, small.NewArrivals(), 1)
	})

	t.Run("Categories", func(t *testing.T) {
		cats := c.Categories()
		require.NotEmpty(t, cats)
		assert.Equal(t, domain.CategoryAll, cats[0])
	})
}
