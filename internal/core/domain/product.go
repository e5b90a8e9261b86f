package domain

// A Product is a read-only catalog record.
//
// Prices are whole rupees. A zero SalePrice means the product is not on sale.
type Product struct {
	ID            string
	Name          string
	BotanicalName string
	Price         int64
	SalePrice     int64
	Description   string
	Category      Category
	Difficulty    Difficulty
	Light         Light
	Water         Water
	Image         string
	EcoScore      float64
	IsNew         bool
	IsSoldOut     bool
	Reviews       int
	Rating        float64
}

func (p Product) OnSale() bool {
	return p.SalePrice > 0
}

// EffectivePrice returns the sale price when present, otherwise the base price.
func (p Product) EffectivePrice() int64 {
	if p.OnSale() {
		return p.SalePrice
	}
	return p.Price
}

type CatalogFilter struct {
	Search   string
	Category Category
	MaxPrice int64
	Sort     SortOption
}

// ProductSales is a per-product aggregate of placed orders.
type ProductSales struct {
	ProductID string
	Name      string
	Quantity  int64
	Revenue   int64
}
