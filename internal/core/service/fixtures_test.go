package service_test

import (
	"errors"

	"github.com/niksmo/bloomora/internal/core/domain"
)

var errNoEntry = errors.New("no entry")

var (
	productA = domain.Product{
		ID:       "A",
		Name:     "Monstera Deliciosa",
		Price:    999,
		Category: domain.CategoryIndoor,
		IsNew:    true,
	}
	productB = domain.Product{
		ID:        "B",
		Name:      "Snake Plant Laurentii",
		Price:     850,
		SalePrice: 650,
		Category:  domain.CategoryPetFriendly,
	}
	productC = domain.Product{
		ID:        "C",
		Name:      "Fiddle Leaf Fig",
		Price:     2500,
		Category:  domain.CategoryIndoor,
		IsSoldOut: true,
	}
	productD = domain.Product{
		ID:       "D",
		Name:     "Urban Jungle Bundle",
		Price:    3500,
		Category: domain.CategoryBundle,
		IsNew:    true,
	}
)

func testProducts() []domain.Product {
	return []domain.Product{productA, productB, productC, productD}
}

func testShipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "12 Fern Street",
		City:      "Pune",
		State:     "MH",
		Zip:       "411001",
	}
}
