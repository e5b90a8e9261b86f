package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownEnumValue = errors.New("unknown enum value")

type (
	Category   string
	Difficulty string
	Light      string
	Water      string
)

const (
	CategoryIndoor      Category = "Indoor"
	CategoryOutdoor     Category = "Outdoor"
	CategoryPetFriendly Category = "Pet-Friendly"
	CategoryBundle      Category = "Bundle"
	CategoryPot         Category = "Pot"

	// CategoryAll is the filter sentinel, never a product category.
	CategoryAll Category = "All"
)

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyExpert Difficulty = "Expert"
)

const (
	LightLow    Light = "Low"
	LightMedium Light = "Medium"
	LightBright Light = "Bright"
)

const (
	WaterLow    Water = "Low"
	WaterMedium Water = "Medium"
	WaterHigh   Water = "High"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryIndoor, CategoryOutdoor, CategoryPetFriendly,
		CategoryBundle, CategoryPot:
		return c, nil
	}
	return "", enumErr("category", s)
}

// ParseCategoryFilter accepts every product category and the "All" sentinel.
func ParseCategoryFilter(s string) (Category, error) {
	if s == "" || Category(s) == CategoryAll {
		return CategoryAll, nil
	}
	return ParseCategory(s)
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyExpert:
		return d, nil
	}
	return "", enumErr("difficulty", s)
}

func ParseLight(s string) (Light, error) {
	switch l := Light(s); l {
	case LightLow, LightMedium, LightBright:
		return l, nil
	}
	return "", enumErr("light", s)
}

func ParseWater(s string) (Water, error) {
	switch w := Water(s); w {
	case WaterLow, WaterMedium, WaterHigh:
		return w, nil
	}
	return "", enumErr("water", s)
}

type SortOption string

const (
	SortRecommended SortOption = "Recommended"
	SortPriceLow    SortOption = "Price: Low to High"
	SortPriceHigh   SortOption = "Price: High to Low"
	SortNewest      SortOption = "New Arrivals"
)

func ParseSortOption(s string) (SortOption, error) {
	switch o := SortOption(s); o {
	case "":
		return SortRecommended, nil
	case SortRecommended, SortPriceLow, SortPriceHigh, SortNewest:
		return o, nil
	}
	return "", enumErr("sort option", s)
}

func enumErr(kind, v string) error {
	return fmt.Errorf("%s %q: %w", kind, v, ErrUnknownEnumValue)
}
