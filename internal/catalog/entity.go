package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryStandard Category = "Standard"
	CategoryDeluxe   Category = "Deluxe"
	CategorySuite    Category = "Suite"
)

var categories = []Category{CategoryStandard, CategoryDeluxe, CategorySuite}

// ParseCategory is case-insensitive so lowercase database enums map back.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("category %q: %w", s, ErrUnknownCategory)
}

type Room struct {
	ID          string          `json:"id"`
	HotelID     string          `json:"hotel_id"`
	Category    Category        `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	Amenities   []string        `json:"amenities"`
	ImageURL    string          `json:"image_url"`
	Available   bool            `json:"available"`
}

type Hotel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url"`
	Rooms       []Room  `json:"rooms"`
}
