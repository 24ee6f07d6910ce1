package migration

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schema string

type storage interface {
	ApplySchema(ctx context.Context, ddl string) error
	SaveHotels(ctx context.Context, hotels []catalog.Hotel) error
}

// Up creates the relational schema and inserts the seed catalog. Rows that
// already exist are left as they are.
func Up(ctx context.Context, l *logger.Logger, storage storage) error {
	if err := storage.ApplySchema(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	l.LogInfo("Schema has been applied")

	if err := storage.SaveHotels(ctx, Seed()); err != nil {
		return fmt.Errorf("save seed hotels to storage: %w", err)
	}

	l.LogInfo("Seed catalog has been applied")

	return nil
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Seed returns the demo catalog: one hotel with two rooms per category.
func Seed() []catalog.Hotel {
	const (
		standardImg = "/assets/standard-room.jpg"
		deluxeImg   = "/assets/deluxe-room.jpg"
		suiteImg    = "/assets/suite-room.jpg"
	)

	rooms := []catalog.Room{
		{
			ID:          "room-1",
			Category:    catalog.CategoryStandard,
			Name:        "Standard Double Room",
			Description: "Comfortable room with modern amenities and city view",
			Price:       price(120), //nolint:gomnd
			Capacity:    2,          //nolint:gomnd
			Amenities:   []string{"Free WiFi", "Air Conditioning", "TV", "Room Service"},
			ImageURL:    standardImg,
			Available:   true,
		},
		{
			ID:          "room-2",
			Category:    catalog.CategoryStandard,
			Name:        "Standard Twin Room",
			Description: "Cozy room with twin beds perfect for friends or colleagues",
			Price:       price(110), //nolint:gomnd
			Capacity:    2,          //nolint:gomnd
			Amenities:   []string{"Free WiFi", "Air Conditioning", "TV", "Coffee Maker"},
			ImageURL:    standardImg,
			Available:   true,
		},
		{
			ID:          "room-3",
			Category:    catalog.CategoryDeluxe,
			Name:        "Deluxe King Room",
			Description: "Spacious room with premium furnishings and ocean view",
			Price:       price(200), //nolint:gomnd
			Capacity:    2,          //nolint:gomnd
			Amenities:   []string{"Free WiFi", "Air Conditioning", "TV", "Minibar", "Balcony", "Room Service"},
			ImageURL:    deluxeImg,
			Available:   true,
		},
		{
			ID:          "room-4",
			Category:    catalog.CategoryDeluxe,
			Name:        "Deluxe Suite",
			Description: "Elegant suite with separate living area and marble bathroom",
			Price:       price(280), //nolint:gomnd
			Capacity:    4,          //nolint:gomnd
			Amenities:   []string{"Free WiFi", "Air Conditioning", "TV", "Minibar", "Balcony", "Room Service", "Living Area"},
			ImageURL:    deluxeImg,
			Available:   true,
		},
		{
			ID:          "room-5",
			Category:    catalog.CategorySuite,
			Name:        "Presidential Suite",
			Description: "Ultimate luxury with panoramic views and premium amenities",
			Price:       price(500), //nolint:gomnd
			Capacity:    6,          //nolint:gomnd
			Amenities: []string{
				"Free WiFi", "Air Conditioning", "TV", "Minibar", "Balcony", "Room Service", "Living Area",
				"Jacuzzi", "Butler Service",
			},
			ImageURL:  suiteImg,
			Available: true,
		},
		{
			ID:          "room-6",
			Category:    catalog.CategorySuite,
			Name:        "Royal Suite",
			Description: "Opulent suite with multiple rooms and exclusive services",
			Price:       price(750), //nolint:gomnd
			Capacity:    8,          //nolint:gomnd
			Amenities: []string{
				"Free WiFi", "Air Conditioning", "TV", "Minibar", "Balcony", "Room Service", "Living Area",
				"Jacuzzi", "Butler Service", "Private Chef",
			},
			ImageURL:  suiteImg,
			Available: true,
		},
	}

	return []catalog.Hotel{
		{
			ID:          "hotel-1",
			Name:        "Grand Luxury Hotel",
			Description: "Experience unparalleled luxury in the heart of the city",
			Address:     "123 Luxury Avenue, Downtown District",
			Rating:      5, //nolint:gomnd
			ImageURL:    "/assets/hotel-hero.jpg",
			Rooms:       rooms,
		},
	}
}
