package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/shopspring/decimal"
)

const (
	roomStatusAvailable   = "available"
	roomStatusMaintenance = "maintenance"

	paymentMethodDemo = "demo"
	paymentStatusPaid = "paid"
)

type bookingRow struct {
	ID            string
	HotelID       string
	RoomID        string
	UserID        string
	HotelName     string
	RoomName      string
	RoomCategory  string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TotalAmount   string
	CustomerName  string
	CustomerEmail string
	Status        string
	CreatedAt     time.Time
}

func (r bookingRow) toBooking() (booking.Booking, error) {
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("booking %s: %w", r.ID, err)
	}

	category, err := catalog.ParseCategory(r.RoomCategory)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("booking %s: %w", r.ID, err)
	}

	total, err := decimal.NewFromString(r.TotalAmount)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("booking %s total %q: %w", r.ID, r.TotalAmount, err)
	}

	return booking.Booking{
		ID:            r.ID,
		HotelID:       r.HotelID,
		RoomID:        r.RoomID,
		HotelName:     r.HotelName,
		RoomName:      r.RoomName,
		RoomCategory:  category,
		CheckIn:       booking.DateOf(r.CheckIn),
		CheckOut:      booking.DateOf(r.CheckOut),
		Guests:        r.Guests,
		TotalPrice:    total,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		UserID:        r.UserID,
		Status:        status,
		BookingDate:   r.CreatedAt.UTC(),
	}, nil
}

// ledgerBooking reports ok=false for rows in a status the ledger does not
// track (pending, completed). Any other decode failure wraps
// booking.ErrMalformedRecord.
func (r bookingRow) ledgerBooking() (booking.Booking, bool, error) {
	b, err := r.toBooking()
	if errors.Is(err, booking.ErrUnknownStatus) {
		return booking.Booking{}, false, nil
	}

	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("%v: %w", err, booking.ErrMalformedRecord)
	}

	return b, true, nil
}

type roomRow struct {
	ID          string
	HotelID     string
	Category    string
	Name        string
	Description string
	Price       string
	Capacity    int
	Amenities   []string
	ImageURL    string
	Status      string
}

func (r roomRow) toRoom() (catalog.Room, error) {
	category, err := catalog.ParseCategory(r.Category)
	if err != nil {
		return catalog.Room{}, fmt.Errorf("room %s: %w", r.ID, err)
	}

	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return catalog.Room{}, fmt.Errorf("room %s price %q: %w", r.ID, r.Price, err)
	}

	return catalog.Room{
		ID:          r.ID,
		HotelID:     r.HotelID,
		Category:    category,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Capacity:    r.Capacity,
		Amenities:   r.Amenities,
		ImageURL:    r.ImageURL,
		Available:   r.Status == roomStatusAvailable,
	}, nil
}

// Occupancy is derived from bookings, so a closed room is stored as maintenance.
func roomStatus(available bool) string {
	if available {
		return roomStatusAvailable
	}

	return roomStatusMaintenance
}

func categoryColumn(c catalog.Category) string {
	return strings.ToLower(string(c))
}
