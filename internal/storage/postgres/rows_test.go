package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/shopspring/decimal"
)

func TestBookingRowToBooking(t *testing.T) {
	created := time.Date(2025, 5, 20, 10, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	row := bookingRow{
		ID:            "booking-1",
		HotelID:       "hotel-1",
		RoomID:        "room-1",
		UserID:        "user-1",
		HotelName:     "Grand Luxury Hotel",
		RoomName:      "Standard Double Room",
		RoomCategory:  "standard",
		CheckIn:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Guests:        2,
		TotalAmount:   "360.00",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Status:        "confirmed",
		CreatedAt:     created,
	}

	b, err := row.toBooking()
	if err != nil {
		t.Fatalf("toBooking: %v", err)
	}

	if b.RoomCategory != catalog.CategoryStandard {
		t.Errorf("category = %q", b.RoomCategory)
	}

	if !b.TotalPrice.Equal(decimal.NewFromInt(360)) {
		t.Errorf("total = %s", b.TotalPrice)
	}

	if b.CheckIn.String() != "2025-06-01" || b.CheckOut.String() != "2025-06-04" {
		t.Errorf("dates = %s..%s", b.CheckIn, b.CheckOut)
	}

	if b.BookingDate.Location() != time.UTC || !b.BookingDate.Equal(created) {
		t.Errorf("booking date = %v", b.BookingDate)
	}

	if b.Status != booking.StatusConfirmed {
		t.Errorf("status = %q", b.Status)
	}
}

func TestBookingRowRejectsForeignStatus(t *testing.T) {
	row := bookingRow{ID: "b", RoomCategory: "suite", TotalAmount: "1", Status: "pending"}

	if _, err := row.toBooking(); !errors.Is(err, booking.ErrUnknownStatus) {
		t.Errorf("want ErrUnknownStatus, got %v", err)
	}
}

func TestBookingRowLedgerBooking(t *testing.T) {
	valid := bookingRow{
		ID:           "booking-2",
		RoomID:       "room-3",
		RoomCategory: "deluxe",
		CheckIn:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		TotalAmount:  "400.00",
		Status:       "confirmed",
	}

	t.Run("confirmed row is kept", func(t *testing.T) {
		b, ok, err := valid.ledgerBooking()
		if err != nil || !ok || b.ID != "booking-2" {
			t.Errorf("ledgerBooking = %+v, %v, %v", b, ok, err)
		}
	})

	t.Run("foreign status is skipped", func(t *testing.T) {
		for _, status := range []string{"pending", "completed"} {
			row := valid
			row.Status = status

			if _, ok, err := row.ledgerBooking(); ok || err != nil {
				t.Errorf("%s: ok = %v, err = %v, want skip", status, ok, err)
			}
		}
	})

	t.Run("confirmed row with bad columns is malformed", func(t *testing.T) {
		badCategory := valid
		badCategory.RoomCategory = "penthouse"

		badAmount := valid
		badAmount.TotalAmount = "four hundred"

		for _, row := range []bookingRow{badCategory, badAmount} {
			if _, ok, err := row.ledgerBooking(); ok || !errors.Is(err, booking.ErrMalformedRecord) {
				t.Errorf("ok = %v, err = %v, want ErrMalformedRecord", ok, err)
			}
		}
	})
}

func TestRoomRowToRoom(t *testing.T) {
	row := roomRow{
		ID:        "room-5",
		HotelID:   "hotel-1",
		Category:  "suite",
		Name:      "Presidential Suite",
		Price:     "500.00",
		Capacity:  6,
		Amenities: []string{"Jacuzzi"},
		Status:    "maintenance",
	}

	r, err := row.toRoom()
	if err != nil {
		t.Fatalf("toRoom: %v", err)
	}

	if r.Category != catalog.CategorySuite || r.Available || !r.Price.Equal(decimal.NewFromInt(500)) {
		t.Errorf("unexpected room %+v", r)
	}

	row.Price = "lots"
	if _, err := row.toRoom(); err == nil {
		t.Error("expected error for bad price")
	}
}

func TestColumnMappings(t *testing.T) {
	if roomStatus(true) != "available" || roomStatus(false) != "maintenance" {
		t.Error("room status mapping changed")
	}

	if categoryColumn(catalog.CategoryDeluxe) != "deluxe" {
		t.Error("category column must be lowercase")
	}
}
