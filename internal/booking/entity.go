package booking

import (
	"fmt"
	"time"

	"github.com/avstrong/hotel/internal/catalog"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusConfirmed: {StatusCancelled: true},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := validNext[st]; !ok {
		return "", fmt.Errorf("status %q: %w", s, ErrUnknownStatus)
	}

	return st, nil
}

type Booking struct {
	ID            string           `json:"id"`
	HotelID       string           `json:"hotel_id"`
	RoomID        string           `json:"room_id"`
	HotelName     string           `json:"hotel_name"`
	RoomName      string           `json:"room_name"`
	RoomCategory  catalog.Category `json:"room_category"`
	CheckIn       Date             `json:"check_in"`
	CheckOut      Date             `json:"check_out"`
	Guests        int              `json:"guests"`
	TotalPrice    decimal.Decimal  `json:"total_price"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	UserID        string           `json:"user_id,omitempty"`
	Status        Status           `json:"status"`
	BookingDate   time.Time        `json:"booking_date"`
}

// CreateInput carries everything the ledger stores verbatim. The ledger does
// not validate it.
type CreateInput struct {
	HotelID       string
	RoomID        string
	HotelName     string
	RoomName      string
	RoomCategory  catalog.Category
	CheckIn       Date
	CheckOut      Date
	Guests        int
	TotalPrice    decimal.Decimal
	CustomerName  string
	CustomerEmail string
	UserID        string
}
