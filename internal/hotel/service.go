package hotel

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/metrics"
)

type roomStorage interface {
	LoadRooms(ctx context.Context) ([]catalog.Room, error)
	SaveRooms(ctx context.Context, rooms []catalog.Room) error
}

type Conf struct {
	L            *logger.Logger
	PaymentDelay time.Duration
}

// Service runs the booking flow on top of the catalog and the ledger. One
// instance is built at start-up and shared by all handlers.
type Service struct {
	mu      sync.Mutex
	l       *logger.Logger
	conf    Conf
	catalog *catalog.Catalog
	ledger  *booking.Ledger
	rooms   roomStorage
	now     func() time.Time
}

func New(conf Conf, c *catalog.Catalog, ledger *booking.Ledger, rooms roomStorage) *Service {
	//nolint:exhaustruct
	return &Service{
		l:       conf.L,
		conf:    conf,
		catalog: c,
		ledger:  ledger,
		rooms:   rooms,
		now:     time.Now,
	}
}

type BookInput struct {
	RoomID        string       `json:"room_id"`
	CheckIn       booking.Date `json:"check_in"`
	CheckOut      booking.Date `json:"check_out"`
	Guests        int          `json:"guests"`
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
}

// Load restores the persisted room list and the ledger. Malformed stored
// rooms are logged and the seed rooms kept.
func (s *Service) Load(ctx context.Context) error {
	rooms, err := s.rooms.LoadRooms(ctx)

	switch {
	case errors.Is(err, booking.ErrMalformedRecord):
		s.l.LogErrorf("Could not load rooms, keeping seed catalog: %v", err.Error())
	case err != nil:
		return fmt.Errorf("load rooms from storage: %w", err)
	case len(rooms) > 0:
		n := s.catalog.RestoreRooms(rooms)
		s.l.LogInfo("Restored %d rooms from storage", n)
	}

	if err := s.ledger.Load(ctx); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	return nil
}

func (s *Service) Hotels() []catalog.Hotel {
	return s.catalog.ListHotels()
}

func (s *Service) Hotel(id string) (catalog.Hotel, bool) {
	return s.catalog.FindHotel(id)
}

func (s *Service) Rooms(category catalog.Category) []catalog.Room {
	return s.catalog.ListRooms(category)
}

func (s *Service) Room(id string) (catalog.Room, bool) {
	return s.catalog.FindRoom(id)
}

func (s *Service) Availability(roomID string, checkIn, checkOut booking.Date) bool {
	available := s.ledger.IsAvailable(roomID, checkIn, checkOut)
	metrics.IncAvailabilityCheck(available)

	return available
}

func (s *Service) validate(input *BookInput, room catalog.Room, found bool) *booking.InputError {
	inputErr := booking.NewInputError()
	today := booking.DateOf(s.now())

	switch {
	case strings.TrimSpace(input.RoomID) == "":
		inputErr.AddError("room_id", "room is required")
	case !found:
		inputErr.AddError("room_id", fmt.Sprintf("room '%v' does not exist", input.RoomID))
	}

	switch {
	case input.CheckIn.IsZero():
		inputErr.AddError("check_in", "check-in date is required")
	case input.CheckIn.Before(today):
		inputErr.AddError("check_in", "check-in date cannot be in the past")
	}

	switch {
	case input.CheckOut.IsZero():
		inputErr.AddError("check_out", "check-out date is required")
	case !input.CheckIn.IsZero() && !input.CheckOut.After(input.CheckIn):
		inputErr.AddError("check_out", "check-out date must be after check-in date")
	}

	if input.Guests < 1 {
		inputErr.AddError("guests", "at least one guest is required")
	} else if found && input.Guests > room.Capacity {
		inputErr.AddError("guests", fmt.Sprintf("room accommodates at most %d guests", room.Capacity))
	}

	if strings.TrimSpace(input.CustomerName) == "" {
		inputErr.AddError("customer_name", "name is required")
	}

	if strings.TrimSpace(input.CustomerEmail) == "" {
		inputErr.AddError("customer_email", "email is required")
	} else if _, err := mail.ParseAddress(input.CustomerEmail); err != nil {
		inputErr.AddError("customer_email", "email is not valid")
	}

	if inputErr.FieldsCount() == 0 {
		return nil
	}

	return inputErr
}

func (s *Service) conflicts(room catalog.Room, checkIn, checkOut booking.Date) *booking.AvailabilityError {
	availabilityErr := booking.NewAvailabilityError()

	if !room.Available {
		availabilityErr.AddClosedRoom(room.ID)

		return availabilityErr
	}

	for _, existing := range s.ledger.Conflicts(room.ID, checkIn, checkOut) {
		availabilityErr.AddConflict(room.ID, existing)
	}

	if availabilityErr.ConflictsCount() == 0 {
		return nil
	}

	return availabilityErr
}

func (s *Service) reject(room catalog.Room, err *booking.AvailabilityError) error {
	reason := metrics.ReasonConflict
	if !room.Available {
		reason = metrics.ReasonRoomClosed
	}

	metrics.IncBookingRejected(reason)

	return err
}

func (s *Service) pay(ctx context.Context) error {
	if s.conf.PaymentDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.conf.PaymentDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait for payment: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// Book validates the request, rejects overlapping stays, simulates payment
// and records a confirmed booking. The final availability check and the
// ledger append happen under one lock.
func (s *Service) Book(ctx context.Context, input *BookInput) (booking.Booking, error) {
	room, found := s.catalog.FindRoom(input.RoomID)

	if inputErr := s.validate(input, room, found); inputErr != nil {
		metrics.IncBookingRejected(metrics.ReasonInvalidInput)

		return booking.Booking{}, inputErr
	}

	if availabilityErr := s.conflicts(room, input.CheckIn, input.CheckOut); availabilityErr != nil {
		return booking.Booking{}, s.reject(room, availabilityErr)
	}

	if err := s.pay(ctx); err != nil {
		return booking.Booking{}, err
	}

	hotel, _ := s.catalog.FindHotel(room.HotelID)
	userID, _ := booking.UserFromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if availabilityErr := s.conflicts(room, input.CheckIn, input.CheckOut); availabilityErr != nil {
		return booking.Booking{}, s.reject(room, availabilityErr)
	}

	b, err := s.ledger.Create(ctx, booking.CreateInput{
		HotelID:       room.HotelID,
		RoomID:        room.ID,
		HotelName:     hotel.Name,
		RoomName:      room.Name,
		RoomCategory:  room.Category,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Guests:        input.Guests,
		TotalPrice:    booking.TotalPrice(room.Price, input.CheckIn, input.CheckOut),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		UserID:        userID,
	})
	if err != nil {
		return booking.Booking{}, fmt.Errorf("create booking: %w", err)
	}

	s.saveRooms(ctx)
	metrics.IncBookingCreated(string(b.RoomCategory))

	s.l.LogInfo("Booking %s for room %s from %s to %s has been created", b.ID, b.RoomID, b.CheckIn, b.CheckOut)

	return b, nil
}

// Bookings returns the ledger newest first. Equal timestamps keep the later
// insertion first.
func (s *Service) Bookings() []booking.Booking {
	out := s.ledger.List()
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b booking.Booking) int {
		return b.BookingDate.Compare(a.BookingDate)
	})

	return out
}

func (s *Service) Booking(id string) (booking.Booking, bool) {
	return s.ledger.Get(id)
}

func (s *Service) Cancel(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.ledger.Cancel(ctx, id)
	if err != nil {
		return false, fmt.Errorf("cancel booking: %w", err)
	}

	if !ok {
		return false, nil
	}

	s.saveRooms(ctx)
	metrics.IncBookingCancelled()

	s.l.LogInfo("Booking %s has been cancelled", id)

	return true, nil
}

// The booking itself is already durable, so a failed room write is only logged.
func (s *Service) saveRooms(ctx context.Context) {
	if err := s.rooms.SaveRooms(ctx, s.catalog.Rooms()); err != nil {
		s.l.LogErrorf("Could not save rooms: %v", err.Error())
	}
}
