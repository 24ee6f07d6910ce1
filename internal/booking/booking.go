package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avstrong/hotel/internal/logger"
)

const maxIDAttempts = 3

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type storageReader interface {
	LoadBookings(ctx context.Context) ([]Booking, error)
}

// storageWriter receives the changed booking and the full ledger after the
// change. Whole-value stores rewrite all; row stores upsert changed.
type storageWriter interface {
	SaveBookings(ctx context.Context, changed Booking, all []Booking) error
}

type storage interface {
	storageReader
	storageWriter
}

// Ledger is the authoritative list of bookings. Records are only mutated
// through Create and Cancel; callers always receive copies.
type Ledger struct {
	mu          sync.Mutex
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	now         func() time.Time
	bookings    []*Booking
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator) *Ledger {
	//nolint:exhaustruct
	return &Ledger{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		now:         time.Now,
	}
}

// Load replaces the in-memory ledger with the stored one. Malformed stored
// content is logged and the current ledger kept.
func (lg *Ledger) Load(ctx context.Context) error {
	bookings, err := lg.storage.LoadBookings(ctx)
	if errors.Is(err, ErrMalformedRecord) {
		lg.l.LogErrorf("Could not load bookings, keeping defaults: %v", err.Error())

		return nil
	}

	if err != nil {
		return fmt.Errorf("load bookings from storage: %w", err)
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	lg.bookings = make([]*Booking, 0, len(bookings))
	for i := range bookings {
		b := bookings[i]
		lg.bookings = append(lg.bookings, &b)
	}

	lg.l.LogInfo("Loaded %d bookings from storage", len(lg.bookings))

	return nil
}

func (lg *Ledger) nextID(ctx context.Context) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := lg.idGenerator.GetID(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNextID, err)
		}

		if lg.find(id) == nil {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: generator keeps returning taken ids", ErrNextID)
}

// Create appends a confirmed booking and persists the ledger. The input is
// stored as given: date order, guest bounds and overlaps are the caller's
// concern.
func (lg *Ledger) Create(ctx context.Context, input CreateInput) (Booking, error) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	id, err := lg.nextID(ctx)
	if err != nil {
		return Booking{}, err
	}

	b := &Booking{
		ID:            id,
		HotelID:       input.HotelID,
		RoomID:        input.RoomID,
		HotelName:     input.HotelName,
		RoomName:      input.RoomName,
		RoomCategory:  input.RoomCategory,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Guests:        input.Guests,
		TotalPrice:    input.TotalPrice,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		UserID:        input.UserID,
		Status:        StatusConfirmed,
		BookingDate:   lg.now().UTC(),
	}

	lg.bookings = append(lg.bookings, b)

	if err := lg.storage.SaveBookings(ctx, *b, lg.snapshot()); err != nil {
		lg.bookings = lg.bookings[:len(lg.bookings)-1]
		lg.l.LogInfo("Booking %s has been roll backed after error", b.ID)

		return Booking{}, fmt.Errorf("save bookings to storage: %w", err)
	}

	return *b, nil
}

func (lg *Ledger) List() []Booking {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	return lg.snapshot()
}

func (lg *Ledger) Get(id string) (Booking, bool) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	if b := lg.find(id); b != nil {
		return *b, true
	}

	return Booking{}, false
}

// Cancel reports false only for unknown ids. Cancelling a cancelled booking
// succeeds again and rewrites the store.
func (lg *Ledger) Cancel(ctx context.Context, id string) (bool, error) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	b := lg.find(id)
	if b == nil {
		return false, nil
	}

	prev := b.Status
	if prev != StatusCancelled && !CanTransition(prev, StatusCancelled) {
		return false, fmt.Errorf("cancel booking %s in status %s: %w", id, prev, ErrUnknownStatus)
	}

	b.Status = StatusCancelled

	if err := lg.storage.SaveBookings(ctx, *b, lg.snapshot()); err != nil {
		b.Status = prev
		lg.l.LogInfo("Cancellation of booking %s has been roll backed after error", id)

		return false, fmt.Errorf("save bookings to storage: %w", err)
	}

	return true, nil
}

// IsAvailable reports whether no confirmed booking of the room overlaps
// [checkIn, checkOut).
func (lg *Ledger) IsAvailable(roomID string, checkIn, checkOut Date) bool {
	return len(lg.Conflicts(roomID, checkIn, checkOut)) == 0
}

func (lg *Ledger) Conflicts(roomID string, checkIn, checkOut Date) []Booking {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	var out []Booking

	for _, b := range lg.bookings {
		if b.RoomID != roomID || b.Status != StatusConfirmed {
			continue
		}

		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			out = append(out, *b)
		}
	}

	return out
}

func (lg *Ledger) find(id string) *Booking {
	for _, b := range lg.bookings {
		if b.ID == id {
			return b
		}
	}

	return nil
}

func (lg *Ledger) snapshot() []Booking {
	out := make([]Booking, 0, len(lg.bookings))
	for _, b := range lg.bookings {
		out = append(out, *b)
	}

	return out
}
