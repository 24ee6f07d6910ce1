package slot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
)

const (
	KeyBookings = "hotelBookings"
	KeyRooms    = "hotelRooms"
)

type kv interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store keeps the ledger and the room list as whole-value JSON blobs in a
// key-value slot. Every save rewrites the complete value; there is no
// versioning.
type Store struct {
	kv kv
}

func New(kv kv) *Store {
	return &Store{kv: kv}
}

func (s *Store) LoadBookings(ctx context.Context) ([]booking.Booking, error) {
	var out []booking.Booking
	if err := s.load(ctx, KeyBookings, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) SaveBookings(ctx context.Context, _ booking.Booking, all []booking.Booking) error {
	return s.save(ctx, KeyBookings, all)
}

func (s *Store) LoadRooms(ctx context.Context) ([]catalog.Room, error) {
	var out []catalog.Room
	if err := s.load(ctx, KeyRooms, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) SaveRooms(ctx context.Context, rooms []catalog.Room) error {
	return s.save(ctx, KeyRooms, rooms)
}

func (s *Store) load(ctx context.Context, key string, out any) error {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read slot %s: %w", key, err)
	}

	if !ok {
		return nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode slot %s: %v: %w", key, err, booking.ErrMalformedRecord)
	}

	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}

	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}

	return nil
}
