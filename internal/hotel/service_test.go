package hotel

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/idgen/simple"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/migration"
	"github.com/avstrong/hotel/internal/storage/memory"
	"github.com/avstrong/hotel/internal/storage/slot"
	"github.com/shopspring/decimal"
)

var today = time.Date(2025, 5, 1, 15, 0, 0, 0, time.UTC)

type testEnv struct {
	svc *Service
	kv  *memory.DB
}

func newTestEnv(t *testing.T, kv *memory.DB) testEnv {
	t.Helper()

	l := logger.New(log.New(io.Discard, "", 0), logger.LevelDebug)

	if kv == nil {
		kv = memory.New(memory.Config{L: l})
	}

	store := slot.New(kv)
	ledger := booking.New(l, store, simple.New("booking"))
	svc := New(Conf{L: l}, catalog.New(migration.Seed()), ledger, store)
	svc.now = func() time.Time { return today }

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	return testEnv{svc: svc, kv: kv}
}

func d(s string) booking.Date {
	date, err := booking.ParseDate(s)
	if err != nil {
		panic(err)
	}

	return date
}

func validInput(roomID, in, out string) *BookInput {
	return &BookInput{
		RoomID:        roomID,
		CheckIn:       d(in),
		CheckOut:      d(out),
		Guests:        2,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
	}
}

func TestBook(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := booking.NewContextWithUser(context.Background(), "user-42")

	b, err := env.svc.Book(ctx, validInput("room-1", "2025-06-01", "2025-06-04"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if !b.TotalPrice.Equal(decimal.NewFromInt(360)) {
		t.Errorf("total = %s, want 360", b.TotalPrice)
	}

	if b.Status != booking.StatusConfirmed || b.UserID != "user-42" {
		t.Errorf("unexpected booking %+v", b)
	}

	if b.HotelName != "Grand Luxury Hotel" || b.RoomName != "Standard Double Room" ||
		b.RoomCategory != catalog.CategoryStandard {
		t.Errorf("snapshot fields not filled: %+v", b)
	}

	for _, key := range []string{slot.KeyBookings, slot.KeyRooms} {
		if _, ok, _ := env.kv.Get(ctx, key); !ok {
			t.Errorf("slot %s was not written", key)
		}
	}

	t.Run("overlap is rejected", func(t *testing.T) {
		_, err := env.svc.Book(ctx, validInput("room-1", "2025-06-03", "2025-06-05"))

		availabilityErr := booking.IsAvailabilityError(err)
		if availabilityErr == nil {
			t.Fatalf("want AvailabilityError, got %v", err)
		}

		if availabilityErr.ConflictsCount() != 1 {
			t.Errorf("conflicts = %v", availabilityErr.Fields())
		}
	})

	t.Run("adjacent stay is accepted", func(t *testing.T) {
		if _, err := env.svc.Book(ctx, validInput("room-1", "2025-06-04", "2025-06-06")); err != nil {
			t.Errorf("Book: %v", err)
		}
	})

	t.Run("other room is independent", func(t *testing.T) {
		if _, err := env.svc.Book(ctx, validInput("room-2", "2025-06-01", "2025-06-04")); err != nil {
			t.Errorf("Book: %v", err)
		}
	})

	if n := len(env.svc.Bookings()); n != 3 {
		t.Errorf("bookings = %d, want 3", n)
	}
}

func TestBookLongStayPrice(t *testing.T) {
	env := newTestEnv(t, nil)

	b, err := env.svc.Book(context.Background(), validInput("room-1", "2026-11-01", "2400-11-01"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if want := decimal.NewFromInt(120 * 136601); !b.TotalPrice.Equal(want) {
		t.Errorf("total = %s, want %s", b.TotalPrice, want)
	}
}

func TestBookValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name  string
		edit  func(in *BookInput)
		field string
	}{
		{"unknown room", func(in *BookInput) { in.RoomID = "room-99" }, "room_id"},
		{"missing room", func(in *BookInput) { in.RoomID = "" }, "room_id"},
		{"check-in in the past", func(in *BookInput) { in.CheckIn = d("2025-04-30") }, "check_in"},
		{"missing check-in", func(in *BookInput) { in.CheckIn = booking.Date{} }, "check_in"},
		{"same day check-out", func(in *BookInput) { in.CheckOut = in.CheckIn }, "check_out"},
		{"check-out before check-in", func(in *BookInput) { in.CheckOut = d("2025-05-30") }, "check_out"},
		{"no guests", func(in *BookInput) { in.Guests = 0 }, "guests"},
		{"over capacity", func(in *BookInput) { in.Guests = 3 }, "guests"},
		{"blank name", func(in *BookInput) { in.CustomerName = "  " }, "customer_name"},
		{"bad email", func(in *BookInput) { in.CustomerEmail = "not-an-email" }, "customer_email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("room-1", "2025-06-01", "2025-06-04")
			tt.edit(in)

			_, err := env.svc.Book(context.Background(), in)

			inputErr := booking.IsInputError(err)
			if inputErr == nil {
				t.Fatalf("want InputError, got %v", err)
			}

			if !inputErr.Has(tt.field) {
				t.Errorf("want error on %s, got %v", tt.field, inputErr.Fields())
			}
		})
	}

	t.Run("check-in today is allowed", func(t *testing.T) {
		if _, err := env.svc.Book(context.Background(), validInput("room-3", "2025-05-01", "2025-05-02")); err != nil {
			t.Errorf("Book: %v", err)
		}
	})

	if n := len(env.svc.Bookings()); n != 1 {
		t.Errorf("bookings = %d, want 1", n)
	}
}

func TestBookClosedRoom(t *testing.T) {
	kv := memory.New(memory.Config{})
	rooms := catalog.New(migration.Seed()).Rooms()
	rooms[0].Available = false

	if err := slot.New(kv).SaveRooms(context.Background(), rooms); err != nil {
		t.Fatalf("SaveRooms: %v", err)
	}

	env := newTestEnv(t, kv)

	_, err := env.svc.Book(context.Background(), validInput(rooms[0].ID, "2025-06-01", "2025-06-02"))
	if availabilityErr := booking.IsAvailabilityError(err); availabilityErr == nil {
		t.Fatalf("want AvailabilityError, got %v", err)
	}
}

func TestBookPaymentCancelled(t *testing.T) {
	env := newTestEnv(t, nil)
	env.svc.conf.PaymentDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := env.svc.Book(ctx, validInput("room-1", "2025-06-01", "2025-06-02")); err == nil {
		t.Fatal("expected error from cancelled payment")
	}

	if n := len(env.svc.Bookings()); n != 0 {
		t.Errorf("bookings = %d, want 0", n)
	}
}

func TestBookingsNewestFirst(t *testing.T) {
	env := newTestEnv(t, nil)

	var ids []string

	for _, room := range []string{"room-1", "room-2", "room-3"} {
		b, err := env.svc.Book(context.Background(), validInput(room, "2025-06-01", "2025-06-02"))
		if err != nil {
			t.Fatalf("Book: %v", err)
		}

		ids = append(ids, b.ID)
	}

	got := env.svc.Bookings()
	for i, b := range got {
		if want := ids[len(ids)-1-i]; b.ID != want {
			t.Errorf("position %d = %s, want %s", i, b.ID, want)
		}
	}
}

func TestCancel(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	b, err := env.svc.Book(ctx, validInput("room-5", "2025-07-10", "2025-07-12"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	t.Run("unknown id", func(t *testing.T) {
		ok, err := env.svc.Cancel(ctx, "booking-missing")
		if err != nil || ok {
			t.Errorf("Cancel = %v, %v", ok, err)
		}
	})

	t.Run("frees the dates", func(t *testing.T) {
		ok, err := env.svc.Cancel(ctx, b.ID)
		if err != nil || !ok {
			t.Fatalf("Cancel = %v, %v", ok, err)
		}

		if !env.svc.Availability("room-5", d("2025-07-10"), d("2025-07-12")) {
			t.Error("cancelled booking still blocks the room")
		}

		if _, err := env.svc.Book(ctx, validInput("room-5", "2025-07-10", "2025-07-12")); err != nil {
			t.Errorf("rebook: %v", err)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		ok, err := env.svc.Cancel(ctx, b.ID)
		if err != nil || !ok {
			t.Errorf("Cancel = %v, %v", ok, err)
		}

		got, _ := env.svc.Booking(b.ID)
		if got.Status != booking.StatusCancelled {
			t.Errorf("status = %s", got.Status)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("restores ledger across restarts", func(t *testing.T) {
		first := newTestEnv(t, nil)

		b, err := first.svc.Book(context.Background(), validInput("room-4", "2025-06-01", "2025-06-03"))
		if err != nil {
			t.Fatalf("Book: %v", err)
		}

		second := newTestEnv(t, first.kv)

		got, ok := second.svc.Booking(b.ID)
		if !ok || !got.TotalPrice.Equal(decimal.NewFromInt(560)) {
			t.Errorf("restored booking = %+v, %v", got, ok)
		}

		if second.svc.Availability("room-4", d("2025-06-02"), d("2025-06-04")) {
			t.Error("restored booking does not block the room")
		}
	})

	t.Run("malformed rooms keep seed", func(t *testing.T) {
		kv := memory.New(memory.Config{})
		_ = kv.Set(context.Background(), slot.KeyRooms, "{not json")

		env := newTestEnv(t, kv)

		if n := len(env.svc.Rooms("")); n != 6 {
			t.Errorf("rooms = %d, want 6", n)
		}
	})

	t.Run("malformed bookings keep empty ledger", func(t *testing.T) {
		kv := memory.New(memory.Config{})
		_ = kv.Set(context.Background(), slot.KeyBookings, strings.Repeat("[", 3))

		env := newTestEnv(t, kv)

		if n := len(env.svc.Bookings()); n != 0 {
			t.Errorf("bookings = %d, want 0", n)
		}
	})
}

func TestCatalogPassthrough(t *testing.T) {
	env := newTestEnv(t, nil)

	if n := len(env.svc.Rooms(catalog.CategoryDeluxe)); n != 2 {
		t.Errorf("deluxe rooms = %d", n)
	}

	if _, ok := env.svc.Hotel("hotel-1"); !ok {
		t.Error("hotel-1 not found")
	}

	if _, ok := env.svc.Room("room-7"); ok {
		t.Error("room-7 should not exist")
	}

	if n := len(env.svc.Hotels()); n != 1 {
		t.Errorf("hotels = %d", n)
	}
}
