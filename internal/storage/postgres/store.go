package postgres

import (
	"context"
	"fmt"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists the catalog and the ledger in the hotels, rooms and bookings
// tables. Bookings are upserted one row per change.
type Store struct {
	l  *logger.Logger
	db *pgxpool.Pool
}

func New(l *logger.Logger, db *pgxpool.Pool) *Store {
	return &Store{l: l, db: db}
}

func (s *Store) ApplySchema(ctx context.Context, ddl string) error {
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}

func (s *Store) LoadBookings(ctx context.Context) ([]booking.Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, hotel_id, room_id, user_id, hotel_name, room_name, room_category,
		       check_in_date, check_out_date, guests, total_amount::text,
		       customer_name, customer_email, status, created_at
		FROM bookings
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()

	var out []booking.Booking

	for rows.Next() {
		var r bookingRow
		if err := rows.Scan(
			&r.ID, &r.HotelID, &r.RoomID, &r.UserID, &r.HotelName, &r.RoomName, &r.RoomCategory,
			&r.CheckIn, &r.CheckOut, &r.Guests, &r.TotalAmount,
			&r.CustomerName, &r.CustomerEmail, &r.Status, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}

		b, ok, err := r.ledgerBooking()
		if err != nil {
			return nil, err
		}

		if !ok {
			s.l.LogWarnf("Skipping booking row %s with status %q", r.ID, r.Status)

			continue
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return out, nil
}

func (s *Store) SaveBookings(ctx context.Context, changed booking.Booking, _ []booking.Booking) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, hotel_id, room_id, user_id, hotel_name, room_name, room_category,
			check_in_date, check_out_date, guests, total_amount,
			customer_name, customer_email, status, payment_method, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::numeric, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, updated_at = now()`,
		changed.ID, changed.HotelID, changed.RoomID, changed.UserID, changed.HotelName, changed.RoomName,
		categoryColumn(changed.RoomCategory), changed.CheckIn.Time(), changed.CheckOut.Time(), changed.Guests,
		changed.TotalPrice.String(), changed.CustomerName, changed.CustomerEmail, string(changed.Status),
		paymentMethodDemo, paymentStatusPaid, changed.BookingDate,
	)
	if err != nil {
		return fmt.Errorf("upsert booking %s: %w", changed.ID, err)
	}

	return nil
}

func (s *Store) LoadRooms(ctx context.Context) ([]catalog.Room, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, hotel_id, category, name, description, price_per_night::text,
		       max_occupancy, amenities, image_url, status
		FROM rooms
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("select rooms: %w", err)
	}
	defer rows.Close()

	var out []catalog.Room

	for rows.Next() {
		var r roomRow
		if err := rows.Scan(
			&r.ID, &r.HotelID, &r.Category, &r.Name, &r.Description, &r.Price,
			&r.Capacity, &r.Amenities, &r.ImageURL, &r.Status,
		); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}

		room, err := r.toRoom()
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, booking.ErrMalformedRecord)
		}

		out = append(out, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return out, nil
}

func (s *Store) SaveRooms(ctx context.Context, rooms []catalog.Room) error {
	return s.upsertRooms(ctx, rooms, true)
}

// SaveHotels inserts hotels and their rooms, leaving existing rows untouched.
func (s *Store) SaveHotels(ctx context.Context, hotels []catalog.Hotel) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}

	var rooms []catalog.Room

	for _, h := range hotels {
		batch.Queue(`
			INSERT INTO hotels (id, name, address, rating, description, image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			h.ID, h.Name, h.Address, h.Rating, h.Description, h.ImageURL,
		)

		for _, r := range h.Rooms {
			r.HotelID = h.ID
			rooms = append(rooms, r)
		}
	}

	queueRooms(batch, rooms, false)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert hotels: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit hotels: %w", err)
	}

	return nil
}

func (s *Store) upsertRooms(ctx context.Context, rooms []catalog.Room, overwrite bool) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	queueRooms(batch, rooms, overwrite)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert rooms: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rooms: %w", err)
	}

	return nil
}

func queueRooms(batch *pgx.Batch, rooms []catalog.Room, overwrite bool) {
	conflict := `ON CONFLICT (id) DO NOTHING`
	if overwrite {
		conflict = `ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category, name = EXCLUDED.name, description = EXCLUDED.description,
			price_per_night = EXCLUDED.price_per_night, max_occupancy = EXCLUDED.max_occupancy,
			amenities = EXCLUDED.amenities, image_url = EXCLUDED.image_url, status = EXCLUDED.status,
			position = EXCLUDED.position, updated_at = now()`
	}

	for i, r := range rooms {
		amenities := r.Amenities
		if amenities == nil {
			amenities = []string{}
		}

		batch.Queue(`
			INSERT INTO rooms (
				id, hotel_id, category, room_number, name, description, price_per_night,
				max_occupancy, amenities, image_url, status, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10, $11, $12)
			`+conflict,
			r.ID, r.HotelID, categoryColumn(r.Category), r.ID, r.Name, r.Description, r.Price.String(),
			r.Capacity, amenities, r.ImageURL, roomStatus(r.Available), i,
		)
	}
}
