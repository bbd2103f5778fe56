package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
    session_id   VARCHAR(255) PRIMARY KEY,
    reference    VARCHAR(255) NOT NULL,
    booking_json JSONB NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS bookings_reference_idx ON bookings (reference);
CREATE TABLE IF NOT EXISTS passengers (
    passenger_id UUID PRIMARY KEY,
    session_id   VARCHAR(255) NOT NULL
);
CREATE INDEX IF NOT EXISTS passengers_session_id_idx ON passengers (session_id);
`

type PGBookingStore struct {
	db *pgxpool.Pool
}

func NewBookingStore(db *pgxpool.Pool) *PGBookingStore {
	return &PGBookingStore{db: db}
}

// EnsureSchema creates the bookings and passengers tables when missing.
func (r *PGBookingStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PGBookingStore) Save(ctx context.Context, sessionID string, booking *domain.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE session_id=$1`, sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM passengers WHERE session_id=$1`, sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO bookings (session_id, reference, booking_json) VALUES ($1, $2, $3)`,
		sessionID, booking.Reference, payload); err != nil {
		return err
	}
	for _, p := range booking.Passengers {
		if _, err := tx.Exec(ctx, `INSERT INTO passengers (passenger_id, session_id) VALUES ($1, $2)
			ON CONFLICT (passenger_id) DO UPDATE SET session_id = EXCLUDED.session_id`, p.ID, sessionID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingStore) GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT booking_json FROM bookings WHERE session_id=$1`, sessionID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeBooking(payload)
}

func (r *PGBookingStore) GetSessionIDByPassengerID(ctx context.Context, passengerID uuid.UUID) (string, error) {
	var sessionID string
	err := r.db.QueryRow(ctx, `SELECT session_id FROM passengers WHERE passenger_id=$1`, passengerID).Scan(&sessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("passenger %s: %w", passengerID, domain.ErrBookingNotFound)
	}
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *PGBookingStore) GetByPassengerID(ctx context.Context, passengerID uuid.UUID) (*domain.Booking, error) {
	sessionID, err := r.GetSessionIDByPassengerID(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	return r.GetBySessionID(ctx, sessionID)
}

func (r *PGBookingStore) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT booking_json FROM bookings WHERE reference=$1 ORDER BY created_at LIMIT 1`, reference).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeBooking(payload)
}

func (r *PGBookingStore) DeleteByReference(ctx context.Context, reference string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM passengers WHERE session_id IN (SELECT session_id FROM bookings WHERE reference=$1)`, reference); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE reference=$1`, reference); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ BookingStore = (*PGBookingStore)(nil)
