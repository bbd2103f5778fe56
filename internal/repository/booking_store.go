package repository

import (
	"context"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/google/uuid"
)

// BookingStore keeps one booking per session and indexes passenger ids back to their session.
// Writers to the same session race with last-write-wins.
type BookingStore interface {
	Save(ctx context.Context, sessionID string, booking *domain.Booking) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error)
	GetSessionIDByPassengerID(ctx context.Context, passengerID uuid.UUID) (string, error)
	GetByPassengerID(ctx context.Context, passengerID uuid.UUID) (*domain.Booking, error)
	// GetByReference returns the first booking saved with reference, or nil when there is none.
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	DeleteByReference(ctx context.Context, reference string) error
}
