package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/google/uuid"
)

type memoryRecord struct {
	seq       uint64
	reference string
	payload   []byte
}

// MemoryBookingStore keeps serialized bookings in process memory.
type MemoryBookingStore struct {
	mu         sync.RWMutex
	seq        uint64
	sessions   map[string]memoryRecord
	passengers map[uuid.UUID]string
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		sessions:   make(map[string]memoryRecord),
		passengers: make(map[uuid.UUID]string),
	}
}

func (s *MemoryBookingStore) Save(_ context.Context, sessionID string, booking *domain.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanSession(sessionID)
	s.seq++
	s.sessions[sessionID] = memoryRecord{seq: s.seq, reference: booking.Reference, payload: payload}
	for _, p := range booking.Passengers {
		s.passengers[p.ID] = sessionID
	}
	return nil
}

func (s *MemoryBookingStore) GetBySessionID(_ context.Context, sessionID string) (*domain.Booking, error) {
	s.mu.RLock()
	rec, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return decodeBooking(rec.payload)
}

func (s *MemoryBookingStore) GetSessionIDByPassengerID(_ context.Context, passengerID uuid.UUID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessionID, ok := s.passengers[passengerID]
	if !ok {
		return "", fmt.Errorf("passenger %s: %w", passengerID, domain.ErrBookingNotFound)
	}
	return sessionID, nil
}

func (s *MemoryBookingStore) GetByPassengerID(ctx context.Context, passengerID uuid.UUID) (*domain.Booking, error) {
	sessionID, err := s.GetSessionIDByPassengerID(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	return s.GetBySessionID(ctx, sessionID)
}

func (s *MemoryBookingStore) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	s.mu.RLock()
	var (
		found bool
		first memoryRecord
	)
	for _, rec := range s.sessions {
		if rec.reference != reference {
			continue
		}
		if !found || rec.seq < first.seq {
			first, found = rec, true
		}
	}
	s.mu.RUnlock()

	if !found {
		return nil, nil
	}
	return decodeBooking(first.payload)
}

func (s *MemoryBookingStore) DeleteByReference(_ context.Context, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sessionID, rec := range s.sessions {
		if rec.reference == reference {
			s.cleanSession(sessionID)
		}
	}
	return nil
}

// cleanSession must be called with mu held.
func (s *MemoryBookingStore) cleanSession(sessionID string) {
	delete(s.sessions, sessionID)
	for id, sid := range s.passengers {
		if sid == sessionID {
			delete(s.passengers, id)
		}
	}
}

func decodeBooking(payload []byte) (*domain.Booking, error) {
	var b domain.Booking
	if err := json.Unmarshal(payload, &b); err != nil {
		return nil, fmt.Errorf("unmarshal booking: %w", err)
	}
	return &b, nil
}

var _ BookingStore = (*MemoryBookingStore)(nil)
