package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/dccbooking/config"
	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/Domenick1991/dccbooking/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releasePassengers deletes each passenger index key still owned by the session in ARGV[1].
const releasePassengers = `
local released = 0
for _, key in ipairs(KEYS) do
	if redis.call('GET', key) == ARGV[1] then
		redis.call('DEL', key)
		released = released + 1
	end
end
return released`

// RedisBookingStore keeps bookings as session entries that expire like an HTTP session.
type RedisBookingStore struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisBookingStore(cfg config.RedisConfig, sessionTTL time.Duration) *RedisBookingStore {
	return &RedisBookingStore{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionTTL: sessionTTL,
	}
}

func (c *RedisBookingStore) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisBookingStore) Close() error {
	return c.client.Close()
}

func (c *RedisBookingStore) Save(ctx context.Context, sessionID string, booking *domain.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	previous, err := c.GetBySessionID(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrBookingNotFound) {
		return err
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != nil {
			releaseOwned(ctx, pipe, sessionID, previous)
			pipe.SRem(ctx, referenceKey(previous.Reference), sessionID)
		}
		pipe.Set(ctx, sessionKey(sessionID), payload, c.sessionTTL)
		for _, p := range booking.Passengers {
			pipe.Set(ctx, passengerKey(p.ID), sessionID, c.sessionTTL)
		}
		pipe.SAdd(ctx, referenceKey(booking.Reference), sessionID)
		if c.sessionTTL > 0 {
			pipe.Expire(ctx, referenceKey(booking.Reference), c.sessionTTL)
		}
		return nil
	})
	return err
}

func (c *RedisBookingStore) GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error) {
	data, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	var booking domain.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, fmt.Errorf("unmarshal booking: %w", err)
	}
	return &booking, nil
}

func (c *RedisBookingStore) GetSessionIDByPassengerID(ctx context.Context, passengerID uuid.UUID) (string, error) {
	sessionID, err := c.client.Get(ctx, passengerKey(passengerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("passenger %s: %w", passengerID, domain.ErrBookingNotFound)
		}
		return "", err
	}
	return sessionID, nil
}

func (c *RedisBookingStore) GetByPassengerID(ctx context.Context, passengerID uuid.UUID) (*domain.Booking, error) {
	sessionID, err := c.GetSessionIDByPassengerID(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	return c.GetBySessionID(ctx, sessionID)
}

// GetByReference returns any live booking under reference; sets carry no insertion order.
func (c *RedisBookingStore) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	sessionIDs, err := c.client.SMembers(ctx, referenceKey(reference)).Result()
	if err != nil {
		return nil, err
	}
	for _, sessionID := range sessionIDs {
		booking, err := c.GetBySessionID(ctx, sessionID)
		if errors.Is(err, domain.ErrBookingNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return booking, nil
	}
	return nil, nil
}

// DeleteByReference drops every session under reference. Passenger keys that
// moved to another session stay in place.
func (c *RedisBookingStore) DeleteByReference(ctx context.Context, reference string) error {
	sessionIDs, err := c.client.SMembers(ctx, referenceKey(reference)).Result()
	if err != nil {
		return err
	}

	bookings := make(map[string]*domain.Booking, len(sessionIDs))
	for _, sessionID := range sessionIDs {
		booking, err := c.GetBySessionID(ctx, sessionID)
		if err != nil && !errors.Is(err, domain.ErrBookingNotFound) {
			return err
		}
		bookings[sessionID] = booking
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for sessionID, booking := range bookings {
			if booking != nil {
				releaseOwned(ctx, pipe, sessionID, booking)
			}
			pipe.Del(ctx, sessionKey(sessionID))
		}
		pipe.Del(ctx, referenceKey(reference))
		return nil
	})
	return err
}

func releaseOwned(ctx context.Context, pipe redis.Pipeliner, sessionID string, booking *domain.Booking) {
	if len(booking.Passengers) == 0 {
		return
	}
	keys := make([]string, 0, len(booking.Passengers))
	for _, p := range booking.Passengers {
		keys = append(keys, passengerKey(p.ID))
	}
	pipe.Eval(ctx, releasePassengers, keys, sessionID)
}

func sessionKey(sessionID string) string {
	return "booking:session:" + sessionID
}

func passengerKey(passengerID uuid.UUID) string {
	return fmt.Sprintf("booking:passenger:%s", passengerID)
}

func referenceKey(reference string) string {
	return "booking:reference:" + reference
}

var _ repository.BookingStore = (*RedisBookingStore)(nil)
