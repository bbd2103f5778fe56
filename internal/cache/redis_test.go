package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/dccbooking/config"
	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*RedisBookingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisBookingStore(config.RedisConfig{Addr: mr.Addr()}, 30*time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func newBooking(reference string, passengers ...domain.Passenger) *domain.Booking {
	b := domain.NewBooking(reference, created, domain.NewFlightInfo("Hamburg", "DE", "Madrid", "ES", created))
	for _, p := range passengers {
		b.AddPassenger(p)
	}
	return b
}

func randomPassenger() domain.Passenger {
	return domain.Passenger{ID: uuid.New(), Forename: "First", Lastname: "Last"}
}

func TestNewRedisBookingStore(t *testing.T) {
	store := NewRedisBookingStore(config.RedisConfig{Addr: "localhost:6379"}, 30*time.Minute)
	assert.NotNil(t, store)
	assert.Equal(t, 30*time.Minute, store.sessionTTL)
	assert.NoError(t, store.Close())
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6751b6a6-a31d-44da-9c0f-ecccf4f19338")

	assert.Equal(t, "booking:session:abc", sessionKey("abc"))
	assert.Equal(t, "booking:passenger:6751b6a6-a31d-44da-9c0f-ecccf4f19338", passengerKey(id))
	assert.Equal(t, "booking:reference:preset-1", referenceKey("preset-1"))
}

func TestRedisBookingStore_SaveAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	booking := newBooking("ABC123", randomPassenger(), domain.PresetPassenger(1))
	booking.Passengers[0].DccStatus = domain.PassedDccStatus(created)

	require.NoError(t, store.Save(ctx, "session-1", booking))

	got, err := store.GetBySessionID(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, booking, got)

	byPassenger, err := store.GetByPassengerID(ctx, booking.Passengers[1].ID)
	require.NoError(t, err)
	assert.Equal(t, booking, byPassenger)

	byReference, err := store.GetByReference(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, booking, byReference)

	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey("session-1")))
	assert.Equal(t, 30*time.Minute, mr.TTL(passengerKey(booking.Passengers[0].ID)))
	assert.Equal(t, 30*time.Minute, mr.TTL(referenceKey("ABC123")))
}

func TestRedisBookingStore_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetBySessionID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	_, err = store.GetByPassengerID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	got, err := store.GetByReference(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisBookingStore_SessionExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	booking := newBooking("ABC123", randomPassenger())
	require.NoError(t, store.Save(ctx, "session-1", booking))

	mr.FastForward(31 * time.Minute)

	_, err := store.GetBySessionID(ctx, "session-1")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	_, err = store.GetByPassengerID(ctx, booking.Passengers[0].ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestRedisBookingStore_SaveReplacesSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	first := newBooking("FIRST", randomPassenger())
	second := newBooking("SECOND", randomPassenger())

	require.NoError(t, store.Save(ctx, "session-1", first))
	require.NoError(t, store.Save(ctx, "session-1", second))

	got, err := store.GetBySessionID(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "SECOND", got.Reference)

	_, err = store.GetByPassengerID(ctx, first.Passengers[0].ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	ref, err := store.GetByReference(ctx, "FIRST")
	assert.NoError(t, err)
	assert.Nil(t, ref)
}

func TestRedisBookingStore_PassengerMovesSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	shared := domain.PresetPassenger(0)

	require.NoError(t, store.Save(ctx, "session-a", newBooking("A", shared)))
	require.NoError(t, store.Save(ctx, "session-b", newBooking("B", shared)))

	got, err := store.GetByPassengerID(ctx, shared.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Reference)
}

func TestRedisBookingStore_ResaveKeepsMovedPassenger(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	shared := domain.PresetPassenger(0)

	require.NoError(t, store.Save(ctx, "session-a", newBooking("A", shared)))
	require.NoError(t, store.Save(ctx, "session-b", newBooking("B", shared)))
	require.NoError(t, store.Save(ctx, "session-a", newBooking("A", randomPassenger())))

	sessionID, err := store.GetSessionIDByPassengerID(ctx, shared.ID)
	require.NoError(t, err)
	assert.Equal(t, "session-b", sessionID)
}

func TestRedisBookingStore_ResaveKeepsOwnPassenger(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	kept := randomPassenger()

	require.NoError(t, store.Save(ctx, "session-1", newBooking("A", kept)))
	require.NoError(t, store.Save(ctx, "session-1", newBooking("A", kept, randomPassenger())))

	got, err := store.GetByPassengerID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, got.Passengers, 2)
}

func TestRedisBookingStore_DeleteByReference(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	a := newBooking("DUP", randomPassenger())
	b := newBooking("DUP", randomPassenger())
	other := newBooking("OTHER", randomPassenger())
	require.NoError(t, store.Save(ctx, "session-1", a))
	require.NoError(t, store.Save(ctx, "session-2", b))
	require.NoError(t, store.Save(ctx, "session-3", other))

	require.NoError(t, store.DeleteByReference(ctx, "DUP"))

	for _, sessionID := range []string{"session-1", "session-2"} {
		_, err := store.GetBySessionID(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	}
	_, err := store.GetByPassengerID(ctx, a.Passengers[0].ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.False(t, mr.Exists(referenceKey("DUP")))

	got, err := store.GetBySessionID(ctx, "session-3")
	require.NoError(t, err)
	assert.Equal(t, "OTHER", got.Reference)

	require.NoError(t, store.DeleteByReference(ctx, "NONE"))
}

func TestRedisBookingStore_DeleteByReferenceKeepsMovedPassenger(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	shared := domain.PresetPassenger(0)

	require.NoError(t, store.Save(ctx, "session-a", newBooking("A", shared)))
	require.NoError(t, store.Save(ctx, "session-b", newBooking("B", shared)))

	require.NoError(t, store.DeleteByReference(ctx, "A"))

	got, err := store.GetByPassengerID(ctx, shared.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Reference)
}
