package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/Domenick1991/dccbooking/internal/dto"
	"github.com/Domenick1991/dccbooking/internal/kafka"
	"github.com/Domenick1991/dccbooking/internal/metrics"
	"github.com/Domenick1991/dccbooking/internal/repository"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Create(ctx context.Context, sessionID string, req dto.BookingRequest, status domain.DevDccStatus) error
	Replace(ctx context.Context, sessionID string, req dto.BookingReplaceRequest) (*domain.Booking, error)
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error)
	GetByPassengerID(ctx context.Context, passengerID string) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetOnlyPassengerID(ctx context.Context, passengerID, serviceID string) (*domain.Booking, error)
	UpdateResult(ctx context.Context, passengerID string, req dto.ResultStatusRequest) (int, error)
	ExistsDccBySessionID(ctx context.Context, sessionID string) (bool, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	store              repository.BookingStore
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	generator          *passengerGenerator
	now                func() time.Time
	log                *zap.Logger
	metrics            *metrics.Metrics
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithFaker pins the randomness behind passenger counts, names and flight info.
func WithFaker(f *gofakeit.Faker) BookingServiceOption {
	return func(s *BookingService) {
		s.generator.faker = f
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(log *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

// NewBookingService wires the store and optional event producer; a nil producer disables events.
func NewBookingService(
	store repository.BookingStore,
	producer Producer,
	eventsTopic string,
	gen GeneratorConfig,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		store:       store,
		producer:    producer,
		eventsTopic: eventsTopic,
		generator:   &passengerGenerator{cfg: gen, faker: gofakeit.New(0)},
		now:         func() time.Time { return time.Now().UTC() },
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, sessionID string, req dto.BookingRequest, status domain.DevDccStatus) error {
	existing, err := s.store.GetByReference(ctx, req.BookingReference)
	if err != nil {
		return err
	}
	if existing != nil && domain.IsPresetReference(req.BookingReference) {
		s.log.Info("use existing booking", zap.String("reference", req.BookingReference))
		return nil
	}

	s.log.Info("create new booking", zap.String("reference", req.BookingReference))
	now := s.now()
	booking := domain.NewBooking(req.BookingReference, now, s.generator.flightInfo(now))
	booking.AddPassenger(dto.PassengerFromBookingRequest(req))

	minExtra := s.generator.cfg.Min
	if status == domain.DevDccStatusMix {
		minExtra = 1
	}
	s.generator.fill(booking, s.generator.count(minExtra))

	if err := status.Apply(booking, now); err != nil {
		return err
	}
	if err := s.store.Save(ctx, sessionID, booking); err != nil {
		return fmt.Errorf("save booking: %w", err)
	}

	s.countBooking("create")
	s.publish(ctx, kafka.EventBookingCreated, sessionID, booking, nil)
	return nil
}

func (s *BookingService) Replace(ctx context.Context, sessionID string, req dto.BookingReplaceRequest) (*domain.Booking, error) {
	booking := dto.BookingFromReplaceRequest(req, s.now())
	if err := booking.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.DeleteByReference(ctx, req.Reference); err != nil {
		return nil, fmt.Errorf("delete by reference: %w", err)
	}
	if err := s.store.Save(ctx, sessionID, booking); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}

	s.countBooking("replace")
	s.publish(ctx, kafka.EventBookingReplaced, sessionID, booking, nil)
	return booking, nil
}

func (s *BookingService) GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error) {
	return s.store.GetBySessionID(ctx, sessionID)
}

func (s *BookingService) GetByPassengerID(ctx context.Context, passengerID string) (*domain.Booking, error) {
	id, err := parsePassengerID(passengerID)
	if err != nil {
		return nil, err
	}
	return s.store.GetByPassengerID(ctx, id)
}

func (s *BookingService) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	booking, err := s.store.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("reference %q: %w", reference, domain.ErrBookingNotFound)
	}
	return booking, nil
}

// GetOnlyPassengerID returns the owning booking narrowed to one passenger.
// A non-blank serviceID is recorded on that passenger before narrowing.
func (s *BookingService) GetOnlyPassengerID(ctx context.Context, passengerID, serviceID string) (*domain.Booking, error) {
	id, err := parsePassengerID(passengerID)
	if err != nil {
		return nil, err
	}
	booking, err := s.store.GetByPassengerID(ctx, id)
	if err != nil {
		return nil, err
	}
	passenger, ok := booking.PassengerByID(id)
	if !ok {
		return nil, fmt.Errorf("passenger %s: %w", id, domain.ErrBookingNotFound)
	}

	if strings.TrimSpace(serviceID) != "" {
		passenger.ServiceIDUsed = serviceID
		sessionID, err := s.store.GetSessionIDByPassengerID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, sessionID, booking); err != nil {
			return nil, fmt.Errorf("save booking: %w", err)
		}
	}

	return booking.OnlyPassenger(*passenger), nil
}

// UpdateResult overwrites the passenger's DCC status and reports how many passengers changed.
func (s *BookingService) UpdateResult(ctx context.Context, passengerID string, req dto.ResultStatusRequest) (int, error) {
	id, err := parsePassengerID(passengerID)
	if err != nil {
		return 0, err
	}
	status := dto.DccStatusFromResult(req)
	if err := status.Validate(); err != nil {
		return 0, err
	}
	sessionID, err := s.store.GetSessionIDByPassengerID(ctx, id)
	if err != nil {
		return 0, err
	}
	booking, err := s.store.GetBySessionID(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	passenger, ok := booking.PassengerByID(id)
	if !ok {
		return 0, nil
	}
	passenger.DccStatus = status
	if err := s.store.Save(ctx, sessionID, booking); err != nil {
		return 0, fmt.Errorf("save booking: %w", err)
	}

	result := passenger.DccStatus.FirstResult()
	if s.metrics != nil {
		s.metrics.ResultsUpdated.WithLabelValues(string(result)).Inc()
	}
	s.publish(ctx, kafka.EventResultUpdated, sessionID, booking, &resultInfo{passengerID: id, result: result})
	return 1, nil
}

func (s *BookingService) ExistsDccBySessionID(ctx context.Context, sessionID string) (bool, error) {
	booking, err := s.store.GetBySessionID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return booking.AllPassengersHaveDcc(), nil
}

type resultInfo struct {
	passengerID uuid.UUID
	result      domain.DccResult
}

func (s *BookingService) publish(ctx context.Context, eventType, sessionID string, booking *domain.Booking, result *resultInfo) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	snapshot := dto.ReplaceRequestFromBooking(booking)
	event := kafka.BookingEvent{
		Type:      eventType,
		Reference: booking.Reference,
		SessionID: sessionID,
		Time:      s.now(),
		Booking:   &snapshot,
	}
	if result != nil {
		event.PassengerID = result.passengerID.String()
		event.Result = string(result.result)
	}

	if err := s.producer.Publish(ctx, s.eventsTopic, booking.Reference, event); err != nil {
		s.log.Warn("failed to publish booking event", zap.String("type", eventType), zap.String("reference", booking.Reference), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			s.log.Warn("failed to publish notification", zap.String("type", eventType), zap.Error(err))
		}
	}
}

func (s *BookingService) countBooking(kind string) {
	if s.metrics != nil {
		s.metrics.BookingsCreated.WithLabelValues(kind).Inc()
	}
}

func parsePassengerID(passengerID string) (uuid.UUID, error) {
	id, err := uuid.Parse(passengerID)
	if err != nil {
		return uuid.Nil, errors.Join(domain.ErrInvalidPassengerID, err)
	}
	return id, nil
}

var _ BookingUseCase = (*BookingService)(nil)
