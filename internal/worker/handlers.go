package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/Domenick1991/dccbooking/internal/dto"
	"github.com/Domenick1991/dccbooking/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type ResultUpdater interface {
	UpdateResult(ctx context.Context, passengerID string, req dto.ResultStatusRequest) (int, error)
}

type Notifier interface {
	Send(ctx context.Context, event kafka.BookingEvent) error
}

// ResultHandler applies validation results published to the results topic.
// Messages that cannot be applied are logged and skipped so the offset still advances.
func ResultHandler(updater ResultUpdater, log *zap.Logger) kafka.Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event kafka.ResultEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skip malformed result event", zap.Int64("offset", msg.Offset), zap.Error(err))
			return nil
		}
		if event.Result.DccStatus == nil {
			log.Warn("skip result event without dcc status", zap.String("passenger", event.PassengerID))
			return nil
		}

		updated, err := updater.UpdateResult(ctx, event.PassengerID, event.Result)
		switch {
		case errors.Is(err, domain.ErrBookingNotFound), errors.Is(err, domain.ErrInvalidPassengerID):
			log.Warn("skip result for unknown passenger", zap.String("passenger", event.PassengerID), zap.Error(err))
			return nil
		case errors.Is(err, domain.ErrInvalidDccResult):
			log.Warn("skip result with invalid token", zap.String("passenger", event.PassengerID), zap.Error(err))
			return nil
		case err != nil:
			return err
		}

		log.Info("result applied", zap.String("passenger", event.PassengerID), zap.Int("updated", updated))
		return nil
	}
}

// NotificationHandler hands booking events to the notifier.
func NotificationHandler(notifier Notifier, log *zap.Logger) kafka.Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skip malformed booking event", zap.Int64("offset", msg.Offset), zap.Error(err))
			return nil
		}
		if err := notifier.Send(ctx, event); err != nil {
			log.Warn("notification not sent", zap.String("reference", event.Reference), zap.Error(err))
		}
		return nil
	}
}
