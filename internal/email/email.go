package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/dccbooking/internal/kafka"
	"go.uber.org/zap"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender is the demo notifier: it renders the message and writes it to the log.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	msg, err := Compose(event)
	if err != nil {
		return err
	}
	s.log.Info("send notification",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// Compose addresses every passenger of the booking snapshot.
func Compose(event kafka.BookingEvent) (Message, error) {
	var msg Message
	if event.Booking != nil {
		for _, p := range event.Booking.Passengers {
			msg.To = append(msg.To, p.Forename+" "+p.Lastname)
		}
	}

	switch event.Type {
	case kafka.EventBookingCreated:
		msg.Subject = fmt.Sprintf("Booking %s created", event.Reference)
		msg.Body = fmt.Sprintf("Your booking %s with %d passenger(s) is ready for DCC validation.", event.Reference, len(msg.To))
	case kafka.EventBookingReplaced:
		msg.Subject = fmt.Sprintf("Booking %s updated", event.Reference)
		msg.Body = fmt.Sprintf("Your booking %s was replaced.", event.Reference)
	case kafka.EventResultUpdated:
		msg.Subject = fmt.Sprintf("Validation result for booking %s", event.Reference)
		msg.Body = fmt.Sprintf("Passenger %s: %s.", event.PassengerID, event.Result)
	default:
		return Message{}, fmt.Errorf("unknown event type %q", event.Type)
	}
	return msg, nil
}
