package kafka

import (
	"time"

	"github.com/Domenick1991/dccbooking/internal/dto"
)

const (
	EventBookingCreated  = "booking_created"
	EventBookingReplaced = "booking_replaced"
	EventResultUpdated   = "result_updated"
)

// BookingEvent carries a replace-shaped snapshot so consumers can replay it through /booking/replace.
type BookingEvent struct {
	Type        string                     `json:"type"`
	Reference   string                     `json:"reference"`
	SessionID   string                     `json:"session_id"`
	PassengerID string                     `json:"passenger_id,omitempty"`
	Result      string                     `json:"result,omitempty"`
	Time        time.Time                  `json:"time"`
	Booking     *dto.BookingReplaceRequest `json:"booking,omitempty"`
}

// ResultEvent is what a validation service publishes instead of calling PUT /result.
type ResultEvent struct {
	PassengerID string                  `json:"passenger_id"`
	Result      dto.ResultStatusRequest `json:"result"`
}
