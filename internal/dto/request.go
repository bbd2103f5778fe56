package dto

import (
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the payload the demo frontend posts to create a booking.
type BookingRequest struct {
	BookingReference string     `json:"bookingReference" binding:"required"`
	ID               *uuid.UUID `json:"id,omitempty"`
	Forename         string     `json:"forename" binding:"required"`
	Lastname         string     `json:"lastname" binding:"required"`
	BirthDate        string     `json:"birthDate,omitempty"`
}

type BookingReplaceRequest struct {
	Reference  string                    `json:"reference" binding:"required"`
	Time       *time.Time                `json:"time,omitempty"`
	Passengers []PassengerRequest        `json:"passengers" binding:"dive"`
	FlightInfo *BookingFlightInfoRequest `json:"flightInfo,omitempty"`
}

type PassengerRequest struct {
	ID            *uuid.UUID        `json:"id,omitempty"`
	Forename      string            `json:"forename" binding:"required"`
	Lastname      string            `json:"lastname" binding:"required"`
	BirthDate     string            `json:"birthDate,omitempty"`
	DccStatus     *DccStatusRequest `json:"dccStatus,omitempty"`
	ServiceIDUsed string            `json:"serviceIdUsed,omitempty"`
	JTI           string            `json:"jti,omitempty"`
}

type DccStatusRequest struct {
	Issuer       string          `json:"issuer"`
	Iat          int64           `json:"iat"`
	Sub          string          `json:"sub"`
	Results      []ResultRequest `json:"results" binding:"dive"`
	Confirmation string          `json:"confirmation"`
}

type ResultRequest struct {
	Identifier string `json:"identifier"`
	Result     string `json:"result" binding:"dccresult"`
	Type       string `json:"type"`
	Details    string `json:"details,omitempty"`
}

type BookingFlightInfoRequest struct {
	From               string     `json:"from"`
	To                 string     `json:"to"`
	Time               *time.Time `json:"time,omitempty"`
	CountryOfArrival   string     `json:"coa"`
	CountryOfDeparture string     `json:"cod"`
	RegionOfArrival    string     `json:"roa"`
	RegionOfDeparture  string     `json:"rod"`
	DepartureTime      *time.Time `json:"departureTime,omitempty"`
	ArrivalTime        *time.Time `json:"arrivalTime,omitempty"`
	Type               int        `json:"type"`
	Categories         []string   `json:"categories"`
	Language           string     `json:"lang"`
	ConditionTypes     []string   `json:"conditionTypes"`
}

// ResultStatusRequest is what a validation service posts for one passenger.
type ResultStatusRequest struct {
	DccStatus *ResultDccStatusRequest `json:"dccStatus" binding:"required"`
}

type ResultDccStatusRequest struct {
	Issuer       string          `json:"issuer"`
	Iat          int64           `json:"iat"`
	Sub          string          `json:"sub"`
	Results      []ResultRequest `json:"results" binding:"dive"`
	Confirmation string          `json:"confirmation,omitempty"`
}
