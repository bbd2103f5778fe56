package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookingResponse struct {
	Reference  string                     `json:"reference"`
	Subject    string                     `json:"subject"`
	Time       time.Time                  `json:"time"`
	Passengers []BookingPassengerResponse `json:"passengers"`
	FlightInfo *FlightInfoResponse        `json:"flightInfo"`
}

type BookingPassengerResponse struct {
	ID            uuid.UUID          `json:"id"`
	Forename      string             `json:"forename"`
	Lastname      string             `json:"lastname"`
	BirthDate     string             `json:"birthDate,omitempty"`
	DccStatus     *DccStatusResponse `json:"dccStatus"`
	ServiceIDUsed string             `json:"serviceIdUsed,omitempty"`
	JTI           string             `json:"jti,omitempty"`
}

type DccStatusResponse struct {
	Issuer       string           `json:"issuer"`
	Iat          int64            `json:"iat"`
	Sub          string           `json:"sub"`
	Results      []ResultResponse `json:"results"`
	Confirmation string           `json:"confirmation"`
}

type ResultResponse struct {
	Identifier string `json:"identifier"`
	Result     string `json:"result"`
	Type       string `json:"type"`
	Details    string `json:"details,omitempty"`
}

type FlightInfoResponse struct {
	From               string    `json:"from"`
	To                 string    `json:"to"`
	Time               time.Time `json:"time"`
	CountryOfArrival   string    `json:"coa"`
	CountryOfDeparture string    `json:"cod"`
	RegionOfArrival    string    `json:"roa"`
	RegionOfDeparture  string    `json:"rod"`
	DepartureTime      time.Time `json:"departureTime"`
	ArrivalTime        time.Time `json:"arrivalTime"`
	Type               int       `json:"type"`
	Categories         []string  `json:"categories"`
	Language           string    `json:"lang"`
	ConditionTypes     []string  `json:"conditionTypes"`
}

type BoardingPassResponse struct {
	Reference     string              `json:"reference"`
	FlightInfo    *FlightInfoResponse `json:"flightInfo"`
	Confirmations string              `json:"confirmations,omitempty"`
}
