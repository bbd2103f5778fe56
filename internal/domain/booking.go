package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// presetReferencePrefix marks seeded bookings that are reused instead of overwritten.
const presetReferencePrefix = "preset"

type Booking struct {
	Reference  string      `json:"reference"`
	Time       time.Time   `json:"time"`
	Passengers []Passenger `json:"passengers"`
	FlightInfo *FlightInfo `json:"flightInfo"`
}

type Passenger struct {
	ID            uuid.UUID  `json:"id"`
	Forename      string     `json:"forename"`
	Lastname      string     `json:"lastname"`
	BirthDate     string     `json:"birthDate,omitempty"`
	DccStatus     *DccStatus `json:"dccStatus,omitempty"`
	ServiceIDUsed string     `json:"serviceIdUsed,omitempty"`
	JTI           string     `json:"jti,omitempty"`
}

type FlightInfo struct {
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

// IsPresetReference reports whether reference belongs to a seeded booking.
func IsPresetReference(reference string) bool {
	return strings.HasPrefix(reference, presetReferencePrefix)
}

func NewBooking(reference string, now time.Time, flight *FlightInfo) *Booking {
	return &Booking{
		Reference:  reference,
		Time:       now,
		Passengers: make([]Passenger, 0, 1),
		FlightInfo: flight,
	}
}

func (b *Booking) AddPassenger(p Passenger) {
	b.Passengers = append(b.Passengers, p)
}

// PassengerByID returns a pointer into b.Passengers so callers can mutate in place.
func (b *Booking) PassengerByID(id uuid.UUID) (*Passenger, bool) {
	for i := range b.Passengers {
		if b.Passengers[i].ID == id {
			return &b.Passengers[i], true
		}
	}
	return nil, false
}

func (b *Booking) HasPassenger(id uuid.UUID) bool {
	_, ok := b.PassengerByID(id)
	return ok
}

// Validate rejects repeated passenger ids and result tokens outside the DccResult set.
func (b *Booking) Validate() error {
	seen := make(map[uuid.UUID]struct{}, len(b.Passengers))
	for _, p := range b.Passengers {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("passenger %s: %w", p.ID, ErrDuplicatePassengerID)
		}
		seen[p.ID] = struct{}{}
		if err := p.DccStatus.Validate(); err != nil {
			return fmt.Errorf("passenger %s: %w", p.ID, err)
		}
	}
	return nil
}

// AllPassengersHaveDcc is true when every passenger carries a DCC status.
func (b *Booking) AllPassengersHaveDcc() bool {
	for _, p := range b.Passengers {
		if p.DccStatus == nil {
			return false
		}
	}
	return true
}

// OnlyPassenger returns a shallow copy of b narrowed to p.
func (b *Booking) OnlyPassenger(p Passenger) *Booking {
	narrowed := *b
	narrowed.Passengers = []Passenger{p}
	return &narrowed
}

// NewFlightInfo builds flight metadata departing one day after now.
func NewFlightInfo(from, countryOfDeparture, to, countryOfArrival string, now time.Time) *FlightInfo {
	departure := now.AddDate(0, 0, 1)
	return &FlightInfo{
		From:               from,
		To:                 to,
		Time:               departure,
		CountryOfDeparture: countryOfDeparture,
		RegionOfDeparture:  countryOfDeparture,
		CountryOfArrival:   countryOfArrival,
		RegionOfArrival:    countryOfArrival,
		DepartureTime:      departure,
		ArrivalTime:        departure.Add(8*time.Hour + 24*time.Minute),
		Categories:         []string{},
		ConditionTypes:     []string{},
	}
}
