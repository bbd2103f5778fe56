package domain

import (
	"fmt"
	"time"
)

type DccResult string

const (
	DccResultOpen   DccResult = "OPEN"
	DccResultPassed DccResult = "PASSED"
	DccResultFailed DccResult = "FAILED"
)

func (r DccResult) Valid() bool {
	switch r {
	case DccResultOpen, DccResultPassed, DccResultFailed:
		return true
	}
	return false
}

type DccStatus struct {
	Issuer       string            `json:"issuer"`
	Iat          int64             `json:"iat"`
	Sub          string            `json:"sub"`
	Results      []DccStatusResult `json:"results"`
	Confirmation string            `json:"confirmation"`
}

type DccStatusResult struct {
	Identifier string    `json:"identifier"`
	Result     DccResult `json:"result"`
	Type       string    `json:"type"`
	Details    string    `json:"details,omitempty"`
}

// FirstResult returns the result token of the first entry, or "" when there is none.
func (s *DccStatus) FirstResult() DccResult {
	if s == nil || len(s.Results) == 0 {
		return ""
	}
	return s.Results[0].Result
}

func demoDccStatus(now time.Time, results ...DccStatusResult) *DccStatus {
	if results == nil {
		results = []DccStatusResult{}
	}
	return &DccStatus{
		Issuer:       "Demo issuer dgca-booking-demo-backend",
		Iat:          now.Unix(),
		Sub:          "Demo sub",
		Results:      results,
		Confirmation: "Demo confirmation",
	}
}

func EmptyDccStatus(now time.Time) *DccStatus {
	return demoDccStatus(now)
}

func OpenDccStatus(now time.Time) *DccStatus {
	return demoDccStatus(now, DccStatusResult{Identifier: "Demo identifier", Result: DccResultOpen, Type: "Technical Check"})
}

func PassedDccStatus(now time.Time) *DccStatus {
	return demoDccStatus(now, DccStatusResult{Identifier: "Demo identifier", Result: DccResultPassed, Type: "Destination Acceptance"})
}

func FailedDccStatus(now time.Time) *DccStatus {
	return demoDccStatus(now, DccStatusResult{Identifier: "Demo identifier", Result: DccResultFailed, Type: "Issuer Invalidation"})
}

// DevDccStatus is the status override a demo client can request on create.
type DevDccStatus string

const (
	DevDccStatusNone   DevDccStatus = ""
	DevDccStatusFail   DevDccStatus = "FAIL"
	DevDccStatusPassed DevDccStatus = "PASSED"
	DevDccStatusMix    DevDccStatus = "MIX"
)

// minMixedPassengers is the booking size needed to show one passed and one failed passenger.
const minMixedPassengers = 2

// Apply stamps every passenger of b according to s.
func (s DevDccStatus) Apply(b *Booking, now time.Time) error {
	switch s {
	case DevDccStatusNone:
		return nil
	case DevDccStatusFail:
		for i := range b.Passengers {
			b.Passengers[i].DccStatus = FailedDccStatus(now)
		}
	case DevDccStatusPassed:
		for i := range b.Passengers {
			b.Passengers[i].DccStatus = PassedDccStatus(now)
		}
	case DevDccStatusMix:
		for i := range b.Passengers {
			b.Passengers[i].DccStatus = PassedDccStatus(now)
		}
		if len(b.Passengers) >= minMixedPassengers {
			b.Passengers[1].DccStatus = FailedDccStatus(now)
		}
	default:
		return fmt.Errorf("dcc status %q: %w", string(s), ErrNotImplemented)
	}
	return nil
}

// Validate accepts a nil status.
func (s *DccStatus) Validate() error {
	if s == nil {
		return nil
	}
	for _, r := range s.Results {
		if !r.Result.Valid() {
			return fmt.Errorf("result %q: %w", r.Result, ErrInvalidDccResult)
		}
	}
	return nil
}
