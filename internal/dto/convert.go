package dto

import (
	"time"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/google/uuid"
)

// PassengerFromBookingRequest keeps the requested id when one is supplied.
func PassengerFromBookingRequest(req BookingRequest) domain.Passenger {
	id := uuid.New()
	if req.ID != nil {
		id = *req.ID
	}
	return domain.Passenger{
		ID:        id,
		Forename:  req.Forename,
		Lastname:  req.Lastname,
		BirthDate: req.BirthDate,
	}
}

func BookingFromReplaceRequest(req BookingReplaceRequest, now time.Time) *domain.Booking {
	booking := &domain.Booking{
		Reference:  req.Reference,
		Time:       now,
		Passengers: make([]domain.Passenger, 0, len(req.Passengers)),
		FlightInfo: flightInfoFromRequest(req.FlightInfo),
	}
	if req.Time != nil {
		booking.Time = *req.Time
	}
	for _, p := range req.Passengers {
		booking.Passengers = append(booking.Passengers, passengerFromRequest(p))
	}
	return booking
}

func passengerFromRequest(req PassengerRequest) domain.Passenger {
	id := uuid.New()
	if req.ID != nil {
		id = *req.ID
	}
	p := domain.Passenger{
		ID:            id,
		Forename:      req.Forename,
		Lastname:      req.Lastname,
		BirthDate:     req.BirthDate,
		ServiceIDUsed: req.ServiceIDUsed,
		JTI:           req.JTI,
	}
	if req.DccStatus != nil {
		p.DccStatus = &domain.DccStatus{
			Issuer:       req.DccStatus.Issuer,
			Iat:          req.DccStatus.Iat,
			Sub:          req.DccStatus.Sub,
			Results:      resultsFromRequest(req.DccStatus.Results),
			Confirmation: req.DccStatus.Confirmation,
		}
	}
	return p
}

func resultsFromRequest(reqs []ResultRequest) []domain.DccStatusResult {
	results := make([]domain.DccStatusResult, 0, len(reqs))
	for _, r := range reqs {
		results = append(results, domain.DccStatusResult{
			Identifier: r.Identifier,
			Result:     domain.DccResult(r.Result),
			Type:       r.Type,
			Details:    r.Details,
		})
	}
	return results
}

func flightInfoFromRequest(req *BookingFlightInfoRequest) *domain.FlightInfo {
	if req == nil {
		return nil
	}
	return &domain.FlightInfo{
		From:               req.From,
		To:                 req.To,
		Time:               valueOrZero(req.Time),
		CountryOfArrival:   req.CountryOfArrival,
		CountryOfDeparture: req.CountryOfDeparture,
		RegionOfArrival:    req.RegionOfArrival,
		RegionOfDeparture:  req.RegionOfDeparture,
		DepartureTime:      valueOrZero(req.DepartureTime),
		ArrivalTime:        valueOrZero(req.ArrivalTime),
		Type:               req.Type,
		Categories:         stringsOrEmpty(req.Categories),
		Language:           req.Language,
		ConditionTypes:     stringsOrEmpty(req.ConditionTypes),
	}
}

// ReplaceRequestFromBooking is the inverse of BookingFromReplaceRequest.
func ReplaceRequestFromBooking(b *domain.Booking) BookingReplaceRequest {
	t := b.Time
	req := BookingReplaceRequest{
		Reference:  b.Reference,
		Time:       &t,
		Passengers: make([]PassengerRequest, 0, len(b.Passengers)),
	}
	for _, p := range b.Passengers {
		id := p.ID
		pr := PassengerRequest{
			ID:            &id,
			Forename:      p.Forename,
			Lastname:      p.Lastname,
			BirthDate:     p.BirthDate,
			ServiceIDUsed: p.ServiceIDUsed,
			JTI:           p.JTI,
		}
		if p.DccStatus != nil {
			pr.DccStatus = &DccStatusRequest{
				Issuer:       p.DccStatus.Issuer,
				Iat:          p.DccStatus.Iat,
				Sub:          p.DccStatus.Sub,
				Results:      resultsToRequest(p.DccStatus.Results),
				Confirmation: p.DccStatus.Confirmation,
			}
		}
		req.Passengers = append(req.Passengers, pr)
	}
	if f := b.FlightInfo; f != nil {
		ft, dep, arr := f.Time, f.DepartureTime, f.ArrivalTime
		req.FlightInfo = &BookingFlightInfoRequest{
			From:               f.From,
			To:                 f.To,
			Time:               &ft,
			CountryOfArrival:   f.CountryOfArrival,
			CountryOfDeparture: f.CountryOfDeparture,
			RegionOfArrival:    f.RegionOfArrival,
			RegionOfDeparture:  f.RegionOfDeparture,
			DepartureTime:      &dep,
			ArrivalTime:        &arr,
			Type:               f.Type,
			Categories:         stringsOrEmpty(f.Categories),
			Language:           f.Language,
			ConditionTypes:     stringsOrEmpty(f.ConditionTypes),
		}
	}
	return req
}

func resultsToRequest(results []domain.DccStatusResult) []ResultRequest {
	reqs := make([]ResultRequest, 0, len(results))
	for _, r := range results {
		reqs = append(reqs, ResultRequest{
			Identifier: r.Identifier,
			Result:     string(r.Result),
			Type:       r.Type,
			Details:    r.Details,
		})
	}
	return reqs
}

// DccStatusFromResult converts a validation service result into the status stored on a passenger.
func DccStatusFromResult(req ResultStatusRequest) *domain.DccStatus {
	if req.DccStatus == nil {
		return nil
	}
	return &domain.DccStatus{
		Issuer:       req.DccStatus.Issuer,
		Iat:          req.DccStatus.Iat,
		Sub:          req.DccStatus.Sub,
		Results:      resultsFromRequest(req.DccStatus.Results),
		Confirmation: req.DccStatus.Confirmation,
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		Reference:  b.Reference,
		Subject:    b.Reference,
		Time:       b.Time,
		Passengers: make([]BookingPassengerResponse, 0, len(b.Passengers)),
		FlightInfo: toFlightInfoResponse(b.FlightInfo),
	}
	for _, p := range b.Passengers {
		resp.Passengers = append(resp.Passengers, BookingPassengerResponse{
			ID:            p.ID,
			Forename:      p.Forename,
			Lastname:      p.Lastname,
			BirthDate:     p.BirthDate,
			DccStatus:     toDccStatusResponse(p.DccStatus),
			ServiceIDUsed: p.ServiceIDUsed,
			JTI:           p.JTI,
		})
	}
	return resp
}

func toDccStatusResponse(s *domain.DccStatus) *DccStatusResponse {
	if s == nil {
		return nil
	}
	resp := &DccStatusResponse{
		Issuer:       s.Issuer,
		Iat:          s.Iat,
		Sub:          s.Sub,
		Results:      make([]ResultResponse, 0, len(s.Results)),
		Confirmation: s.Confirmation,
	}
	for _, r := range s.Results {
		resp.Results = append(resp.Results, ResultResponse{
			Identifier: r.Identifier,
			Result:     string(r.Result),
			Type:       r.Type,
			Details:    r.Details,
		})
	}
	return resp
}

func toFlightInfoResponse(f *domain.FlightInfo) *FlightInfoResponse {
	if f == nil {
		return nil
	}
	return &FlightInfoResponse{
		From:               f.From,
		To:                 f.To,
		Time:               f.Time,
		CountryOfArrival:   f.CountryOfArrival,
		CountryOfDeparture: f.CountryOfDeparture,
		RegionOfArrival:    f.RegionOfArrival,
		RegionOfDeparture:  f.RegionOfDeparture,
		DepartureTime:      f.DepartureTime,
		ArrivalTime:        f.ArrivalTime,
		Type:               f.Type,
		Categories:         stringsOrEmpty(f.Categories),
		Language:           f.Language,
		ConditionTypes:     stringsOrEmpty(f.ConditionTypes),
	}
}

// ToBoardingPass exposes the first passenger's confirmation code only.
func ToBoardingPass(b *domain.Booking) BoardingPassResponse {
	pass := BoardingPassResponse{
		Reference:  b.Reference,
		FlightInfo: toFlightInfoResponse(b.FlightInfo),
	}
	if len(b.Passengers) > 0 && b.Passengers[0].DccStatus != nil {
		pass.Confirmations = b.Passengers[0].DccStatus.Confirmation
	}
	return pass
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func valueOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
