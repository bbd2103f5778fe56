package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func sampleBooking() *domain.Booking {
	flight := domain.NewFlightInfo("Brussels", "BE", "Rome", "IT", now)
	flight.Type = 1
	flight.Categories = []string{"Standard"}
	flight.Language = "en"
	flight.ConditionTypes = []string{"Vaccination", "Test"}

	b := domain.NewBooking("REF-42", now, flight)
	b.AddPassenger(domain.Passenger{
		ID:            uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		Forename:      "Ada",
		Lastname:      "Lovelace",
		BirthDate:     "1815-12-10",
		DccStatus:     domain.PassedDccStatus(now),
		ServiceIDUsed: "ValidationService",
		JTI:           "token-id",
	})
	b.AddPassenger(domain.Passenger{
		ID:       uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7"),
		Forename: "Alan",
		Lastname: "Turing",
	})
	return b
}

func TestReplaceRequest_RoundTrip(t *testing.T) {
	original := sampleBooking()

	req := ReplaceRequestFromBooking(original)
	back := BookingFromReplaceRequest(req, now.Add(time.Hour))

	assert.Equal(t, original, back)
}

func TestReplaceRequest_RoundTripThroughJSON(t *testing.T) {
	original := sampleBooking()

	data, err := json.Marshal(ReplaceRequestFromBooking(original))
	require.NoError(t, err)
	var req BookingReplaceRequest
	require.NoError(t, json.Unmarshal(data, &req))

	assert.Equal(t, original, BookingFromReplaceRequest(req, now.Add(time.Hour)))
}

func TestBookingFromReplaceRequest_Defaults(t *testing.T) {
	req := BookingReplaceRequest{
		Reference: "REF-1",
		Passengers: []PassengerRequest{
			{Forename: "No", Lastname: "Id", DccStatus: &DccStatusRequest{Issuer: "issuer"}},
		},
		FlightInfo: &BookingFlightInfoRequest{From: "A", To: "B"},
	}

	b := BookingFromReplaceRequest(req, now)

	assert.Equal(t, now, b.Time)
	require.Len(t, b.Passengers, 1)
	assert.NotEqual(t, uuid.Nil, b.Passengers[0].ID)
	assert.Equal(t, []domain.DccStatusResult{}, b.Passengers[0].DccStatus.Results)
	assert.Equal(t, []string{}, b.FlightInfo.Categories)
	assert.Equal(t, []string{}, b.FlightInfo.ConditionTypes)
}

func TestBookingFromReplaceRequest_NoFlightInfo(t *testing.T) {
	b := BookingFromReplaceRequest(BookingReplaceRequest{Reference: "REF-1"}, now)

	assert.Nil(t, b.FlightInfo)
	assert.NotNil(t, b.Passengers)
	assert.Empty(t, b.Passengers)
}

func TestPassengerFromBookingRequest(t *testing.T) {
	id := uuid.New()
	p := PassengerFromBookingRequest(BookingRequest{BookingReference: "R", ID: &id, Forename: "F", Lastname: "L", BirthDate: "2000-01-01"})
	assert.Equal(t, domain.Passenger{ID: id, Forename: "F", Lastname: "L", BirthDate: "2000-01-01"}, p)

	generated := PassengerFromBookingRequest(BookingRequest{BookingReference: "R", Forename: "F", Lastname: "L"})
	assert.NotEqual(t, uuid.Nil, generated.ID)
}

func TestDccStatusFromResult(t *testing.T) {
	status := DccStatusFromResult(ResultStatusRequest{DccStatus: &ResultDccStatusRequest{
		Issuer: "issuer",
		Iat:    1760868000,
		Sub:    "sub",
		Results: []ResultRequest{
			{Identifier: "r1", Result: "FAILED", Type: "Issuer Invalidation", Details: "revoked"},
		},
	}})

	require.NotNil(t, status)
	assert.Equal(t, "issuer", status.Issuer)
	assert.Equal(t, int64(1760868000), status.Iat)
	assert.Equal(t, []domain.DccStatusResult{{Identifier: "r1", Result: domain.DccResultFailed, Type: "Issuer Invalidation", Details: "revoked"}}, status.Results)

	assert.Nil(t, DccStatusFromResult(ResultStatusRequest{}))
	assert.Equal(t, []domain.DccStatusResult{}, DccStatusFromResult(ResultStatusRequest{DccStatus: &ResultDccStatusRequest{}}).Results)
}

func TestToBookingResponse(t *testing.T) {
	b := sampleBooking()

	resp := ToBookingResponse(b)

	assert.Equal(t, "REF-42", resp.Reference)
	assert.Equal(t, "REF-42", resp.Subject)
	require.Len(t, resp.Passengers, 2)
	require.NotNil(t, resp.Passengers[0].DccStatus)
	assert.Equal(t, "Demo confirmation", resp.Passengers[0].DccStatus.Confirmation)
	assert.Equal(t, "PASSED", resp.Passengers[0].DccStatus.Results[0].Result)
	assert.Equal(t, "ValidationService", resp.Passengers[0].ServiceIDUsed)
	assert.Nil(t, resp.Passengers[1].DccStatus)
	assert.Equal(t, []string{"Vaccination", "Test"}, resp.FlightInfo.ConditionTypes)
}

func TestToBookingResponse_EmptyListsNotNull(t *testing.T) {
	b := &domain.Booking{
		Reference:  "R",
		FlightInfo: &domain.FlightInfo{From: "A"},
	}

	data, err := json.Marshal(ToBookingResponse(b))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"passengers":[]`)
	assert.Contains(t, string(data), `"categories":[]`)
	assert.Contains(t, string(data), `"conditionTypes":[]`)

	status := toDccStatusResponse(&domain.DccStatus{})
	assert.Equal(t, []ResultResponse{}, status.Results)
}

func TestToBoardingPass(t *testing.T) {
	pass := ToBoardingPass(sampleBooking())
	assert.Equal(t, "REF-42", pass.Reference)
	assert.Equal(t, "Brussels", pass.FlightInfo.From)
	assert.Equal(t, "Demo confirmation", pass.Confirmations)

	b := sampleBooking()
	b.Passengers[0].DccStatus = nil
	assert.Empty(t, ToBoardingPass(b).Confirmations)

	b.Passengers = nil
	assert.Empty(t, ToBoardingPass(b).Confirmations)
}
