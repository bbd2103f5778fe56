package booking

import (
	"time"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// GeneratorConfig bounds the number of synthetic passengers added to each new booking.
type GeneratorConfig struct {
	Min    int
	Max    int
	Random bool
}

type passengerGenerator struct {
	cfg   GeneratorConfig
	faker *gofakeit.Faker
}

// count draws from [lower, max); a range holding at most one value yields lower.
func (g *passengerGenerator) count(lower int) int {
	if g.cfg.Max-lower <= 1 {
		return lower
	}
	return g.faker.IntRange(lower, g.cfg.Max-1)
}

func (g *passengerGenerator) passenger(pos int) domain.Passenger {
	if g.cfg.Random {
		return g.randomPassenger()
	}
	return domain.PresetPassenger(pos)
}

func (g *passengerGenerator) randomPassenger() domain.Passenger {
	return domain.Passenger{
		ID:       uuid.MustParse(g.faker.UUID()),
		Forename: g.faker.FirstName(),
		Lastname: g.faker.LastName(),
	}
}

// fill appends n passengers to b, never repeating an id already on the booking.
func (g *passengerGenerator) fill(b *domain.Booking, n int) {
	for i := 0; i < n; i++ {
		p := g.passenger(i)
		if b.HasPassenger(p.ID) {
			p = g.randomPassenger()
		}
		b.AddPassenger(p)
	}
}

func (g *passengerGenerator) flightInfo(now time.Time) *domain.FlightInfo {
	return domain.NewFlightInfo(g.faker.City(), g.faker.CountryAbr(), g.faker.City(), g.faker.CountryAbr(), now)
}
