package domain

import "github.com/google/uuid"

var presetPassengers = [...]Passenger{
	{ID: uuid.MustParse("6751B6A6-A31D-44DA-9C0F-ECCCF4F19338"), Forename: "Lionel", Lastname: "Kuhic", BirthDate: "1994-05-25"},
	{ID: uuid.MustParse("B67F6578-08D9-4254-BCB8-4936053865C6"), Forename: "Fidel", Lastname: "Lang", BirthDate: "1978-08-14"},
	{ID: uuid.MustParse("CB992C09-48EC-4C5B-9303-C2DC06E7496D"), Forename: "Demetria", Lastname: "Hagenes", BirthDate: "2002-04-25"},
}

// PresetPassenger always yields the same passenger for a position; positions rotate over the fixtures.
func PresetPassenger(pos int) Passenger {
	if pos < 0 {
		pos = -pos
	}
	return presetPassengers[pos%len(presetPassengers)]
}

func PresetPassengerCount() int {
	return len(presetPassengers)
}
