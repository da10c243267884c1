package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	ListByAirport(ctx context.Context, direction domain.AirportDirection, airport string) ([]domain.Flight, error)
	// ListByDepartureRange matches departure_date in [start, end] comparing
	// the stored strings byte by byte.
	ListByDepartureRange(ctx context.Context, start, end string) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	SetAircraft(ctx context.Context, flightID, aircraftID int64) error
	Delete(ctx context.Context, id int64) error
}

type AircraftRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Aircraft, error)
	GetBySerial(ctx context.Context, serial string) (*domain.Aircraft, error)
	// EnsureSerial inserts the aircraft unless its serial already exists and
	// fills in the stored id either way.
	EnsureSerial(ctx context.Context, aircraft *domain.Aircraft) error
}

const flightColumns = `id, aircraft_id, departure_airport, arrival_airport, departure_date, arrival_date`

// airportColumn maps a search direction onto a fixed column name so the
// column never comes from user input.
func airportColumn(direction domain.AirportDirection) (string, error) {
	switch direction {
	case domain.Departure:
		return "departure_airport", nil
	case domain.Arrival:
		return "arrival_airport", nil
	default:
		return "", fmt.Errorf("unknown airport direction %q", direction)
	}
}
