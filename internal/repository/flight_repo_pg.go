package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectPGFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.AircraftID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureDate, &f.ArrivalDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) ListByAirport(ctx context.Context, direction domain.AirportDirection, airport string) ([]domain.Flight, error) {
	column, err := airportColumn(direction)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT %s FROM flights WHERE %s=$1 ORDER BY id`, flightColumns, column), airport)
	if err != nil {
		return nil, err
	}
	return collectPGFlights(rows)
}

func (r *PGFlightRepository) ListByDepartureRange(ctx context.Context, start, end string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE departure_date BETWEEN $1 AND $2 ORDER BY id`, start, end)
	if err != nil {
		return nil, err
	}
	return collectPGFlights(rows)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (aircraft_id, departure_airport, arrival_airport, departure_date, arrival_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, flight.AircraftID, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureDate, flight.ArrivalDate).
		Scan(&flight.ID)
}

func (r *PGFlightRepository) SetAircraft(ctx context.Context, flightID, aircraftID int64) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET aircraft_id=$1 WHERE id=$2`, aircraftID, flightID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func collectPGFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.AircraftID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureDate, &f.ArrivalDate); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
