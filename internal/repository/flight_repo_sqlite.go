package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

type SQLiteFlightRepository struct {
	db *sql.DB
}

func NewSQLiteFlightRepository(db *sql.DB) FlightRepository {
	return &SQLiteFlightRepository{db: db}
}

func (r *SQLiteFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectSQLFlights(rows)
}

func (r *SQLiteFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=?`, id)
	f, err := scanSQLFlight(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *SQLiteFlightRepository) ListByAirport(ctx context.Context, direction domain.AirportDirection, airport string) ([]domain.Flight, error) {
	column, err := airportColumn(direction)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM flights WHERE %s=? ORDER BY id`, flightColumns, column), airport)
	if err != nil {
		return nil, err
	}
	return collectSQLFlights(rows)
}

func (r *SQLiteFlightRepository) ListByDepartureRange(ctx context.Context, start, end string) ([]domain.Flight, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+flightColumns+` FROM flights WHERE departure_date BETWEEN ? AND ? ORDER BY id`, start, end)
	if err != nil {
		return nil, err
	}
	return collectSQLFlights(rows)
}

func (r *SQLiteFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO flights (aircraft_id, departure_airport, arrival_airport, departure_date, arrival_date)
		VALUES (?, ?, ?, ?, ?)`, nullableID(flight.AircraftID), flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureDate, flight.ArrivalDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	flight.ID = id
	return nil
}

func (r *SQLiteFlightRepository) SetAircraft(ctx context.Context, flightID, aircraftID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE flights SET aircraft_id=? WHERE id=?`, aircraftID, flightID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrFlightNotFound)
}

func (r *SQLiteFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flights WHERE id=?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrFlightNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLFlight(row rowScanner) (*domain.Flight, error) {
	var (
		f          domain.Flight
		aircraftID sql.NullInt64
	)
	if err := row.Scan(&f.ID, &aircraftID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureDate, &f.ArrivalDate); err != nil {
		return nil, err
	}
	if aircraftID.Valid {
		id := aircraftID.Int64
		f.AircraftID = &id
	}
	return &f, nil
}

func collectSQLFlights(rows *sql.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanSQLFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

var _ FlightRepository = (*SQLiteFlightRepository)(nil)
