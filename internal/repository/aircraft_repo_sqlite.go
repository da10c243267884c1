package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

type SQLiteAircraftRepository struct {
	db *sql.DB
}

func NewSQLiteAircraftRepository(db *sql.DB) AircraftRepository {
	return &SQLiteAircraftRepository{db: db}
}

func (r *SQLiteAircraftRepository) GetByID(ctx context.Context, id int64) (*domain.Aircraft, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT id, serial, manufacturer FROM aircrafts WHERE id=?`, id))
}

func (r *SQLiteAircraftRepository) GetBySerial(ctx context.Context, serial string) (*domain.Aircraft, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT id, serial, manufacturer FROM aircrafts WHERE serial=?`, serial))
}

func (r *SQLiteAircraftRepository) EnsureSerial(ctx context.Context, aircraft *domain.Aircraft) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO aircrafts (serial, manufacturer) VALUES (?, ?) ON CONFLICT (serial) DO NOTHING`,
		aircraft.Serial, aircraft.Manufacturer); err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `SELECT id FROM aircrafts WHERE serial=?`, aircraft.Serial).Scan(&aircraft.ID)
}

func (r *SQLiteAircraftRepository) scanOne(row *sql.Row) (*domain.Aircraft, error) {
	var a domain.Aircraft
	if err := row.Scan(&a.ID, &a.Serial, &a.Manufacturer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAircraftNotFound
		}
		return nil, err
	}
	return &a, nil
}

var _ AircraftRepository = (*SQLiteAircraftRepository)(nil)
