package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGAircraftRepository struct {
	db *pgxpool.Pool
}

func NewAircraftRepository(db *pgxpool.Pool) AircraftRepository {
	return &PGAircraftRepository{db: db}
}

func (r *PGAircraftRepository) GetByID(ctx context.Context, id int64) (*domain.Aircraft, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, serial, manufacturer FROM aircrafts WHERE id=$1`, id))
}

func (r *PGAircraftRepository) GetBySerial(ctx context.Context, serial string) (*domain.Aircraft, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, serial, manufacturer FROM aircrafts WHERE serial=$1`, serial))
}

func (r *PGAircraftRepository) EnsureSerial(ctx context.Context, aircraft *domain.Aircraft) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO aircrafts (serial, manufacturer) VALUES ($1, $2) ON CONFLICT (serial) DO NOTHING`,
		aircraft.Serial, aircraft.Manufacturer); err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `SELECT id FROM aircrafts WHERE serial=$1`, aircraft.Serial).Scan(&aircraft.ID)
}

func (r *PGAircraftRepository) scanOne(row pgx.Row) (*domain.Aircraft, error) {
	var a domain.Aircraft
	if err := row.Scan(&a.ID, &a.Serial, &a.Manufacturer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAircraftNotFound
		}
		return nil, err
	}
	return &a, nil
}

var _ AircraftRepository = (*PGAircraftRepository)(nil)
