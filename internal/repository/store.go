package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// Store bundles the repositories of one backing database.
type Store struct {
	Flights  FlightRepository
	Aircraft AircraftRepository

	close func() error
}

// Open connects to the configured database, creates the schema if it is
// absent and inserts any seed aircraft.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	var (
		store *Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err = openPostgres(ctx, cfg)
	case config.DriverSQLite:
		store, err = OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	for _, seed := range cfg.SeedAircraft {
		a := domain.Aircraft{Serial: seed.Serial, Manufacturer: seed.Manufacturer}
		if err := store.Aircraft.EnsureSerial(ctx, &a); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed aircraft %s: %w", seed.Serial, err)
		}
		logger.Debug("aircraft seeded", "serial", a.Serial, "id", a.ID)
	}

	logger.Info("database ready", "driver", cfg.Driver)
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}

	return &Store{
		Flights:  NewFlightRepository(pool),
		Aircraft: NewAircraftRepository(pool),
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

// sqliteDSN builds a file URI for path. The path is percent-escaped so that
// '?' or '#' in a directory or file name is not read as the start of the
// query. Pragmas are applied by the driver to every pooled connection.
func sqliteDSN(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// OpenSQLite opens or creates a SQLite database file at path.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &Store{
		Flights:  NewSQLiteFlightRepository(db),
		Aircraft: NewSQLiteAircraftRepository(db),
		close:    db.Close,
	}, nil
}
