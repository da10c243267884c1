package repository

// Dates are plain text. Postgres gets COLLATE "C" so that BETWEEN compares
// bytes like SQLite's default BINARY collation does.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS aircrafts (
	id           BIGSERIAL PRIMARY KEY,
	serial       VARCHAR(250) NOT NULL UNIQUE,
	manufacturer VARCHAR(250) NOT NULL
);

CREATE TABLE IF NOT EXISTS flights (
	id                BIGSERIAL PRIMARY KEY,
	aircraft_id       BIGINT REFERENCES aircrafts(id) ON DELETE SET NULL,
	departure_airport VARCHAR(250) NOT NULL,
	arrival_airport   VARCHAR(250) NOT NULL,
	departure_date    VARCHAR(250) COLLATE "C" NOT NULL,
	arrival_date      VARCHAR(250) COLLATE "C" NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_flights_departure_airport ON flights(departure_airport);
CREATE INDEX IF NOT EXISTS idx_flights_arrival_airport ON flights(arrival_airport);
CREATE INDEX IF NOT EXISTS idx_flights_departure_date ON flights(departure_date);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS aircrafts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	serial       TEXT NOT NULL UNIQUE,
	manufacturer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS flights (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	aircraft_id       INTEGER REFERENCES aircrafts(id) ON DELETE SET NULL,
	departure_airport TEXT NOT NULL,
	arrival_airport   TEXT NOT NULL,
	departure_date    TEXT NOT NULL,
	arrival_date      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_flights_departure_airport ON flights(departure_airport);
CREATE INDEX IF NOT EXISTS idx_flights_arrival_airport ON flights(arrival_airport);
CREATE INDEX IF NOT EXISTS idx_flights_departure_date ON flights(departure_date);
`
