package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "flight.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func addFlight(t *testing.T, store *Store, f domain.Flight) domain.Flight {
	t.Helper()
	require.NoError(t, store.Flights.Create(context.Background(), &f))
	require.NotZero(t, f.ID)
	return f
}

func TestSQLiteFlightRepository_CreateAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := addFlight(t, store, domain.Flight{DepartureAirport: "LRAR", ArrivalAirport: "LSXB", DepartureDate: "08/07/2030,08:00", ArrivalDate: "08/08/2030,02:00"})
	second := addFlight(t, store, domain.Flight{DepartureAirport: "LEMD", ArrivalAirport: "LRAR", DepartureDate: "09/01/2030,10:00", ArrivalDate: "09/01/2030,14:30"})

	flights, err := store.Flights.List(ctx)
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, first, flights[0])
	assert.Equal(t, second, flights[1])
	assert.Nil(t, flights[0].AircraftID)
}

func TestSQLiteFlightRepository_GetByID_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Flights.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestSQLiteFlightRepository_ListByAirport(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	addFlight(t, store, domain.Flight{DepartureAirport: "LRAR", ArrivalAirport: "LSXB", DepartureDate: "08/07/2030,08:00", ArrivalDate: "08/08/2030,02:00"})
	addFlight(t, store, domain.Flight{DepartureAirport: "LSXB", ArrivalAirport: "LRAR", DepartureDate: "08/09/2030,08:00", ArrivalDate: "08/09/2030,12:00"})

	dep, err := store.Flights.ListByAirport(ctx, domain.Departure, "LRAR")
	require.NoError(t, err)
	require.Len(t, dep, 1)
	assert.Equal(t, "LSXB", dep[0].ArrivalAirport)

	arr, err := store.Flights.ListByAirport(ctx, domain.Arrival, "LRAR")
	require.NoError(t, err)
	require.Len(t, arr, 1)
	assert.Equal(t, "LSXB", arr[0].DepartureAirport)

	none, err := store.Flights.ListByAirport(ctx, domain.Departure, "lrar")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteFlightRepository_ListByDepartureRange_IsByteWise(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	inside := addFlight(t, store, domain.Flight{DepartureAirport: "A", ArrivalAirport: "B", DepartureDate: "09/01/2022,00:00", ArrivalDate: "09/01/2022,01:00"})
	boundary := addFlight(t, store, domain.Flight{DepartureAirport: "A", ArrivalAirport: "B", DepartureDate: "10/12/2022,10:00", ArrivalDate: "10/12/2022,11:00"})
	// Calendar-wise years away, but sorts inside the range as text.
	textual := addFlight(t, store, domain.Flight{DepartureAirport: "A", ArrivalAirport: "B", DepartureDate: "09/15/2031,00:00", ArrivalDate: "09/15/2031,01:00"})
	addFlight(t, store, domain.Flight{DepartureAirport: "A", ArrivalAirport: "B", DepartureDate: "11/01/2022,00:00", ArrivalDate: "11/01/2022,01:00"})

	flights, err := store.Flights.ListByDepartureRange(ctx, "08/08/2022,10:00", "10/12/2022,10:00")
	require.NoError(t, err)
	assert.Equal(t, []domain.Flight{inside, boundary, textual}, flights)
}

func TestSQLiteFlightRepository_SetAircraftAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	aircraft := domain.Aircraft{Serial: "EC-AIN", Manufacturer: "Airbus"}
	require.NoError(t, store.Aircraft.EnsureSerial(ctx, &aircraft))

	f := addFlight(t, store, domain.Flight{DepartureAirport: "LEMD", ArrivalAirport: "LRAR", DepartureDate: "09/01/2030,10:00", ArrivalDate: "09/01/2030,14:30"})

	require.NoError(t, store.Flights.SetAircraft(ctx, f.ID, aircraft.ID))
	got, err := store.Flights.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AircraftID)
	assert.Equal(t, aircraft.ID, *got.AircraftID)

	assert.ErrorIs(t, store.Flights.SetAircraft(ctx, f.ID+100, aircraft.ID), domain.ErrFlightNotFound)

	require.NoError(t, store.Flights.Delete(ctx, f.ID))
	assert.ErrorIs(t, store.Flights.Delete(ctx, f.ID), domain.ErrFlightNotFound)
}

func TestSQLiteFlightRepository_SetAircraftRequiresExistingAircraft(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	f := addFlight(t, store, domain.Flight{DepartureAirport: "LEMD", ArrivalAirport: "LRAR", DepartureDate: "09/01/2030,10:00", ArrivalDate: "09/01/2030,14:30"})

	assert.Error(t, store.Flights.SetAircraft(ctx, f.ID, 999))
}

func TestSQLiteAircraftDelete_SetsFlightAircraftNull(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	aircraft := domain.Aircraft{Serial: "YR-ATB", Manufacturer: "ATR"}
	require.NoError(t, store.Aircraft.EnsureSerial(ctx, &aircraft))
	f := addFlight(t, store, domain.Flight{AircraftID: &aircraft.ID, DepartureAirport: "LRAR", ArrivalAirport: "LROP", DepartureDate: "09/01/2030,10:00", ArrivalDate: "09/01/2030,11:00"})

	db := store.Flights.(*SQLiteFlightRepository).db
	_, err := db.ExecContext(ctx, `DELETE FROM aircrafts WHERE id=?`, aircraft.ID)
	require.NoError(t, err)

	got, err := store.Flights.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AircraftID)
}

func TestSQLiteAircraftRepository_Lookups(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := domain.Aircraft{Serial: "EC-AIN", Manufacturer: "Airbus"}
	require.NoError(t, store.Aircraft.EnsureSerial(ctx, &a))

	again := domain.Aircraft{Serial: "EC-AIN", Manufacturer: "Boeing"}
	require.NoError(t, store.Aircraft.EnsureSerial(ctx, &again))
	assert.Equal(t, a.ID, again.ID)

	bySerial, err := store.Aircraft.GetBySerial(ctx, "EC-AIN")
	require.NoError(t, err)
	assert.Equal(t, "Airbus", bySerial.Manufacturer)

	byID, err := store.Aircraft.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, *byID)

	_, err = store.Aircraft.GetBySerial(ctx, "N/A")
	assert.ErrorIs(t, err, domain.ErrAircraftNotFound)
	_, err = store.Aircraft.GetByID(ctx, a.ID+1)
	assert.ErrorIs(t, err, domain.ErrAircraftNotFound)
}

func TestOpen_SeedsAircraft(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "seeded.db"),
		SeedAircraft: []config.AircraftSeed{
			{Serial: "EC-AIN", Manufacturer: "Airbus"},
			{Serial: "YR-ATB", Manufacturer: "ATR"},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer store.Close()

	a, err := store.Aircraft.GetBySerial(context.Background(), "YR-ATB")
	require.NoError(t, err)
	assert.Equal(t, "ATR", a.Manufacturer)
}

func TestOpen_UnknownDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"}, logger)
	assert.Error(t, err)
}

func TestSQLiteDSN_EscapesPath(t *testing.T) {
	const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	assert.Equal(t, "file:/var/lib/flightdesk/flight.db"+pragmas, sqliteDSN("/var/lib/flightdesk/flight.db"))
	assert.Equal(t, "file:data/flight.db"+pragmas, sqliteDSN("data/flight.db"))
	assert.Equal(t, "file:/tmp/run%3F1/flight%231%25.db"+pragmas, sqliteDSN("/tmp/run?1/flight#1%.db"))
}

func TestOpenSQLite_PathWithURIDelimiters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flight?mode=ro#1.db")
	ctx := context.Background()

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	created := addFlight(t, store, domain.Flight{DepartureAirport: "LRAR", ArrivalAirport: "LSXB", DepartureDate: "08/07/2030,08:00", ArrivalDate: "08/08/2030,02:00"})

	flights, err := store.Flights.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Flight{created}, flights)

	_, err = os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "flight"))
	assert.True(t, os.IsNotExist(err))
}
