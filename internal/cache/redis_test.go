package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	defer c.Close()

	assert.NotNil(t, c)
	assert.Equal(t, time.Minute, c.flightsTTL)
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	// Port 1 is never a redis server; every call must surface an error
	// rather than a silent miss.
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	flights, _, err := c.GetFlights(ctx)
	assert.Error(t, err)
	assert.Nil(t, flights)
	assert.Error(t, c.SetFlights(ctx, 0, []domain.Flight{}))
	assert.Error(t, c.InvalidateFlights(ctx))
	assert.Error(t, c.Ping(ctx))
}

func TestFlightsEncoding_KeepsNullAircraftAndEmptyLists(t *testing.T) {
	aircraftID := int64(3)
	flights := []domain.Flight{
		{ID: 1, AircraftID: &aircraftID, DepartureAirport: "LRAR", ArrivalAirport: "LSXB", DepartureDate: "08/07/2030,08:00", ArrivalDate: "08/08/2030,02:00"},
		{ID: 2, DepartureAirport: "LEMD", ArrivalAirport: "LRAR", DepartureDate: "09/01/2030,10:00", ArrivalDate: "09/01/2030,14:30"},
	}

	data, err := encodeFlights(flights)
	require.NoError(t, err)
	decoded, err := decodeFlights(data)
	require.NoError(t, err)
	assert.Equal(t, flights, decoded)
	assert.Nil(t, decoded[1].AircraftID)

	// A cached empty list must not read back as a miss.
	data, err = encodeFlights(nil)
	require.NoError(t, err)
	decoded, err = decodeFlights(data)
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestFlightsKey_PerGeneration(t *testing.T) {
	assert.Equal(t, "cache:flights:0", flightsKey(0))
	assert.Equal(t, "cache:flights:42", flightsKey(42))
	assert.NotEqual(t, flightsGenerationKey, flightsKey(0))
}
