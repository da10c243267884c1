package kafka

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer p.Close()
	assert.NotNil(t, p.writer)
}

func TestNewConsumer(t *testing.T) {
	c := NewConsumer([]string{"localhost:9092"}, "group", "flight-events")
	assert.NotNil(t, c.reader)
	_ = c.Close()

	var nilConsumer *Consumer
	assert.NoError(t, nilConsumer.Close())
}

func TestNewFlightEvent(t *testing.T) {
	at := time.Date(2030, 1, 2, 3, 4, 0, 0, time.FixedZone("EET", 2*3600))
	e := NewFlightEvent(EventFlightDeleted, 7, at)

	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, "flight:7", e.Key())
	assert.Equal(t, time.UTC, e.OccurredAt.Location())
}

func TestDecodeFlightEvent(t *testing.T) {
	e, err := DecodeFlightEvent([]byte(`{"id":"x","type":"aircraft_assigned","flight_id":5,"aircraft_id":3,"aircraft_serial":"EC-AIN"}`))
	require.NoError(t, err)
	assert.Equal(t, EventAircraftAssigned, e.Type)
	require.NotNil(t, e.AircraftID)
	assert.Equal(t, int64(3), *e.AircraftID)

	_, err = DecodeFlightEvent([]byte(`{"flight_id":5}`))
	assert.Error(t, err)

	_, err = DecodeFlightEvent([]byte(`not json`))
	assert.Error(t, err)
}
