package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventFlightCreated    EventType = "flight_created"
	EventAircraftAssigned EventType = "aircraft_assigned"
	EventFlightDeleted    EventType = "flight_deleted"
)

type FlightEvent struct {
	ID               string    `json:"id"`
	Type             EventType `json:"type"`
	FlightID         int64     `json:"flight_id"`
	AircraftID       *int64    `json:"aircraft_id,omitempty"`
	AircraftSerial   string    `json:"aircraft_serial,omitempty"`
	DepartureAirport string    `json:"departure_airport,omitempty"`
	ArrivalAirport   string    `json:"arrival_airport,omitempty"`
	DepartureDate    string    `json:"departure_date,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewFlightEvent(eventType EventType, flightID int64, at time.Time) FlightEvent {
	return FlightEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		FlightID:   flightID,
		OccurredAt: at.UTC(),
	}
}

func (e FlightEvent) Key() string {
	return fmt.Sprintf("flight:%d", e.FlightID)
}

func DecodeFlightEvent(data []byte) (FlightEvent, error) {
	var e FlightEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return FlightEvent{}, fmt.Errorf("decode flight event: %w", err)
	}
	if e.Type == "" {
		return FlightEvent{}, fmt.Errorf("decode flight event: missing type")
	}
	return e, nil
}
