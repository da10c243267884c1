// Package audit records flight change events delivered by the worker.
package audit

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/flightdesk/internal/kafka"
)

type Recorder struct {
	logger *slog.Logger
}

func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{logger: logger.With("component", "audit")}
}

func (r *Recorder) Record(ctx context.Context, event kafka.FlightEvent) error {
	attrs := []any{
		"event_id", event.ID,
		"type", string(event.Type),
		"flight_id", event.FlightID,
		"occurred_at", event.OccurredAt,
	}
	switch event.Type {
	case kafka.EventFlightCreated:
		attrs = append(attrs,
			"departure_airport", event.DepartureAirport,
			"arrival_airport", event.ArrivalAirport,
			"departure_date", event.DepartureDate)
	case kafka.EventAircraftAssigned:
		attrs = append(attrs, "aircraft_serial", event.AircraftSerial)
	}
	if event.AircraftID != nil {
		attrs = append(attrs, "aircraft_id", *event.AircraftID)
	}

	r.logger.InfoContext(ctx, "flight event", attrs...)
	return nil
}
