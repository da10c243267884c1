package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/flighttime"
)

type Reporter interface {
	Report(ctx context.Context, start, end string) ([]domain.ReportRecord, error)
}

type DigestSummary struct {
	Flights         int
	TotalMinutes    int64
	WithoutAircraft int
	Airports        map[string]int
}

// Digest summarizes the flights departing in [from, from+window] and logs
// the result.
func (r *Recorder) Digest(ctx context.Context, reporter Reporter, from time.Time, window time.Duration) (*DigestSummary, error) {
	start := flighttime.Format(from)
	end := flighttime.Format(from.Add(window))

	records, err := reporter.Report(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("digest report %s..%s: %w", start, end, err)
	}

	summary := &DigestSummary{Flights: len(records), Airports: make(map[string]int)}
	for _, rec := range records {
		summary.TotalMinutes += rec.FlightTime
		summary.Airports[rec.DepartureAirport]++
		if rec.AircraftSerial == nil {
			summary.WithoutAircraft++
		}
	}

	r.logger.InfoContext(ctx, "departure digest",
		"start", start,
		"end", end,
		"flights", summary.Flights,
		"total_minutes", summary.TotalMinutes,
		"without_aircraft", summary.WithoutAircraft,
		"departure_airports", len(summary.Airports),
	)
	return summary, nil
}
