package flights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/flighttime"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	// SearchByAirport prefers departure matches and only falls back to
	// arrival matches when there are none.
	SearchByAirport(ctx context.Context, departure, arrival string) ([]domain.Flight, error)
	SearchByDate(ctx context.Context, start, end string) ([]domain.Flight, error)
	Add(ctx context.Context, input AddFlightInput) (*AddFlightResult, error)
	AssignAircraft(ctx context.Context, flightID int64, serial string) (*domain.Flight, error)
	Delete(ctx context.Context, flightID int64) error
	Report(ctx context.Context, start, end string) ([]domain.ReportRecord, error)
}

// FlightCache stores the list-all result per generation. InvalidateFlights
// starts a new generation, so a list written under an older one is never
// served again.
type FlightCache interface {
	// GetFlights returns nil flights on a miss along with the current
	// generation.
	GetFlights(ctx context.Context) ([]domain.Flight, int64, error)
	SetFlights(ctx context.Context, generation int64, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AddFlightInput struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureDate    string
	ArrivalDate      string
	AircraftID       *int64
}

type AddFlightResult struct {
	Flight domain.Flight
	// AircraftLinked is false when no aircraft id was given or it did not
	// resolve; the flight is stored without one in that case.
	AircraftLinked bool
}

type FlightService struct {
	flights  repository.FlightRepository
	aircraft repository.AircraftRepository
	cache    FlightCache
	events   EventPublisher
	topic    string
	clock    flighttime.Clock
	ordering flighttime.Ordering
	logger   *slog.Logger
}

type Option func(*FlightService)

func WithCache(cache FlightCache) Option {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithEvents(publisher EventPublisher, topic string) Option {
	return func(s *FlightService) {
		s.events = publisher
		s.topic = topic
	}
}

func WithClock(clock flighttime.Clock) Option {
	return func(s *FlightService) {
		s.clock = clock
	}
}

// WithOrdering switches date comparisons; the default is byte-wise.
func WithOrdering(o flighttime.Ordering) Option {
	return func(s *FlightService) {
		s.ordering = o
	}
}

func NewFlightService(flights repository.FlightRepository, aircraft repository.AircraftRepository, logger *slog.Logger, opts ...Option) *FlightService {
	s := &FlightService{
		flights:  flights,
		aircraft: aircraft,
		clock:    time.Now,
		ordering: flighttime.Lexicographic,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	// The generation is read before the database so that a write landing in
	// between makes the list stored below unreachable.
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		cached, gen, err := s.cache.GetFlights(ctx)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "flights cache read failed", "error", err)
		case cached != nil:
			return cached, nil
		default:
			generation, cacheable = gen, true
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.SetFlights(ctx, generation, flights); err != nil {
			s.logger.WarnContext(ctx, "flights cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) SearchByAirport(ctx context.Context, departure, arrival string) ([]domain.Flight, error) {
	for _, q := range []struct {
		direction domain.AirportDirection
		airport   string
	}{
		{domain.Departure, departure},
		{domain.Arrival, arrival},
	} {
		if q.airport == "" {
			continue
		}
		found, err := s.flights.ListByAirport(ctx, q.direction, q.airport)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return found, nil
		}
	}
	return nil, domain.ErrNoFlights
}

func (s *FlightService) SearchByDate(ctx context.Context, start, end string) ([]domain.Flight, error) {
	if err := validateDates(start, end); err != nil {
		return nil, err
	}

	future, err := flighttime.IsAfter(start, flighttime.Now(s.clock), s.ordering)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}
	if !future {
		return nil, domain.ErrPastSearchStart
	}

	found, err := s.departingBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrNoFlights
	}
	return found, nil
}

func (s *FlightService) Add(ctx context.Context, input AddFlightInput) (*AddFlightResult, error) {
	if err := validateAddInput(input); err != nil {
		return nil, err
	}

	ok, err := flighttime.IsFutureOrNow(input.DepartureDate, flighttime.Now(s.clock), s.ordering)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}
	if !ok {
		return nil, domain.ErrPastDeparture
	}

	flight := domain.Flight{
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		DepartureDate:    input.DepartureDate,
		ArrivalDate:      input.ArrivalDate,
	}

	linked := false
	if input.AircraftID != nil {
		aircraft, err := s.aircraft.GetByID(ctx, *input.AircraftID)
		switch {
		case err == nil:
			flight.AircraftID = &aircraft.ID
			linked = true
		case errors.Is(err, domain.ErrAircraftNotFound):
			s.logger.InfoContext(ctx, "aircraft not listed, creating flight without it", "aircraft_id", *input.AircraftID)
		default:
			return nil, err
		}
	}

	if err := s.flights.Create(ctx, &flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	event := kafka.NewFlightEvent(kafka.EventFlightCreated, flight.ID, s.clock())
	event.AircraftID = flight.AircraftID
	event.DepartureAirport = flight.DepartureAirport
	event.ArrivalAirport = flight.ArrivalAirport
	event.DepartureDate = flight.DepartureDate
	s.publish(ctx, event)

	return &AddFlightResult{Flight: flight, AircraftLinked: linked}, nil
}

func (s *FlightService) AssignAircraft(ctx context.Context, flightID int64, serial string) (*domain.Flight, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if serial == "" {
		return nil, domain.ErrAircraftNotFound
	}
	aircraft, err := s.aircraft.GetBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}

	if err := s.flights.SetAircraft(ctx, flight.ID, aircraft.ID); err != nil {
		return nil, err
	}
	flight.AircraftID = &aircraft.ID
	s.invalidate(ctx)

	event := kafka.NewFlightEvent(kafka.EventAircraftAssigned, flight.ID, s.clock())
	event.AircraftID = &aircraft.ID
	event.AircraftSerial = aircraft.Serial
	s.publish(ctx, event)

	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, flightID int64) error {
	if err := s.flights.Delete(ctx, flightID); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publish(ctx, kafka.NewFlightEvent(kafka.EventFlightDeleted, flightID, s.clock()))
	return nil
}

// Report projects every flight departing in [start, end]. Flights without a
// resolvable aircraft get a nil AircraftSerial.
func (s *FlightService) Report(ctx context.Context, start, end string) ([]domain.ReportRecord, error) {
	if err := validateDates(start, end); err != nil {
		return nil, err
	}

	found, err := s.departingBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	serials := make(map[int64]*string)
	records := make([]domain.ReportRecord, 0, len(found))
	for _, f := range found {
		var serial *string
		if f.AircraftID != nil {
			id := *f.AircraftID
			cached, ok := serials[id]
			if !ok {
				cached, err = s.lookupSerial(ctx, id)
				if err != nil {
					return nil, err
				}
				serials[id] = cached
			}
			serial = cached
		}

		record, err := buildReportRecord(f, serial)
		if err != nil {
			return nil, fmt.Errorf("report flight %d: %w", f.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *FlightService) lookupSerial(ctx context.Context, aircraftID int64) (*string, error) {
	aircraft, err := s.aircraft.GetByID(ctx, aircraftID)
	if errors.Is(err, domain.ErrAircraftNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &aircraft.Serial, nil
}

func buildReportRecord(f domain.Flight, serial *string) (domain.ReportRecord, error) {
	minutes, err := flighttime.DurationMinutes(f.DepartureDate, f.ArrivalDate)
	if err != nil {
		return domain.ReportRecord{}, err
	}
	return domain.ReportRecord{
		DepartureAirport: f.DepartureAirport,
		FlightTime:       minutes,
		AircraftSerial:   serial,
	}, nil
}

func (s *FlightService) departingBetween(ctx context.Context, start, end string) ([]domain.Flight, error) {
	if s.ordering == flighttime.Lexicographic {
		return s.flights.ListByDepartureRange(ctx, start, end)
	}

	all, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]domain.Flight, 0)
	for _, f := range all {
		in, err := flighttime.InRange(f.DepartureDate, start, end, s.ordering)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping flight with unparsable departure", "flight_id", f.ID, "error", err)
			continue
		}
		if in {
			found = append(found, f)
		}
	}
	return found, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.WarnContext(ctx, "flights cache invalidation failed", "error", err)
	}
}

func (s *FlightService) publish(ctx context.Context, event kafka.FlightEvent) {
	if s.events == nil || s.topic == "" {
		return
	}
	if err := s.events.Publish(ctx, s.topic, event.Key(), event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish flight event", "type", event.Type, "flight_id", event.FlightID, "error", err)
	}
}

func validateDates(dates ...string) error {
	for _, d := range dates {
		if _, err := flighttime.Parse(d); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
		}
	}
	return nil
}

func validateAddInput(input AddFlightInput) error {
	var missing []string
	if input.DepartureAirport == "" {
		missing = append(missing, "departure_airport")
	}
	if input.ArrivalAirport == "" {
		missing = append(missing, "arrival_airport")
	}
	if input.DepartureDate == "" {
		missing = append(missing, "departure_date")
	}
	if input.ArrivalDate == "" {
		missing = append(missing, "arrival_date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(missing, ", "))
	}
	return validateDates(input.DepartureDate, input.ArrivalDate)
}

var _ FlightUseCase = (*FlightService)(nil)
