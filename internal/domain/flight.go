package domain

// Flight keeps its schedule as strings in the MM/DD/YYYY,HH:MM pattern; they
// are compared and stored exactly as submitted.
type Flight struct {
	ID               int64
	AircraftID       *int64
	DepartureAirport string
	ArrivalAirport   string
	DepartureDate    string
	ArrivalDate      string
}

type Aircraft struct {
	ID           int64
	Serial       string
	Manufacturer string
}

// ReportRecord is a read-only projection of a flight. AircraftSerial is nil
// when the flight has no aircraft assigned.
type ReportRecord struct {
	DepartureAirport string
	FlightTime       int64
	AircraftSerial   *string
}

type AirportDirection string

const (
	Departure AirportDirection = "departure"
	Arrival   AirportDirection = "arrival"
)
