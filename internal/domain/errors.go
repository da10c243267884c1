package domain

import "errors"

// Validation errors.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrPastDeparture   = errors.New("departure is in the past")
	ErrPastSearchStart = errors.New("search start is not in the future")
	ErrMissingField    = errors.New("missing required field")
)

// Not-found errors.
var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrNoFlights        = errors.New("no flights found")
)
