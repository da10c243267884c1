package api

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Domenick1991/flightdesk/internal/flighttime"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// registerValidators adds the flightdate tag to gin's validator engine.
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		// Report field errors under their request names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"form", "uri"} {
				if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		registerErr = v.RegisterValidation("flightdate", func(fl validator.FieldLevel) bool {
			return flighttime.Valid(fl.Field().String())
		})
	})
	return registerErr
}

// addFlightForm is bound from either the query string or a form body.
type addFlightForm struct {
	DepartureAirport string `form:"departure_airport" binding:"required"`
	ArrivalAirport   string `form:"arrival_airport" binding:"required"`
	DepartureDate    string `form:"departure_date" binding:"required,flightdate"`
	ArrivalDate      string `form:"arrival_date" binding:"required,flightdate"`
	AircraftID       string `form:"aircraft_id"`
}

type searchQuery struct {
	Departure string `form:"dep"`
	Arrival   string `form:"arr"`
}

type dateRangeQuery struct {
	Start string `form:"starttime" binding:"required,flightdate"`
	End   string `form:"endtime" binding:"required,flightdate"`
}

type reportQuery struct {
	Start string `form:"reportstart" binding:"required,flightdate"`
	End   string `form:"reportend" binding:"required,flightdate"`
}

type flightIDParam struct {
	FlightID int64 `uri:"flight_id" binding:"required,min=1"`
}

// bindingMessage flattens validator errors into one readable line.
func bindingMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "flightdate":
		return fmt.Sprintf("%s must match MM/DD/YYYY,HH:MM", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
