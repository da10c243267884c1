package api

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightdesk/internal/access"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

const (
	msgNoFlightAtAirport = "Sorry, we don't have a flight at that departure or arrival location."
	msgNoFlightInRange   = "Sorry, we don't have a flight at that time range."
	msgPastSearchStart   = "Sorry, you can only search flights for future departures."
	msgPastDeparture     = "A flight can only be created for a future departure"
	msgFlightAdded       = "Successfully added the new flight."
	msgFlightAddedBare   = "Aircraft is not listed in the database.Successfully added the new flight without aircraft info."
	msgAircraftAssigned  = "Successfully updated flight; aircraft serial data."
	msgNoAircraftSerial  = "No aircraft with this serial."
	msgNoFlightID        = "No flight with this id."
	msgFlightDeleted     = "Successfully delete the flight"
	msgDeleteNotFound    = "Sorry flight with that id was not found in the database."
)

// flightRecord is the flat wire form of a flight.
type flightRecord struct {
	ID               int64  `json:"id"`
	AircraftID       *int64 `json:"aircraft_id"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	DepartureDate    string `json:"departure_date"`
	ArrivalDate      string `json:"arrival_date"`
}

type reportRecord struct {
	DepartureAirport string  `json:"departure_airport"`
	FlightTime       int64   `json:"flight_time"`
	AircraftSerial   *string `json:"Aircraft_serial"`
}

type FlightHandler struct {
	service flights.FlightUseCase
	guard   *access.Guard
	logger  *slog.Logger
}

func NewFlightHandler(service flights.FlightUseCase, guard *access.Guard, logger *slog.Logger) (*FlightHandler, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}
	return &FlightHandler{service: service, guard: guard, logger: logger}, nil
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.home)
	router.GET("/all", h.listAll)
	router.GET("/search", h.search)
	router.GET("/searchdate", h.searchDate)
	router.Match([]string{http.MethodGet, http.MethodPost}, "/addflight", h.addFlight)
	router.Match([]string{http.MethodGet, http.MethodPatch}, "/patch/:flight_id", h.patchAircraft)
	router.Match([]string{http.MethodGet, http.MethodDelete}, "/report-closed/:flight_id", h.guard.RequireAPIKey(), h.deleteFlight)
	router.GET("/report", h.report)
}

func (h *FlightHandler) home(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{Template: indexTemplate, Name: "index.html"})
}

// listAll godoc
// @Summary List every flight
// @Produce json
// @Success 200 {object} map[string][]flightRecord
// @Router /all [get]
func (h *FlightHandler) listAll(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": toFlightRecords(list)})
}

// search godoc
// @Summary Search flights by departure or arrival airport
// @Produce json
// @Param dep query string false "departure airport"
// @Param arr query string false "arrival airport"
// @Success 200 {object} map[string][]flightRecord
// @Failure 404 {object} map[string]map[string]string
// @Router /search [get]
func (h *FlightHandler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Invalid Request": bindingMessage(err)}})
		return
	}

	found, err := h.service.SearchByAirport(c.Request.Context(), q.Departure, q.Arrival)
	if errors.Is(err, domain.ErrNoFlights) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"Not Found": msgNoFlightAtAirport}})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": toFlightRecords(found)})
}

// searchDate godoc
// @Summary Search flights departing within a future time range
// @Produce json
// @Param starttime query string true "MM/DD/YYYY,HH:MM"
// @Param endtime query string true "MM/DD/YYYY,HH:MM"
// @Success 200 {object} map[string][]flightRecord
// @Failure 400 {object} map[string]map[string]string
// @Failure 404 {object} map[string]map[string]string
// @Router /searchdate [get]
func (h *FlightHandler) searchDate(c *gin.Context) {
	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Invalid Date": bindingMessage(err)}})
		return
	}

	found, err := h.service.SearchByDate(c.Request.Context(), q.Start, q.End)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"flight": toFlightRecords(found)})
	case errors.Is(err, domain.ErrPastSearchStart):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Wrong Date Range": msgPastSearchStart}})
	case errors.Is(err, domain.ErrNoFlights):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"Not Found": msgNoFlightInRange}})
	case errors.Is(err, domain.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Invalid Date": err.Error()}})
	default:
		h.internalError(c, err)
	}
}

// addFlight godoc
// @Summary Create a flight departing now or later
// @Accept x-www-form-urlencoded
// @Produce json
// @Param departure_airport formData string true "departure airport"
// @Param arrival_airport formData string true "arrival airport"
// @Param departure_date formData string true "MM/DD/YYYY,HH:MM"
// @Param arrival_date formData string true "MM/DD/YYYY,HH:MM"
// @Param aircraft_id formData int false "aircraft id"
// @Success 201 {object} map[string]map[string]string
// @Failure 400 {object} map[string]map[string]string
// @Router /addflight [post]
func (h *FlightHandler) addFlight(c *gin.Context) {
	var form addFlightForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"fail": bindingMessage(err)}})
		return
	}

	input := flights.AddFlightInput{
		DepartureAirport: form.DepartureAirport,
		ArrivalAirport:   form.ArrivalAirport,
		DepartureDate:    form.DepartureDate,
		ArrivalDate:      form.ArrivalDate,
	}
	if form.AircraftID != "" {
		id, err := strconv.ParseInt(form.AircraftID, 10, 64)
		if err != nil {
			// An id that cannot exist is the same as an unknown aircraft.
			h.logger.InfoContext(c.Request.Context(), "ignoring non-numeric aircraft id", "aircraft_id", form.AircraftID)
		} else {
			input.AircraftID = &id
		}
	}

	result, err := h.service.Add(c.Request.Context(), input)
	switch {
	case err == nil && result.AircraftLinked:
		c.JSON(http.StatusCreated, gin.H{"response": gin.H{"success": msgFlightAdded}})
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"response": gin.H{"Info": msgFlightAddedBare}})
	case errors.Is(err, domain.ErrPastDeparture):
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"fail": msgPastDeparture}})
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"fail": err.Error()}})
	default:
		h.internalError(c, err)
	}
}

// patchAircraft godoc
// @Summary Assign an aircraft to a flight by serial
// @Produce json
// @Param flight_id path int true "flight id"
// @Param aircraft_serial query string true "aircraft serial"
// @Success 200 {object} map[string]map[string]string
// @Failure 404 {object} map[string]map[string]string
// @Router /patch/{flight_id} [patch]
func (h *FlightHandler) patchAircraft(c *gin.Context) {
	var p flightIDParam
	if err := c.ShouldBindUri(&p); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"response": gin.H{"fail": msgNoFlightID}})
		return
	}

	_, err := h.service.AssignAircraft(c.Request.Context(), p.FlightID, c.Query("aircraft_serial"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"response": gin.H{"success": msgAircraftAssigned}})
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"response": gin.H{"fail": msgNoFlightID}})
	case errors.Is(err, domain.ErrAircraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"response": gin.H{"fail": msgNoAircraftSerial}})
	default:
		h.internalError(c, err)
	}
}

// deleteFlight godoc
// @Summary Delete a flight
// @Produce json
// @Param flight_id path int true "flight id"
// @Param apikey query string true "shared secret"
// @Success 200 {object} map[string]map[string]string
// @Failure 403 {object} map[string]map[string]string
// @Failure 404 {object} map[string]map[string]interface{}
// @Router /report-closed/{flight_id} [delete]
func (h *FlightHandler) deleteFlight(c *gin.Context) {
	notFound := gin.H{"response": gin.H{"error": gin.H{"Not Found": msgDeleteNotFound}}}

	var p flightIDParam
	if err := c.ShouldBindUri(&p); err != nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	err := h.service.Delete(c.Request.Context(), p.FlightID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"response": gin.H{"success": msgFlightDeleted}})
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, notFound)
	default:
		h.internalError(c, err)
	}
}

// report godoc
// @Summary Report departure airport, flight time and aircraft serial for a range
// @Produce json
// @Param reportstart query string true "MM/DD/YYYY,HH:MM"
// @Param reportend query string true "MM/DD/YYYY,HH:MM"
// @Success 200 {object} map[string][]reportRecord
// @Failure 400 {object} map[string]map[string]string
// @Router /report [get]
func (h *FlightHandler) report(c *gin.Context) {
	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Invalid Date": bindingMessage(err)}})
		return
	}

	records, err := h.service.Report(c.Request.Context(), q.Start, q.End)
	if errors.Is(err, domain.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Invalid Date": err.Error()}})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": toReportRecords(records)})
}

func (h *FlightHandler) internalError(c *gin.Context, err error) {
	h.logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func toFlightRecord(f domain.Flight) flightRecord {
	return flightRecord{
		ID:               f.ID,
		AircraftID:       f.AircraftID,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureDate:    f.DepartureDate,
		ArrivalDate:      f.ArrivalDate,
	}
}

func toFlightRecords(list []domain.Flight) []flightRecord {
	out := make([]flightRecord, 0, len(list))
	for _, f := range list {
		out = append(out, toFlightRecord(f))
	}
	return out
}

func toReportRecords(list []domain.ReportRecord) []reportRecord {
	out := make([]reportRecord, 0, len(list))
	for _, r := range list {
		out = append(out, reportRecord{
			DepartureAirport: r.DepartureAirport,
			FlightTime:       r.FlightTime,
			AircraftSerial:   r.AircraftSerial,
		})
	}
	return out
}
