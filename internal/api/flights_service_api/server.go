package flights_service_api

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "flightdesk.FlightsService"

// FlightsServiceServer is the read-only gRPC view of the flight records.
// Messages are protobuf well-known types so no generated code is needed.
type FlightsServiceServer interface {
	ListFlights(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	// Report expects a struct with string fields reportstart and reportend.
	Report(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FlightsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListFlights", Handler: listFlightsHandler},
		{MethodName: "Report", Handler: reportHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flightdesk/flights.proto",
}

func RegisterFlightsServiceServer(s grpc.ServiceRegistrar, srv FlightsServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func listFlightsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).ListFlights(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ListFlights"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FlightsServiceServer).ListFlights(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func reportHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).Report(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Report"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FlightsServiceServer).Report(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server implements FlightsServiceServer on top of the flight use case.
type Server struct {
	flights flights.FlightUseCase
}

func NewServer(flights flights.FlightUseCase) *Server {
	return &Server{flights: flights}
}

func (s *Server) ListFlights(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.flights.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	values := make([]interface{}, 0, len(list))
	for _, f := range list {
		values = append(values, toPBFlight(f))
	}
	return structpb.NewList(values)
}

func (s *Server) Report(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	fields := req.GetFields()
	start := fields["reportstart"].GetStringValue()
	end := fields["reportend"].GetStringValue()

	records, err := s.flights.Report(ctx, start, end)
	if err != nil {
		return nil, toStatus(err)
	}
	values := make([]interface{}, 0, len(records))
	for _, r := range records {
		var serial interface{}
		if r.AircraftSerial != nil {
			serial = *r.AircraftSerial
		}
		values = append(values, map[string]interface{}{
			"departure_airport": r.DepartureAirport,
			"flight_time":       r.FlightTime,
			"Aircraft_serial":   serial,
		})
	}
	return structpb.NewList(values)
}

func toPBFlight(f domain.Flight) map[string]interface{} {
	var aircraftID interface{}
	if f.AircraftID != nil {
		aircraftID = *f.AircraftID
	}
	return map[string]interface{}{
		"id":                f.ID,
		"aircraft_id":       aircraftID,
		"departure_airport": f.DepartureAirport,
		"arrival_airport":   f.ArrivalAirport,
		"departure_date":    f.DepartureDate,
		"arrival_date":      f.ArrivalDate,
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrPastDeparture), errors.Is(err, domain.ErrPastSearchStart):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrAircraftNotFound),
		errors.Is(err, domain.ErrNoFlights):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

var _ FlightsServiceServer = (*Server)(nil)
