package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightdesk/api"
	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/access"
	flightsapi "github.com/Domenick1991/flightdesk/internal/api/flights_service_api"
	_ "github.com/Domenick1991/flightdesk/internal/docs"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
}

// Run starts the HTTP server and, when an address is configured, the gRPC
// server. It blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, logger *slog.Logger) error {
	s, err := newServers(cfg, flightSvc, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)

	if s.grpcServer != nil {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		logger.Info("gRPC server listening", "address", cfg.GRPC.Address)
		go func() { errCh <- s.grpcServer.Serve(lis) }()
	}

	logger.Info("HTTP server listening", "address", cfg.HTTP.Address)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if s.grpcServer != nil {
			s.health.Shutdown()
			s.grpcServer.GracefulStop()
		}
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, flightSvc flights.FlightUseCase, logger *slog.Logger) (*Servers, error) {
	router, err := NewRouter(cfg, flightSvc, logger)
	if err != nil {
		return nil, err
	}

	s := &Servers{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.GRPC.Address != "" {
		s.grpcServer = grpc.NewServer()
		flightsapi.RegisterFlightsServiceServer(s.grpcServer, flightsapi.NewServer(flightSvc))

		s.health = health.NewServer()
		healthpb.RegisterHealthServer(s.grpcServer, s.health)
		s.health.SetServingStatus(flightsapi.ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	}

	return s, nil
}

// NewRouter builds the gin engine with every HTTP route mounted.
func NewRouter(cfg *config.Config, flightSvc flights.FlightUseCase, logger *slog.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if cfg.Auth.APIKey == "" {
		logger.Warn("auth.api_key is empty, every delete will be refused")
	}
	handler, err := api.NewFlightHandler(flightSvc, access.NewGuard(cfg.Auth.APIKey), logger)
	if err != nil {
		return nil, fmt.Errorf("build flight handler: %w", err)
	}
	handler.Register(&router.RouterGroup)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.HTTP.SwaggerEnabled {
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	return router, nil
}
