// Package app wires the catalog service together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocommerce-catalog/internal/config"
	"github.com/abgdnv/gocommerce-catalog/internal/service"
	"github.com/abgdnv/gocommerce-catalog/internal/store"
	grpcImpl "github.com/abgdnv/gocommerce-catalog/internal/transport/grpc"
	"github.com/abgdnv/gocommerce-catalog/internal/transport/rest"
	"github.com/abgdnv/gocommerce-catalog/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/gocommerce-catalog/pkg/config"
	"github.com/abgdnv/gocommerce-catalog/pkg/kafka"
	"github.com/abgdnv/gocommerce-catalog/pkg/messaging"
	pkgnats "github.com/abgdnv/gocommerce-catalog/pkg/nats"
	"github.com/abgdnv/gocommerce-catalog/pkg/server"
	"github.com/abgdnv/gocommerce-catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Backend is a storage implementation serving both products and categories.
type Backend interface {
	store.ProductStore
	store.CategoryStore
	store.Pinger
}

type Dependencies struct {
	ProductService  service.ProductService
	CategoryService service.CategoryService
	Pinger          store.Pinger
	Registry        *prometheus.Registry
	HTTPMetrics     *web.HTTPMetrics
	CORS            *pkgconfig.CORSConfig
	Logger          *slog.Logger
}

// SetupDependencies builds the services on top of backend. Events go to publisher and
// HTTP metrics are registered with reg.
func SetupDependencies(backend Backend, publisher messaging.Publisher, reg *prometheus.Registry, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService:  service.NewService(backend, backend, publisher),
		CategoryService: service.NewCategoryService(backend),
		Pinger:          backend,
		Registry:        reg,
		HTTPMetrics:     web.NewHTTPMetrics(reg),
		Logger:          logger,
	}
}

// SetupHttpHandler initializes the routes and middleware of the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger, server.RouterOptions{
		CORS:    deps.CORS,
		Metrics: deps.HTTPMetrics,
	})
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	rest.NewHandler(deps.ProductService, deps.Logger).RegisterRoutes(mux)
	rest.NewCategoryHandler(deps.CategoryService, deps.Logger).RegisterRoutes(mux)
	rest.NewProbeHandler(deps.Pinger, deps.Logger).RegisterRoutes(mux)
	mux.Handle(server.MetricsPath, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry}))
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	deps.CORS = &cfg.CORS
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer initializes the gRPC server with the product lookup and the health service.
// The returned health server reports SERVING until the caller flips it on shutdown.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) (*grpc.Server, *health.Server) {
	healthServer := health.NewServer()
	registerFunc := func(s *grpc.Server) {
		grpcImpl.RegisterProductLookupServer(s, grpcImpl.NewServer(deps.ProductService, deps.Logger))
		healthpb.RegisterHealthServer(s, healthServer)
	}
	grpcServer := server.NewGRPCServer(deps.Logger, reflectionEnabled, registerFunc)
	healthServer.SetServingStatus(grpcImpl.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return grpcServer, healthServer
}

// SetupBackend opens the configured store. The returned func releases it.
func SetupBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("Using the in-memory store, data is lost on restart")
		return store.NewInMemoryStore(), func() {}, nil
	}
	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Successfully connected to the database!")
	return store.NewPgStore(dbPool), dbPool.Close, nil
}

// SetupPublisher connects the configured event transport and guards it with a circuit breaker.
// The returned func releases the connection.
func SetupPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	var (
		publisher messaging.Publisher
		closer    func()
	)
	switch cfg.Events.Driver {
	case config.EventsDriverNATS:
		nc, err := pkgnats.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
		if err != nil {
			return nil, nil, err
		}
		js, err := pkgnats.NewJetStreamContext(nc)
		if err != nil {
			return nil, nil, err
		}
		if err := pkgnats.EnsureStream(ctx, js, cfg.NATS.Stream, messaging.SubjectWildcard); err != nil {
			nc.Close()
			return nil, nil, err
		}
		logger.Info("Connected to NATS", "url", nc.ConnectedUrlRedacted(), "stream", cfg.NATS.Stream)
		publisher = pkgnats.NewNatsPublisher(js)
		closer = func() {
			if err := nc.Drain(); err != nil {
				logger.Error("Failed to drain NATS connection", "error", err)
			}
		}
	case config.EventsDriverKafka:
		kp, err := kafka.NewKafkaPublisher(ctx, cfg.Kafka)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to Kafka", "brokers", cfg.Kafka.Brokers)
		publisher = kp
		closer = kp.Close
	case config.EventsDriverNone:
		logger.Info("Event publishing is disabled")
		return messaging.NoopPublisher{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown events driver: %s", cfg.Events.Driver)
	}
	return messaging.NewBreakerPublisher(publisher, cfg.Resilience.CircuitBreaker), closer, nil
}

// NewRegistry returns a Prometheus registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
