package grpc

import (
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthServer is the service's gRPC endpoint. It only serves the standard
// health checking protocol and reflection; orchestrators probe it for readiness.
type HealthServer struct {
	Server *grpc.Server
	health *health.Server
	name   string
	logger *logger.Logger
}

// NewHealthServer creates the gRPC server with tracing and logging wired in.
// The service starts as NOT_SERVING until SetServing is called.
func NewHealthServer(serviceName string, appLogger *logger.Logger) *HealthServer {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(middleware.LoggingInterceptor(appLogger)),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	hs := &HealthServer{
		Server: server,
		health: healthServer,
		name:   serviceName,
		logger: appLogger.Named("HealthServer"),
	}
	hs.SetServing(false)
	return hs
}

// SetServing flips both the named service and the overall server status.
func (h *HealthServer) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(h.name, status)
	h.health.SetServingStatus("", status)
	h.logger.Info("gRPC health status changed", zap.String("service", h.name), zap.String("status", status.String()))
}

// Shutdown marks the service NOT_SERVING and stops the server gracefully.
func (h *HealthServer) Shutdown() {
	h.SetServing(false)
	h.health.Shutdown()
	h.Server.GracefulStop()
}
