package grpc

import (
	"context"
	"time"

	"studybuddy-backend/internal/api/grpc/interceptor"
	"studybuddy-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall
// server status.
const ServiceName = "studybuddy"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker keeps a gRPC health server in step with database
// reachability.
type HealthChecker struct {
	server   *health.Server
	db       Pinger
	interval time.Duration
	timeout  time.Duration
}

func NewHealthChecker(db Pinger, interval time.Duration) *HealthChecker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthChecker{
		server:   health.NewServer(),
		db:       db,
		interval: interval,
		timeout:  2 * time.Second,
	}
}

func (c *HealthChecker) Server() *health.Server {
	return c.server
}

// Probe pings the database once and publishes the result.
func (c *HealthChecker) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := c.db.PingContext(ctx); err != nil {
		logger.Warn("Health probe failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return status
}

// Run probes until ctx is done, then marks the server as shutting down.
func (c *HealthChecker) Run(ctx context.Context) {
	c.Probe(ctx)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}

// NewServer builds the gRPC server that exposes the health service.
func NewServer(checker *HealthChecker) *grpc.Server {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptor.Recovery(),
		interceptor.Logging(),
	))
	healthpb.RegisterHealthServer(server, checker.Server())
	return server
}
