package grpc

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-checked service. The empty name reports the
// same status.
const ServiceName = "adoreshop.Storefront"

const probeTimeout = 2 * time.Second

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

// HealthServer exposes the standard gRPC health service backed by
// dependency probes.
type HealthServer struct {
	srv    *grpc.Server
	health *health.Server
	logger *zap.Logger

	mu     sync.Mutex
	probes map[string]Probe
}

func NewHealthServer(logger *zap.Logger) *HealthServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	s := &HealthServer{
		srv:    srv,
		health: hs,
		logger: logger,
		probes: make(map[string]Probe),
	}
	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
	return s
}

func (s *HealthServer) AddProbe(name string, p Probe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probes[name] = p
}

// Check runs every probe once and publishes the result. It returns the
// first failure in probe name order.
func (s *HealthServer) Check(ctx context.Context) error {
	s.mu.Lock()
	names := make([]string, 0, len(s.probes))
	for name := range s.probes {
		names = append(names, name)
	}
	probes := make(map[string]Probe, len(s.probes))
	for k, v := range s.probes {
		probes[k] = v
	}
	s.mu.Unlock()
	sort.Strings(names)

	var failed error
	for _, name := range names {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := probes[name](pctx)
		cancel()
		if err != nil {
			s.logger.Warn("Health probe failed", zap.String("probe", name), zap.Error(err))
			if failed == nil {
				failed = fmt.Errorf("%s: %w", name, err)
			}
		}
	}

	if failed != nil {
		s.setStatus(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	} else {
		s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return failed
}

// Run re-checks the probes every interval until ctx is done.
func (s *HealthServer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		_ = s.Check(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *HealthServer) setStatus(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *HealthServer) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.logger.Info("Health server started", zap.String("address", addr))
	return s.Serve(lis)
}

func (s *HealthServer) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}
