// Package grpcserver serves the standard gRPC health service for probes.
package grpcserver

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Service is the health service name reported for the notes API.
const Service = "notes.v1.Notes"

// Health is a gRPC server exposing grpc.health.v1.Health.
type Health struct {
	srv *grpc.Server
	hs  *health.Server
	log *zap.Logger
}

// NewHealth builds the server in NOT_SERVING state. dev enables reflection.
func NewHealth(log *zap.Logger, dev bool) *Health {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoverUnary(log),
			LoggingUnary(log),
		),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	if dev {
		reflection.Register(s)
	}
	h := &Health{srv: s, hs: hs, log: log}
	h.SetServing(false)
	return h
}

// SetServing flips both the overall and the notes service status.
func (h *Health) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.hs.SetServingStatus("", st)
	h.hs.SetServingStatus(Service, st)
}

// Serve blocks serving on lis until Shutdown.
func (h *Health) Serve(lis net.Listener) error {
	h.log.Info("grpc health listening", zap.String("addr", lis.Addr().String()))
	return h.srv.Serve(lis)
}

// Shutdown marks the server NOT_SERVING and stops it gracefully, or hard when ctx ends first.
func (h *Health) Shutdown(ctx context.Context) {
	h.hs.Shutdown()
	done := make(chan struct{})
	go func() {
		h.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		h.srv.Stop()
	}
}
