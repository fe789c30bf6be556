package grpcserver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggingUnary returns a unary server interceptor for structured logging.
func LoggingUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("dur", time.Since(start)),
		}
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			fields = append(fields, zap.String("peer", p.Addr.String()))
		}
		// probes are frequent; only failures are worth Info
		if err != nil {
			log.Info("grpc", append(fields, zap.Error(err))...)
		} else {
			log.Debug("grpc", fields...)
		}
		return resp, err
	}
}

// RecoverUnary converts a handler panic into codes.Internal. The panic value and
// stack go to the log, never to the caller.
func RecoverUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if v := recover(); v != nil {
				resp, err = nil, panicStatus(log, info.FullMethod, v)
			}
		}()
		return next(ctx, req)
	}
}

func panicStatus(log *zap.Logger, method string, v any) error {
	log.Error("grpc handler panic",
		zap.String("method", method),
		zap.String("reason", fmt.Sprint(v)),
		zap.Stack("stack"),
	)
	return status.Error(codes.Internal, "internal error")
}
