package middleware_grpc

import (
	"context"
	"time"

	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/telemetry"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

var tracer = otel.Tracer("GrpcMiddleware")

// UnaryTracingInterceptor continues the caller's trace from incoming
// metadata, opens a server span named after the full method and logs the
// request and the outcome.
func UnaryTracingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx, md := telemetry.ExtractIncoming(ctx)

		ctx, span := tracer.Start(ctx, info.FullMethod, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		var remoteAddr string
		if p, ok := peer.FromContext(ctx); ok {
			remoteAddr = p.Addr.String()
		}

		logger.Info(ctx, "GrpcMiddleware", logger.LogGRPCRequest(info.FullMethod, remoteAddr, md, req, "incoming::request")...)

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, code.String())
		} else {
			span.SetStatus(otelcodes.Ok, "")
		}

		logger.Info(ctx, "GrpcMiddleware", logger.LogGRPCResponse(info.FullMethod, code, resp, time.Since(start), "incoming::response")...)
		return resp, err
	}
}
