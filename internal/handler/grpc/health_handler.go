package grpc

import (
	"context"

	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/service"

	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ProductsService is the service name reported next to the overall ("")
// status.
const ProductsService = "ecommerce.products"

// HealthGRPCHandler answers grpc.health.v1.Health/Check from the same
// MongoDB probe as /healthz.
type HealthGRPCHandler struct {
	grpc_health_v1.UnimplementedHealthServer
	service *service.HealthService
}

var GrpcHealthHandlerTracer = otel.Tracer("GrpcHealthHandler")

func NewHealthGRPCHandler(svc *service.HealthService) *HealthGRPCHandler {
	return &HealthGRPCHandler{service: svc}
}

func (h *HealthGRPCHandler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	ctx, span := GrpcHealthHandlerTracer.Start(ctx, "GrpcHealthHandler.Check")
	defer span.End()

	switch req.GetService() {
	case "", ProductsService:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	st := grpc_health_v1.HealthCheckResponse_SERVING
	if !h.service.Check(ctx).Healthy() {
		logger.Warn(ctx, "GrpcHealthHandler.Check reports NOT_SERVING")
		st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return &grpc_health_v1.HealthCheckResponse{Status: st}, nil
}
