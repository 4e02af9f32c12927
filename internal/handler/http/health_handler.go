package http

import (
	"net/http"

	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/service"

	"go.opentelemetry.io/otel"
)

type HealthHandler struct {
	service *service.HealthService
}

var HttpHealthHandlerTracer = otel.Tracer("HttpHealthHandler")

func NewHealthHandler(service *service.HealthService) *HealthHandler {
	return &HealthHandler{
		service: service,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpHealthHandlerTracer.Start(r.Context(), "HttpHealthHandler.Check")
	defer span.End()

	status := h.service.Check(ctx)

	overall, code := service.StatusUp, http.StatusOK
	if !status.Healthy() {
		overall, code = service.StatusDown, http.StatusInternalServerError
	}

	writeJSON(w, code, map[string]interface{}{
		"status":   overall,
		"hostname": logger.Hostname(),
		"data": map[string]string{
			"mongodb": status.Mongo,
		},
	})
}
