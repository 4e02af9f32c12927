package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/model"

	"github.com/go-chi/chi/v5"
)

const (
	msgServerError = "Server error"
	msgNotFound    = "Product not found"
	msgEmptyBody   = "Request body cannot be empty"
	msgBadPayload  = "Invalid request payload"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ProductResponse struct {
	Message string         `json:"message"`
	Product *model.Product `json:"product"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a tagged error to its status code. Only validation detail
// is shown to the client; store failures are logged and replaced.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logger.Error(ctx, "Unexpected error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgServerError})
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
	case apperror.KindNotFound:
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	case apperror.KindStore:
		logger.Error(ctx, "Store error", slog.String("error", appErr.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgServerError})
	default:
		logger.Error(ctx, "Unknown error kind", slog.String("kind", appErr.Kind.String()), slog.String("error", appErr.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgServerError})
	}
}

// pathParam returns the decoded value of a route parameter. chi matches on
// RawPath when the request carried escaped characters such as %2F.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
