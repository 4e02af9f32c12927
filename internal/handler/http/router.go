package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"ecommerce-api/internal/logger"
	middleware_http "ecommerce-api/internal/middleware/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the product API and the health check behind the trace
// middleware. A trailing slash is ignored.
func NewRouter(products *ProductHandler, health *HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware_http.TraceMiddleware())
	r.Use(recoverJSON)
	r.Use(middleware.StripSlashes)

	products.RegisterRoutes(r)
	r.Get("/healthz", health.Check)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})
	return r
}

// recoverJSON answers a panicking handler with the usual error envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error(r.Context(), "Handler panic",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("stack", string(debug.Stack())),
			)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgServerError})
		}()
		next.ServeHTTP(w, r)
	})
}
