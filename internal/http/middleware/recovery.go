package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/logger"
	"go.uber.org/zap"
)

// Recovery turns a panic into a 500 with the generic error body
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.WithRequest(log, r.Method, r.URL.Path, RequestIDFromContext(r.Context())).Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Error: "Something went wrong!"})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
