package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the single place errors become responses. Internal causes
// are logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	e := apperr.As(err)
	status := e.Kind.Status()
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, messageResponse{Message: e.Message})
}
