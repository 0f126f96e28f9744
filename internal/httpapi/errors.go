package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// Error codes in the JSON error envelope.
const (
	codeInvalidRequest   = "invalid_request"
	codeNotFound         = "not_found"
	codeRouteNotFound    = "route_not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeUnprocessable    = "unprocessable"
	codeInternal         = "internal"
)

// writeError writes {"error", "message", "request_id"} with status.
func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string) {
	payload := map[string]any{
		"error":   code,
		"message": message,
	}
	if id := middleware.GetReqID(ctx); id != "" {
		payload["request_id"] = id
	}
	writeJSONResponse(w, status, payload)
}

// writeDomainError maps a domain error to its HTTP status.
func (h *Handlers) writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrUnknownPlace):
		writeError(ctx, w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, types.ErrInvalidID), errors.Is(err, types.ErrInvalidData), errors.Is(err, types.ErrInvalidOp):
		writeError(ctx, w, http.StatusBadRequest, codeInvalidRequest, err.Error())
	case errors.Is(err, types.ErrIndexOutOfRange), errors.Is(err, types.ErrPlaceNotFound),
		errors.Is(err, types.ErrEmptyCatalog), errors.Is(err, types.ErrNoPlaces), errors.Is(err, types.ErrUnknownMode):
		writeError(ctx, w, http.StatusUnprocessableEntity, codeUnprocessable, err.Error())
	default:
		h.logger.Error("request failed", zapRequestID(ctx), zap.Error(err))
		writeError(ctx, w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
