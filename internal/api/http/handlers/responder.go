package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	derr "github.com/ozzus/flypy/internal/domain/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func mapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, derr.ErrSourceInvalid):
		return http.StatusBadGateway
	case errors.Is(err, derr.ErrInvalidQuery), errors.Is(err, derr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, derr.ErrSourceTemporary), errors.Is(err, derr.ErrCatalogEmpty):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func errorMessage(err error) string {
	switch mapHTTPStatus(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusServiceUnavailable:
		return "source temporarily unavailable"
	case http.StatusGatewayTimeout:
		return "deadline exceeded"
	default:
		return "upstream error"
	}
}
