// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// WithLogging wraps a handler with request logging
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		// Log request
		slog.Debug("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"request_id", chimw.GetReqID(r.Context()),
		)

		// Call the next handler
		next.ServeHTTP(ww, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", duration.Milliseconds(),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// WriteError maps a domain or store error to its HTTP response.
// Anything unrecognized is logged and reported as a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var e *errs.Error
	switch {
	case errors.As(err, &e):
	case errors.Is(err, store.ErrNotFound):
		e = errs.NotFound("not found")
	case errors.Is(err, store.ErrAlreadyExists):
		e = errs.Conflict("already exists")
	case errors.Is(err, store.ErrVotingClosed):
		e = errs.Conflict("voting is closed")
	case errors.Is(err, store.ErrBudgetExceeded):
		e = errs.Invalid(err.Error())
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", chimw.GetReqID(r.Context()),
		)
		ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := e.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "code", e.Code, "error", err)
	}
	JSONResponse(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Details,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return err
	}
	return nil
}

// GetClientIP returns the client address without its port. Proxy headers
// are resolved earlier by chi's RealIP, which rewrites RemoteAddr.
func GetClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
