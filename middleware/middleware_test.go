// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natemartinsf/auto-bean/models"
)

func TestWithLogging_PassesThrough(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusNotFound, http.StatusInternalServerError} {
		handler := WithLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte("ballot"))
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/e/abcd1234", nil))

		assert.Equal(t, status, w.Code)
		assert.Equal(t, "ballot", w.Body.String())
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, models.RevealResponse{RevealStage: 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"reveal_stage":3}`, w.Body.String())
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusTooManyRequests, "slow down")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Too Many Requests", resp.Error)
	assert.Equal(t, "slow down", resp.Message)
	assert.Empty(t, resp.Code)
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Pale Ale","brewer":"Alice","extra":1}`))
		var parsed models.AddBeerRequest
		require.NoError(t, ParseJSONBody(req, &parsed))
		assert.Equal(t, "Pale Ale", parsed.Name)
		assert.Equal(t, "Alice", parsed.Brewer)
	})

	for name, body := range map[string]string{
		"malformed": `{invalid json}`,
		"empty":     "",
		"oversized": `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(body))
			var parsed models.AddBeerRequest
			assert.Error(t, ParseJSONBody(req, &parsed))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	cases := map[string]string{
		"192.168.1.50:54321": "192.168.1.50",
		"192.168.1.50":       "192.168.1.50",
		"[::1]:12345":        "::1",
	}
	for remote, want := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = remote
		assert.Equal(t, want, GetClientIP(req), remote)
	}
}

func TestGetClientIP_BehindRealIP(t *testing.T) {
	var got string
	handler := chimw.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClientIP(r)
	}))

	req := httptest.NewRequest("PUT", "/vote/e/v/b", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.195, 70.41.3.18")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.195", got)
}
