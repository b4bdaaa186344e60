// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/natemartinsf/auto-bean/auth"
	"github.com/natemartinsf/auto-bean/cliparse"
	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/shortcode"
	"github.com/natemartinsf/auto-bean/store"
	"github.com/natemartinsf/auto-bean/testutil"
)

type testEnv struct {
	db    *sql.DB
	st    *store.Store
	authz *scope.Authorizer
	codes *shortcode.Resolver
	cfg   cliparse.Config
}

func newTestEnv(t *testing.T, model scope.Model) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	st := store.New(db)
	cfg := testutil.GetTestConfig()
	cfg.AuthModel = string(model)

	return &testEnv{
		db:    db,
		st:    st,
		authz: scope.NewAuthorizer(st, model),
		codes: shortcode.New(st),
		cfg:   cfg,
	}
}

func (e *testEnv) events() *EventHandler {
	return NewEventHandler(e.st, e.authz, e.codes, e.cfg)
}

// asAdmin attaches the scope RequireAdmin would compute for admin
func (e *testEnv) asAdmin(t *testing.T, req *http.Request, admin models.Admin) *http.Request {
	t.Helper()

	s, err := e.authz.Compute(req.Context(), auth.Principal{UserID: *admin.UserID, Email: admin.Email})
	if err != nil {
		t.Fatalf("Failed to compute scope: %v", err)
	}
	return req.WithContext(middleware.WithScope(req.Context(), s))
}

// reserve gives a target a short code, as the create handlers do
func (e *testEnv) reserve(t *testing.T, targetType models.TargetType, id string) string {
	t.Helper()

	code, err := e.codes.Reserve(context.Background(), targetType, id)
	if err != nil {
		t.Fatalf("Failed to reserve %s code: %v", targetType, err)
	}
	return code
}

// request builds a request with path values already set
func request(method, path string, body interface{}, pathValues map[string]string) *http.Request {
	req := testutil.MakeRequest(method, path, body, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func record(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func decodeRecorded(w *httptest.ResponseRecorder, v interface{}) error {
	return json.NewDecoder(w.Body).Decode(v)
}
