// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/natemartinsf/auto-bean/auth"
	"github.com/natemartinsf/auto-bean/cliparse"
	"github.com/natemartinsf/auto-bean/db"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

// TestJWTSecret signs tokens minted by AdminToken
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir() and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  db.TypeSQLite,
		DatabaseURL:   "test.db",
		JWTSecret:     TestJWTSecret,
		AuthModel:     cliparse.AuthModelOrganization,
		BaseURL:       "http://localhost:3318",
		CORSOrigins:   []string{"*"},
		LogLevel:      "error",
		LogFormat:     "text",
		VoteRateLimit: 1000,
		VoteRateBurst: 1000,
	}
}

// CreateTestOrganization inserts an organization
func CreateTestOrganization(t *testing.T, conn *sql.DB, name string) models.Organization {
	t.Helper()

	org, err := store.New(conn).CreateOrganization(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test organization: %v", err)
	}
	return org
}

// CreateTestAdmin inserts an admin already linked to a user ID
func CreateTestAdmin(t *testing.T, conn *sql.DB, orgID, email string, isSuper bool) models.Admin {
	t.Helper()

	userID := store.NewID()
	admin, err := store.New(conn).CreateAdmin(context.Background(), models.Admin{
		UserID:         &userID,
		Email:          email,
		OrganizationID: orgID,
		IsSuper:        isSuper,
	})
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return admin
}

// CreateTestEvent inserts an event with max_points 5
func CreateTestEvent(t *testing.T, conn *sql.DB, orgID, name string) models.Event {
	t.Helper()

	event, err := store.New(conn).CreateEvent(context.Background(), models.Event{
		OrganizationID: orgID,
		Name:           name,
		MaxPoints:      models.DefaultMaxPoints,
	})
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return event
}

// AssignTestAdmin assigns an admin to an event
func AssignTestAdmin(t *testing.T, conn *sql.DB, eventID, adminID string) {
	t.Helper()

	if err := store.New(conn).AssignEventAdmin(context.Background(), eventID, adminID); err != nil {
		t.Fatalf("Failed to assign test admin: %v", err)
	}
}

// AddTestBeer adds a beer (with its brewer token) to an event
func AddTestBeer(t *testing.T, conn *sql.DB, eventID, name string) models.Beer {
	t.Helper()

	beer, _, err := store.New(conn).AddBeer(context.Background(), models.Beer{
		EventID: eventID,
		Name:    name,
		Brewer:  name + " Brewer",
	})
	if err != nil {
		t.Fatalf("Failed to create test beer: %v", err)
	}
	return beer
}

// CreateTestVoter inserts a voter and returns its ID
func CreateTestVoter(t *testing.T, conn *sql.DB, eventID string) string {
	t.Helper()

	voter, err := store.New(conn).CreateVoter(context.Background(), eventID, store.NewID())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
	return voter.ID
}

// CastTestVote writes a vote row directly, bypassing budget checks
func CastTestVote(t *testing.T, conn *sql.DB, voterID, beerID string, points int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO votes (id, voter_id, beer_id, points, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, store.NewID(), voterID, beerID, points, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// InsertTestShortCode stores a fixed code for a target
func InsertTestShortCode(t *testing.T, conn *sql.DB, code string, targetType models.TargetType, targetID string) {
	t.Helper()

	_, err := store.New(conn).InsertShortCode(context.Background(), models.ShortCode{
		Code:       code,
		TargetType: targetType,
		TargetID:   targetID,
	})
	if err != nil {
		t.Fatalf("Failed to create test short code: %v", err)
	}
}

// SetTestRevealStage forces an event's reveal stage
func SetTestRevealStage(t *testing.T, conn *sql.DB, eventID string, stage int) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE events SET reveal_stage = $1 WHERE id = $2`, stage, eventID); err != nil {
		t.Fatalf("Failed to set reveal stage: %v", err)
	}
}

// AdminToken mints a bearer token for an admin's linked user
func AdminToken(t *testing.T, admin models.Admin) string {
	t.Helper()

	if admin.UserID == nil {
		t.Fatal("admin has no linked user")
	}
	return Token(t, *admin.UserID, admin.Email)
}

// Token mints a bearer token for an arbitrary principal
func Token(t *testing.T, userID, email string) string {
	t.Helper()

	token, err := auth.IssueToken(TestJWTSecret, auth.Principal{UserID: userID, Email: email}, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns an Authorization header map for MakeRequest
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
