// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shortcode

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

// memStore is an in-memory Store. alwaysTaken makes every existence check
// report a collision; insertConflicts makes the next N inserts fail as if
// another writer won the race.
type memStore struct {
	mu              sync.Mutex
	codes           map[string]models.ShortCode
	alwaysTaken     bool
	insertConflicts int
	existsCalls     int
}

func newMemStore() *memStore {
	return &memStore{codes: map[string]models.ShortCode{}}
}

func (m *memStore) ShortCodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existsCalls++
	if m.alwaysTaken {
		return true, nil
	}
	_, ok := m.codes[code]
	return ok, nil
}

func (m *memStore) InsertShortCode(_ context.Context, sc models.ShortCode) (models.ShortCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertConflicts > 0 {
		m.insertConflicts--
		return models.ShortCode{}, store.ErrAlreadyExists
	}
	if _, ok := m.codes[sc.Code]; ok {
		return models.ShortCode{}, store.ErrAlreadyExists
	}
	m.codes[sc.Code] = sc
	return sc, nil
}

func (m *memStore) LookupShortCode(_ context.Context, code string, t models.TargetType) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.codes[code]
	if !ok || sc.TargetType != t {
		return "", store.ErrNotFound
	}
	return sc.TargetID, nil
}

func TestDraw_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Draw()
		require.NoError(t, err)
		assert.Len(t, code, Length)
		assert.True(t, Valid(code), "code %q outside alphabet", code)
	}
}

func TestGenerate_Unique(t *testing.T) {
	r := New(newMemStore())
	seen := make(map[string]bool, 10000)

	for i := 0; i < 10000; i++ {
		code, err := r.Generate(context.Background())
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate code %q after %d generations", code, i)
		seen[code] = true
	}
}

func TestGenerate_ExhaustsAfterFiveCollisions(t *testing.T) {
	ms := newMemStore()
	ms.alwaysTaken = true
	r := New(ms)

	_, err := r.Generate(context.Background())
	assert.True(t, errors.Is(err, errs.ErrCodeSpaceExhausted))
	assert.Equal(t, MaxAttempts, ms.existsCalls)
}

func TestReserve_ExhaustsAfterFiveCollisions(t *testing.T) {
	ms := newMemStore()
	ms.alwaysTaken = true
	r := New(ms)

	_, err := r.Reserve(context.Background(), models.TargetVoter, "voter-1")
	assert.True(t, errors.Is(err, errs.ErrCodeSpaceExhausted))
	assert.Equal(t, errs.CodeCodeSpaceExhausted, errs.CodeOf(err))
	assert.Equal(t, MaxAttempts, ms.existsCalls)
	assert.Empty(t, ms.codes, "nothing may be persisted on exhaustion")
}

func TestReserve_RetriesOnInsertConflict(t *testing.T) {
	ms := newMemStore()
	ms.insertConflicts = 2
	r := New(ms)

	code, err := r.Reserve(context.Background(), models.TargetBrewer, "token-1")
	require.NoError(t, err)
	assert.Equal(t, 3, ms.existsCalls)
	assert.Equal(t, "token-1", ms.codes[code].TargetID)
}

func TestReserve_InsertConflictsExhaust(t *testing.T) {
	ms := newMemStore()
	ms.insertConflicts = MaxAttempts
	r := New(ms)

	_, err := r.Reserve(context.Background(), models.TargetEvent, "event-1")
	assert.True(t, errors.Is(err, errs.ErrCodeSpaceExhausted))
}

func TestReserve_DeterministicDraws(t *testing.T) {
	ms := newMemStore()
	ms.codes["aaaaaaaa"] = models.ShortCode{Code: "aaaaaaaa", TargetType: models.TargetEvent, TargetID: "x"}

	draws := []string{"aaaaaaaa", "bbbbbbbb"}
	r := New(ms)
	r.draw = func() (string, error) {
		next := draws[0]
		draws = draws[1:]
		return next, nil
	}

	code, err := r.Reserve(context.Background(), models.TargetManage, "event-2")
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbb", code)
}

func TestReserve_DrawError(t *testing.T) {
	r := New(newMemStore())
	r.draw = func() (string, error) { return "", fmt.Errorf("entropy unavailable") }

	_, err := r.Reserve(context.Background(), models.TargetEvent, "e")
	assert.ErrorContains(t, err, "entropy unavailable")
}

func TestReserve_UnknownType(t *testing.T) {
	r := New(newMemStore())
	_, err := r.Reserve(context.Background(), models.TargetType("ballot"), "p")
	assert.True(t, errors.Is(err, errs.ErrInvalid))
}

func TestReserveBatch(t *testing.T) {
	ms := newMemStore()
	r := New(ms)

	ids := []string{"v1", "v2", "v3"}
	codes, err := r.ReserveBatch(context.Background(), models.TargetVoter, ids)
	require.NoError(t, err)
	require.Len(t, codes, len(ids))
	for i, code := range codes {
		assert.Equal(t, ids[i], ms.codes[code].TargetID)
		assert.Equal(t, models.TargetVoter, ms.codes[code].TargetType)
	}
}

func TestReserveBatch_StopsOnExhaustion(t *testing.T) {
	ms := newMemStore()
	r := New(ms)
	// Every draw after the first collides
	r.draw = func() (string, error) { return "aaaaaaaa", nil }

	codes, err := r.ReserveBatch(context.Background(), models.TargetVoter, []string{"v1", "v2"})
	assert.True(t, errors.Is(err, errs.ErrCodeSpaceExhausted))
	assert.Equal(t, []string{"aaaaaaaa"}, codes)
}

func TestResolve(t *testing.T) {
	ms := newMemStore()
	r := New(ms)
	ctx := context.Background()

	code, err := r.Reserve(ctx, models.TargetEvent, "event-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		code   string
		typ    models.TargetType
		wantID string
		wantOK bool
	}{
		{"exact", code, models.TargetEvent, "event-1", true},
		{"uppercase", "  " + upper(code) + " ", models.TargetEvent, "event-1", true},
		{"wrong type", code, models.TargetManage, "", false},
		{"unknown", "zzzzzzz9", models.TargetEvent, "", false},
		{"malformed", "short", models.TargetEvent, "", false},
		{"bad chars", "abc-1234", models.TargetEvent, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok, err := r.Resolve(ctx, tt.code, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}

	// Idempotent
	first, _, _ := r.Resolve(ctx, code, models.TargetEvent)
	second, _, _ := r.Resolve(ctx, code, models.TargetEvent)
	assert.Equal(t, first, second)
}

func TestNormalizeAndValid(t *testing.T) {
	assert.Equal(t, "ab12cd34", Normalize(" AB12cd34\n"))
	assert.True(t, Valid("ab12cd34"))
	assert.False(t, Valid("AB12CD34"))
	assert.False(t, Valid("ab12cd345"))
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
