// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shortcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

const (
	Alphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	Length      = 8
	MaxAttempts = 5
)

// Store is the persistence the resolver needs. *store.Queries satisfies it.
type Store interface {
	ShortCodeExists(ctx context.Context, code string) (bool, error)
	InsertShortCode(ctx context.Context, sc models.ShortCode) (models.ShortCode, error)
	LookupShortCode(ctx context.Context, code string, targetType models.TargetType) (string, error)
}

// Resolver mints and resolves short codes.
type Resolver struct {
	store Store
	draw  func() (string, error)
}

func New(s Store) *Resolver {
	return &Resolver{store: s, draw: Draw}
}

// Draw returns a random code from the crypto-backed nanoid generator.
func Draw() (string, error) {
	code, err := gonanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("generate short code: %w", err)
	}
	return code, nil
}

// Normalize lowercases and trims user input.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Valid reports whether code is a well-formed normalized code.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(Alphabet, rune(code[i])) {
			return false
		}
	}
	return true
}

// Generate draws a code not currently present in the store. The code is
// not reserved; use Reserve when the code will be shown to anyone.
func (r *Resolver) Generate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		code, err := r.draw()
		if err != nil {
			return "", err
		}
		taken, err := r.store.ShortCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check short code: %w", err)
		}
		if !taken {
			return code, nil
		}
		slog.Warn("short code collision", "attempt", attempt)
	}
	return "", errs.ErrCodeSpaceExhausted
}

// Reserve generates a code and persists it for (targetType, targetID) in
// one step. The unique constraint on short_codes.code is authoritative; the
// existence check only avoids a failed insert in the common case.
func (r *Resolver) Reserve(ctx context.Context, targetType models.TargetType, targetID string) (string, error) {
	if !targetType.Valid() {
		return "", errs.Invalidf("unknown short code type %q", targetType)
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		code, err := r.draw()
		if err != nil {
			return "", err
		}

		taken, err := r.store.ShortCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check short code: %w", err)
		}
		if taken {
			slog.Warn("short code collision", "attempt", attempt, "target_type", targetType)
			continue
		}

		_, err = r.store.InsertShortCode(ctx, models.ShortCode{
			Code:       code,
			TargetType: targetType,
			TargetID:   targetID,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			slog.Warn("short code taken on insert", "attempt", attempt, "target_type", targetType)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("insert short code: %w", err)
		}
		return code, nil
	}

	return "", errs.ErrCodeSpaceExhausted
}

// ReserveBatch reserves one code per target, in order. On failure it
// returns the codes reserved so far along with the error.
func (r *Resolver) ReserveBatch(ctx context.Context, targetType models.TargetType, targetIDs []string) ([]string, error) {
	codes := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		code, err := r.Reserve(ctx, targetType, id)
		if err != nil {
			return codes, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// Resolve maps a code to its target ID. ok is false when the code is
// malformed, unknown, or registered under a different type.
func (r *Resolver) Resolve(ctx context.Context, code string, targetType models.TargetType) (id string, ok bool, err error) {
	code = Normalize(code)
	if !Valid(code) || !targetType.Valid() {
		return "", false, nil
	}

	id, err = r.store.LookupShortCode(ctx, code, targetType)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolve short code: %w", err)
	}
	return id, true, nil
}
