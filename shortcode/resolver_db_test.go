// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shortcode_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/shortcode"
	"github.com/natemartinsf/auto-bean/store"
	"github.com/natemartinsf/auto-bean/testutil"
)

func TestResolver_AgainstDatabase(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	r := shortcode.New(st)
	ctx := context.Background()

	eventCode, err := r.Reserve(ctx, models.TargetEvent, "event-1")
	require.NoError(t, err)
	manageCode, err := r.Reserve(ctx, models.TargetManage, "event-1")
	require.NoError(t, err)
	assert.NotEqual(t, eventCode, manageCode)

	id, ok, err := r.Resolve(ctx, eventCode, models.TargetEvent)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "event-1", id)

	// A manage code is never accepted where an event code is expected
	_, ok, err = r.Resolve(ctx, manageCode, models.TargetEvent)
	require.NoError(t, err)
	assert.False(t, ok)

	// The unique constraint rejects the same code under another type
	_, err = st.InsertShortCode(ctx, models.ShortCode{Code: eventCode, TargetType: models.TargetVoter, TargetID: "v"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}
