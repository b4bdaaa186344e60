// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scope_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natemartinsf/auto-bean/auth"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/store"
	"github.com/natemartinsf/auto-bean/testutil"
)

func TestBootstrap_InvitesFirstSuperAdmin(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)

	created, err := scope.Bootstrap(ctx, st, "Owner@Example.com", "Default")
	require.NoError(t, err)
	assert.True(t, created)

	// The invite links on first sign-in and yields a super scope
	authz := scope.NewAuthorizer(st, scope.ModelOrganization)
	s, err := authz.Compute(ctx, auth.Principal{UserID: store.NewID(), Email: "owner@example.com"})
	require.NoError(t, err)
	assert.Equal(t, scope.KindSuper, s.Kind)

	// A second run is a no-op
	created, err = scope.Bootstrap(ctx, st, "other@example.com", "Default")
	require.NoError(t, err)
	assert.False(t, created)

	n, err := st.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBootstrap_ReusesExistingOrganization(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	org := testutil.CreateTestOrganization(t, conn, "Club")

	created, err := scope.Bootstrap(ctx, st, "owner@example.com", "Club")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := st.GetAdminByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, org.ID, admin.OrganizationID)
	assert.True(t, admin.IsSuper)
	assert.Nil(t, admin.UserID)
}

func TestBootstrap_NoEmail(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	created, err := scope.Bootstrap(context.Background(), store.New(conn), "", "Default")
	require.NoError(t, err)
	assert.False(t, created)
}
