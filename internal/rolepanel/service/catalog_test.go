package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/catalog"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/stretchr/testify/require"
)

func TestCatalogSyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &service.CatalogService{Store: st}

	perms, err := st.Permissions().ListAll(ctx)
	require.NoError(t, err)
	firstID := perms[0].ID

	require.NoError(t, svc.Sync(ctx, testCatalog))

	again, err := st.Permissions().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, again, 5)
	require.Equal(t, firstID, again[0].ID)

	super, err := st.Roles().GetRoleByName(ctx, domain.ProtectedRoleName)
	require.NoError(t, err)
	require.Len(t, super.Permissions, 5)
}

func TestCatalogSyncGrantsNewPermissionsToSuperadmin(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	extended := catalog.Catalog{Groups: append(testCatalog.Groups,
		catalog.Group{Name: "Users", Permissions: []string{"User"}},
	)}
	require.NoError(t, (&service.CatalogService{Store: st}).Sync(ctx, extended))

	super, err := st.Roles().GetRoleByName(ctx, domain.ProtectedRoleName)
	require.NoError(t, err)
	require.Contains(t, super.PermissionNames(), "User")
}

func TestCatalogSyncRejectsInvalidCatalog(t *testing.T) {
	err := (&service.CatalogService{Store: newStore(t)}).Sync(context.Background(), catalog.Catalog{})
	require.ErrorIs(t, err, catalog.ErrInvalid)
}
