package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/stretchr/testify/require"
)

func TestRoleIsProtected(t *testing.T) {
	require.True(t, domain.Role{Name: "superadmin"}.IsProtected())
	require.False(t, domain.Role{Name: "SuperAdmin"}.IsProtected())
	require.False(t, domain.Role{Name: "superadmin "}.IsProtected())
	require.False(t, domain.Role{Name: "editor"}.IsProtected())
}

func TestRoleSnapshotSortsPermissions(t *testing.T) {
	r := domain.Role{
		ID:   "01",
		Name: "editor",
		Permissions: []domain.Permission{
			{Name: "Role Edit"}, {Name: "Post"}, {Name: "Role"},
		},
	}

	snap := r.Snapshot()
	require.Equal(t, "01", snap.ID)
	require.Equal(t, "editor", snap.Name)
	require.Equal(t, []string{"Post", "Role", "Role Edit"}, snap.Permissions)
}

func TestSnapshotOfRoleWithoutPermissions(t *testing.T) {
	snap := domain.Role{Name: "empty"}.Snapshot()
	require.NotNil(t, snap.Permissions)
	require.Empty(t, snap.Permissions)
}

func TestGroupPermissionsKeepsOrder(t *testing.T) {
	groups := domain.GroupPermissions([]domain.Permission{
		{Name: "Role", Group: "Roles"},
		{Name: "User", Group: "Users"},
		{Name: "Role Edit", Group: "Roles"},
	})

	require.Len(t, groups, 2)
	require.Equal(t, "Roles", groups[0].Name)
	require.Equal(t, "Role", groups[0].Permissions[0].Name)
	require.Equal(t, "Role Edit", groups[0].Permissions[1].Name)
	require.Equal(t, "Users", groups[1].Name)
}
