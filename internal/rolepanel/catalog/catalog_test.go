package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/catalog"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogHoldsRoleCapabilities(t *testing.T) {
	perms := catalog.Default().Permissions()

	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Name
	}
	require.Contains(t, names, domain.CapabilityRole)
	require.Contains(t, names, domain.CapabilityRoleEdit)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          "groups: []\n",
		"unknown field":  "groups:\n  - name: A\n    perms: [x]\n",
		"unnamed group":  "groups:\n  - permissions: [x]\n",
		"blank perm":     "groups:\n  - name: A\n    permissions: ['  ']\n",
		"duplicate perm": "groups:\n  - name: A\n    permissions: [x]\n  - name: B\n    permissions: [x]\n",
		"padded perm":    "groups:\n  - name: A\n    permissions: [' Role Edit']\n",
		"trailing space": "groups:\n  - name: A\n    permissions: [\"Role \"]\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse(strings.NewReader(in))
			require.ErrorIs(t, err, catalog.ErrInvalid)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups:\n  - name: Posts\n    permissions: [Post, Post Edit]\n"), 0o600))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	require.Equal(t, []domain.Permission{
		{Name: "Post", Group: "Posts"},
		{Name: "Post Edit", Group: "Posts"},
	}, c.Permissions())

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	def, err := catalog.Load("")
	require.NoError(t, err)
	require.Equal(t, catalog.Default(), def)
}
