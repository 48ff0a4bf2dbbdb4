package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_FILE", filepath.Join(dir, "panel.db"))
	t.Setenv("PERMISSIONS_FILE", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestImportThenExport(t *testing.T) {
	dir := isolateEnv(t)

	csvPath := filepath.Join(dir, "roles.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,permissions\nauditor,\"Activity Log, Dashboard\"\n"), 0o600))

	out := run(t, "import", csvPath)
	require.Contains(t, out, "Import completed: 1 created, 0 updated")

	xlsxPath := filepath.Join(dir, "template.xlsx")
	out = run(t, "export", xlsxPath)
	require.Contains(t, out, "wrote "+xlsxPath)

	// The exported template round trips through import as updates.
	out = run(t, "import", xlsxPath)
	require.Contains(t, out, "Import completed: 0 created, 1 updated")
}

func TestMigrateFlagOverridesEnv(t *testing.T) {
	dir := isolateEnv(t)
	other := filepath.Join(dir, "other.db")

	out := run(t, "--db-file", other, "migrate")
	require.Contains(t, out, "up to date")
	_, err := os.Stat(other)
	require.NoError(t, err)
}

func TestTokenCommand(t *testing.T) {
	dir := isolateEnv(t)
	secret := filepath.Join(dir, "secret")
	key := []byte("0123456789abcdef0123456789abcdef")
	require.NoError(t, os.WriteFile(secret, key, 0o600))
	t.Setenv("TOKEN_SECRET_FILE", secret)
	t.Setenv("TOKEN_ISSUER", "panel")

	tok := strings.TrimSpace(run(t, "token", "--subject", "alice", "--cap", "Role"))

	v, err := jwtx.NewVerifierHS256(key, "panel")
	require.NoError(t, err)
	claims, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, []string{"Role"}, claims.Capabilities)
}

func TestPrintEntry(t *testing.T) {
	var buf bytes.Buffer
	printEntry(&buf, domain.AuditEntry{
		Action:    domain.AuditActionDelete,
		Title:     "Delete Role",
		Actor:     "cli",
		EntityID:  "01J",
		Before:    &domain.RoleSnapshot{ID: "01J", Name: "editor", Permissions: []string{"Logs"}},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.Equal(t, "2026-01-02T03:04:05Z delete Delete Role  actor=cli role=editor permissions=[Logs]\n", buf.String())
}
