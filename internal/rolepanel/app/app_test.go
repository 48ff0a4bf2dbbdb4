package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/pkg/jwtx"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	secret := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(secret, []byte("0123456789abcdef0123456789abcdef\n"), 0o600))

	return Config{
		TokenIssuer:     "rolepanel",
		TokenSecretFile: secret,
		DatabaseDriver:  DriverSQLite,
		DatabaseFile:    filepath.Join(dir, "panel.db"),
		AuditSubject:    "rolepanel.audit",
		ImportMaxBytes:  1 << 20,
		Env:             "test",
		LogLevel:        "error",
		LogFormat:       "text",
	}
}

func TestLoadTokenSecret(t *testing.T) {
	cfg := testConfig(t)

	secret, err := LoadTokenSecret(cfg.TokenSecretFile, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, "0123456789abcdef0123456789abcdef", string(secret))

	weak := filepath.Join(t.TempDir(), "weak")
	require.NoError(t, os.WriteFile(weak, []byte("short"), 0o600))
	_, err = LoadTokenSecret(weak, slogx.Discard())
	require.ErrorIs(t, err, jwtx.ErrWeakKey)

	eph, err := LoadTokenSecret("", slogx.Discard())
	require.NoError(t, err)
	require.Len(t, eph, jwtx.MinKeySize)
}

func TestInitTokenSignerNeedsSecretFile(t *testing.T) {
	_, err := InitTokenSigner(Config{})
	require.Error(t, err)
}

func TestOpenCoreSeedsCatalog(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	core, err := OpenCore(ctx, cfg, slogx.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Close() })
	require.Nil(t, core.Bus)

	super, err := core.Store.Roles().GetRoleByName(ctx, domain.ProtectedRoleName)
	require.NoError(t, err)
	require.NotEmpty(t, super.Permissions)
	require.Contains(t, super.PermissionNames(), domain.CapabilityRoleEdit)
}

func TestOpenStoreRejectsBadDriver(t *testing.T) {
	ctx := context.Background()

	_, err := OpenStore(ctx, Config{DatabaseDriver: "oracle"})
	require.ErrorContains(t, err, "oracle")

	_, err = OpenStore(ctx, Config{DatabaseDriver: DriverPostgres})
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestApplicationServesAuthenticatedRoutes(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	signer, err := InitTokenSigner(cfg)
	require.NoError(t, err)
	tok, err := MintToken(signer, cfg, "ops", []string{domain.CapabilityRole}, 0)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/roles", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
