package rolepanel_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
	"github.com/stretchr/testify/require"
)

/*
 * Helpers for role panel end-to-end tests. Each test gets a fresh SQLite
 * database and a server built exactly as `rolepanel serve` builds it.
 */

const testSecret = "e2e-secret-0123456789abcdef012345"

type panel struct {
	URL string
	cfg app.Config
}

// startPanel boots the application on an httptest server. mutate may adjust
// the config before startup.
func startPanel(t *testing.T, mutate func(*app.Config)) *panel {
	t.Helper()
	dir := t.TempDir()
	secretFile := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(secretFile, []byte(testSecret), 0o600))

	cfg := app.Config{
		TokenIssuer:         "rolepanel-e2e",
		TokenSecretFile:     secretFile,
		DatabaseDriver:      app.DriverSQLite,
		DatabaseFile:        filepath.Join(dir, "panel.db"),
		AuditSubject:        "rolepanel.audit",
		ImportMaxBytes:      1 << 20,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		ShutdownGracePeriod: time.Second,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	application, err := app.New(context.Background(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Close()
	})

	return &panel{URL: srv.URL, cfg: cfg}
}

// client returns an API client whose token carries capabilities.
func (p *panel) client(t *testing.T, subject string, capabilities ...string) *panelsdk.Client {
	t.Helper()
	signer, err := app.InitTokenSigner(p.cfg)
	require.NoError(t, err)
	tok, err := app.MintToken(signer, p.cfg, subject, capabilities, time.Minute)
	require.NoError(t, err)
	return panelsdk.NewClient(p.URL, tok)
}

// admin returns a client holding every role capability.
func (p *panel) admin(t *testing.T) *panelsdk.Client {
	return p.client(t, "admin", domain.CapabilityRole, domain.CapabilityRoleEdit)
}

func findRole(t *testing.T, c *panelsdk.Client, name string) (panelsdk.RoleInfo, bool) {
	t.Helper()
	list, err := c.ListRoles(context.Background())
	require.NoError(t, err)
	for _, r := range list.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return panelsdk.RoleInfo{}, false
}

func requireAPIError(t *testing.T, err error, status int, code string) *panelsdk.APIError {
	t.Helper()
	require.Error(t, err)
	var apiErr *panelsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
