package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/audit"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/catalog"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var testCatalog = catalog.Catalog{Groups: []catalog.Group{
	{Name: "Posts", Permissions: []string{"posts.edit", "posts.delete", "posts.publish"}},
	{Name: "Roles", Permissions: []string{domain.CapabilityRole, domain.CapabilityRoleEdit}},
}}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	require.NoError(t, (&service.CatalogService{Store: s}).Sync(context.Background(), testCatalog))
	return s
}

func newService(t *testing.T) (*service.RolesService, *sqlite.Store, *recordingPublisher) {
	t.Helper()
	s := newStore(t)
	pub := &recordingPublisher{}
	return &service.RolesService{Store: s, Events: pub}, s, pub
}

func actorCtx() context.Context {
	return audit.WithActor(context.Background(), "tester")
}

func superadminID(t *testing.T, st store.Store) string {
	t.Helper()
	r, err := st.Roles().GetRoleByName(context.Background(), domain.ProtectedRoleName)
	require.NoError(t, err)
	return r.ID
}

func roleNames(t *testing.T, st store.Store) []string {
	t.Helper()
	roles, err := st.Roles().ListAll(context.Background())
	require.NoError(t, err)
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return names
}

func auditCount(t *testing.T, st store.Store, roleID string) int {
	t.Helper()
	entries, err := st.AuditLogs().ListByEntity(context.Background(), domain.AuditEntityRole, roleID)
	require.NoError(t, err)
	return len(entries)
}

type recordingPublisher struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (p *recordingPublisher) PublishAudit(_ context.Context, e domain.AuditEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, e)
	return p.err
}

// failingAudit fails update and delete records.
type failingAudit struct {
	*audit.Logger
}

var errAuditDown = errors.New("audit storage unavailable")

func (failingAudit) RecordDelete(context.Context, store.Store, string, *domain.RoleSnapshot) (domain.AuditEntry, error) {
	return domain.AuditEntry{}, errAuditDown
}

func (failingAudit) RecordUpdate(context.Context, store.Store, string, *domain.RoleSnapshot, *domain.RoleSnapshot) (domain.AuditEntry, error) {
	return domain.AuditEntry{}, errAuditDown
}
