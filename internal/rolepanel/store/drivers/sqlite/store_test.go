package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store/drivers/sqlite"
	"github.com/aussiebroadwan/rolepanel/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedPermissions(t *testing.T, s store.Store, names ...string) []domain.Permission {
	t.Helper()
	ctx := context.Background()
	for i, n := range names {
		require.NoError(t, s.Permissions().UpsertPermission(ctx, domain.Permission{
			ID: idx.New().String(), Name: n, Group: "General",
		}, i))
	}
	perms, err := s.Permissions().GetByNames(ctx, names)
	require.NoError(t, err)
	require.Len(t, perms, len(names))
	return perms
}

func newRole(name string, perms ...domain.Permission) domain.Role {
	now := time.Now().UTC()
	return domain.Role{ID: idx.New().String(), Name: name, Permissions: perms, CreatedAt: now, UpdatedAt: now}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestRoleCRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	perms := seedPermissions(t, s, "Role", "Role Edit", "User")

	editor := newRole("editor", perms[0], perms[1])
	require.NoError(t, s.Roles().CreateRole(ctx, editor))
	require.NoError(t, s.Roles().CreateRole(ctx, newRole("auditor")))

	got, err := s.Roles().GetRoleByID(ctx, editor.ID)
	require.NoError(t, err)
	require.Equal(t, "editor", got.Name)
	require.Equal(t, []string{"Role", "Role Edit"}, got.PermissionNames())
	require.WithinDuration(t, editor.CreatedAt, got.CreatedAt, time.Second)

	byName, err := s.Roles().GetRoleByName(ctx, "editor")
	require.NoError(t, err)
	require.Equal(t, editor.ID, byName.ID)

	all, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "auditor", all[0].Name)
	require.Empty(t, all[0].Permissions)
	require.Equal(t, "editor", all[1].Name)
	require.Len(t, all[1].Permissions, 2)

	t.Run("duplicate name", func(t *testing.T) {
		err := s.Roles().CreateRole(ctx, newRole("editor"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("replace permissions", func(t *testing.T) {
		later := time.Now().Add(time.Minute)
		require.NoError(t, s.Roles().ReplacePermissions(ctx, editor.ID, []string{perms[2].ID}, later))

		got, err := s.Roles().GetRoleByID(ctx, editor.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"User"}, got.PermissionNames())
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("replace on missing role", func(t *testing.T) {
		err := s.Roles().ReplacePermissions(ctx, "missing", nil, time.Now())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Roles().DeleteRole(ctx, editor.ID))

		_, err := s.Roles().GetRoleByID(ctx, editor.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Roles().DeleteRole(ctx, editor.ID), store.ErrNotFound)
	})
}

func TestPermissionUpsertKeepsID(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := domain.Permission{ID: idx.New().String(), Name: "Role", Group: "Old"}
	require.NoError(t, s.Permissions().UpsertPermission(ctx, first, 5))
	require.NoError(t, s.Permissions().UpsertPermission(ctx, domain.Permission{
		ID: idx.New().String(), Name: "Role", Group: "Roles",
	}, 0))
	require.NoError(t, s.Permissions().UpsertPermission(ctx, domain.Permission{
		ID: idx.New().String(), Name: "Audit", Group: "Audit",
	}, 1))

	all, err := s.Permissions().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.ID, all[0].ID)
	require.Equal(t, "Roles", all[0].Group)
	require.Equal(t, "Audit", all[1].Name)

	found, err := s.Permissions().GetByNames(ctx, []string{"Role", "Nope"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	none, err := s.Permissions().GetByNames(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Roles().CreateRole(ctx, newRole("ghost")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Roles().GetRoleByName(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Roles().CreateRole(ctx, newRole("kept"))
	})
	require.NoError(t, err)

	_, err = s.Roles().GetRoleByName(ctx, "kept")
	require.NoError(t, err)
}

func TestNestedTxIsRejected(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.Error(t, err)
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.Error(t, err)
}

func TestAuditLogs(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	base := time.Now().UTC()

	snap := &domain.RoleSnapshot{ID: "r1", Name: "editor", Permissions: []string{"Role"}}
	entries := []domain.AuditEntry{
		{ID: idx.NewAt(base).String(), Action: domain.AuditActionCreate, Title: "Create Role", After: snap, CreatedAt: base},
		{ID: idx.NewAt(base.Add(time.Second)).String(), Action: domain.AuditActionUpdate, Title: "Update Role", Before: snap, After: snap, CreatedAt: base.Add(time.Second)},
		{ID: idx.NewAt(base.Add(2 * time.Second)).String(), Action: domain.AuditActionDelete, Title: "Delete Role", Before: snap, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		e.Entity, e.EntityID, e.Actor = domain.AuditEntityRole, "r1", "tester"
		require.NoError(t, s.AuditLogs().CreateAuditEntry(ctx, e))
	}

	got, err := s.AuditLogs().ListByEntity(ctx, domain.AuditEntityRole, "r1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, domain.AuditActionDelete, got[0].Action)
	require.Nil(t, got[0].After)
	require.Equal(t, snap, got[0].Before)
	require.Equal(t, domain.AuditActionCreate, got[2].Action)
	require.Nil(t, got[2].Before)
	require.Equal(t, "tester", got[2].Actor)

	other, err := s.AuditLogs().ListByEntity(ctx, domain.AuditEntityRole, "r2")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestConcurrentWriteTransactions(t *testing.T) {
	ctx := context.Background()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "rolepanel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	perms := seedPermissions(t, s, "Role", "Role Edit")
	roles := []domain.Role{newRole("editor"), newRole("auditor")}
	for _, r := range roles {
		require.NoError(t, s.Roles().CreateRole(ctx, r))
	}

	const workers, rounds = 8, 20
	errs := make(chan error, workers*rounds)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			role := roles[w%len(roles)]
			for i := range rounds {
				errs <- s.WithTx(ctx, func(tx store.Tx) error {
					// Read before write, the same shape as a role update.
					if _, err := tx.Roles().GetRoleByID(ctx, role.ID); err != nil {
						return err
					}
					ids := []string{perms[i%len(perms)].ID}
					if err := tx.Roles().ReplacePermissions(ctx, role.ID, ids, time.Now().UTC()); err != nil {
						return err
					}
					return tx.AuditLogs().CreateAuditEntry(ctx, domain.AuditEntry{
						ID:        idx.New().String(),
						Entity:    domain.AuditEntityRole,
						EntityID:  role.ID,
						Action:    domain.AuditActionUpdate,
						Title:     "Update Role",
						Actor:     "tester",
						CreatedAt: time.Now().UTC(),
					})
				})
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	for _, r := range roles {
		history, err := s.AuditLogs().ListByEntity(ctx, domain.AuditEntityRole, r.ID)
		require.NoError(t, err)
		require.Len(t, history, workers/len(roles)*rounds)
	}
}
