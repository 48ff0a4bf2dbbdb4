package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off the store so a Tx-scoped store hands
// out repositories bound to that transaction.
type Store interface {
	Roles() Roles
	Permissions() Permissions
	AuditLogs() AuditLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and is rolled back otherwise, including on panic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported: Tx and
// WithTx on a Tx return an error.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Roles interface {
	// GetRoleByID returns a role with its permissions.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName returns a role with its permissions. Names match exactly.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns every role ordered by name, each with its permissions.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts the role and links role.Permissions by ID.
	// Returns ErrAlreadyExists when the name is taken.
	CreateRole(ctx context.Context, role domain.Role) error

	// ReplacePermissions drops every permission link of the role, links
	// permissionIDs instead and bumps updated_at.
	ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string, updatedAt time.Time) error

	// DeleteRole removes the role and its permission links.
	// Returns ErrNotFound when nothing was deleted.
	DeleteRole(ctx context.Context, roleID string) error
}

type Permissions interface {
	// ListAll returns the catalog in catalog order.
	ListAll(ctx context.Context) ([]domain.Permission, error)

	// GetByNames returns the permissions whose names are in names. Unknown
	// names are silently absent from the result.
	GetByNames(ctx context.Context, names []string) ([]domain.Permission, error)

	// UpsertPermission inserts p, or updates the group and position of the
	// permission with the same name. The stored ID never changes.
	UpsertPermission(ctx context.Context, p domain.Permission, position int) error
}

type AuditLogs interface {
	CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListByEntity returns the entries of one entity, newest first.
	ListByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditEntry, error)
}
