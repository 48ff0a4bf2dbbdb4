package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
)

type rolesRepo struct {
	db dbtx
}

const selectRole = `SELECT id, name, created_at, updated_at FROM roles`

func (r *rolesRepo) getOne(ctx context.Context, where string, arg any) (domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx, selectRole+` WHERE `+where, arg).
		Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}

	perms, err := r.permissionsOf(ctx, role.ID)
	if err != nil {
		return domain.Role{}, err
	}
	role.Permissions = perms[role.ID]
	return role, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return r.getOne(ctx, `name = ?`, name)
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, selectRole+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the connection before the second query; in-memory stores
	// have exactly one.
	rows.Close()

	perms, err := r.permissionsOf(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range roles {
		roles[i].Permissions = perms[roles[i].ID]
	}
	return roles, nil
}

// permissionsOf loads permission links keyed by role ID. An empty roleID
// loads the links of every role.
func (r *rolesRepo) permissionsOf(ctx context.Context, roleID string) (map[string][]domain.Permission, error) {
	query := `SELECT rp.role_id, p.id, p.name, p.group_name
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id`
	var args []any
	if roleID != "" {
		query += ` WHERE rp.role_id = ?`
		args = append(args, roleID)
	}
	query += ` ORDER BY p.position, p.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.Permission)
	for rows.Next() {
		var owner string
		var p domain.Permission
		if err := rows.Scan(&owner, &p.ID, &p.Name, &p.Group); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], p)
	}
	return out, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		role.ID, role.Name, role.CreatedAt.UTC(), role.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapConstraint(err)
	}

	ids := make([]string, len(role.Permissions))
	for i, p := range role.Permissions {
		ids[i] = p.ID
	}
	return r.link(ctx, role.ID, ids)
}

func (r *rolesRepo) link(ctx context.Context, roleID string, permissionIDs []string) error {
	for _, pid := range permissionIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			roleID, pid,
		)
		if err != nil {
			return fmt.Errorf("link permission %s: %w", pid, err)
		}
	}
	return nil
}

func (r *rolesRepo) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE roles SET updated_at = ? WHERE id = ?`, updatedAt.UTC(), roleID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = ?`, roleID); err != nil {
		return err
	}
	return r.link(ctx, roleID, permissionIDs)
}

func (r *rolesRepo) DeleteRole(ctx context.Context, roleID string) error {
	// Explicit so that links go even if foreign keys were disabled.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = ?`, roleID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, roleID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
