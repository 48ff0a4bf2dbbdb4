package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/jackc/pgx/v5"
)

type rolesRepo struct {
	q querier
}

const selectRole = `SELECT id, name, created_at, updated_at FROM roles`

func scanRole(row pgx.Row) (domain.Role, error) {
	var role domain.Role
	err := row.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	return role, err
}

func (r *rolesRepo) getOne(ctx context.Context, where string, arg any) (domain.Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, selectRole+` WHERE `+where, arg))
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
	return r.getOne(ctx, `id = $1`, id)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return r.getOne(ctx, `name = $1`, name)
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.Query(ctx, selectRole+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Role, error) {
		return scanRole(row)
	})
	if err != nil {
		return nil, err
	}

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
		query += ` WHERE rp.role_id = $1`
		args = append(args, roleID)
	}
	query += ` ORDER BY p.position, p.name`

	rows, err := r.q.Query(ctx, query, args...)
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
	_, err := r.q.Exec(ctx,
		`INSERT INTO roles (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
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
	if len(permissionIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO role_permissions (role_id, permission_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT DO NOTHING`,
		roleID, permissionIDs,
	)
	if err != nil {
		return fmt.Errorf("link permissions: %w", err)
	}
	return nil
}

func (r *rolesRepo) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE roles SET updated_at = $1 WHERE id = $2`, updatedAt.UTC(), roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return err
	}
	return r.link(ctx, roleID, permissionIDs)
}

func (r *rolesRepo) DeleteRole(ctx context.Context, roleID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return err
	}

	tag, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
