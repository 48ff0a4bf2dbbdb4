package sqlite

import (
	"context"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
)

type permissionsRepo struct {
	db dbtx
}

func (r *permissionsRepo) ListAll(ctx context.Context) ([]domain.Permission, error) {
	return r.query(ctx, `SELECT id, name, group_name FROM permissions ORDER BY position, name`)
}

func (r *permissionsRepo) GetByNames(ctx context.Context, names []string) ([]domain.Permission, error) {
	if len(names) == 0 {
		return nil, nil
	}

	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	return r.query(ctx,
		`SELECT id, name, group_name FROM permissions WHERE name IN (`+placeholders(len(names))+`) ORDER BY position, name`,
		args...,
	)
}

func (r *permissionsRepo) UpsertPermission(ctx context.Context, p domain.Permission, position int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO permissions (id, name, group_name, position) VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET group_name = excluded.group_name, position = excluded.position`,
		p.ID, p.Name, p.Group, position,
	)
	return err
}

func (r *permissionsRepo) query(ctx context.Context, query string, args ...any) ([]domain.Permission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Group); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
