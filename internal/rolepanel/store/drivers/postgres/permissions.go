package postgres

import (
	"context"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/jackc/pgx/v5"
)

type permissionsRepo struct {
	q querier
}

func (r *permissionsRepo) ListAll(ctx context.Context) ([]domain.Permission, error) {
	return r.query(ctx, `SELECT id, name, group_name FROM permissions ORDER BY position, name`)
}

func (r *permissionsRepo) GetByNames(ctx context.Context, names []string) ([]domain.Permission, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.query(ctx,
		`SELECT id, name, group_name FROM permissions WHERE name = ANY($1) ORDER BY position, name`,
		names,
	)
}

func (r *permissionsRepo) UpsertPermission(ctx context.Context, p domain.Permission, position int) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO permissions (id, name, group_name, position) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET group_name = EXCLUDED.group_name, position = EXCLUDED.position`,
		p.ID, p.Name, p.Group, position,
	)
	return err
}

func (r *permissionsRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Permission, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Permission, error) {
		var p domain.Permission
		err := row.Scan(&p.ID, &p.Name, &p.Group)
		return p, err
	})
}
