package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/jackc/pgx/v5"
)

type auditLogsRepo struct {
	q querier
}

func (r *auditLogsRepo) CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	before, err := encodeSnapshot(e.Before)
	if err != nil {
		return err
	}
	after, err := encodeSnapshot(e.After)
	if err != nil {
		return err
	}

	_, err = r.q.Exec(ctx,
		`INSERT INTO audit_logs (id, action, title, entity, entity_id, actor, before_json, after_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, string(e.Action), e.Title, e.Entity, e.EntityID, e.Actor, before, after, e.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *auditLogsRepo) ListByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, action, title, entity, entity_id, actor, before_json, after_json, created_at
		FROM audit_logs WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC, id DESC`,
		entity, entityID,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditEntry, error) {
		var (
			e             domain.AuditEntry
			action        string
			before, after []byte
		)
		if err := row.Scan(&e.ID, &action, &e.Title, &e.Entity, &e.EntityID, &e.Actor, &before, &after, &e.CreatedAt); err != nil {
			return domain.AuditEntry{}, err
		}
		e.Action = domain.AuditAction(action)

		var err error
		if e.Before, err = decodeSnapshot(before); err != nil {
			return domain.AuditEntry{}, err
		}
		if e.After, err = decodeSnapshot(after); err != nil {
			return domain.AuditEntry{}, err
		}
		return e, nil
	})
}

// encodeSnapshot returns nil for a nil snapshot so the column stays NULL.
func encodeSnapshot(s *domain.RoleSnapshot) (*string, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	str := string(b)
	return &str, nil
}

func decodeSnapshot(raw []byte) (*domain.RoleSnapshot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s domain.RoleSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
