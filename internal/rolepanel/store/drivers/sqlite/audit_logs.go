package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
)

type auditLogsRepo struct {
	db dbtx
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

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, action, title, entity, entity_id, actor, before_json, after_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Action), e.Title, e.Entity, e.EntityID, e.Actor, before, after, e.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *auditLogsRepo) ListByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, action, title, entity, entity_id, actor, before_json, after_json, created_at
		FROM audit_logs WHERE entity = ? AND entity_id = ?
		ORDER BY created_at DESC, id DESC`,
		entity, entityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var (
			e             domain.AuditEntry
			action        string
			before, after sql.NullString
		)
		if err := rows.Scan(&e.ID, &action, &e.Title, &e.Entity, &e.EntityID, &e.Actor, &before, &after, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = domain.AuditAction(action)
		if e.Before, err = decodeSnapshot(mapNullString(before)); err != nil {
			return nil, err
		}
		if e.After, err = decodeSnapshot(mapNullString(after)); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func encodeSnapshot(s *domain.RoleSnapshot) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return mapStringNull(string(b)), nil
}

func decodeSnapshot(raw string) (*domain.RoleSnapshot, error) {
	if raw == "" {
		return nil, nil
	}
	var s domain.RoleSnapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
