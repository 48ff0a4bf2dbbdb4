// Package audit records role mutations inside the caller's transaction.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/aussiebroadwan/rolepanel/pkg/idx"
)

type ctxKey struct{}

// WithActor attaches the acting principal to ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFromContext returns the acting principal, or "unknown".
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// Logger writes audit entries through a store. Pass the Tx-scoped store so
// the entry commits or rolls back with the mutation it describes.
type Logger struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) RecordCreate(ctx context.Context, st store.Store, title string, after *domain.RoleSnapshot) (domain.AuditEntry, error) {
	return l.record(ctx, st, domain.AuditActionCreate, title, nil, after)
}

func (l *Logger) RecordUpdate(ctx context.Context, st store.Store, title string, before, after *domain.RoleSnapshot) (domain.AuditEntry, error) {
	return l.record(ctx, st, domain.AuditActionUpdate, title, before, after)
}

func (l *Logger) RecordDelete(ctx context.Context, st store.Store, title string, before *domain.RoleSnapshot) (domain.AuditEntry, error) {
	return l.record(ctx, st, domain.AuditActionDelete, title, before, nil)
}

func (l *Logger) record(
	ctx context.Context,
	st store.Store,
	action domain.AuditAction,
	title string,
	before, after *domain.RoleSnapshot,
) (domain.AuditEntry, error) {
	subject := after
	if subject == nil {
		subject = before
	}
	if subject == nil {
		return domain.AuditEntry{}, fmt.Errorf("audit %s: no snapshot", action)
	}

	now := l.now()
	entry := domain.AuditEntry{
		ID:        idx.NewAt(now).String(),
		Action:    action,
		Title:     title,
		Entity:    domain.AuditEntityRole,
		EntityID:  subject.ID,
		Actor:     ActorFromContext(ctx),
		Before:    before,
		After:     after,
		CreatedAt: now,
	}

	if err := st.AuditLogs().CreateAuditEntry(ctx, entry); err != nil {
		return domain.AuditEntry{}, fmt.Errorf("write audit entry: %w", err)
	}
	return entry, nil
}
