package audit

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
)

// DefaultSubject is the NATS subject audit entries are published on.
const DefaultSubject = "rolepanel.audit"

// Publisher is the subset of pkg/bus used for audit events.
type Publisher interface {
	Publish(ctx context.Context, subj string, v any) error
}

// BusPublisher forwards committed audit entries to a message bus.
type BusPublisher struct {
	Bus     Publisher
	Subject string
}

func (p *BusPublisher) PublishAudit(ctx context.Context, e domain.AuditEntry) error {
	subj := p.Subject
	if subj == "" {
		subj = DefaultSubject
	}
	return p.Bus.Publish(ctx, subj+"."+string(e.Action), e)
}

// DecodeEntry parses an entry published by BusPublisher.
func DecodeEntry(data []byte) (domain.AuditEntry, error) {
	var e domain.AuditEntry
	err := json.Unmarshal(data, &e)
	return e, err
}
