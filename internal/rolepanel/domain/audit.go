package domain

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditEntityRole is the entity name recorded for role mutations.
const AuditEntityRole = "role"

// ActorCLI is recorded when a mutation originates from the command line.
const ActorCLI = "cli"

// AuditEntry records one mutation. Before is nil for creates and After is
// nil for deletes.
type AuditEntry struct {
	ID        string        `json:"id"`
	Action    AuditAction   `json:"action"`
	Title     string        `json:"title"`
	Entity    string        `json:"entity"`
	EntityID  string        `json:"entity_id"`
	Actor     string        `json:"actor"`
	Before    *RoleSnapshot `json:"before,omitempty"`
	After     *RoleSnapshot `json:"after,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
