package panelsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	// Error is a machine readable code, e.g. "invalid_request", "not_found".
	Error string `json:"error"`

	// ErrorDescription is a human readable message.
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Role Types
// ============================================================================

// RoleInfo is a role with the names of its permissions.
type RoleInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	Protected   bool      `json:"protected"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListRolesResponse is returned from GET /v1/roles.
type ListRolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// PermissionInfo describes one assignable permission.
type PermissionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PermissionGroupInfo is a named group of permissions as shown on forms.
type PermissionGroupInfo struct {
	Name        string           `json:"name"`
	Permissions []PermissionInfo `json:"permissions"`
}

// Form action types.
const (
	ActionTypeCreate = "create"
	ActionTypeUpdate = "update"
)

// RoleFormResponse carries what the create and edit forms render.
// Role and RolePermissions are empty for the create form.
type RoleFormResponse struct {
	Role             *RoleInfo             `json:"role,omitempty"`
	RolePermissions  []string              `json:"role_permissions"`
	PermissionGroups []PermissionGroupInfo `json:"permission_groups"`

	// Action is the route the form submits to.
	Action     string `json:"action"`
	ActionType string `json:"action_type"`
}

// CreateRoleRequest is the body of POST /v1/roles.
type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest is the body of PUT /v1/roles/{id}. The permission set
// replaces the current one entirely.
type UpdateRoleRequest struct {
	Permissions []string `json:"permissions"`
}

// RoleMutationResponse is returned after a role is created or updated.
type RoleMutationResponse struct {
	Message string   `json:"message"`
	Role    RoleInfo `json:"role"`
}

// MessageResponse carries a flash message only.
type MessageResponse struct {
	Message string `json:"message"`
}

// ImportResponse is returned from POST /v1/roles/import.
type ImportResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
}

// ============================================================================
// Audit Types
// ============================================================================

// RoleSnapshot is the audited state of a role.
type RoleSnapshot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// AuditEntryInfo is one audit log record.
type AuditEntryInfo struct {
	ID        string        `json:"id"`
	Action    string        `json:"action"`
	Title     string        `json:"title"`
	Entity    string        `json:"entity"`
	EntityID  string        `json:"entity_id"`
	Actor     string        `json:"actor"`
	Before    *RoleSnapshot `json:"before,omitempty"`
	After     *RoleSnapshot `json:"after,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ListAuditEntriesResponse is returned from GET /v1/roles/{id}/history.
type ListAuditEntriesResponse struct {
	Entries []AuditEntryInfo `json:"entries"`
}

// ============================================================================
// Health Check Types
// ============================================================================

// HealthResponse represents the response from health check endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks contains the result of each readiness dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Bus      string `json:"bus,omitempty"`
}
