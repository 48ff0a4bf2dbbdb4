package domain

import (
	"slices"
	"time"
)

// ProtectedRoleName is the role that can be neither edited nor deleted
// through the admin surface.
const ProtectedRoleName = "superadmin"

type Role struct {
	ID          string
	Name        string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsProtected reports whether the role is the immutable superadmin.
// Matching is exact; "SuperAdmin" is an ordinary role.
func (r Role) IsProtected() bool {
	return r.Name == ProtectedRoleName
}

// PermissionNames returns the sorted names of the role's permissions.
func (r Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	slices.Sort(names)
	return names
}

// Snapshot captures the auditable state of the role.
func (r Role) Snapshot() *RoleSnapshot {
	return &RoleSnapshot{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: r.PermissionNames(),
	}
}

// RoleSnapshot is what audit entries record for a role.
type RoleSnapshot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
