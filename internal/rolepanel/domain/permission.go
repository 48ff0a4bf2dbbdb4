package domain

// Capabilities gating the role admin surface.
const (
	CapabilityRole     = "Role"
	CapabilityRoleEdit = "Role Edit"
)

type Permission struct {
	ID    string
	Name  string
	Group string
}

// PermissionGroup is a presentation grouping of permissions, in catalog order.
type PermissionGroup struct {
	Name        string
	Permissions []Permission
}

// GroupPermissions buckets perms by Group, preserving the order in which
// groups and permissions first appear.
func GroupPermissions(perms []Permission) []PermissionGroup {
	var groups []PermissionGroup
	index := make(map[string]int)
	for _, p := range perms {
		i, ok := index[p.Group]
		if !ok {
			i = len(groups)
			index[p.Group] = i
			groups = append(groups, PermissionGroup{Name: p.Group})
		}
		groups[i].Permissions = append(groups[i].Permissions, p)
	}
	return groups
}
