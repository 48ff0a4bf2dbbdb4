package http

import (
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
)

func toRoleInfo(r domain.Role) panelsdk.RoleInfo {
	return panelsdk.RoleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: r.PermissionNames(),
		Protected:   r.IsProtected(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toFormResponse(form service.RoleForm, action, actionType string) panelsdk.RoleFormResponse {
	resp := panelsdk.RoleFormResponse{
		RolePermissions:  form.RolePermissions,
		PermissionGroups: make([]panelsdk.PermissionGroupInfo, len(form.PermissionGroups)),
		Action:           action,
		ActionType:       actionType,
	}
	if resp.RolePermissions == nil {
		resp.RolePermissions = []string{}
	}
	if form.Role != nil {
		info := toRoleInfo(*form.Role)
		resp.Role = &info
	}

	for i, g := range form.PermissionGroups {
		perms := make([]panelsdk.PermissionInfo, len(g.Permissions))
		for j, p := range g.Permissions {
			perms[j] = panelsdk.PermissionInfo{ID: p.ID, Name: p.Name}
		}
		resp.PermissionGroups[i] = panelsdk.PermissionGroupInfo{Name: g.Name, Permissions: perms}
	}
	return resp
}

func toSnapshot(s *domain.RoleSnapshot) *panelsdk.RoleSnapshot {
	if s == nil {
		return nil
	}
	return &panelsdk.RoleSnapshot{ID: s.ID, Name: s.Name, Permissions: s.Permissions}
}

func toAuditEntryInfo(e domain.AuditEntry) panelsdk.AuditEntryInfo {
	return panelsdk.AuditEntryInfo{
		ID:        e.ID,
		Action:    string(e.Action),
		Title:     e.Title,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Actor:     e.Actor,
		Before:    toSnapshot(e.Before),
		After:     toSnapshot(e.After),
		CreatedAt: e.CreatedAt,
	}
}
