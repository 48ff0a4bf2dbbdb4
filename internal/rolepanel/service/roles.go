package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/audit"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/roleimport"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/aussiebroadwan/rolepanel/pkg/idx"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
)

// Audit titles.
const (
	TitleCreateRole = "Create Role"
	TitleUpdateRole = "Update Role"
	TitleDeleteRole = "Delete Role"
	TitleImportRole = "Import Role"
)

// AuditRecorder writes audit entries through the given (Tx-scoped) store.
type AuditRecorder interface {
	RecordCreate(ctx context.Context, st store.Store, title string, after *domain.RoleSnapshot) (domain.AuditEntry, error)
	RecordUpdate(ctx context.Context, st store.Store, title string, before, after *domain.RoleSnapshot) (domain.AuditEntry, error)
	RecordDelete(ctx context.Context, st store.Store, title string, before *domain.RoleSnapshot) (domain.AuditEntry, error)
}

// RecordParser turns an uploaded file into import records.
type RecordParser interface {
	Parse(filename string, r io.Reader) ([]domain.ImportRecord, error)
}

// TemplateWriter renders the import template.
type TemplateWriter interface {
	WriteTemplate(w io.Writer, roles []domain.Role) error
}

// EventPublisher receives audit entries after their transaction commits.
type EventPublisher interface {
	PublishAudit(ctx context.Context, e domain.AuditEntry) error
}

// RolesService administers roles. Zero-valued collaborators fall back to
// audit.Logger and roleimport.Sheet; a nil Events disables publication.
type RolesService struct {
	Store    store.Store
	Audit    AuditRecorder
	Importer RecordParser
	Template TemplateWriter
	Events   EventPublisher
	Now      func() time.Time
}

// RoleForm is the data behind the create and edit forms. Role is nil for
// the create form.
type RoleForm struct {
	Role             *domain.Role
	RolePermissions  []string
	PermissionGroups []domain.PermissionGroup
}

// ImportResult counts what an import did.
type ImportResult struct {
	Created int
	Updated int
}

func (s *RolesService) auditor() AuditRecorder {
	if s.Audit != nil {
		return s.Audit
	}
	return &audit.Logger{Now: s.Now}
}

func (s *RolesService) importer() RecordParser {
	if s.Importer != nil {
		return s.Importer
	}
	return roleimport.Sheet{}
}

func (s *RolesService) template() TemplateWriter {
	if s.Template != nil {
		return s.Template
	}
	return roleimport.Sheet{}
}

func (s *RolesService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListRoles returns every role ordered by name with its permissions.
func (s *RolesService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// CreateView returns the grouped catalog for an empty role form.
func (s *RolesService) CreateView(ctx context.Context) (RoleForm, error) {
	perms, err := s.Store.Permissions().ListAll(ctx)
	if err != nil {
		return RoleForm{}, err
	}
	return RoleForm{
		RolePermissions:  []string{},
		PermissionGroups: domain.GroupPermissions(perms),
	}, nil
}

// GetEditView returns a role, its permission names and the grouped catalog.
func (s *RolesService) GetEditView(ctx context.Context, roleID string) (RoleForm, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return RoleForm{}, ErrRoleNotFound
		}
		return RoleForm{}, err
	}

	perms, err := s.Store.Permissions().ListAll(ctx)
	if err != nil {
		return RoleForm{}, err
	}

	return RoleForm{
		Role:             &role,
		RolePermissions:  role.PermissionNames(),
		PermissionGroups: domain.GroupPermissions(perms),
	}, nil
}

// CreateRole persists a new role holding the named permissions and audits
// it in the same transaction.
func (s *RolesService) CreateRole(ctx context.Context, name string, permissions []string) (domain.Role, error) {
	l := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, validationf("name is required")
	}

	var (
		role  domain.Role
		entry domain.AuditEntry
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if role, err = s.insertRole(ctx, tx, name, permissions); err != nil {
			return err
		}
		entry, err = s.auditor().RecordCreate(ctx, tx, TitleCreateRole, role.Snapshot())
		return err
	})
	if err != nil {
		err = classify("create role", err)
		l.Warn("failed to create role", "error", err, "name", name)
		return domain.Role{}, err
	}

	l.Info("role created", "role_id", role.ID, "name", role.Name, "permissions", len(role.Permissions))
	s.publish(ctx, entry)
	return role, nil
}

func (s *RolesService) insertRole(ctx context.Context, tx store.Store, name string, permissions []string) (domain.Role, error) {
	if _, err := tx.Roles().GetRoleByName(ctx, name); err == nil {
		return domain.Role{}, validationf("role %q already exists", name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, err
	}

	perms, err := resolvePermissions(ctx, tx, permissions)
	if err != nil {
		return domain.Role{}, err
	}

	now := s.now()
	role := domain.Role{
		ID:          idx.NewAt(now).String(),
		Name:        name,
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.Roles().CreateRole(ctx, role); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Role{}, validationf("role %q already exists", name)
		}
		return domain.Role{}, err
	}
	return role, nil
}

// UpdateRole replaces the permission set of a role wholesale and audits the
// before and after state. The protected role is never modified.
func (s *RolesService) UpdateRole(ctx context.Context, roleID string, permissions []string) (domain.Role, error) {
	l := slogx.FromContext(ctx)

	var (
		after domain.Role
		entry domain.AuditEntry
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		before, err := loadMutable(ctx, tx, roleID)
		if err != nil {
			return err
		}
		if after, err = s.replacePermissions(ctx, tx, before, permissions); err != nil {
			return err
		}
		entry, err = s.auditor().RecordUpdate(ctx, tx, TitleUpdateRole, before.Snapshot(), after.Snapshot())
		return err
	})
	if err != nil {
		err = classify("update role", err)
		l.Warn("failed to update role", "error", err, "role_id", roleID)
		return domain.Role{}, err
	}

	l.Info("role updated", "role_id", after.ID, "name", after.Name, "permissions", len(after.Permissions))
	s.publish(ctx, entry)
	return after, nil
}

func (s *RolesService) replacePermissions(ctx context.Context, tx store.Store, role domain.Role, permissions []string) (domain.Role, error) {
	perms, err := resolvePermissions(ctx, tx, permissions)
	if err != nil {
		return domain.Role{}, err
	}

	ids := make([]string, len(perms))
	for i, p := range perms {
		ids[i] = p.ID
	}
	if err := tx.Roles().ReplacePermissions(ctx, role.ID, ids, s.now()); err != nil {
		return domain.Role{}, err
	}
	return tx.Roles().GetRoleByID(ctx, role.ID)
}

// DeleteRole removes a role and its permission links and audits the prior
// state. Any failure rolls everything back.
func (s *RolesService) DeleteRole(ctx context.Context, roleID string) error {
	l := slogx.FromContext(ctx)

	var (
		before domain.Role
		entry  domain.AuditEntry
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if before, err = loadMutable(ctx, tx, roleID); err != nil {
			return err
		}
		if err := tx.Roles().DeleteRole(ctx, roleID); err != nil {
			return err
		}
		entry, err = s.auditor().RecordDelete(ctx, tx, TitleDeleteRole, before.Snapshot())
		return err
	})
	if err != nil {
		err = classify("delete role", err)
		l.Warn("failed to delete role", "error", err, "role_id", roleID)
		return err
	}

	l.Info("role deleted", "role_id", roleID, "name", before.Name)
	s.publish(ctx, entry)
	return nil
}

// loadMutable fetches a role that the admin surface may change.
func loadMutable(ctx context.Context, st store.Store, roleID string) (domain.Role, error) {
	role, err := st.Roles().GetRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, ErrRoleNotFound
		}
		return domain.Role{}, err
	}
	if role.IsProtected() {
		slogx.FromContext(ctx).Warn("attempted to modify protected role", "role_id", roleID)
		return domain.Role{}, ErrRoleProtected
	}
	return role, nil
}

// History returns the audit trail of a role, newest first. The trail of a
// deleted role stays readable.
func (s *RolesService) History(ctx context.Context, roleID string) ([]domain.AuditEntry, error) {
	entries, err := s.Store.AuditLogs().ListByEntity(ctx, domain.AuditEntityRole, roleID)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	if _, err := s.Store.Roles().GetRoleByID(ctx, roleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return []domain.AuditEntry{}, nil
}

// ExportImportTemplate writes the xlsx import template with one example row
// per editable role.
func (s *RolesService) ExportImportTemplate(ctx context.Context, w io.Writer) error {
	roles, err := s.Store.Roles().ListAll(ctx)
	if err != nil {
		return err
	}
	roles = slices.DeleteFunc(roles, domain.Role.IsProtected)
	return s.template().WriteTemplate(w, roles)
}

// ImportRoles creates or updates one role per record in a single
// transaction. The first failing row aborts and rolls back the whole batch.
func (s *RolesService) ImportRoles(ctx context.Context, filename string, r io.Reader) (ImportResult, error) {
	l := slogx.FromContext(ctx)

	records, err := s.importer().Parse(filename, r)
	if err != nil {
		return ImportResult{}, validationf("%v", err)
	}
	if len(records) == 0 {
		return ImportResult{}, validationf("import file contains no roles")
	}

	var (
		result  ImportResult
		entries []domain.AuditEntry
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, rec := range records {
			entry, created, err := s.importRecord(ctx, tx, rec)
			if err != nil {
				return &TransactionError{Op: "import roles", Err: fmt.Errorf("row %d: %w", rec.Row, err)}
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		err = classify("import roles", err)
		l.Warn("role import rolled back", "error", err, "file", filename)
		return ImportResult{}, err
	}

	l.Info("roles imported", "file", filename, "created", result.Created, "updated", result.Updated)
	s.publish(ctx, entries...)
	return result, nil
}

func (s *RolesService) importRecord(ctx context.Context, tx store.Store, rec domain.ImportRecord) (domain.AuditEntry, bool, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return domain.AuditEntry{}, false, validationf("name is required")
	}

	existing, err := tx.Roles().GetRoleByName(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		role, err := s.insertRole(ctx, tx, name, rec.Permissions)
		if err != nil {
			return domain.AuditEntry{}, false, err
		}
		entry, err := s.auditor().RecordCreate(ctx, tx, TitleImportRole, role.Snapshot())
		return entry, true, err

	case err != nil:
		return domain.AuditEntry{}, false, err

	case existing.IsProtected():
		return domain.AuditEntry{}, false, fmt.Errorf("%w: %q", ErrRoleProtected, name)
	}

	after, err := s.replacePermissions(ctx, tx, existing, rec.Permissions)
	if err != nil {
		return domain.AuditEntry{}, false, err
	}
	entry, err := s.auditor().RecordUpdate(ctx, tx, TitleImportRole, existing.Snapshot(), after.Snapshot())
	return entry, false, err
}

// publish hands committed entries to the event publisher. Failures are
// logged only; the mutation has already committed.
func (s *RolesService) publish(ctx context.Context, entries ...domain.AuditEntry) {
	if s.Events == nil {
		return
	}
	for _, e := range entries {
		if err := s.Events.PublishAudit(ctx, e); err != nil {
			slogx.FromContext(ctx).Error("failed to publish audit entry", "error", err, "audit_id", e.ID)
		}
	}
}

// resolvePermissions maps names to catalog permissions. Blank and repeated
// names are ignored; unknown names are a validation error.
func resolvePermissions(ctx context.Context, st store.Store, names []string) ([]domain.Permission, error) {
	want := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" && !slices.Contains(want, n) {
			want = append(want, n)
		}
	}
	if len(want) == 0 {
		return nil, nil
	}

	found, err := st.Permissions().GetByNames(ctx, want)
	if err != nil {
		return nil, err
	}
	if len(found) == len(want) {
		return found, nil
	}

	var missing []string
	for _, n := range want {
		if !slices.ContainsFunc(found, func(p domain.Permission) bool { return p.Name == n }) {
			missing = append(missing, n)
		}
	}
	return nil, validationf("unknown permissions: %s", strings.Join(missing, ", "))
}
