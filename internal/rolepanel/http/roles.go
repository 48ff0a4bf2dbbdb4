package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/aussiebroadwan/rolepanel/pkg/httpx"
	"github.com/aussiebroadwan/rolepanel/pkg/idx"
	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
)

// maxRoleBodyBytes bounds JSON bodies of create and update requests.
const maxRoleBodyBytes = 1 << 20

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList handles the list roles endpoint
//
//	@Summary		List all roles
//	@Description	Returns every role ordered by name with its permission names. Requires the Role capability.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	panelsdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	panelsdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	panelsdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		500	{object}	panelsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roles, err := h.RolesService.ListRoles(ctx)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve roles")
		return
	}

	response := panelsdk.ListRolesResponse{
		Roles: make([]panelsdk.RoleInfo, len(roles)),
	}
	for i, role := range roles {
		response.Roles[i] = toRoleInfo(role)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleCreateForm returns the data for an empty role form
//
//	@Summary		Role creation form
//	@Description	Returns the grouped permission catalog and the route the form submits to.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	panelsdk.RoleFormResponse	"Empty role form"
//	@Failure		401	{object}	panelsdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	panelsdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		500	{object}	panelsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles/create [get].
func (h *RolesHandler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := h.RolesService.CreateView(ctx)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load permissions")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toFormResponse(form, "/v1/roles", panelsdk.ActionTypeCreate))
}

// HandleCreate creates a role
//
//	@Summary		Create role
//	@Description	Creates a role holding the named permissions. The creation is audited.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		panelsdk.CreateRoleRequest		true	"Role name and permission names"
//	@Success		201		{object}	panelsdk.RoleMutationResponse	"Role created"
//	@Failure		400		{object}	panelsdk.ErrorResponse			"Invalid request - empty or duplicate name, unknown permission"
//	@Failure		401		{object}	panelsdk.ErrorResponse			"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	panelsdk.ErrorResponse			"Forbidden - missing required capability"
//	@Failure		422		{object}	panelsdk.ErrorResponse			"Transaction rolled back"
//	@Failure		429		{object}	panelsdk.ErrorResponse			"Too many requests"
//	@Security		BearerAuth
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req panelsdk.CreateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	role, err := h.RolesService.CreateRole(ctx, strings.TrimSpace(req.Name), req.Permissions)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create role")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, panelsdk.RoleMutationResponse{
		Message: "Role created",
		Role:    toRoleInfo(role),
	})
}

// HandleEditForm returns the data for a role's edit form
//
//	@Summary		Role edit form
//	@Description	Returns the role, its current permission names and the grouped permission catalog.
//	@Description	Requires the Role and Role Edit capabilities.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string						true	"Role ID"
//	@Success		200	{object}	panelsdk.RoleFormResponse	"Populated role form"
//	@Failure		401	{object}	panelsdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	panelsdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		404	{object}	panelsdk.ErrorResponse		"Role not found"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id}/edit [get].
func (h *RolesHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathRoleID(w, r)
	if !ok {
		return
	}

	form, err := h.RolesService.GetEditView(ctx, id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toFormResponse(form, "/v1/roles/"+id, panelsdk.ActionTypeUpdate))
}

// HandleUpdate replaces a role's permissions
//
//	@Summary		Update role
//	@Description	Replaces the role's permission set with the supplied one. Permissions not listed are removed.
//	@Description	The superadmin role cannot be updated and answers 404.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Role ID"
//	@Param			request	body		panelsdk.UpdateRoleRequest		true	"New permission set"
//	@Success		200		{object}	panelsdk.RoleMutationResponse	"Role updated"
//	@Failure		400		{object}	panelsdk.ErrorResponse			"Invalid request - unknown permission"
//	@Failure		401		{object}	panelsdk.ErrorResponse			"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	panelsdk.ErrorResponse			"Forbidden - missing required capability"
//	@Failure		404		{object}	panelsdk.ErrorResponse			"Role not found"
//	@Failure		422		{object}	panelsdk.ErrorResponse			"Transaction rolled back"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathRoleID(w, r)
	if !ok {
		return
	}

	var req panelsdk.UpdateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	role, err := h.RolesService.UpdateRole(ctx, id, req.Permissions)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, panelsdk.RoleMutationResponse{
		Message: "Role updated",
		Role:    toRoleInfo(role),
	})
}

// HandleDelete deletes a role
//
//	@Summary		Delete role
//	@Description	Deletes the role and its permission associations. The superadmin role answers 404.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string						true	"Role ID"
//	@Success		200	{object}	panelsdk.MessageResponse	"Role deleted"
//	@Failure		401	{object}	panelsdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	panelsdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		404	{object}	panelsdk.ErrorResponse		"Role not found"
//	@Failure		422	{object}	panelsdk.ErrorResponse		"Transaction rolled back"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathRoleID(w, r)
	if !ok {
		return
	}

	if err := h.RolesService.DeleteRole(ctx, id); err != nil {
		writeServiceError(w, r, err, "Failed to delete role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, panelsdk.MessageResponse{Message: "Role deleted"})
}

// HandleHistory lists the audit trail of a role
//
//	@Summary		Role audit history
//	@Description	Returns the audit entries recorded for the role, newest first. Deleted roles keep their history.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string								true	"Role ID"
//	@Success		200	{object}	panelsdk.ListAuditEntriesResponse	"Audit entries"
//	@Failure		401	{object}	panelsdk.ErrorResponse				"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	panelsdk.ErrorResponse				"Forbidden - missing required capability"
//	@Failure		404	{object}	panelsdk.ErrorResponse				"Role not found"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id}/history [get].
func (h *RolesHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathRoleID(w, r)
	if !ok {
		return
	}

	entries, err := h.RolesService.History(ctx, id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load role history")
		return
	}

	response := panelsdk.ListAuditEntriesResponse{
		Entries: make([]panelsdk.AuditEntryInfo, len(entries)),
	}
	for i, e := range entries {
		response.Entries[i] = toAuditEntryInfo(e)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// pathRoleID answers 404 for ids that are not ULIDs, so they never reach
// the store.
func pathRoleID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		writeRoleNotFound(w)
		return "", false
	}
	return id, true
}

// decodeBody reads a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRoleBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeInvalidRequest(w, "Malformed JSON body")
		return false
	}
	return true
}
