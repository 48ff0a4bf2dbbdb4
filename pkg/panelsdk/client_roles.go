package panelsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// ImportFileField is the multipart field carrying the uploaded spreadsheet.
const ImportFileField = "import_file"

// ListRoles retrieves every role.
// Requires: Role
func (c *Client) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	var out ListRolesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/roles", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateForm retrieves the grouped permission catalog for a new role.
// Requires: Role
func (c *Client) CreateForm(ctx context.Context) (*RoleFormResponse, error) {
	var out RoleFormResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/roles/create", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRole creates a role with the given permission names.
// Requires: Role
func (c *Client) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleMutationResponse, error) {
	var out RoleMutationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/roles", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditForm retrieves a role with its permissions and the catalog.
// Requires: Role, Role Edit
func (c *Client) EditForm(ctx context.Context, roleID string) (*RoleFormResponse, error) {
	var out RoleFormResponse
	path := "/v1/roles/" + url.PathEscape(roleID) + "/edit"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole replaces the permission set of a role.
// Requires: Role, Role Edit
func (c *Client) UpdateRole(ctx context.Context, roleID string, req UpdateRoleRequest) (*RoleMutationResponse, error) {
	var out RoleMutationResponse
	if err := c.doJSON(ctx, http.MethodPut, "/v1/roles/"+url.PathEscape(roleID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRole removes a role and its permission associations.
// Requires: Role
func (c *Client) DeleteRole(ctx context.Context, roleID string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/v1/roles/"+url.PathEscape(roleID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RoleHistory retrieves the audit trail of a role, newest first.
// Requires: Role
func (c *Client) RoleHistory(ctx context.Context, roleID string) (*ListAuditEntriesResponse, error) {
	var out ListAuditEntriesResponse
	path := "/v1/roles/" + url.PathEscape(roleID) + "/history"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadImportTemplate streams the xlsx import template into w.
// Requires: Role
func (c *Client) DownloadImportTemplate(ctx context.Context, w io.Writer) error {
	resp, err := c.do(ctx, http.MethodGet, "/v1/roles/import-example", nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}
	return nil
}

// ImportRoles uploads a spreadsheet (.xlsx or .csv) of roles.
// Requires: Role
func (c *Client) ImportRoles(ctx context.Context, filename string, r io.Reader) (*ImportResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(ImportFileField, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/roles/import", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var out ImportResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
