package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/roleimport"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/aussiebroadwan/rolepanel/pkg/httpx"
	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
	"github.com/aussiebroadwan/rolepanel/pkg/sheetx"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
)

type ImportHandler struct {
	RolesService *service.RolesService
	MaxBytes     int64
}

// HandleTemplate serves the spreadsheet used for bulk imports
//
//	@Summary		Download import template
//	@Description	Returns role_import_examples.xlsx listing every non protected role with its permissions.
//	@Tags			Import
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200	{file}		binary					"XLSX workbook"
//	@Failure		401	{object}	panelsdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	panelsdk.ErrorResponse	"Forbidden - missing required capability"
//	@Failure		500	{object}	panelsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles/import-example [get].
func (h *ImportHandler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Buffer so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.RolesService.ExportImportTemplate(ctx, &buf); err != nil {
		writeServiceError(w, r, err, "Failed to build import template")
		return
	}

	httpx.AttachmentHeaders(w, sheetx.ContentTypeXLSX, roleimport.TemplateFilename)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("failed to write import template", "error", err)
	}
}

// HandleImport bulk creates or updates roles from an uploaded spreadsheet
//
//	@Summary		Import roles
//	@Description	Reads an .xlsx or .csv file with a header row "name, permissions". Each row creates the role
//	@Description	or replaces the permissions of an existing one. All rows commit together or not at all.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			import_file	formData	file					true	"Spreadsheet (.xlsx or .csv)"
//	@Success		200			{object}	panelsdk.ImportResponse	"Import completed"
//	@Failure		400			{object}	panelsdk.ErrorResponse	"Invalid request - missing file, unsupported format, bad header"
//	@Failure		401			{object}	panelsdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403			{object}	panelsdk.ErrorResponse	"Forbidden - missing required capability"
//	@Failure		413			{object}	panelsdk.ErrorResponse	"Upload too large"
//	@Failure		422			{object}	panelsdk.ErrorResponse	"Import rolled back"
//	@Failure		429			{object}	panelsdk.ErrorResponse	"Too many requests"
//	@Security		BearerAuth
//	@Router			/v1/roles/import [post].
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	maxBytes := h.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultImportMaxBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteJSON(w, http.StatusRequestEntityTooLarge, panelsdk.ErrorResponse{
				Error:            panelsdk.ErrorCodeInvalidRequest,
				ErrorDescription: fmt.Sprintf("Import file exceeds %d bytes", maxBytes),
			})
			return
		}
		writeInvalidRequest(w, "Expected a multipart form upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(panelsdk.ImportFileField)
	if err != nil {
		writeInvalidRequest(w, "Missing "+panelsdk.ImportFileField)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.RolesService.ImportRoles(ctx, header.Filename, file)
	if err != nil {
		writeServiceError(w, r, err, "Failed to import roles")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, panelsdk.ImportResponse{
		Message: "Import completed",
		Created: result.Created,
		Updated: result.Updated,
	})
}
