// Package roleimport converts role spreadsheets to import records and
// renders the import template.
package roleimport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/pkg/sheetx"
)

const (
	// TemplateFilename is the download name of the import template.
	TemplateFilename = "role_import_examples.xlsx"

	templateSheet = "roles"

	columnName        = "name"
	columnPermissions = "permissions"
)

var (
	ErrUnsupportedFile = errors.New("unsupported import file")
	ErrMissingHeader   = errors.New("import file has no name column")
)

// Sheet parses uploads and writes the template.
type Sheet struct{}

// Parse reads records from r. The format is picked from filename's
// extension.
func (Sheet) Parse(filename string, r io.Reader) ([]domain.ImportRecord, error) {
	format, err := sheetx.FormatFromFilename(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}

	rows, err := sheetx.ReadRows(r, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}
	return recordsFromRows(rows)
}

func recordsFromRows(rows [][]string) ([]domain.ImportRecord, error) {
	header := -1
	for i, row := range rows {
		if !blank(row) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, ErrMissingHeader
	}

	nameCol, permCol := -1, -1
	for i, cell := range rows[header] {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case columnName:
			nameCol = i
		case columnPermissions:
			permCol = i
		}
	}
	if nameCol < 0 {
		return nil, ErrMissingHeader
	}

	var records []domain.ImportRecord
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		records = append(records, domain.ImportRecord{
			Row:         i + 1,
			Name:        strings.TrimSpace(cell(row, nameCol)),
			Permissions: SplitPermissions(cell(row, permCol)),
		})
	}
	return records, nil
}

// SplitPermissions splits a cell on commas or semicolons, dropping blanks.
func SplitPermissions(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// WriteTemplate writes the xlsx template with one example row per role.
func (Sheet) WriteTemplate(w io.Writer, roles []domain.Role) error {
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []string{r.Name, strings.Join(r.PermissionNames(), ", ")})
	}
	return sheetx.WriteXLSX(w, templateSheet, []string{columnName, columnPermissions}, rows)
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
