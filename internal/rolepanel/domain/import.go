package domain

// ImportRecord is one parsed data row of an import spreadsheet.
type ImportRecord struct {
	// Row is the 1-based row number in the source sheet.
	Row         int
	Name        string
	Permissions []string
}
