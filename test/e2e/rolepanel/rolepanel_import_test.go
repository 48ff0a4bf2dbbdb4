package rolepanel_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
	"github.com/aussiebroadwan/rolepanel/pkg/sheetx"
	"github.com/stretchr/testify/require"
)

func TestImportTemplateRoundTrip(t *testing.T) {
	p := startPanel(t, nil)
	c := p.admin(t)
	ctx := context.Background()

	_, err := c.CreateRole(ctx, panelsdk.CreateRoleRequest{Name: "support", Permissions: []string{"User"}})
	require.NoError(t, err)

	var tmpl bytes.Buffer
	require.NoError(t, c.DownloadImportTemplate(ctx, &tmpl))

	rows, err := sheetx.ReadRows(bytes.NewReader(tmpl.Bytes()), sheetx.FormatXLSX)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"name", "permissions"}, {"support", "User"}}, rows)

	res, err := c.ImportRoles(ctx, "role_import_examples.xlsx", bytes.NewReader(tmpl.Bytes()))
	require.NoError(t, err)
	require.Equal(t, &panelsdk.ImportResponse{Message: "Import completed", Updated: 1}, res)
}

func TestImportIsAllOrNothing(t *testing.T) {
	p := startPanel(t, nil)
	c := p.admin(t)
	ctx := context.Background()

	csv := "name,permissions\nauditor,Activity Log\nsupport,User; Teleport\n"
	_, err := c.ImportRoles(ctx, "roles.csv", strings.NewReader(csv))
	apiErr := requireAPIError(t, err, http.StatusUnprocessableEntity, panelsdk.ErrorCodeTransactionFailed)
	require.Contains(t, apiErr.Description, "row 3")

	_, found := findRole(t, c, "auditor")
	require.False(t, found)

	res, err := c.ImportRoles(ctx, "roles.csv", strings.NewReader("name,permissions\nauditor,Activity Log\n"))
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)
}
