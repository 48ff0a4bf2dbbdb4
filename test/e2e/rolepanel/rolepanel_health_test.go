package rolepanel_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	p := startPanel(t, nil)
	c := panelsdk.NewClient(p.URL, "")
	ctx := context.Background()

	live, err := c.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, app.BuildVersion, live.Version)

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
}
