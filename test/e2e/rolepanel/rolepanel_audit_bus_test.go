package rolepanel_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/audit"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/pkg/bus"
	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startNATS runs a JetStream enabled NATS server and returns its URL.
func startNATS(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("audit bus tests need docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nats:2.10-alpine",
			Cmd:          []string{"-js"},
			ExposedPorts: []string{"4222/tcp"},
			WaitingFor:   wait.ForLog("Server is ready").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	url, err := container.PortEndpoint(ctx, "4222/tcp", "nats")
	require.NoError(t, err)
	return url
}

func TestCommittedMutationsArePublished(t *testing.T) {
	natsURL := startNATS(t)
	p := startPanel(t, func(cfg *app.Config) { cfg.NatsURL = natsURL })
	c := p.admin(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Bus)

	b, err := bus.New(natsURL)
	require.NoError(t, err)
	t.Cleanup(b.Close)

	events := make(chan domain.AuditEntry, 8)
	sub, err := b.Subscribe(ctx, p.cfg.AuditSubject+".>", "e2e-tail", func(_ context.Context, data []byte) error {
		e, err := audit.DecodeEntry(data)
		if err != nil {
			return err
		}
		events <- e
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	created, err := c.CreateRole(ctx, panelsdk.CreateRoleRequest{Name: "support", Permissions: []string{"User"}})
	require.NoError(t, err)
	_, err = c.DeleteRole(ctx, created.Role.ID)
	require.NoError(t, err)

	// Rolled back mutations publish nothing.
	super, _ := findRole(t, c, domain.ProtectedRoleName)
	_, err = c.DeleteRole(ctx, super.ID)
	require.Error(t, err)

	var got []domain.AuditEntry
	for len(got) < 2 {
		select {
		case e := <-events:
			got = append(got, e)
		case <-ctx.Done():
			t.Fatalf("received %d of 2 audit events", len(got))
		}
	}

	require.Equal(t, domain.AuditActionCreate, got[0].Action)
	require.Equal(t, domain.AuditActionDelete, got[1].Action)
	require.Equal(t, created.Role.ID, got[1].EntityID)
	require.Equal(t, "admin", got[1].Actor)

	select {
	case e := <-events:
		t.Fatalf("unexpected event %+v", e)
	case <-time.After(500 * time.Millisecond):
	}
}
