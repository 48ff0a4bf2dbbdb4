package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/catalog"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/aussiebroadwan/rolepanel/pkg/idx"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
)

// CatalogService keeps the stored permission catalog in line with the
// configured one.
type CatalogService struct {
	Store store.Store
}

// Sync upserts every catalog permission and ensures the protected role
// exists holding all of them. Permissions dropped from the catalog are left
// in place.
func (s *CatalogService) Sync(ctx context.Context, c catalog.Catalog) error {
	l := slogx.FromContext(ctx)

	if err := c.Validate(); err != nil {
		return err
	}

	var createdSuper bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for i, p := range c.Permissions() {
			p.ID = idx.New().String()
			if err := tx.Permissions().UpsertPermission(ctx, p, i); err != nil {
				return fmt.Errorf("upsert permission %q: %w", p.Name, err)
			}
		}

		all, err := tx.Permissions().ListAll(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		super, err := tx.Roles().GetRoleByName(ctx, domain.ProtectedRoleName)
		switch {
		case errors.Is(err, store.ErrNotFound):
			createdSuper = true
			return tx.Roles().CreateRole(ctx, domain.Role{
				ID:          idx.NewAt(now).String(),
				Name:        domain.ProtectedRoleName,
				Permissions: all,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		case err != nil:
			return err
		}

		ids := make([]string, len(all))
		for i, p := range all {
			ids[i] = p.ID
		}
		return tx.Roles().ReplacePermissions(ctx, super.ID, ids, now)
	})
	if err != nil {
		l.Error("failed to sync permission catalog", "error", err)
		return err
	}

	l.Info("permission catalog synced", "permissions", len(c.Permissions()), "created_superadmin", createdSuper)
	return nil
}
