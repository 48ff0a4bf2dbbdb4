// Package catalog loads the permission catalog from YAML.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"gopkg.in/yaml.v3"
)

//go:embed permissions.yaml
var defaultCatalog []byte

var ErrInvalid = errors.New("catalog: invalid")

type Group struct {
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type Catalog struct {
	Groups []Group `yaml:"groups"`
}

// Default returns the catalog compiled into the binary.
func Default() Catalog {
	c, err := Parse(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path yields Default().
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes and validates a YAML catalog.
func Parse(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return c, c.Validate()
}

// Validate rejects empty or padded names and permissions listed more than once.
func (c Catalog) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("%w: no groups", ErrInvalid)
	}

	seen := make(map[string]string)
	for _, g := range c.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: group without a name", ErrInvalid)
		}
		for _, p := range g.Permissions {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("%w: empty permission in group %q", ErrInvalid, g.Name)
			}
			// Requested names are trimmed before lookup, so a padded name
			// could never be assigned.
			if strings.TrimSpace(p) != p {
				return fmt.Errorf("%w: permission %q in group %q has surrounding whitespace", ErrInvalid, p, g.Name)
			}
			if other, ok := seen[p]; ok {
				return fmt.Errorf("%w: permission %q in both %q and %q", ErrInvalid, p, other, g.Name)
			}
			seen[p] = g.Name
		}
	}
	return nil
}

// Permissions flattens the catalog in display order. IDs are left empty.
func (c Catalog) Permissions() []domain.Permission {
	var out []domain.Permission
	for _, g := range c.Groups {
		for _, p := range g.Permissions {
			out = append(out, domain.Permission{Name: p, Group: g.Name})
		}
	}
	return out
}
