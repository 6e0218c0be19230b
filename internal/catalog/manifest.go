package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional file inside the assets root that pins product fields.
const ManifestFile = "catalog.yaml"

// ManifestEntry overrides derived product fields. Empty fields keep the derived value.
type ManifestEntry struct {
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Hidden      bool   `yaml:"hidden"`
}

// Manifest maps asset keys to explicit product fields
type Manifest struct {
	Products map[string]ManifestEntry `yaml:"products"`
}

// ParseManifest decodes a manifest document. Keys are normalized to forward
// slashes without a leading slash so they compare equal to asset keys.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return EmptyManifest(), nil
		}
		return nil, fmt.Errorf("failed to parse catalog manifest: %w", err)
	}
	norm := make(map[string]ManifestEntry, len(m.Products))
	for k, v := range m.Products {
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("catalog manifest entry %q: %w", k, err)
		}
		norm[normalizeKey(k)] = v
	}
	m.Products = norm
	return m, nil
}

// EmptyManifest is used when no manifest file exists
func EmptyManifest() *Manifest {
	return &Manifest{Products: map[string]ManifestEntry{}}
}

// Lookup returns the entry for an asset key
func (m *Manifest) Lookup(key string) (ManifestEntry, bool) {
	if m == nil || m.Products == nil {
		return ManifestEntry{}, false
	}
	e, ok := m.Products[normalizeKey(key)]
	return e, ok
}

func normalizeKey(k string) string {
	return strings.TrimPrefix(strings.ReplaceAll(k, "\\", "/"), "/")
}

// validate rejects subcategories outside the PLC product lines and
// subcategories pinned to another category
func (e ManifestEntry) validate() error {
	if e.Subcategory == "" {
		return nil
	}
	if !IsPLCSubcategory(e.Subcategory) {
		return fmt.Errorf("unknown subcategory %q; one of %s", e.Subcategory, strings.Join(models.PLCSubcategories, ", "))
	}
	if e.Category != "" && e.Category != models.CategoryPLC {
		return fmt.Errorf("subcategory %q requires category %q, got %q", e.Subcategory, models.CategoryPLC, e.Category)
	}
	return nil
}

// IsPLCSubcategory reports whether s is one of the fixed PLC product lines
func IsPLCSubcategory(s string) bool {
	for _, sub := range models.PLCSubcategories {
		if s == sub {
			return true
		}
	}
	return false
}
