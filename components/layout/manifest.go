package layout

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifest models a YAML manifest describing widget templates.
type CatalogManifest struct {
	Version  string             `json:"version" yaml:"version"`
	Name     string             `json:"name,omitempty" yaml:"name,omitempty"`
	Package  string             `json:"package,omitempty" yaml:"package,omitempty"`
	Homepage string             `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Widgets  []ManifestTemplate `json:"widgets" yaml:"widgets"`
	Source   string             `json:"-" yaml:"-"`
}

// ManifestTemplate describes a single template entry within a manifest.
type ManifestTemplate struct {
	Template    Template `json:"template" yaml:"template"`
	Maintainers []string `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// catalog, and returns the document.
func (c *Catalog) LoadManifestFile(path string) (*CatalogManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := c.LoadManifest(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifest registers every template from a decoded manifest.
func (c *Catalog) LoadManifest(doc *CatalogManifest) error {
	if doc == nil {
		return fmt.Errorf("layout: manifest document is nil")
	}
	for _, entry := range doc.Widgets {
		if err := c.Register(entry.Template); err != nil {
			return fmt.Errorf("layout: register widget %s from %s: %w", entry.Template.Type, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*CatalogManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("layout: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("layout: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*CatalogManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("layout: manifest is empty")
		}
		return nil, fmt.Errorf("layout: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *CatalogManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("layout: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, entry := range doc.Widgets {
		if entry.Template.Type == "" {
			return fmt.Errorf("layout: manifest widget at index %d is missing template.type", idx)
		}
		if entry.Template.Title == "" {
			return fmt.Errorf("layout: manifest widget %s missing template.title", entry.Template.Type)
		}
		if _, exists := seen[entry.Template.Type]; exists {
			return fmt.Errorf("layout: manifest duplicates widget type %s", entry.Template.Type)
		}
		seen[entry.Template.Type] = struct{}{}
	}
	return nil
}

func (doc *CatalogManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
