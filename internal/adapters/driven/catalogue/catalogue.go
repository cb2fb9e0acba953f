// Package catalogue serves static reference resources described in YAML.
//
// A catalogue is embedded in the binary. An optional user file can replace
// built-in entries by URI or add new ones.
package catalogue

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// Ensure Catalogue implements the interface.
var _ driven.ResourceCatalogue = (*Catalogue)(nil)

const defaultMIMEType = "text/markdown"

//go:embed catalogue.yaml
var builtin []byte

// file is the on-disk shape of a catalogue.
type file struct {
	Resources []entry `yaml:"resources"`
}

type entry struct {
	URI         string `yaml:"uri"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MIMEType    string `yaml:"mime_type"`
	Text        string `yaml:"text"`

	// File is read instead of Text, relative to the catalogue file.
	File string `yaml:"file"`
}

// Catalogue holds resources in presentation order.
type Catalogue struct {
	resources []domain.Resource
}

// New loads the built-in catalogue and, when extraPath is set, merges the
// user catalogue at that path over it.
func New(extraPath string) (*Catalogue, error) {
	resources, err := parse(builtin, "")
	if err != nil {
		return nil, fmt.Errorf("built-in catalogue: %w", err)
	}

	if extraPath != "" {
		data, err := os.ReadFile(extraPath)
		if err != nil {
			return nil, fmt.Errorf("read catalogue %s: %w: %w", extraPath, domain.ErrSourceUnreadable, err)
		}
		extra, err := parse(data, filepath.Dir(extraPath))
		if err != nil {
			return nil, fmt.Errorf("catalogue %s: %w", extraPath, err)
		}
		resources = merge(resources, extra)
	}

	return &Catalogue{resources: resources}, nil
}

// Resources returns a copy of every resource.
func (c *Catalogue) Resources() []domain.Resource {
	return append([]domain.Resource(nil), c.resources...)
}

func parse(data []byte, baseDir string) ([]domain.Resource, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w: %w", domain.ErrInvalidInput, err)
	}

	seen := make(map[string]bool, len(f.Resources))
	out := make([]domain.Resource, 0, len(f.Resources))
	for i, e := range f.Resources {
		if e.URI == "" || e.Name == "" {
			return nil, fmt.Errorf("entry %d: uri and name are required: %w", i, domain.ErrInvalidInput)
		}
		if seen[e.URI] {
			return nil, fmt.Errorf("entry %d: duplicate uri %s: %w", i, e.URI, domain.ErrInvalidInput)
		}
		seen[e.URI] = true

		text := e.Text
		if e.File != "" {
			path := e.File
			if !filepath.IsAbs(path) && baseDir != "" {
				path = filepath.Join(baseDir, path)
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("entry %s: %w: %w", e.URI, domain.ErrSourceUnreadable, err)
			}
			text = string(b)
		}

		mimeType := e.MIMEType
		if mimeType == "" {
			mimeType = defaultMIMEType
		}
		out = append(out, domain.Resource{
			URI:         e.URI,
			Name:        e.Name,
			Description: e.Description,
			MIMEType:    mimeType,
			Text:        text,
		})
	}
	return out, nil
}

// merge replaces base entries that share a URI with extra and appends the rest.
func merge(base, extra []domain.Resource) []domain.Resource {
	index := make(map[string]int, len(base))
	for i, r := range base {
		index[r.URI] = i
	}
	for _, r := range extra {
		if i, ok := index[r.URI]; ok {
			base[i] = r
			continue
		}
		index[r.URI] = len(base)
		base = append(base, r)
	}
	return base
}
