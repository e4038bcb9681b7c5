package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is a tree of drag/drop regions inside one window.
type Layout struct {
	Window  string   `yaml:"window,omitempty"  json:"window,omitempty"`
	Density float32  `yaml:"density,omitempty" json:"density,omitempty"` // Native pixels per logical unit (0 = config default)
	Bounds  [4]int   `yaml:"bounds"            json:"bounds"`            // Window content area, logical units
	Regions []Region `yaml:"regions"           json:"regions"`
}

// Region is one interactive area of the layout.
type Region struct {
	Name     string      `yaml:"name"               json:"name"`
	Bounds   *[4]int     `yaml:"bounds,omitempty"   json:"bounds,omitempty"` // [x, y, width, height]; nil = not laid out
	Source   *SourceSpec `yaml:"source,omitempty"   json:"source,omitempty"`
	Target   *TargetSpec `yaml:"target,omitempty"   json:"target,omitempty"`
	Children []Region    `yaml:"children,omitempty" json:"children,omitempty"`
}

// SourceSpec makes a region draggable.
type SourceSpec struct {
	Files   []string     `yaml:"files,omitempty"   json:"files,omitempty"`
	Remote  []RemoteSpec `yaml:"remote,omitempty"  json:"remote,omitempty"`
	Preview string       `yaml:"preview,omitempty" json:"preview,omitempty"` // "", "image" or "label"
}

// RemoteSpec is a locator known by reference and MIME type.
type RemoteSpec struct {
	URI      string `yaml:"uri"      json:"uri"`
	MimeType string `yaml:"mimeType" json:"mimeType"`
}

// TargetSpec makes a region accept drops.
type TargetSpec struct {
	Accept   []string `yaml:"accept,omitempty"   json:"accept,omitempty"`   // MIME patterns such as "image/*"; empty accepts anything
	MaxFiles int      `yaml:"maxFiles,omitempty" json:"maxFiles,omitempty"` // 0 = unlimited
	Sink     string   `yaml:"sink,omitempty"     json:"sink,omitempty"`     // Named sink receiving dropped files
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks that region names are unique and sizes are non-negative.
func (l *Layout) Validate() error {
	seen := make(map[string]bool)
	var walk func(rs []Region) error
	walk = func(rs []Region) error {
		for _, r := range rs {
			if r.Name == "" {
				return fmt.Errorf("region without a name")
			}
			if seen[r.Name] {
				return fmt.Errorf("duplicate region name %q", r.Name)
			}
			seen[r.Name] = true
			if r.Bounds != nil && (r.Bounds[2] < 0 || r.Bounds[3] < 0) {
				return fmt.Errorf("region %q: negative size", r.Name)
			}
			if err := walk(r.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(l.Regions)
}
