package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := `
window: Pose Studio
density: 2
bounds: [0, 0, 200, 100]
regions:
  - name: card
    bounds: [0, 0, 100, 100]
    source:
      files: [/tmp/pose.png]
      preview: image
    children:
      - name: drop
        bounds: [10, 10, 20, 20]
        target:
          accept: ["image/*"]
          maxFiles: 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	if l.Window != "Pose Studio" || l.Density != 2 || l.Bounds != [4]int{0, 0, 200, 100} {
		t.Errorf("unexpected layout header %+v", l)
	}
	if len(l.Regions) != 1 || len(l.Regions[0].Children) != 1 {
		t.Fatalf("unexpected regions %+v", l.Regions)
	}
	drop := l.Regions[0].Children[0]
	if drop.Target == nil || drop.Target.MaxFiles != 1 || drop.Bounds == nil || *drop.Bounds != [4]int{10, 10, 20, 20} {
		t.Errorf("unexpected child %+v", drop)
	}
}

func TestLoadLayout_Errors(t *testing.T) {
	if _, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("regions: ["), 0o644)
	if _, err := LoadLayout(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr string
	}{
		{"ok", Layout{Regions: []Region{{Name: "a"}, {Name: "b", Children: []Region{{Name: "c"}}}}}, ""},
		{"unnamed", Layout{Regions: []Region{{}}}, "without a name"},
		{"duplicate nested", Layout{Regions: []Region{{Name: "a", Children: []Region{{Name: "a"}}}}}, "duplicate"},
		{"negative", Layout{Regions: []Region{{Name: "a", Bounds: bounds(0, 0, -1, 2)}}}, "negative size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
