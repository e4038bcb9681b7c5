package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"gioui.org/f32"
)

func TestRender_ScalesByDensity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img, off := Render(src, f32.Pt(20, 10), 2, 0)
	if got := img.Bounds().Size(); got != image.Pt(40, 20) {
		t.Errorf("expected 40x20, got %v", got)
	}
	if off != image.Pt(-20, -10) {
		t.Errorf("expected the center under the pointer, got %v", off)
	}
}

func TestRender_ClampsToMaxEdge(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img, off := Render(src, f32.Pt(400, 200), 1, 100)
	if got := img.Bounds().Size(); got != image.Pt(100, 50) {
		t.Errorf("expected 100x50, got %v", got)
	}
	if off != image.Pt(-50, -25) {
		t.Errorf("unexpected offset %v", off)
	}
}

func TestRender_ZeroSizeKeepsSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 12, 8))
	img, off := Render(src, f32.Point{}, 0, 0)
	if img != src {
		t.Error("expected the source image unchanged")
	}
	if off != image.Pt(-6, -4) {
		t.Errorf("unexpected offset %v", off)
	}
}

func TestLabel(t *testing.T) {
	img := Label("a-very-long-file-name.png", 60, 20)
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	// Border pixel uses the outline colour.
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 120, G: 160, B: 255, A: 255}) {
		t.Errorf("unexpected border colour %v", got)
	}
	// Degenerate sizes still produce an image.
	if small := Label("x", 0, 0); small.Bounds().Dx() != 1 {
		t.Errorf("expected 1px image, got %v", small.Bounds())
	}
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		text string
		w    int
		want string
	}{
		{"short.png", 200, "short.png"},
		{"a-very-long-file-name.png", 60, "a-very-~"},
		{"ポーズ画像.png", 32, "ポーズ~"},
		{"éé", 11, "é"},
		{"anything", 3, "anything"},
	}
	for _, tt := range tests {
		got := fitLabel(tt.text, tt.w)
		if got != tt.want {
			t.Errorf("fitLabel(%q, %d) = %q, want %q", tt.text, tt.w, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("fitLabel(%q, %d) = %q is not valid UTF-8", tt.text, tt.w, got)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
