package transfer

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writePNG writes a small PNG to dir and returns its path.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

type opaqueLocator struct{}

func (opaqueLocator) Path() string { return "opaque" }
func (opaqueLocator) Local()       {}

func TestResolver_MimeType(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "pose.png")
	r := NewResolver()

	mt, err := r.MimeType(NewFileLocator(path))
	if err != nil {
		t.Fatal(err)
	}
	if mt != "image/png" {
		t.Errorf("expected image/png, got %q", mt)
	}

	mt, err = r.MimeType(RemoteLocator{URI: "https://example.com/a.jpg", MimeType: "image/jpeg"})
	if err != nil {
		t.Fatal(err)
	}
	if mt != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", mt)
	}
}

func TestResolver_UnsupportedLocator(t *testing.T) {
	r := NewResolver()
	if _, err := r.MimeType(opaqueLocator{}); !errors.Is(err, ErrUnsupportedLocator) {
		t.Errorf("expected ErrUnsupportedLocator, got %v", err)
	}
	if _, err := r.Open(opaqueLocator{}); !errors.Is(err, ErrUnsupportedLocator) {
		t.Errorf("expected ErrUnsupportedLocator from Open, got %v", err)
	}
	if _, err := r.Describe(opaqueLocator{}); !errors.Is(err, ErrUnsupportedLocator) {
		t.Errorf("expected ErrUnsupportedLocator from Describe, got %v", err)
	}
}

func TestResolver_Describe(t *testing.T) {
	path := writePNG(t, t.TempDir(), "shot.png")
	desc, err := NewResolver().Describe(NewFileLocator(path))
	if err != nil {
		t.Fatal(err)
	}
	if desc.Name != "shot.png" {
		t.Errorf("expected name shot.png, got %q", desc.Name)
	}
	if desc.MimeType != "image/png" {
		t.Errorf("expected image/png, got %q", desc.MimeType)
	}
	if desc.Size == 0 {
		t.Error("expected non-zero size")
	}
}

func TestResolver_MissingFile(t *testing.T) {
	_, err := NewResolver().MimeType(NewFileLocator(filepath.Join(t.TempDir(), "missing.png")))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrUnsupportedLocator) {
		t.Error("missing file is not an unsupported locator")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png")
	c := NewCodec(NewResolver(), nil)
	locs := []Locator{
		NewFileLocator(path),
		RemoteLocator{URI: "https://example.com/b.webp", MimeType: "image/webp"},
		RemoteLocator{URI: "/srv/c.txt", MimeType: "text/plain"},
	}
	want, err := c.Records(locs)
	if err != nil {
		t.Fatal(err)
	}

	bundle, err := c.Encode(locs)
	if err != nil {
		t.Fatal(err)
	}
	if got := bundle.Flavors(); !reflect.DeepEqual(got, []string{LocatorListFlavor}) {
		t.Fatalf("unexpected flavors %v", got)
	}
	got, err := c.Records(c.Decode(bundle))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestCodec_EncodeUnsupported(t *testing.T) {
	c := NewCodec(NewResolver(), nil)
	if _, err := c.Encode([]Locator{opaqueLocator{}}); !errors.Is(err, ErrUnsupportedLocator) {
		t.Errorf("expected ErrUnsupportedLocator, got %v", err)
	}
}

func TestCodec_DecodeFileList(t *testing.T) {
	probe := func(path string) (string, error) { return "image/png", nil }
	c := NewCodec(NewResolverWithProbe(probe), nil)
	b := NewBundle().Put(FileListFlavor, []byte("file:///tmp/pose.png\r\n"))

	locs := c.Decode(b)
	if len(locs) != 1 {
		t.Fatalf("expected 1 locator, got %d", len(locs))
	}
	if _, ok := locs[0].(LocalLocator); !ok {
		t.Errorf("expected a local locator, got %T", locs[0])
	}
	if locs[0].Path() != "/tmp/pose.png" {
		t.Errorf("expected /tmp/pose.png, got %q", locs[0].Path())
	}
	mt, err := c.Resolver().MimeType(locs[0])
	if err != nil {
		t.Fatal(err)
	}
	if mt != "image/png" {
		t.Errorf("expected image/png, got %q", mt)
	}
}

func TestCodec_DecodePrefersLocatorList(t *testing.T) {
	c := NewCodec(NewResolver(), nil)
	b := NewBundle().
		Put(FileListFlavor, []byte("file:///tmp/other.png\n")).
		Put(LocatorListFlavor, []byte(`[{"path":"/tmp/a.png","mimeType":"image/png"}]`))

	locs := c.Decode(b)
	if len(locs) != 1 || locs[0].Path() != "/tmp/a.png" {
		t.Fatalf("expected the locator list to win, got %v", locs)
	}
	if _, ok := locs[0].(RemoteLocator); !ok {
		t.Errorf("expected a remote locator, got %T", locs[0])
	}
}

func TestCodec_DecodeMalformed(t *testing.T) {
	c := NewCodec(NewResolver(), nil)

	if locs := c.Decode(NewBundle().Put(LocatorListFlavor, []byte("{not json"))); len(locs) != 0 {
		t.Errorf("expected no locators from malformed payload, got %v", locs)
	}
	if locs := c.Decode(NewBundle().Put("text/plain", []byte("/tmp/a.png"))); len(locs) != 0 {
		t.Errorf("expected unknown flavor to be ignored, got %v", locs)
	}
	if locs := c.Decode(nil); locs != nil {
		t.Errorf("expected nil for nil transferable, got %v", locs)
	}
}

func TestCodec_DecodeMalformedFallsBackToFileList(t *testing.T) {
	c := NewCodec(NewResolver(), nil)
	b := NewBundle().
		Put(LocatorListFlavor, []byte("garbage")).
		Put(FileListFlavor, []byte("/tmp/a.png\n"))
	locs := c.Decode(b)
	if len(locs) != 1 || locs[0].Path() != "/tmp/a.png" {
		t.Errorf("expected fallback to the file list, got %v", locs)
	}
}

func TestDecodeRecords_DropsEmptyPaths(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"path":"","mimeType":"x/y"},{"path":"/a","mimeType":"text/plain"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Path != "/a" {
		t.Errorf("unexpected records %v", records)
	}
	if _, err := DecodeRecords([]byte(`{"path":"/a"}`)); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for wrong shape, got %v", err)
	}
}

func TestURIList(t *testing.T) {
	data := EncodeURIList([]string{"/tmp/a b.png", "/tmp/c.png"})
	paths, err := DecodeURIList(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{"/tmp/a b.png", "/tmp/c.png"}) {
		t.Errorf("unexpected paths %v", paths)
	}

	paths, err = DecodeURIList([]byte("# comment\n\nhttps://example.com/x.png\nfile:///srv/y.png\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{"/srv/y.png"}) {
		t.Errorf("expected only the file URI, got %v", paths)
	}
}

func TestURIList_RelativePath(t *testing.T) {
	want, err := filepath.Abs("pose.png")
	if err != nil {
		t.Fatal(err)
	}
	paths, err := DecodeURIList(EncodeURIList([]string{"pose.png"}))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{want}) {
		t.Errorf("paths = %v, want [%s]", paths, want)
	}
}

func TestCodec_MimeTypes(t *testing.T) {
	c := NewCodec(NewResolver(), nil)
	got := c.MimeTypes([]Locator{
		RemoteLocator{URI: "/a", MimeType: "image/png"},
		opaqueLocator{},
		RemoteLocator{URI: "/b", MimeType: "image/png"},
		RemoteLocator{URI: "/c", MimeType: "text/plain"},
	})
	if !reflect.DeepEqual(got, []string{"image/png", "text/plain"}) {
		t.Errorf("unexpected mime types %v", got)
	}
}

func TestMatchMimeType(t *testing.T) {
	tests := []struct {
		pattern, mimeType string
		want              bool
	}{
		{"image/png", "image/png", true},
		{"image/*", "image/jpeg", true},
		{"image/*", "text/plain", false},
		{"*/*", "application/json", true},
		{"text/plain", "text/plain; charset=utf-8", true},
		{"IMAGE/PNG", "image/png", true},
		{"image/png", "image/jpeg", false},
	}
	for _, tt := range tests {
		if got := MatchMimeType(tt.pattern, tt.mimeType); got != tt.want {
			t.Errorf("MatchMimeType(%q, %q) = %v, want %v", tt.pattern, tt.mimeType, got, tt.want)
		}
	}
	if !MatchAny(nil, []string{"x/y"}) {
		t.Error("empty pattern list should match")
	}
	if MatchAny([]string{"image/*"}, nil) {
		t.Error("no mime types should not match a pattern")
	}
}

func TestDescriptor_Empty(t *testing.T) {
	var d *Descriptor
	if !d.Empty() {
		t.Error("nil descriptor should be empty")
	}
	if !(&Descriptor{}).Empty() {
		t.Error("descriptor without locators should be empty")
	}
	if (&Descriptor{Locators: []Locator{NewFileLocator("/a")}}).Empty() {
		t.Error("descriptor with a locator should not be empty")
	}
}

func TestCodec_Inspect(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "pose.png")
	c := NewCodec(NewResolver(), nil)
	got := c.Inspect([]Locator{
		NewFileLocator(path),
		NewFileLocator(filepath.Join(dir, "missing.png")),
		RemoteLocator{URI: "https://example.com/a", MimeType: "text/html"},
	})
	want := []Record{
		{Path: path, MimeType: "image/png"},
		{Path: filepath.Join(dir, "missing.png")},
		{Path: "https://example.com/a", MimeType: "text/html"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Inspect = %v, want %v", got, want)
	}
}
