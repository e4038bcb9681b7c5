package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"gopkg.in/yaml.v3"
)

func sampleLayout() LayoutResult {
	b := [4]int{10, 20, 100, 30}
	return LayoutResult{
		Window:  "Pose Studio",
		Density: 2,
		Regions: []model.FlatRegion{
			{Name: "pose", Bounds: &b, Roles: "source", Files: 1, Path: "pose"},
		},
	}
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintYAML(&buf, sampleLayout()); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()

	// YAML output should be multi-line
	if bytes.Count(out, []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}

	var decoded LayoutResult
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Window != "Pose Studio" {
		t.Errorf("window: got %q, want %q", decoded.Window, "Pose Studio")
	}
	if len(decoded.Regions) != 1 || decoded.Regions[0].Path != "pose" {
		t.Errorf("regions: got %+v", decoded.Regions)
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, sampleLayout(), false); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()

	// Compact output should be a single line (plus newline from Encode)
	if bytes.Count(out, []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded LayoutResult
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Regions[0].Bounds == nil || *decoded.Regions[0].Bounds != [4]int{10, 20, 100, 30} {
		t.Errorf("bounds lost: %+v", decoded.Regions[0])
	}
}

func TestPrintJSON_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, sampleLayout(), true); err != nil {
		t.Fatal(err)
	}
	if bytes.Count(buf.Bytes(), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", buf.String())
	}
}

func TestPrintJSON_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	res := RecordsResult{OK: true, Action: "decode", Records: []transfer.Record{{Path: "https://x.test/?a=1&b=<2>", MimeType: "text/html"}}}
	if err := PrintJSON(&buf, res, false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("a=1&b=<2>")) {
		t.Errorf("expected unescaped URI, got %s", buf.String())
	}
}

func TestSprint_FollowsFormat(t *testing.T) {
	old, oldPretty := OutputFormat, PrettyOutput
	defer func() { OutputFormat, PrettyOutput = old, oldPretty }()

	OutputFormat = FormatJSON
	s, err := Sprint(ProbeResult{Files: []transfer.FileDesc{}})
	if err != nil {
		t.Fatal(err)
	}
	if s != "{\"files\":[]}\n" {
		t.Errorf("got %q", s)
	}

	OutputFormat = "xml"
	if _, err := Sprint(ProbeResult{}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestHitResult_OmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(HitResult{At: [2]float32{1, 2}, Path: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["records"]; ok {
		t.Error("empty records should be omitted")
	}
	if _, ok := m["path"]; !ok {
		t.Error("path should always be present")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("got %v, %v", f, err)
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("expected an error")
	}
}
