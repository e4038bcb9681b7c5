package output

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %s (use yaml or json)", s)
}

// LayoutResult is the output of the `layout` command.
type LayoutResult struct {
	Window  string             `yaml:"window,omitempty"  json:"window,omitempty"`
	Density float32            `yaml:"density,omitempty" json:"density,omitempty"`
	Regions []model.FlatRegion `yaml:"regions"           json:"regions"`
}

// HitResult is the output of the `hit` command. Records lists what a drag
// started at At would carry.
type HitResult struct {
	At      [2]float32        `yaml:"at,flow"           json:"at"`
	Path    []string          `yaml:"path"              json:"path"`
	Records []transfer.Record `yaml:"records,omitempty" json:"records,omitempty"`
}

// ProbeResult is the output of the `probe` command.
type ProbeResult struct {
	Files []transfer.FileDesc `yaml:"files" json:"files"`
}

// RecordsResult is the output of the `encode`, `decode` and `clipboard` commands.
type RecordsResult struct {
	OK      bool              `yaml:"ok"               json:"ok"`
	Action  string            `yaml:"action"           json:"action"`
	Flavor  string            `yaml:"flavor,omitempty" json:"flavor,omitempty"`
	Records []transfer.Record `yaml:"records"          json:"records"`
	Data    string            `yaml:"data,omitempty"   json:"data,omitempty"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(w, v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// Sprint returns v serialized in the current output format.
func Sprint(v interface{}) (string, error) {
	var buf bytes.Buffer
	if err := Fprint(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
