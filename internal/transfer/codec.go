package transfer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// LocatorListFlavor carries an ordered list of path+MIME records between
	// cooperating processes.
	LocatorListFlavor = "application/x-desktop-dnd-locators+json"
	// FileListFlavor is the platform file list offered by file managers.
	FileListFlavor = "text/uri-list"
)

// ErrDecode is returned when an advertised flavor carries an unreadable payload.
var ErrDecode = errors.New("decode transfer")

// Record is the serialized form of a locator.
type Record struct {
	Path     string `yaml:"path"     json:"path"`
	MimeType string `yaml:"mimeType" json:"mimeType"`
}

// Transferable is the native payload of a drag or clipboard transfer.
type Transferable interface {
	// Flavors lists the advertised flavors in preference order.
	Flavors() []string
	// Data returns the payload of one advertised flavor.
	Data(flavor string) ([]byte, error)
}

// Bundle is an in-memory Transferable.
type Bundle struct {
	flavors []string
	data    map[string][]byte
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{data: make(map[string][]byte)}
}

// Put adds or replaces the payload for flavor.
func (b *Bundle) Put(flavor string, data []byte) *Bundle {
	if _, ok := b.data[flavor]; !ok {
		b.flavors = append(b.flavors, flavor)
	}
	b.data[flavor] = data
	return b
}

func (b *Bundle) Flavors() []string {
	return slices.Clone(b.flavors)
}

func (b *Bundle) Data(flavor string) ([]byte, error) {
	data, ok := b.data[flavor]
	if !ok {
		return nil, fmt.Errorf("flavor %q not offered", flavor)
	}
	return data, nil
}

// Codec maps locators to transferables and back.
type Codec struct {
	resolver *Resolver
	log      *slog.Logger
}

// NewCodec returns a codec resolving MIME types with r.
func NewCodec(r *Resolver, log *slog.Logger) *Codec {
	if log == nil {
		log = slog.Default()
	}
	return &Codec{resolver: r, log: log}
}

// Resolver returns the resolver the codec was built with.
func (c *Codec) Resolver() *Resolver { return c.resolver }

// Records resolves every locator into a path+MIME record.
func (c *Codec) Records(locators []Locator) ([]Record, error) {
	records := make([]Record, 0, len(locators))
	for _, loc := range locators {
		mt, err := c.resolver.MimeType(loc)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Path: loc.Path(), MimeType: mt})
	}
	return records, nil
}

// Inspect is Records for display: a locator whose MIME type cannot be
// resolved keeps an empty type instead of failing the whole list.
func (c *Codec) Inspect(locators []Locator) []Record {
	records := make([]Record, 0, len(locators))
	for _, loc := range locators {
		mt, _ := c.resolver.MimeType(loc)
		records = append(records, Record{Path: loc.Path(), MimeType: mt})
	}
	return records
}

// Encode wraps locators in a bundle offering the locator list flavor.
func (c *Codec) Encode(locators []Locator) (*Bundle, error) {
	records, err := c.Records(locators)
	if err != nil {
		return nil, err
	}
	return EncodeRecords(records)
}

// EncodeRecords wraps already resolved records in a bundle.
func EncodeRecords(records []Record) (*Bundle, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode locators: %w", err)
	}
	return NewBundle().Put(LocatorListFlavor, data), nil
}

// Decode extracts locators from t. The locator list flavor wins when it is
// present and readable; otherwise a file list is decoded into file
// locators. Unreadable payloads and unknown flavors produce no locators.
func (c *Codec) Decode(t Transferable) []Locator {
	if t == nil {
		return nil
	}
	flavors := t.Flavors()
	if slices.Contains(flavors, LocatorListFlavor) {
		locs, err := c.decodeRecords(t)
		if err == nil {
			return locs
		}
		c.log.Warn("Dropping locator list", slog.String("error", err.Error()))
	}
	if slices.Contains(flavors, FileListFlavor) {
		locs, err := c.decodeFiles(t)
		if err == nil {
			return locs
		}
		c.log.Warn("Dropping file list", slog.String("error", err.Error()))
	}
	return nil
}

// MimeTypes returns the distinct MIME types of locators in first-seen order.
// Locators whose type cannot be resolved are skipped.
func (c *Codec) MimeTypes(locators []Locator) []string {
	var types []string
	for _, loc := range locators {
		mt, err := c.resolver.MimeType(loc)
		if err != nil {
			c.log.Debug("Skipping locator without mime type", slog.String("path", loc.Path()), slog.String("error", err.Error()))
			continue
		}
		if !slices.Contains(types, mt) {
			types = append(types, mt)
		}
	}
	return types
}

func (c *Codec) decodeRecords(t Transferable) ([]Locator, error) {
	data, err := t.Data(LocatorListFlavor)
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	locs := make([]Locator, 0, len(records))
	for _, r := range records {
		locs = append(locs, RemoteLocator{URI: r.Path, MimeType: r.MimeType})
	}
	return locs, nil
}

func (c *Codec) decodeFiles(t Transferable) ([]Locator, error) {
	data, err := t.Data(FileListFlavor)
	if err != nil {
		return nil, err
	}
	paths, err := DecodeURIList(data)
	if err != nil {
		return nil, err
	}
	locs := make([]Locator, 0, len(paths))
	for _, p := range paths {
		locs = append(locs, NewFileLocator(p))
	}
	return locs, nil
}

// DecodeRecords parses a locator list payload. Records without a path are dropped.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: locator list: %v", ErrDecode, err)
	}
	out := records[:0]
	for _, r := range records {
		if r.Path != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// EncodeURIList renders paths as a text/uri-list payload of file URIs.
// Relative paths are made absolute against the working directory.
func EncodeURIList(paths []string) []byte {
	var buf bytes.Buffer
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
		buf.WriteString(u.String())
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

// DecodeURIList returns the local paths named by a text/uri-list payload.
// Comment lines and non-file URIs are skipped; bare absolute paths are
// accepted as some file managers emit them.
func DecodeURIList(data []byte) ([]string, error) {
	var paths []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if filepath.IsAbs(line) {
			paths = append(paths, line)
			continue
		}
		u, err := url.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("%w: uri list: %v", ErrDecode, err)
		}
		if u.Scheme != "file" || u.Path == "" {
			continue
		}
		paths = append(paths, filepath.FromSlash(u.Path))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: uri list: %v", ErrDecode, err)
	}
	return paths, nil
}
