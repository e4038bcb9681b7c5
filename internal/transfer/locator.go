// Package transfer describes draggable content and converts it to and from
// the flavors exchanged with the host during a drag-and-drop gesture.
package transfer

import (
	"errors"
	"image"
	"strings"

	"gioui.org/f32"
)

// ErrUnsupportedLocator is returned when a locator kind cannot be resolved.
var ErrUnsupportedLocator = errors.New("unsupported locator")

// Locator references transferable content.
type Locator interface {
	Path() string
}

// LocalLocator is a Locator whose content is reachable from this process.
type LocalLocator interface {
	Locator
	Local()
}

// FileLocator is a LocalLocator backed by a filesystem path.
type FileLocator struct {
	path string
}

// NewFileLocator returns a locator for the file at path.
func NewFileLocator(path string) FileLocator {
	return FileLocator{path: path}
}

func (f FileLocator) Path() string { return f.path }

func (FileLocator) Local() {}

// RemoteLocator references content by an external URI or a decoded record.
// Its MIME type is known up front.
type RemoteLocator struct {
	URI      string
	MimeType string
}

func (r RemoteLocator) Path() string { return r.URI }

// Descriptor is what a drag source offers when a drag starts.
type Descriptor struct {
	Locators []Locator
	Preview  image.Image // optional
	Size     f32.Point   // logical size of the dragged visual
}

// Empty reports whether d carries nothing to transfer. A nil descriptor is empty.
func (d *Descriptor) Empty() bool {
	return d == nil || len(d.Locators) == 0
}

// MatchMimeType reports whether mimeType matches pattern. Patterns may use a
// "type/*" wildcard or "*/*"; parameters are ignored.
func MatchMimeType(pattern, mimeType string) bool {
	pattern = baseMimeType(pattern)
	mimeType = baseMimeType(mimeType)
	if pattern == "*/*" || pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		major, _, _ := strings.Cut(mimeType, "/")
		return strings.EqualFold(prefix, major)
	}
	return strings.EqualFold(pattern, mimeType)
}

// MatchAny reports whether any of mimeTypes matches any of patterns. An empty
// pattern list matches everything.
func MatchAny(patterns, mimeTypes []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		for _, mt := range mimeTypes {
			if MatchMimeType(p, mt) {
				return true
			}
		}
	}
	return false
}

func baseMimeType(s string) string {
	base, _, _ := strings.Cut(s, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
