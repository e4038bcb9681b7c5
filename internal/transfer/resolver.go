package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// ProbeFunc returns the MIME type of the file at path.
type ProbeFunc func(path string) (string, error)

// ProbeFile sniffs the content of the file at path.
func ProbeFile(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", path, err)
	}
	return baseMimeType(m.String()), nil
}

// FileDesc describes the content behind a local locator.
type FileDesc struct {
	Name     string `yaml:"name"           json:"name"`
	Path     string `yaml:"path"           json:"path"`
	MimeType string `yaml:"mimeType"       json:"mimeType"`
	Size     int64  `yaml:"size,omitempty" json:"size,omitempty"`
}

// Resolver turns locators into MIME types and byte sources.
type Resolver struct {
	probe ProbeFunc
}

// NewResolver returns a Resolver probing file content.
func NewResolver() *Resolver {
	return &Resolver{probe: ProbeFile}
}

// NewResolverWithProbe returns a Resolver using probe for local files.
func NewResolverWithProbe(probe ProbeFunc) *Resolver {
	return &Resolver{probe: probe}
}

// MimeType resolves the MIME type of loc. Local files are probed on every
// call; remote locators report the type they were built with.
func (r *Resolver) MimeType(loc Locator) (string, error) {
	switch l := loc.(type) {
	case FileLocator:
		return r.probe(l.path)
	case *FileLocator:
		return r.probe(l.path)
	case RemoteLocator:
		return l.MimeType, nil
	case *RemoteLocator:
		return l.MimeType, nil
	default:
		return "", fmt.Errorf("mime type of %T: %w", loc, ErrUnsupportedLocator)
	}
}

// Open returns the content of a local locator. The caller closes it.
func (r *Resolver) Open(loc LocalLocator) (io.ReadCloser, error) {
	path, err := filePath(loc)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Describe returns the name, MIME type and size behind a local locator.
func (r *Resolver) Describe(loc LocalLocator) (FileDesc, error) {
	path, err := filePath(loc)
	if err != nil {
		return FileDesc{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return FileDesc{}, fmt.Errorf("stat %s: %w", path, err)
	}
	mt, err := r.probe(path)
	if err != nil {
		return FileDesc{}, err
	}
	return FileDesc{
		Name:     filepath.Base(path),
		Path:     path,
		MimeType: mt,
		Size:     info.Size(),
	}, nil
}

func filePath(loc LocalLocator) (string, error) {
	switch l := loc.(type) {
	case FileLocator:
		return l.path, nil
	case *FileLocator:
		return l.path, nil
	default:
		return "", fmt.Errorf("resolve %T: %w", loc, ErrUnsupportedLocator)
	}
}
