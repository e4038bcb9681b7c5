package platform

import (
	"fmt"
	"image"
	"runtime"
	"sort"

	"gioui.org/f32"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// DragRequest asks the host to start a native drag operation.
type DragRequest struct {
	Gesture  string                // Gesture ID, for correlating logs
	Origin   f32.Point             // Pointer position in native coordinates
	Transfer transfer.Transferable // Payload handed to the OS
	Records  []transfer.Record     // Decoded view of Transfer
	Preview  image.Image           // Optional drag image
	Offset   image.Point           // Preview offset relative to the pointer
}

// Host is the native side of the bridge: the windowing system that
// recognises gestures and carries transfers between processes.
type Host interface {
	// StartDrag begins a native drag carrying req.Transfer.
	StartDrag(req DragRequest) error
}

// ErrUnsupported is returned when a host is not available on this platform.
var ErrUnsupported = fmt.Errorf("host not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

// NewHostFuncs holds host constructors by name. Host packages register
// themselves via init(); see internal/platform/script.
var NewHostFuncs = map[string]func() (Host, error){}

// NewHost returns the named host.
func NewHost(name string) (Host, error) {
	fn, ok := NewHostFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown host %q (available: %v): %w", name, Hosts(), ErrUnsupported)
	}
	return fn()
}

// Hosts lists the registered host names.
func Hosts() []string {
	names := make([]string, 0, len(NewHostFuncs))
	for name := range NewHostFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
