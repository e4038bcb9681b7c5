package script

import (
	"fmt"
	"strings"

	"gioui.org/f32"
	"github.com/mj1618/desktop-dnd/internal/dnd"
	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// Recorder is a drop target that logs every notification it receives.
// When it wraps a sink, the sink decides whether to accept; otherwise the
// region's accept patterns and file limit do.
type Recorder struct {
	name    string
	spec    model.TargetSpec
	inner   dnd.DropTarget
	calls   []string
	dropped []transfer.Locator
}

// NewRecorder returns a recorder for the named region. inner may be nil.
func NewRecorder(name string, spec model.TargetSpec, inner dnd.DropTarget) *Recorder {
	return &Recorder{name: name, spec: spec, inner: inner}
}

func (r *Recorder) Name() string { return r.name }

// Calls returns the notifications received, oldest first.
func (r *Recorder) Calls() []string { return r.calls }

// DroppedLocators returns the locators of the last accepted drop.
func (r *Recorder) DroppedLocators() []transfer.Locator { return r.dropped }

func (r *Recorder) Started(mimeTypes []string, at f32.Point) bool {
	var ok bool
	if r.inner != nil {
		ok = r.inner.Started(mimeTypes, at)
	} else {
		ok = transfer.MatchAny(r.spec.Accept, mimeTypes)
	}
	r.record("started [%s] -> %t", strings.Join(mimeTypes, " "), ok)
	return ok
}

func (r *Recorder) Entered() {
	if r.inner != nil {
		r.inner.Entered()
	}
	r.record("entered")
}

func (r *Recorder) Moved(at f32.Point) {
	if r.inner != nil {
		r.inner.Moved(at)
	}
	r.record("moved %g,%g", at.X, at.Y)
}

func (r *Recorder) Exited() {
	if r.inner != nil {
		r.inner.Exited()
	}
	r.record("exited")
}

func (r *Recorder) Dropped(locators []transfer.Locator, at f32.Point) bool {
	var ok bool
	if r.inner != nil {
		ok = r.inner.Dropped(locators, at)
	} else {
		ok = r.spec.MaxFiles == 0 || len(locators) <= r.spec.MaxFiles
	}
	if ok {
		r.dropped = locators
	}
	r.record("dropped %d at %g,%g -> %t", len(locators), at.X, at.Y, ok)
	return ok
}

func (r *Recorder) Ended() {
	if r.inner != nil {
		r.inner.Ended()
	}
	r.record("ended")
}

func (r *Recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}
