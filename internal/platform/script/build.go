package script

import (
	"fmt"
	"log/slog"

	"gioui.org/f32"
	"github.com/mj1618/desktop-dnd/internal/dnd"
	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/preview"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// SinkFactory builds the drop target behind a region's named sink.
type SinkFactory func(region string, spec model.TargetSpec) (dnd.DropTarget, error)

// Tree is a dispatch tree built from a layout.
type Tree struct {
	Root      *dnd.Node
	Nodes     map[string]*dnd.Node
	Recorders []*Recorder
}

// Recorder returns the recorder of the named region, or nil.
func (t *Tree) Recorder(name string) *Recorder {
	for _, r := range t.Recorders {
		if r.Name() == name {
			return r
		}
	}
	return nil
}

// Hit reports the regions under the logical point at, outermost first,
// and the records a drag started there would carry.
func (t *Tree) Hit(at f32.Point, codec *transfer.Codec) (output.HitResult, error) {
	res := output.HitResult{At: [2]float32{at.X, at.Y}, Path: []string{}}
	for _, n := range t.Root.Hit(at) {
		res.Path = append(res.Path, n.Name())
	}
	if d := t.Root.BeginDrag(at); d != nil {
		records, err := codec.Records(d.Locators)
		if err != nil {
			return res, err
		}
		res.Records = records
	}
	return res, nil
}

// Builder turns layouts into dispatch trees.
type Builder struct {
	Sinks map[string]SinkFactory
	// IgnoreSinks builds recorder-only targets, for inspecting a layout
	// without connecting its sinks.
	IgnoreSinks bool
	Log         *slog.Logger
}

// Build creates one node per region, attached in layout order.
func (b *Builder) Build(l *model.Layout) (*Tree, error) {
	root := dnd.NewRoot()
	if l.Bounds != ([4]int{}) {
		root.SetBounds(model.RectFromBounds(l.Bounds))
	}
	t := &Tree{Root: root, Nodes: map[string]*dnd.Node{}}
	if err := b.attach(t, dnd.NewScope(root), l.Regions); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *Builder) attach(t *Tree, scope dnd.Scope, regions []model.Region) error {
	for _, r := range regions {
		opts := []dnd.Option{dnd.WithName(r.Name)}
		if r.Source != nil {
			opts = append(opts, dnd.WithSource(b.source(r)))
		}
		if r.Target != nil {
			var inner dnd.DropTarget
			if r.Target.Sink != "" && !b.IgnoreSinks {
				factory, ok := b.Sinks[r.Target.Sink]
				if !ok {
					return fmt.Errorf("region %q: unknown sink %q", r.Name, r.Target.Sink)
				}
				sink, err := factory(r.Name, *r.Target)
				if err != nil {
					return fmt.Errorf("region %q: %w", r.Name, err)
				}
				inner = sink
			}
			rec := NewRecorder(r.Name, *r.Target, inner)
			t.Recorders = append(t.Recorders, rec)
			opts = append(opts, dnd.WithTarget(rec))
		}

		n := dnd.NewNode(opts...)
		if r.Bounds != nil {
			n.SetBounds(model.RectFromBounds(*r.Bounds))
		}
		t.Nodes[r.Name] = n
		if err := b.attach(t, scope.Attach(n), r.Children); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) source(r model.Region) dnd.StaticSource {
	var s dnd.StaticSource
	for _, f := range r.Source.Files {
		s.Locators = append(s.Locators, transfer.NewFileLocator(f))
	}
	for _, rs := range r.Source.Remote {
		s.Locators = append(s.Locators, transfer.RemoteLocator{URI: rs.URI, MimeType: rs.MimeType})
	}

	w, h := 64, 24
	if r.Bounds != nil {
		w, h = r.Bounds[2], r.Bounds[3]
	}
	switch r.Source.Preview {
	case "image":
		if len(r.Source.Files) > 0 {
			img, err := preview.Load(r.Source.Files[0])
			if err == nil {
				s.Preview = img
				break
			}
			b.logger().Warn("Falling back to label preview", slog.String("region", r.Name), slog.String("error", err.Error()))
		}
		s.Preview = preview.Label(r.Name, w, h)
	case "label":
		s.Preview = preview.Label(r.Name, w, h)
	}
	return s
}

func (b *Builder) logger() *slog.Logger {
	if b.Log != nil {
		return b.Log
	}
	return slog.Default()
}
