package script

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/platform"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// Result is the outcome of a replay.
type Result struct {
	Steps   []Step      `yaml:"steps"   json:"steps"`
	Regions []RegionLog `yaml:"regions" json:"regions"`
}

// Step reports what one event did.
type Step struct {
	Event    string     `yaml:"event"              json:"event"`
	At       [2]float32 `yaml:"at,flow,omitempty"  json:"at,omitempty"` // Logical coordinates
	Accepted *bool      `yaml:"accepted,omitempty" json:"accepted,omitempty"`
	Drag     *DragInfo  `yaml:"drag,omitempty"     json:"drag,omitempty"`
}

// DragInfo describes a drag handed to the host.
type DragInfo struct {
	Records []transfer.Record `yaml:"records"                 json:"records"`
	Preview [2]int            `yaml:"preview,flow,omitempty"  json:"preview,omitempty"` // Width, height in pixels
	Offset  [2]int            `yaml:"offset,flow,omitempty"   json:"offset,omitempty"`
}

// RegionLog lists the notifications one drop target received.
type RegionLog struct {
	Name    string   `yaml:"name"              json:"name"`
	Calls   []string `yaml:"calls"             json:"calls"`
	Dropped []string `yaml:"dropped,omitempty" json:"dropped,omitempty"`
}

// pendingTransfer is implemented by hosts that can hand back the payload
// of the last drag they started.
type pendingTransfer interface {
	Pending() transfer.Transferable
}

// Runner replays scripts through a platform bridge.
type Runner struct {
	Builder Builder
	Codec   *transfer.Codec
	// Host receives drag requests; a fresh recording host is used when nil.
	Host    platform.Host
	Density float32 // Used when the layout does not set one
	MaxEdge int
	Log     *slog.Logger
}

// Run builds the layout and feeds every event to the bridge in order.
func (r *Runner) Run(ctx context.Context, s *Script) (*Result, error) {
	sess, err := r.Start(&s.Layout)
	if err != nil {
		return nil, err
	}
	var steps []Step
	for _, e := range s.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step, err := sess.Apply(e)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if sess.bridge.Gesture() != "" {
		// A session that stops mid-gesture is abandoned, as when the user
		// releases outside every window.
		step, _ := sess.Apply(Event{Type: EventExit})
		steps = append(steps, step)
	}
	res := sess.Result()
	res.Steps = steps
	return res, nil
}

// Start builds the layout and returns a session ready for events.
func (r *Runner) Start(l *model.Layout) (*Session, error) {
	tree, err := r.Builder.Build(l)
	if err != nil {
		return nil, err
	}
	host := r.Host
	if host == nil {
		host = NewHost()
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	density := l.Density
	if density <= 0 {
		density = r.Density
	}
	bridge := platform.NewBridge(tree.Root, host, r.Codec,
		platform.WithDensity(density),
		platform.WithLogger(log),
		platform.WithMaxPreviewEdge(r.MaxEdge),
	)
	return &Session{tree: tree, host: host, bridge: bridge}, nil
}

// Session feeds events one at a time to a bridge over a built layout.
type Session struct {
	mu     sync.Mutex
	tree   *Tree
	host   platform.Host
	bridge *platform.Bridge
}

// Tree returns the dispatch tree the session drives.
func (s *Session) Tree() *Tree { return s.tree }

// Result reports what every recording region has received so far.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := &Result{}
	for _, rec := range s.tree.Recorders {
		rl := RegionLog{Name: rec.Name(), Calls: slices.Clone(rec.Calls())}
		for _, loc := range rec.DroppedLocators() {
			rl.Dropped = append(rl.Dropped, loc.Path())
		}
		res.Regions = append(res.Regions, rl)
	}
	return res
}

// Apply delivers one native event.
func (s *Session) Apply(e Event) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bridge, host := s.bridge, s.host

	step := Step{Event: e.Type}
	if e.Type != EventExit && e.Type != EventDensity {
		step.At = [2]float32{e.X / bridge.Density(), e.Y / bridge.Density()}
	}

	switch e.Type {
	case EventDrag:
		started := bridge.DragGestureRecognized(e.X, e.Y)
		step.Accepted = &started
		if started {
			if rh, ok := host.(*Host); ok {
				req := rh.Requests()[len(rh.Requests())-1]
				step.Drag = &DragInfo{Records: req.Records}
				if req.Preview != nil {
					size := req.Preview.Bounds().Size()
					step.Drag.Preview = [2]int{size.X, size.Y}
					step.Drag.Offset = [2]int{req.Offset.X, req.Offset.Y}
				}
			}
		}
	case EventEnter:
		t, err := transferable(host, e)
		if err != nil {
			return step, err
		}
		accepted := bridge.DragEnter(e.X, e.Y, t)
		step.Accepted = &accepted
	case EventOver:
		bridge.DragOver(e.X, e.Y)
	case EventDrop:
		t, err := transferable(host, e)
		if err != nil {
			return step, err
		}
		handled := bridge.Drop(e.X, e.Y, t)
		step.Accepted = &handled
	case EventExit:
		bridge.DragExit()
	case EventDensity:
		if e.Density <= 0 {
			return step, fmt.Errorf("density must be positive, got %g", e.Density)
		}
		bridge.SetDensity(e.Density)
	default:
		return step, fmt.Errorf("unknown event type %q", e.Type)
	}
	return step, nil
}

// transferable returns the payload the event carries, falling back to the
// host's last drag so in-window drags can be dropped.
func transferable(host platform.Host, e Event) (transfer.Transferable, error) {
	t, err := e.transferable()
	if err != nil || t != nil {
		return t, err
	}
	if p, ok := host.(pendingTransfer); ok {
		if pt := p.Pending(); pt != nil {
			return pt, nil
		}
	}
	return transfer.NewBundle(), nil
}
