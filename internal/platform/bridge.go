package platform

import (
	"log/slog"
	"sync"

	"gioui.org/f32"
	"github.com/google/uuid"
	"github.com/mj1618/desktop-dnd/internal/dnd"
	"github.com/mj1618/desktop-dnd/internal/preview"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// Bridge adapts native drag-source and drop-target callbacks into calls on
// the root of a dispatch tree. Native coordinates are divided by the
// display density to obtain logical ones.
//
// Callbacks are serialised by the bridge so it can be shared between
// request handlers.
type Bridge struct {
	mu      sync.Mutex
	root    *dnd.Node
	host    Host
	codec   *transfer.Codec
	log     *slog.Logger
	density float32
	maxEdge int

	gesture string
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithDensity sets the native pixels per logical unit.
func WithDensity(d float32) BridgeOption {
	return func(b *Bridge) { b.SetDensity(d) }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) BridgeOption {
	return func(b *Bridge) { b.log = l }
}

// WithMaxPreviewEdge caps the drag preview size in pixels.
func WithMaxPreviewEdge(px int) BridgeOption {
	return func(b *Bridge) { b.maxEdge = px }
}

// NewBridge returns a bridge feeding root and starting drags on host.
func NewBridge(root *dnd.Node, host Host, codec *transfer.Codec, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		root:    root,
		host:    host,
		codec:   codec,
		log:     slog.Default(),
		density: 1,
		maxEdge: preview.DefaultMaxEdge,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Root returns the dispatch tree the bridge feeds.
func (b *Bridge) Root() *dnd.Node { return b.root }

// SetDensity updates the display density. Non-positive values mean 1.
func (b *Bridge) SetDensity(d float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d <= 0 {
		d = 1
	}
	b.density = d
}

func (b *Bridge) Density() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.density
}

// Gesture returns the ID of the drop gesture in flight, or "".
func (b *Bridge) Gesture() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gesture
}

func (b *Bridge) logical(x, y float32) f32.Point {
	return f32.Pt(x/b.density, y/b.density)
}

// DragGestureRecognized handles a native drag gesture at (x, y). It reports
// whether a native drag was started.
func (b *Bridge) DragGestureRecognized(x, y float32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	at := b.logical(x, y)
	d := b.root.BeginDrag(at)
	if d.Empty() {
		b.log.Debug("No drag source under pointer", slog.Any("at", at))
		return false
	}

	gesture := uuid.NewString()
	log := b.log.With(slog.String("gesture", gesture))
	records, err := b.codec.Records(d.Locators)
	if err != nil {
		log.Error("Unable to resolve drag content", slog.String("error", err.Error()))
		return false
	}
	bundle, err := transfer.EncodeRecords(records)
	if err != nil {
		log.Error("Unable to encode drag", slog.String("error", err.Error()))
		return false
	}

	req := DragRequest{
		Gesture:  gesture,
		Origin:   f32.Pt(x, y),
		Transfer: bundle,
		Records:  records,
	}
	if d.Preview != nil {
		req.Preview, req.Offset = preview.Render(d.Preview, d.Size, b.density, b.maxEdge)
	}
	if err := b.host.StartDrag(req); err != nil {
		log.Error("Unable to start drag", slog.String("error", err.Error()))
		return false
	}
	log.Info("Drag started", slog.Int("locators", len(records)), slog.Any("at", at))
	return true
}

// DragEnter handles a transfer entering the window. It reports whether any
// region accepted the gesture.
func (b *Bridge) DragEnter(x, y float32, t transfer.Transferable) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gesture = uuid.NewString()
	at := b.logical(x, y)
	mimeTypes := b.codec.MimeTypes(b.codec.Decode(t))
	accepted := b.root.DropSequenceStarted(mimeTypes, at)
	b.root.Entered()
	b.log.Debug("Drag entered",
		slog.String("gesture", b.gesture),
		slog.Any("mimeTypes", mimeTypes),
		slog.Bool("accepted", accepted),
	)
	return accepted
}

// DragOver handles pointer movement while a transfer hovers the window.
func (b *Bridge) DragOver(x, y float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.root.PointerMoved(b.logical(x, y))
}

// Drop delivers the transfer and reports whether it was handled. A transfer
// without decodable locators is handled as a no-op. The gesture always ends.
func (b *Bridge) Drop(x, y float32, t transfer.Transferable) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer b.end()
	at := b.logical(x, y)
	locators := b.codec.Decode(t)
	if len(locators) == 0 {
		b.log.Info("Empty drop ignored", slog.String("gesture", b.gesture))
		return true
	}
	handled := b.root.Dropped(locators, at)
	b.log.Info("Dropped",
		slog.String("gesture", b.gesture),
		slog.Int("locators", len(locators)),
		slog.Bool("handled", handled),
	)
	return handled
}

// DragExit handles a transfer leaving the window without a drop.
func (b *Bridge) DragExit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.root.PointerExited()
	b.end()
}

func (b *Bridge) end() {
	b.root.GestureEnded()
	b.gesture = ""
}
