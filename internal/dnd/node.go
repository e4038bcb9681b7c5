package dnd

import (
	"slices"

	"gioui.org/f32"
	"github.com/mj1618/desktop-dnd/internal/model"
)

// Node is one region of the dispatch tree.
type Node struct {
	name   string
	source DragSource
	target DropTarget

	bounds  f32.Rectangle
	laidOut bool

	children []*Node
	active   *Node
	// acceptor is the node's own target while it has accepted the
	// in-flight gesture.
	acceptor DropTarget
}

// Option configures a Node.
type Option func(*Node)

// WithName sets the name used in diagnostics.
func WithName(name string) Option {
	return func(n *Node) { n.name = name }
}

// WithSource makes the node draggable.
func WithSource(s DragSource) Option {
	return func(n *Node) { n.source = s }
}

// WithTarget makes the node accept drops.
func WithTarget(t DropTarget) Option {
	return func(n *Node) { n.target = t }
}

// NewNode returns a detached node without bounds.
func NewNode(opts ...Option) *Node {
	n := &Node{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewRoot returns a node without capabilities; it leaves every decision
// to its descendants.
func NewRoot() *Node {
	return NewNode(WithName("root"))
}

func (n *Node) Name() string { return n.name }

// SetBounds records the node's on-screen rectangle in logical units.
func (n *Node) SetBounds(r f32.Rectangle) {
	n.bounds = r.Canon()
	n.laidOut = true
}

// ClearBounds marks the node as not laid out; it stops matching hit tests.
func (n *Node) ClearBounds() {
	n.bounds = f32.Rectangle{}
	n.laidOut = false
}

// Bounds returns the node's rectangle and whether it has been laid out.
func (n *Node) Bounds() (f32.Rectangle, bool) {
	return n.bounds, n.laidOut
}

// Children returns a copy of the child list in traversal order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ActiveChild returns the child currently under the pointer, if any.
func (n *Node) ActiveChild() *Node { return n.active }

// Accepting reports whether the node's own target accepted the current gesture.
func (n *Node) Accepting() bool { return n.acceptor != nil }

func (n *Node) register(child *Node) {
	if !slices.Contains(n.children, child) {
		n.children = append(n.children, child)
	}
}

func (n *Node) unregister(child *Node) {
	n.children = slices.DeleteFunc(n.children, func(c *Node) bool { return c == child })
	if n.active == child {
		n.active = nil
	}
}

func (n *Node) contains(p f32.Point) bool {
	return n.laidOut && model.Contains(n.bounds, p)
}

func (n *Node) area() float32 {
	return model.Area(n.bounds)
}

// local converts a window point into node-local coordinates.
func (n *Node) local(p f32.Point) f32.Point {
	if !n.laidOut {
		return p
	}
	return p.Sub(n.bounds.Min)
}
