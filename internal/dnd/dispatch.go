package dnd

import (
	"slices"

	"gioui.org/f32"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// BeginDrag resolves the content to drag from window point at. The child
// whose subtree holds the smallest laid-out region containing at is asked
// first; the node's own source is consulted only when that yields nothing.
// At most one node in the tree supplies the result.
func (n *Node) BeginDrag(at f32.Point) *transfer.Descriptor {
	if c := n.dragCandidate(at); c != nil {
		if d := c.BeginDrag(at); d != nil {
			return d
		}
	}
	if n.source == nil || !n.contains(at) {
		return nil
	}
	d := n.source.Transfer(n.local(at))
	if d.Empty() {
		return nil
	}
	if d.Size == (f32.Point{}) {
		d.Size = n.bounds.Size()
	}
	return d
}

// Hit returns the chain of descendants BeginDrag would walk for at, from
// the child of n down to the smallest region containing at.
func (n *Node) Hit(at f32.Point) []*Node {
	var path []*Node
	for c := n.dragCandidate(at); c != nil; c = c.dragCandidate(at) {
		path = append(path, c)
	}
	return path
}

// dragCandidate picks the child whose subtree holds the smallest region
// containing p. Equal areas resolve to the earlier child.
func (n *Node) dragCandidate(p f32.Point) *Node {
	var pick *Node
	var best float32
	for _, c := range n.children {
		if a, ok := c.smallestWithin(p); ok && (pick == nil || a < best) {
			pick, best = c, a
		}
	}
	return pick
}

// smallestWithin returns the area of the smallest laid-out region in n's
// subtree that contains p.
func (n *Node) smallestWithin(p f32.Point) (float32, bool) {
	var best float32
	found := false
	for _, c := range n.children {
		if a, ok := c.smallestWithin(p); ok && (!found || a < best) {
			best, found = a, true
		}
	}
	if found {
		return best, true
	}
	if n.contains(p) {
		return n.area(), true
	}
	return 0, false
}

// DropSequenceStarted announces a new drop gesture carrying mimeTypes. The
// node's own target is asked first, then every child is notified so that
// each can arm itself regardless of the pointer position. It reports
// whether the node or any descendant accepted.
func (n *Node) DropSequenceStarted(mimeTypes []string, at f32.Point) bool {
	if n.acceptor != nil {
		// The previous gesture never ended.
		n.GestureEnded()
	}
	n.active = nil
	if n.target != nil && n.target.Started(mimeTypes, n.local(at)) {
		n.acceptor = n.target
	}
	handledByChild := false
	for _, c := range slices.Clone(n.children) {
		if c.DropSequenceStarted(mimeTypes, at) {
			handledByChild = true
		}
	}
	return handledByChild || n.acceptor != nil
}

// Entered tells the node's acceptor that the pointer is over it.
func (n *Node) Entered() {
	if n.acceptor != nil {
		n.acceptor.Entered()
	}
}

// PointerMoved routes pointer movement to the child containing at, firing
// exit and enter notifications when the pointer crosses between the node's
// own area and its children.
func (n *Node) PointerMoved(at f32.Point) {
	prev := n.active
	next := prev
	if prev == nil || !prev.contains(at) {
		next = n.childAt(at)
	}
	n.active = next

	switch {
	case next != nil && prev == nil:
		// Left us for a child.
		if n.acceptor != nil {
			n.acceptor.Exited()
		}
		next.enter(at)
	case next == nil && prev != nil:
		// Left the child and came back to us.
		prev.exit()
		if n.acceptor != nil {
			n.acceptor.Entered()
			n.acceptor.Moved(n.local(at))
		}
	case next != prev:
		prev.exit()
		next.enter(at)
	case next != nil:
		next.PointerMoved(at)
	default:
		if n.acceptor != nil {
			n.acceptor.Moved(n.local(at))
		}
	}
}

func (n *Node) enter(at f32.Point) {
	n.Entered()
	n.PointerMoved(at)
}

// childAt returns the first child in traversal order containing p.
func (n *Node) childAt(p f32.Point) *Node {
	for _, c := range n.children {
		if c.contains(p) {
			return c
		}
	}
	return nil
}

// exit leaves n on behalf of its parent. An active descendant chain is exited
// innermost first; n's own acceptor was already exited when that chain was
// entered.
func (n *Node) exit() {
	if n.active == nil {
		n.PointerExited()
		return
	}
	n.active.exit()
	n.active = nil
}

// PointerExited tells the node's acceptor the pointer left. Children have
// either been exited by PointerMoved or will see GestureEnded.
func (n *Node) PointerExited() {
	if n.acceptor != nil {
		n.acceptor.Exited()
	}
}

// Dropped delivers locators to the most specific armed target: the active
// child when there is one, else the node's own acceptor.
func (n *Node) Dropped(locators []transfer.Locator, at f32.Point) bool {
	if n.active != nil {
		return n.active.Dropped(locators, at)
	}
	if n.acceptor != nil {
		return n.acceptor.Dropped(locators, n.local(at))
	}
	return false
}

// GestureEnded closes the gesture on every child and on the node's own
// acceptor, then clears per-gesture state. Calling it again is harmless.
func (n *Node) GestureEnded() {
	for _, c := range slices.Clone(n.children) {
		c.GestureEnded()
	}
	acceptor := n.acceptor
	n.acceptor = nil
	n.active = nil
	if acceptor != nil {
		acceptor.Ended()
	}
}
