package dnd

import (
	"testing"

	"gioui.org/f32"
)

func TestScope_AttachDetach(t *testing.T) {
	root := NewRoot()
	scope := NewScope(root)
	a := NewNode(WithName("a"))
	b := NewNode(WithName("b"))
	childScope := scope.Attach(a)
	scope.Attach(b)
	scope.Attach(b)

	if childScope.Parent() != a {
		t.Error("child scope should hang off a")
	}
	if got := root.Children(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected children %v", got)
	}

	scope.Detach(a)
	if got := root.Children(); len(got) != 1 || got[0] != b {
		t.Errorf("expected only b after detach, got %v", got)
	}
	scope.Detach(a)
}

func TestScope_DetachClearsActiveChild(t *testing.T) {
	rec := &recorder{accept: true}
	a := targetNode("a", rect(0, 0, 10, 10), rec)
	root := newRootWith(a)
	root.DropSequenceStarted(nil, f32.Pt(5, 5))
	root.PointerMoved(f32.Pt(5, 5))
	if root.ActiveChild() != a {
		t.Fatal("expected a to be active")
	}

	NewScope(root).Detach(a)
	if root.ActiveChild() != nil {
		t.Error("detached child must not stay active")
	}
	if a.Accepting() {
		t.Error("detached node must forget its acceptor")
	}
	if root.Dropped(nil, f32.Pt(5, 5)) {
		t.Error("no target should receive a drop after detach")
	}
}

func TestNode_Bounds(t *testing.T) {
	n := NewNode()
	if _, ok := n.Bounds(); ok {
		t.Error("new node should not be laid out")
	}
	n.SetBounds(f32.Rect(10, 10, 0, 0))
	r, ok := n.Bounds()
	if !ok || r != f32.Rect(0, 0, 10, 10) {
		t.Errorf("expected canonical bounds, got %v %v", r, ok)
	}
	n.ClearBounds()
	if _, ok := n.Bounds(); ok {
		t.Error("cleared node should not be laid out")
	}
}

func TestDropTargetFuncs_Defaults(t *testing.T) {
	var f DropTargetFuncs
	if f.Started(nil, f32.Point{}) {
		t.Error("missing OnStarted should reject")
	}
	if f.Dropped(nil, f32.Point{}) {
		t.Error("missing OnDropped should reject")
	}
	f.Entered()
	f.Moved(f32.Point{})
	f.Exited()
	f.Ended()
}
