// Package dnd routes drag-and-drop gestures through a tree of nested regions.
//
// Every region that can be dragged from or dropped onto is represented by a
// Node. Nodes hold optional DragSource and DropTarget capabilities; the
// tree always prefers the most specific region under the pointer.
// All operations are synchronous and expect callers to serialise events.
package dnd

import (
	"image"
	"slices"

	"gioui.org/f32"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

// DragSource supplies content when a drag starts on its region.
type DragSource interface {
	// Transfer returns the content to drag from the node-local point at,
	// or nil when nothing can be dragged there.
	Transfer(at f32.Point) *transfer.Descriptor
}

// DropTarget receives the notifications of a drop gesture. Points are
// node-local.
type DropTarget interface {
	// Started is called once per gesture; returning true arms the target.
	Started(mimeTypes []string, at f32.Point) bool
	Entered()
	Moved(at f32.Point)
	Exited()
	// Dropped delivers the locators and reports whether they were consumed.
	Dropped(locators []transfer.Locator, at f32.Point) bool
	Ended()
}

// DropTargetFuncs adapts optional callbacks to a DropTarget. Missing
// callbacks do nothing; a missing OnStarted or OnDropped reports false.
type DropTargetFuncs struct {
	OnStarted func(mimeTypes []string, at f32.Point) bool
	OnEntered func()
	OnMoved   func(at f32.Point)
	OnExited  func()
	OnDropped func(locators []transfer.Locator, at f32.Point) bool
	OnEnded   func()
}

func (f DropTargetFuncs) Started(mimeTypes []string, at f32.Point) bool {
	return f.OnStarted != nil && f.OnStarted(mimeTypes, at)
}

func (f DropTargetFuncs) Entered() {
	if f.OnEntered != nil {
		f.OnEntered()
	}
}

func (f DropTargetFuncs) Moved(at f32.Point) {
	if f.OnMoved != nil {
		f.OnMoved(at)
	}
}

func (f DropTargetFuncs) Exited() {
	if f.OnExited != nil {
		f.OnExited()
	}
}

func (f DropTargetFuncs) Dropped(locators []transfer.Locator, at f32.Point) bool {
	return f.OnDropped != nil && f.OnDropped(locators, at)
}

func (f DropTargetFuncs) Ended() {
	if f.OnEnded != nil {
		f.OnEnded()
	}
}

// StaticSource offers a fixed list of locators. With no locators it never
// starts a drag.
type StaticSource struct {
	Locators []transfer.Locator
	Preview  image.Image
}

func (s StaticSource) Transfer(at f32.Point) *transfer.Descriptor {
	if len(s.Locators) == 0 {
		return nil
	}
	return &transfer.Descriptor{
		Locators: slices.Clone(s.Locators),
		Preview:  s.Preview,
	}
}
