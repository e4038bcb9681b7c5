package model

import (
	"fmt"
	"strconv"
	"strings"

	"gioui.org/f32"
)

// RectFromBounds converts an [x, y, width, height] box into a logical rectangle.
func RectFromBounds(b [4]int) f32.Rectangle {
	return f32.Rect(float32(b[0]), float32(b[1]), float32(b[0]+b[2]), float32(b[1]+b[3]))
}

// Contains reports whether p lies inside r. Edges are inclusive so that a
// pointer resting on a shared border still hits the region.
func Contains(r f32.Rectangle, p f32.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Area returns width × height of r.
func Area(r f32.Rectangle) float32 {
	return r.Dx() * r.Dy()
}

// ParseBBox parses a "x,y,w,h" string into bounds.
func ParseBBox(s string) ([4]int, error) {
	var b [4]int
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return b, fmt.Errorf("invalid bbox %q: expected x,y,w,h", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return b, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		b[i] = v
	}
	if b[2] < 0 || b[3] < 0 {
		return b, fmt.Errorf("invalid bbox %q: negative size", s)
	}
	return b, nil
}

// ParsePoint parses an "x,y" string into a point.
func ParsePoint(s string) (f32.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return f32.Point{}, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	var vals [2]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return f32.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
		}
		vals[i] = float32(v)
	}
	return f32.Pt(vals[0], vals[1]), nil
}
