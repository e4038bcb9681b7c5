// Package preview renders the images shown under the pointer during a drag.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"gioui.org/f32"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	// Extra decoders for Load.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxEdge caps the longest side of a rendered preview in pixels.
const DefaultMaxEdge = 256

// Load decodes the image at path, honouring EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load preview %s: %w", path, err)
	}
	return img, nil
}

// Render scales src to the logical size multiplied by density, keeping
// the longest edge within maxEdge pixels. It returns the image and the
// offset that places its center under the pointer.
func Render(src image.Image, size f32.Point, density float32, maxEdge int) (image.Image, image.Point) {
	if density <= 0 {
		density = 1
	}
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	w := int(size.X*density + 0.5)
	h := int(size.Y*density + 0.5)
	if w <= 0 || h <= 0 {
		b := src.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	if w > maxEdge || h > maxEdge {
		if w >= h {
			h = h * maxEdge / w
			w = maxEdge
		} else {
			w = w * maxEdge / h
			h = maxEdge
		}
	}
	w, h = max(w, 1), max(h, 1)

	var out image.Image = src
	if b := src.Bounds(); b.Dx() != w || b.Dy() != h {
		out = imaging.Resize(src, w, h, imaging.Lanczos)
	}
	return out, image.Pt(-w/2, -h/2)
}

// Label draws a card with text centred on it. It stands in for content
// that has no image of its own.
func Label(text string, w, h int) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 40, G: 44, B: 52, A: 230}), image.Point{}, draw.Src)
	drawRectangle(img, 0, 0, w, h, color.RGBA{R: 120, G: 160, B: 255, A: 255})

	drawTextWithOutline(img, fitLabel(text, w), w/2, h/2, color.White, color.RGBA{A: 200})
	return img
}

// fitLabel truncates text to what fits in w pixels at 7px per glyph.
func fitLabel(text string, w int) string {
	runes := []rune(text)
	maxChars := (w - 4) / 7
	if maxChars <= 0 || len(runes) <= maxChars {
		return text
	}
	if maxChars == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxChars-1]) + "~"
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text centred on (x, y) with a one-pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13 glyphs are 7px wide; the dot sits on the baseline.
	offsetX := x - len(text)*7/2
	offsetY := y + 13/2 - 2

	stamp := func(dx, dy int, c color.Color) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(offsetX+dx, offsetY+dy),
		}
		d.DrawString(text)
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				stamp(dx, dy, outlineColor)
			}
		}
	}
	stamp(0, 0, textColor)
}
