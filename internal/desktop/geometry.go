package desktop

import (
	"math"

	"casedesk/internal/model"
)

// Viewport is the size of the visible container. A zero dimension is unbounded.
type Viewport struct {
	Width  float64
	Height float64
}

// Clamp keeps an icon anchored at p fully inside the viewport.
func (v Viewport) Clamp(p model.Position) model.Position {
	return model.Position{X: clampAxis(p.X, v.Width), Y: clampAxis(p.Y, v.Height)}
}

func clampAxis(v, size float64) float64 {
	if v < 0 {
		v = 0
	}
	if size <= 0 {
		return v
	}
	upper := math.Max(0, size-IconSize)
	if v > upper {
		v = upper
	}
	return v
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps uses strict edges: rectangles that only touch do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// RectFromPoints spans two corners given in any order.
func RectFromPoints(a, b model.Position) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(a.X - b.X),
		H: math.Abs(a.Y - b.Y),
	}
}

// IconRect is the footprint of an item anchored at p.
func IconRect(p model.Position) Rect {
	return Rect{X: p.X, Y: p.Y, W: IconSize, H: IconSize}
}

// Contains reports whether p falls on the icon footprint.
func (r Rect) Contains(p model.Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func near(a, b model.Position) bool {
	return math.Abs(a.X-b.X) < DropProximity && math.Abs(a.Y-b.Y) < DropProximity
}
