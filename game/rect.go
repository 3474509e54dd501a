package game

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned box in screen space (y grows downward)
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAt builds a rect of the given size centered on (cx, cy)
func RectAt(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the rect center as a chipmunk vector
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.CenterX(), Y: r.CenterY()}
}

// BB converts the rect into a chipmunk bounding box. Screen y grows downward,
// so the box's B edge is the rect's top and T is its bottom.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
}

// Inflate grows the rect by dw and dh while keeping its center
func (r Rect) Inflate(dw, dh float64) Rect {
	return Rect{X: r.X - dw/2, Y: r.Y - dh/2, W: r.W + dw, H: r.H + dh}
}

// Move returns the rect shifted by (dx, dy)
func (r Rect) Move(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Clamp moves the rect inside bounds. A rect larger than bounds is centered on that axis.
func (r Rect) Clamp(bounds Rect) Rect {
	r.X = clampAxis(r.X, r.W, bounds.X, bounds.W)
	r.Y = clampAxis(r.Y, r.H, bounds.Y, bounds.H)
	return r
}

// ClampX is Clamp restricted to the horizontal axis
func (r Rect) ClampX(bounds Rect) Rect {
	r.X = clampAxis(r.X, r.W, bounds.X, bounds.W)
	return r
}

func clampAxis(pos, size, lo, span float64) float64 {
	if size >= span {
		return lo + (span-size)/2
	}
	return math.Max(lo, math.Min(pos, lo+span-size))
}

// Collide reports whether two rects overlap. Touching edges count as overlap:
// the boxes collide unless one lies strictly to a side of the other.
func Collide(a, b Rect) bool {
	return a.BB().Intersects(b.BB())
}

// FirstHit returns the index of the first target overlapping r, skipping
// indices for which skip returns true, or -1 when nothing overlaps.
func FirstHit(r Rect, n int, target func(i int) Rect, skip func(i int) bool) int {
	box := r.BB()
	for i := 0; i < n; i++ {
		if skip != nil && skip(i) {
			continue
		}
		if box.Intersects(target(i).BB()) {
			return i
		}
	}
	return -1
}

// MapRange linearly maps v from [inMin, inMax] onto [outMin, outMax].
// A zero-width input range maps everything to outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax-inMin == 0 {
		return outMin
	}
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
