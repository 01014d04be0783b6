// Package core provides fundamental types shared by the engine, the games and
// the platform layer. It has no external dependencies so game logic stays pure
// and testable.
package core

import "math"

// Vec is a point or displacement in world units.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// Box is an axis-aligned rectangle in world units, given by its corners.
// A point on the Max edge is inside.
type Box struct {
	Min, Max Vec
}

// NewBox creates a box from origin and size.
func NewBox(x, y, w, h float64) Box {
	return Box{Min: Vec{X: x, Y: y}, Max: Vec{X: x + w, Y: y + h}}
}

// W returns the box width.
func (b Box) W() float64 { return b.Max.X - b.Min.X }

// H returns the box height.
func (b Box) H() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Grow returns b expanded by d on every side. Negative d shrinks.
func (b Box) Grow(d float64) Box {
	return Box{
		Min: Vec{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Vec{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Clamp returns p moved to the nearest point inside b.
func (b Box) Clamp(p Vec) Vec {
	return Vec{
		X: ClampF(p.X, b.Min.X, b.Max.X),
		Y: ClampF(p.Y, b.Min.Y, b.Max.Y),
	}
}

// Overlaps reports whether the open interiors of b and o intersect.
// Touching edges do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// Centered returns the box of size (w, h) centered on c.
func Centered(c Vec, w, h float64) Box {
	return Box{
		Min: Vec{X: c.X - w/2, Y: c.Y - h/2},
		Max: Vec{X: c.X + w/2, Y: c.Y + h/2},
	}
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps a world box onto a screen rectangle.
type Viewport struct {
	World  Box
	Screen Rect
}

// Project converts a world position to a screen cell.
// Positions outside the world box land outside the screen rectangle.
func (v Viewport) Project(p Vec) (int, int) {
	ww, wh := v.World.W(), v.World.H()
	if ww <= 0 || wh <= 0 || v.Screen.W <= 0 || v.Screen.H <= 0 {
		return v.Screen.X, v.Screen.Y
	}
	fx := (p.X - v.World.Min.X) / ww
	fy := (p.Y - v.World.Min.Y) / wh
	x := v.Screen.X + int(math.Floor(fx*float64(v.Screen.W-1)+0.5))
	y := v.Screen.Y + int(math.Floor(fy*float64(v.Screen.H-1)+0.5))
	return x, y
}

// Fit returns a viewport mapping world onto the whole of s.
func Fit(world Box, s *Screen) Viewport {
	return Viewport{World: world, Screen: NewRect(0, 0, s.Width(), s.Height())}
}

// ProjectBox converts a world box to the screen cells it covers.
// The result is at least one cell wide and high.
func (v Viewport) ProjectBox(b Box) Rect {
	x0, y0 := v.Project(b.Min)
	x1, y1 := v.Project(b.Max)
	return NewRect(x0, y0, max(1, x1-x0+1), max(1, y1-y0+1))
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
