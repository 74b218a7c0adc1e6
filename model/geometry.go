package model

import "math"

// Rect represents an axis-aligned rectangle in page or raster coordinates.
// The origin is the top-left corner of the page with y increasing downward.
// A well-formed Rect satisfies X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0 float64 // Top-left corner
	X1, Y1 float64 // Bottom-right corner
}

// NewRect creates a rectangle from two corner points, normalizing the
// coordinates so that X0 <= X1 and Y0 <= Y1.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// CenterX returns the x coordinate of the rectangle's center.
func (r Rect) CenterX() float64 {
	return (r.X0 + r.X1) / 2
}

// CenterY returns the y coordinate of the rectangle's center.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Intersects checks if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 || r.X0 > other.X1 ||
		r.Y1 < other.Y0 || r.Y0 > other.Y1)
}

// Clamp clips each edge of the rectangle independently into
// [0, dims.Width] x [0, dims.Height]. Edges are clamped per axis, so a
// rectangle partially outside the page keeps whatever portion lies inside.
func (r Rect) Clamp(dims PageDimensions) Rect {
	return Rect{
		X0: clamp(r.X0, 0, dims.Width),
		Y0: clamp(r.Y0, 0, dims.Height),
		X1: clamp(r.X1, 0, dims.Width),
		Y1: clamp(r.Y1, 0, dims.Height),
	}
}

// ShiftInto moves the rectangle rigidly so that it lies fully inside
// [0, dims.Width] x [0, dims.Height], preserving width and height exactly.
// If the rectangle is larger than the page on an axis it is pinned to the
// page origin on that axis.
func (r Rect) ShiftInto(dims PageDimensions) Rect {
	out := r
	if out.X0 < 0 {
		shift := -out.X0
		out.X0 = 0
		out.X1 += shift
	}
	if out.X1 > dims.Width {
		shift := out.X1 - dims.Width
		out.X1 = dims.Width
		out.X0 -= shift
	}
	if out.Y0 < 0 {
		shift := -out.Y0
		out.Y0 = 0
		out.Y1 += shift
	}
	if out.Y1 > dims.Height {
		shift := out.Y1 - dims.Height
		out.Y1 = dims.Height
		out.Y0 -= shift
	}
	if out.X0 < 0 {
		out.X1 -= out.X0
		out.X0 = 0
	}
	if out.Y0 < 0 {
		out.Y1 -= out.Y0
		out.Y0 = 0
	}
	return out
}

// ExpandToAspect grows the rectangle so that width/height equals ratio,
// expanding (never shrinking) the narrower dimension symmetrically around
// the rectangle's center. A non-positive ratio or a degenerate rectangle is
// returned unchanged.
func (r Rect) ExpandToAspect(ratio float64) Rect {
	if ratio <= 0 || r.Height() <= 0 || r.Width() <= 0 {
		return r
	}
	current := r.Width() / r.Height()
	out := r
	if current > ratio {
		// Too wide: grow height.
		newHeight := r.Width() / ratio
		cy := r.CenterY()
		out.Y0 = cy - newHeight/2
		out.Y1 = cy + newHeight/2
	} else {
		// Too tall: grow width.
		newWidth := r.Height() * ratio
		cx := r.CenterX()
		out.X0 = cx - newWidth/2
		out.X1 = cx + newWidth/2
	}
	return out
}

// Scale multiplies each coordinate by independent per-axis factors. Used to
// convert raster-space rectangles back to page space.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{
		X0: r.X0 * sx,
		Y0: r.Y0 * sy,
		X1: r.X1 * sx,
		Y1: r.Y1 * sy,
	}
}

// PageDimensions holds the width and height of the page or raster a
// rectangle is expressed in. Coordinates are never mixed between spaces
// within one computation.
type PageDimensions struct {
	Width  float64
	Height float64
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
