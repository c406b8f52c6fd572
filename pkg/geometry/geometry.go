// Package geometry provides the pure coordinate math shared by the canvas
// engine, the face-crop utility and the manual region picker: rectangles in
// canvas space, face boxes in source-image pixel space, padded/square crop
// expansion and percentage-to-pixel conversion.
//
// Nothing in this package touches a rendering surface, so every function here
// is testable without one.
package geometry

import "math"

// Point is a position in canvas pixel space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in canvas pixel space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Pad returns the rectangle grown by pad on every side.
func (r Rect) Pad(pad float64) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + pad*2, H: r.H + pad*2}
}

// Resolution is the pixel size of a source image or reference frame.
type Resolution struct {
	Width  int
	Height int
}

// Box is a face bounding box in source-image pixel coordinates.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the box area in pixels.
func (b Box) Area() int {
	return b.Width * b.Height
}

// PercentBox is a face bounding box expressed as percentages (0-100) of some
// reference resolution. Automatic detectors report faces in this form.
type PercentBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToPixels converts a percentage box into pixel coordinates against ref.
// The reference resolution is always an explicit input; callers that know the
// real image size must pass it rather than assume a fixed frame.
func (pb PercentBox) ToPixels(ref Resolution) Box {
	return Box{
		X:      int(math.Round(pb.X / 100 * float64(ref.Width))),
		Y:      int(math.Round(pb.Y / 100 * float64(ref.Height))),
		Width:  int(math.Round(pb.Width / 100 * float64(ref.Width))),
		Height: int(math.Round(pb.Height / 100 * float64(ref.Height))),
	}
}

// PadBox expands b symmetrically by padding (a fraction of the box's own
// width/height) and clamps the result to the image bounds. Degenerate input
// boxes are normalized to at least 1x1 before padding.
func PadBox(b Box, padding float64, bounds Resolution) Box {
	bx := maxInt(0, b.X)
	by := maxInt(0, b.Y)
	bw := maxInt(1, b.Width)
	bh := maxInt(1, b.Height)

	padX := int(float64(bw) * padding)
	padY := int(float64(bh) * padding)

	x := maxInt(0, bx-padX)
	y := maxInt(0, by-padY)
	w := minInt(bounds.Width-x, bw+padX*2)
	h := minInt(bounds.Height-y, bh+padY*2)

	return Box{X: x, Y: y, Width: w, Height: h}
}

// SquareBox expands the shorter dimension of b outward (centered) so width
// equals height, clamped to the image bounds. The side never exceeds the
// smaller image dimension, so the result is always a valid square crop.
func SquareBox(b Box, bounds Resolution) Box {
	side := maxInt(b.Width, b.Height)
	if side > bounds.Width {
		side = bounds.Width
	}
	if side > bounds.Height {
		side = bounds.Height
	}

	x := b.X - (side-b.Width)/2
	y := b.Y - (side-b.Height)/2
	x = clampInt(x, 0, bounds.Width-side)
	y = clampInt(y, 0, bounds.Height-side)

	return Box{X: x, Y: y, Width: side, Height: side}
}

// GradientStops returns n evenly spaced stop offsets in [0,1]. A single color
// degenerates to one stop at 0.
func GradientStops(n int) []float64 {
	if n <= 0 {
		return nil
	}
	stops := make([]float64, n)
	if n == 1 {
		return stops
	}
	for i := range stops {
		stops[i] = float64(i) / float64(n-1)
	}
	return stops
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
