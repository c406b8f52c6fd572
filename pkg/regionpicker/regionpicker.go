// Package regionpicker implements the manual face selection overlay: the
// user drags up to N rectangles over a displayed image, and the picker maps
// the on-screen drags into the image's natural pixel space, producing the
// same boxes the crop utility consumes.
//
// Per rectangle the picker is a two-state machine, idle -> dragging -> idle.
// Accidental clicks (tiny drags) commit nothing, and drag starts are ignored
// once the maximum box count is reached.
package regionpicker

import (
	"fmt"
	"math"

	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

// MinBoxSize is the commit threshold: a drag needs both width and height
// strictly above this many natural-image pixels.
const MinBoxSize = 10

// DefaultRequired is the product default for how many face regions a user
// must mark before confirming.
const DefaultRequired = 2

// ErrWrongCount is returned by Confirm when the drawn box count does not
// match the required count.
var ErrWrongCount = fmt.Errorf("picker requires the exact number of boxes")

type drag struct {
	startScreen geometry.Point
	origin      geometry.Box // natural-space anchor of the drag start
	current     geometry.Box
}

// Picker converts pointer drags over a displayed image into natural-pixel
// face boxes. Screen coordinates are mapped through the displayed/natural
// size ratio, so the picker works at any on-screen zoom.
type Picker struct {
	natural   geometry.Resolution
	displayed geometry.Rect

	maxBoxes int
	required int

	boxes  []geometry.Box
	active *drag
}

// New builds a picker for an image with the given natural resolution shown
// inside the displayed screen rectangle. maxBoxes bounds how many regions can
// be drawn; required is how many Confirm demands (commonly both 2).
func New(natural geometry.Resolution, displayed geometry.Rect, maxBoxes, required int) *Picker {
	if maxBoxes < 1 {
		maxBoxes = DefaultRequired
	}
	if required < 1 || required > maxBoxes {
		required = maxBoxes
	}
	return &Picker{
		natural:   natural,
		displayed: displayed,
		maxBoxes:  maxBoxes,
		required:  required,
	}
}

// SetDisplayedRect updates the on-screen image rectangle after a layout
// change.
func (p *Picker) SetDisplayedRect(r geometry.Rect) {
	p.displayed = r
}

// PointerDown starts a drag at a screen coordinate. It is ignored while a
// drag is active or once the maximum box count is reached.
func (p *Picker) PointerDown(screen geometry.Point) {
	if p.active != nil || len(p.boxes) >= p.maxBoxes {
		return
	}
	start := p.toNatural(screen)
	p.active = &drag{
		startScreen: screen,
		origin:      geometry.Box{X: start.X, Y: start.Y},
		current:     geometry.Box{X: start.X, Y: start.Y},
	}
}

// PointerMove grows the in-progress rectangle. Dragging up or left flips the
// rectangle around its anchor.
func (p *Picker) PointerMove(screen geometry.Point) {
	if p.active == nil {
		return
	}
	dx := screen.X - p.active.startScreen.X
	dy := screen.Y - p.active.startScreen.Y

	sx, sy := p.scale()
	w := int(math.Round(math.Abs(dx) * sx))
	h := int(math.Round(math.Abs(dy) * sy))

	x := p.active.origin.X
	if dx < 0 {
		x -= w
	}
	y := p.active.origin.Y
	if dy < 0 {
		y -= h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	p.active.current = geometry.Box{X: x, Y: y, Width: w, Height: h}
}

// PointerUp ends the drag, committing the rectangle only if both dimensions
// exceed the minimum size. Fast accidental clicks therefore leave no box.
func (p *Picker) PointerUp() {
	d := p.active
	p.active = nil
	if d == nil {
		return
	}
	if d.current.Width > MinBoxSize && d.current.Height > MinBoxSize {
		p.boxes = append(p.boxes, d.current)
	}
}

// Dragging reports whether a rectangle is being drawn, and returns it for
// preview rendering.
func (p *Picker) Dragging() (geometry.Box, bool) {
	if p.active == nil {
		return geometry.Box{}, false
	}
	return p.active.current, true
}

// Boxes returns the committed rectangles in natural-image pixel coordinates.
func (p *Picker) Boxes() []geometry.Box {
	return append([]geometry.Box(nil), p.boxes...)
}

// CanConfirm reports whether exactly the required number of boxes exist.
func (p *Picker) CanConfirm() bool {
	return len(p.boxes) == p.required
}

// Confirm returns the boxes when the required count is met.
func (p *Picker) Confirm() ([]geometry.Box, error) {
	if !p.CanConfirm() {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrWrongCount, len(p.boxes), p.required)
	}
	return p.Boxes(), nil
}

// Reset clears all committed boxes and any in-progress drag.
func (p *Picker) Reset() {
	p.boxes = nil
	p.active = nil
}

func (p *Picker) scale() (sx, sy float64) {
	if p.displayed.W <= 0 || p.displayed.H <= 0 {
		return 1, 1
	}
	return float64(p.natural.Width) / p.displayed.W, float64(p.natural.Height) / p.displayed.H
}

func (p *Picker) toNatural(screen geometry.Point) geometry.Box {
	sx, sy := p.scale()
	x := clamp(screen.X-p.displayed.X, 0, p.displayed.W)
	y := clamp(screen.Y-p.displayed.Y, 0, p.displayed.H)
	return geometry.Box{
		X: int(math.Round(x * sx)),
		Y: int(math.Round(y * sy)),
	}
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
