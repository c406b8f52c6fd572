package canvas

import (
	"context"
	"image"

	"github.com/fogleman/gg"

	"github.com/creativemagic/thumbstudio/internal/fonts"
	"github.com/creativemagic/thumbstudio/pkg/element"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
	"github.com/creativemagic/thumbstudio/pkg/imageio"
)

// BackgroundFallback is the solid fill used when no background image is set
// or the background fails to load.
const BackgroundFallback = "#18181b"

// Hit-map padding around element bounding boxes, wider on touch viewports so
// fingers can pick small elements.
const (
	HitPadding      = 12
	HitPaddingTouch = 20
)

// Keyboard nudge distances in canvas pixels.
const (
	NudgeStep     = 1
	NudgeStepFast = 10
)

// Options configure a Renderer.
type Options struct {
	Preset Preset
	// DisplayScale is the on-screen size of one canvas pixel. It is always
	// an explicit parameter: pointer conversion and the selection outline
	// depend on it, and baking it in as a constant breaks hit-testing the
	// moment the viewport changes.
	DisplayScale float64
	// Touch widens hit-map padding for finger-sized pointers.
	Touch bool
}

type hitRegion struct {
	id   string
	rect geometry.Rect
}

type dragState struct {
	active  bool
	id      string
	offsetX float64
	offsetY float64
}

// Renderer rasterizes a document onto a preset-sized surface and translates
// pointer/keyboard input into document mutations. It is single-threaded,
// driven by the host event loop; Render is idempotent for identical inputs.
type Renderer struct {
	doc    *element.Document
	loader imageio.Loader
	fonts  *fonts.Registry

	preset       Preset
	displayScale float64
	hitPad       float64

	hitmap []hitRegion
	drag   dragState
}

// NewRenderer builds a renderer over the given document. The loader supplies
// background and element images; nil falls back to the HTTP loader.
func NewRenderer(doc *element.Document, loader imageio.Loader, registry *fonts.Registry, opts Options) *Renderer {
	if loader == nil {
		loader = imageio.NewLoader()
	}
	if registry == nil {
		registry = fonts.NewRegistry()
	}
	scale := opts.DisplayScale
	if scale <= 0 {
		scale = 1
	}
	pad := float64(HitPadding)
	if opts.Touch {
		pad = HitPaddingTouch
	}
	return &Renderer{
		doc:          doc,
		loader:       loader,
		fonts:        registry,
		preset:       ParsePreset(string(opts.Preset)),
		displayScale: scale,
		hitPad:       pad,
	}
}

// Preset returns the active size preset.
func (r *Renderer) Preset() Preset {
	return r.preset
}

// SetPreset switches the output resolution. The next Render uses it.
func (r *Renderer) SetPreset(p Preset) {
	r.preset = ParsePreset(string(p))
}

// SetDisplayScale updates the canvas-to-screen scale factor when the host
// viewport resizes.
func (r *Renderer) SetDisplayScale(scale float64) {
	if scale > 0 {
		r.displayScale = scale
	}
}

// RenderDocument rasterizes the renderer's document with its current
// selection. backgroundSrc may be empty.
func (r *Renderer) RenderDocument(ctx context.Context, backgroundSrc string) (image.Image, error) {
	return r.Render(ctx, backgroundSrc, r.doc.Elements(), r.doc.SelectedID())
}

// Render clears the surface, paints the background with cover semantics (or
// the fallback fill), then paints every visible element in list order,
// rebuilding the hit map as it goes. A broken background or element image
// degrades (fallback fill, skipped draw) instead of failing the frame.
func (r *Renderer) Render(ctx context.Context, backgroundSrc string, elements []element.Element, selectedID string) (image.Image, error) {
	size := r.preset.Size()
	dst := gg.NewContext(size.Width, size.Height)

	// One readiness gate per render pass, before any measurement.
	if err := r.fonts.Ready(); err != nil {
		return nil, err
	}

	r.paintBackground(ctx, dst, backgroundSrc, size)

	hitmap := r.hitmap[:0]
	for _, el := range elements {
		if !el.Visible {
			continue
		}

		var bounds geometry.Rect
		var err error
		switch el.Type {
		case element.TypeText:
			bounds, err = r.paintText(dst, el)
		case element.TypeImage:
			bounds = r.paintImage(ctx, dst, el)
		case element.TypeIcon:
			bounds = r.paintIcon(dst, el)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		hitmap = append(hitmap, hitRegion{id: el.ID, rect: bounds.Pad(r.hitPad)})

		if el.ID == selectedID {
			r.paintSelection(dst, bounds)
		}
	}
	r.hitmap = hitmap

	return dst.Image(), nil
}

func (r *Renderer) paintBackground(ctx context.Context, dst *gg.Context, src string, size geometry.Resolution) {
	if src != "" {
		if img, err := r.loader.Load(ctx, src); err == nil {
			dst.DrawImage(coverFit(img, size), 0, 0)
			return
		}
	}
	dst.SetColor(ParseColor(BackgroundFallback))
	dst.Clear()
}

// paintSelection draws the dashed outline around the selected element. Dash
// length and line width divide by the display scale so the outline looks the
// same regardless of how far the surface is zoomed out on screen.
func (r *Renderer) paintSelection(dst *gg.Context, b geometry.Rect) {
	s := r.displayScale
	dst.Push()
	dst.SetRGBA(139/255.0, 92/255.0, 246/255.0, 0.9)
	dst.SetLineWidth(3 / s)
	dst.SetDash(8/s, 6/s)
	dst.DrawRectangle(b.X, b.Y, b.W, b.H)
	dst.Stroke()
	dst.SetDash()
	dst.Pop()
}

// PickElementAt converts a pointer-device coordinate into canvas space and
// returns the id of the topmost hit-map region containing it, or "".
func (r *Renderer) PickElementAt(device geometry.Point) string {
	p := r.toCanvas(device)
	for i := len(r.hitmap) - 1; i >= 0; i-- {
		if r.hitmap[i].rect.Contains(p) {
			return r.hitmap[i].id
		}
	}
	return ""
}

// BeginDrag starts dragging the element under the pointer. Starting a drag
// while one is active is not a supported input sequence and is ignored, as is
// an id that no longer exists.
func (r *Renderer) BeginDrag(id string, device geometry.Point) bool {
	if r.drag.active {
		return false
	}
	el, ok := r.doc.ByID(id)
	if !ok {
		return false
	}
	_ = r.doc.Select(id)
	p := r.toCanvas(device)
	r.drag = dragState{active: true, id: id, offsetX: p.X - el.X, offsetY: p.Y - el.Y}
	return true
}

// UpdateDrag moves the dragged element to follow the pointer, preserving the
// grab offset. The drag survives the pointer leaving and re-entering the
// surface; only EndDrag releases it.
func (r *Renderer) UpdateDrag(device geometry.Point) {
	if !r.drag.active {
		return
	}
	p := r.toCanvas(device)
	_, _ = r.doc.Update(r.drag.id, element.Patch{
		X: element.Float(p.X - r.drag.offsetX),
		Y: element.Float(p.Y - r.drag.offsetY),
	})
}

// EndDrag releases the active drag slot.
func (r *Renderer) EndDrag() {
	r.drag = dragState{}
}

// Dragging reports whether a drag is in progress.
func (r *Renderer) Dragging() bool {
	return r.drag.active
}

// Nudge moves an element by a relative keyboard step.
func (r *Renderer) Nudge(id string, dx, dy float64) {
	el, ok := r.doc.ByID(id)
	if !ok {
		return
	}
	_, _ = r.doc.Update(id, element.Patch{
		X: element.Float(el.X + dx),
		Y: element.Float(el.Y + dy),
	})
}

// DeleteSelected removes the selected element and clears the selection.
func (r *Renderer) DeleteSelected() {
	if id := r.doc.SelectedID(); id != "" {
		r.doc.Delete(id)
	}
}

func (r *Renderer) toCanvas(device geometry.Point) geometry.Point {
	return geometry.Point{X: device.X / r.displayScale, Y: device.Y / r.displayScale}
}
