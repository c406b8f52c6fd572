package canvas

import (
	"context"
	"testing"

	"github.com/creativemagic/thumbstudio/pkg/element"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

// overlapDoc builds a document with a text element and an image element whose
// boxes overlap around (650,390). The image is appended last, so it paints on
// top. The image source is deliberately unloadable: a broken image keeps its
// hit box and only skips the draw.
func overlapDoc(t *testing.T) (*element.Document, element.Element, element.Element) {
	t.Helper()
	doc := element.NewDocument()
	text := doc.AddText(element.Element{Content: "Title", FontSize: 60, X: 640, Y: 360})
	img := doc.AddImage("/missing/photo.png", 600, 340, 100, 100)
	return doc, text, img
}

func renderFrame(t *testing.T, r *Renderer) {
	t.Helper()
	if _, err := r.RenderDocument(context.Background(), ""); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}

func TestRenderSurfaceSize(t *testing.T) {
	doc := element.NewDocument()
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetInstagram, DisplayScale: 1})

	surface, err := r.RenderDocument(context.Background(), "")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := surface.Bounds()
	if bounds.Dx() != 1080 || bounds.Dy() != 1350 {
		t.Errorf("Expected 1080x1350, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPickElementAtReturnsTopmost(t *testing.T) {
	doc, _, img := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})
	renderFrame(t, r)

	if got := r.PickElementAt(geometry.Point{X: 650, Y: 390}); got != img.ID {
		t.Errorf("Expected topmost element %s, got %q", img.ID, got)
	}
}

func TestPickElementAtMissesEmptySpace(t *testing.T) {
	doc, _, _ := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})
	renderFrame(t, r)

	if got := r.PickElementAt(geometry.Point{X: 5, Y: 5}); got != "" {
		t.Errorf("Expected no hit in empty space, got %q", got)
	}
}

func TestPickElementAtHonorsDisplayScale(t *testing.T) {
	doc, _, img := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 0.5})
	renderFrame(t, r)

	// Device (325,195) maps to canvas (650,390) at half scale
	if got := r.PickElementAt(geometry.Point{X: 325, Y: 195}); got != img.ID {
		t.Errorf("Expected %s at scaled device point, got %q", img.ID, got)
	}
}

func TestHiddenElementsAreNotPickable(t *testing.T) {
	doc, _, img := overlapDoc(t)
	if _, err := doc.Update(img.ID, element.Patch{Visible: element.Bool(false)}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})
	renderFrame(t, r)

	if got := r.PickElementAt(geometry.Point{X: 650, Y: 441}); got == img.ID {
		t.Error("Hidden element should not appear in the hit map")
	}
}

func TestDragMovesElement(t *testing.T) {
	doc, _, img := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})
	renderFrame(t, r)

	if !r.BeginDrag(img.ID, geometry.Point{X: 650, Y: 390}) {
		t.Fatal("BeginDrag should succeed")
	}
	if doc.SelectedID() != img.ID {
		t.Error("BeginDrag should select the element")
	}

	// The pointer leaving the surface does not end the drag
	r.UpdateDrag(geometry.Point{X: 2000, Y: 1500})
	r.UpdateDrag(geometry.Point{X: 700, Y: 440})

	el, _ := doc.ByID(img.ID)
	if el.X != 650 || el.Y != 390 {
		t.Errorf("Expected element at (650,390) preserving grab offset, got (%v,%v)", el.X, el.Y)
	}

	r.EndDrag()
	if r.Dragging() {
		t.Error("EndDrag should release the drag slot")
	}
}

func TestBeginDragIgnoredWhileDragging(t *testing.T) {
	doc, text, img := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})
	renderFrame(t, r)

	if !r.BeginDrag(img.ID, geometry.Point{X: 650, Y: 390}) {
		t.Fatal("First BeginDrag should succeed")
	}
	if r.BeginDrag(text.ID, geometry.Point{X: 640, Y: 360}) {
		t.Error("Second BeginDrag during an active drag should be ignored")
	}
	if doc.SelectedID() != img.ID {
		t.Error("Ignored drag should not steal the selection")
	}
}

func TestBeginDragUnknownID(t *testing.T) {
	doc, _, _ := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})

	if r.BeginDrag("gone", geometry.Point{X: 0, Y: 0}) {
		t.Error("BeginDrag with an unknown id should be ignored")
	}
}

func TestNudge(t *testing.T) {
	doc, _, img := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})

	r.Nudge(img.ID, -NudgeStep, 0)
	r.Nudge(img.ID, 0, NudgeStepFast)

	el, _ := doc.ByID(img.ID)
	if el.X != 599 || el.Y != 350 {
		t.Errorf("Expected (599,350) after nudges, got (%v,%v)", el.X, el.Y)
	}
}

func TestDeleteSelected(t *testing.T) {
	doc, _, img := overlapDoc(t)
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})

	// AddImage selected the image
	r.DeleteSelected()

	if _, ok := doc.ByID(img.ID); ok {
		t.Error("DeleteSelected should remove the selected element")
	}
	if doc.SelectedID() != "" {
		t.Error("Selection should be empty after delete")
	}

	// No selection: a no-op
	before := doc.Len()
	r.DeleteSelected()
	if doc.Len() != before {
		t.Error("DeleteSelected with no selection should do nothing")
	}
}

func TestSetDisplayScaleRejectsNonPositive(t *testing.T) {
	doc := element.NewDocument()
	r := NewRenderer(doc, nil, nil, Options{Preset: PresetYouTube, DisplayScale: 1})

	r.SetDisplayScale(0)
	r.SetDisplayScale(-2)
	if r.displayScale != 1 {
		t.Errorf("Non-positive scales should be ignored, got %v", r.displayScale)
	}

	r.SetDisplayScale(0.85)
	if r.displayScale != 0.85 {
		t.Errorf("Expected scale 0.85, got %v", r.displayScale)
	}
}
