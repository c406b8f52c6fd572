package regionpicker

import (
	"errors"
	"testing"

	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

// newTestPicker shows a 1000x1000 image at half size, so screen distances
// double in natural space.
func newTestPicker() *Picker {
	return New(
		geometry.Resolution{Width: 1000, Height: 1000},
		geometry.Rect{X: 0, Y: 0, W: 500, H: 500},
		2, 2,
	)
}

func dragBox(p *Picker, from, to geometry.Point) {
	p.PointerDown(from)
	p.PointerMove(to)
	p.PointerUp()
}

func TestDragMapsToNaturalPixels(t *testing.T) {
	p := newTestPicker()

	dragBox(p, geometry.Point{X: 100, Y: 100}, geometry.Point{X: 150, Y: 130})

	boxes := p.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("Expected 1 box, got %d", len(boxes))
	}
	want := geometry.Box{X: 200, Y: 200, Width: 100, Height: 60}
	if boxes[0] != want {
		t.Errorf("Box = %+v, want %+v", boxes[0], want)
	}
}

func TestDragFlipsAroundAnchor(t *testing.T) {
	p := newTestPicker()

	// Dragging up-left from (200,200) to (150,170)
	dragBox(p, geometry.Point{X: 200, Y: 200}, geometry.Point{X: 150, Y: 170})

	boxes := p.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("Expected 1 box, got %d", len(boxes))
	}
	want := geometry.Box{X: 300, Y: 340, Width: 100, Height: 60}
	if boxes[0] != want {
		t.Errorf("Box = %+v, want %+v", boxes[0], want)
	}
}

func TestTinyDragCommitsNothing(t *testing.T) {
	p := newTestPicker()

	// 5 screen pixels = 10 natural pixels: not strictly above the threshold
	dragBox(p, geometry.Point{X: 100, Y: 100}, geometry.Point{X: 105, Y: 105})

	if len(p.Boxes()) != 0 {
		t.Error("A drag at the minimum size should not commit")
	}

	// One pixel more commits
	dragBox(p, geometry.Point{X: 100, Y: 100}, geometry.Point{X: 105.5, Y: 105.5})
	if len(p.Boxes()) != 1 {
		t.Error("A drag above the minimum size should commit")
	}
}

func TestMaxBoxesIgnoresFurtherDrags(t *testing.T) {
	p := newTestPicker()

	dragBox(p, geometry.Point{X: 10, Y: 10}, geometry.Point{X: 60, Y: 60})
	dragBox(p, geometry.Point{X: 200, Y: 200}, geometry.Point{X: 260, Y: 260})
	dragBox(p, geometry.Point{X: 300, Y: 300}, geometry.Point{X: 360, Y: 360})

	if got := len(p.Boxes()); got != 2 {
		t.Errorf("Expected the third drag to be ignored, got %d boxes", got)
	}
}

func TestPointerDownIgnoredWhileDragging(t *testing.T) {
	p := newTestPicker()

	p.PointerDown(geometry.Point{X: 100, Y: 100})
	p.PointerDown(geometry.Point{X: 300, Y: 300})
	p.PointerMove(geometry.Point{X: 150, Y: 150})
	p.PointerUp()

	boxes := p.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("Expected 1 box, got %d", len(boxes))
	}
	if boxes[0].X != 200 {
		t.Errorf("Second PointerDown should not restart the drag, got %+v", boxes[0])
	}
}

func TestDraggingPreview(t *testing.T) {
	p := newTestPicker()

	if _, ok := p.Dragging(); ok {
		t.Error("No drag should be reported while idle")
	}

	p.PointerDown(geometry.Point{X: 100, Y: 100})
	p.PointerMove(geometry.Point{X: 160, Y: 140})

	box, ok := p.Dragging()
	if !ok {
		t.Fatal("Dragging should report the in-progress rectangle")
	}
	if box.Width != 120 || box.Height != 80 {
		t.Errorf("Preview = %+v, want 120x80", box)
	}
	p.PointerUp()
}

func TestConfirmRequiresExactCount(t *testing.T) {
	p := newTestPicker()

	dragBox(p, geometry.Point{X: 10, Y: 10}, geometry.Point{X: 60, Y: 60})

	if p.CanConfirm() {
		t.Error("One box should not satisfy a required count of two")
	}
	if _, err := p.Confirm(); !errors.Is(err, ErrWrongCount) {
		t.Errorf("Expected ErrWrongCount, got %v", err)
	}

	dragBox(p, geometry.Point{X: 200, Y: 200}, geometry.Point{X: 260, Y: 260})

	if !p.CanConfirm() {
		t.Fatal("Two boxes should satisfy the required count")
	}
	boxes, err := p.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if len(boxes) != 2 {
		t.Errorf("Expected 2 boxes, got %d", len(boxes))
	}
}

func TestReset(t *testing.T) {
	p := newTestPicker()

	dragBox(p, geometry.Point{X: 10, Y: 10}, geometry.Point{X: 60, Y: 60})
	p.PointerDown(geometry.Point{X: 200, Y: 200})
	p.Reset()

	if len(p.Boxes()) != 0 {
		t.Error("Reset should clear committed boxes")
	}
	if _, ok := p.Dragging(); ok {
		t.Error("Reset should abort the active drag")
	}
}

func TestDragStartClampsToDisplayedRect(t *testing.T) {
	p := New(
		geometry.Resolution{Width: 1000, Height: 1000},
		geometry.Rect{X: 50, Y: 50, W: 500, H: 500},
		2, 2,
	)

	// Pointer left of the displayed image clamps to its edge
	p.PointerDown(geometry.Point{X: 0, Y: 300})
	p.PointerMove(geometry.Point{X: 100, Y: 360})
	p.PointerUp()

	boxes := p.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("Expected 1 box, got %d", len(boxes))
	}
	if boxes[0].X != 0 {
		t.Errorf("Expected drag anchored at the image edge, got x=%d", boxes[0].X)
	}
}
