package thumbstudio

import (
	"context"
	"errors"
	"testing"

	"github.com/creativemagic/thumbstudio/pkg/canvas"
	"github.com/creativemagic/thumbstudio/pkg/element"
	"github.com/creativemagic/thumbstudio/pkg/facecrop"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

func TestNew(t *testing.T) {
	studio := New(canvas.PresetYouTube)
	if studio == nil {
		t.Fatal("New() returned nil")
	}

	if studio.doc == nil {
		t.Error("document component is nil")
	}

	if studio.renderer == nil {
		t.Error("renderer component is nil")
	}

	if studio.cropper == nil {
		t.Error("cropper component is nil")
	}

	if studio.fonts == nil {
		t.Error("font registry is nil")
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	studio := New(canvas.PresetYouTube)

	surface, err := studio.Render(context.Background(), "")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := surface.Bounds()
	if bounds.Dx() != 1280 || bounds.Dy() != 720 {
		t.Errorf("Expected 1280x720 surface, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderWithText(t *testing.T) {
	studio := New(canvas.PresetSquare)

	el := studio.Document().AddText(element.Element{
		Content:  "Hello",
		FontSize: 80,
		X:        540,
		Y:        540,
		Color:    "#FFFFFF",
	})

	if el.ID == "" {
		t.Error("AddText should assign an id")
	}

	surface, err := studio.Render(context.Background(), "")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := surface.Bounds()
	if bounds.Dx() != 1080 || bounds.Dy() != 1080 {
		t.Errorf("Expected 1080x1080 surface, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestCropFacesBadSource(t *testing.T) {
	studio := New(canvas.PresetYouTube)

	boxes := []geometry.Box{{X: 10, Y: 10, Width: 50, Height: 50}}
	_, err := studio.CropFaces(context.Background(), "/does/not/exist.jpg", boxes, facecrop.DefaultOptions())
	if err == nil {
		t.Fatal("Expected error for missing source image")
	}

	var loadErr *facecrop.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *facecrop.LoadError, got %T", err)
	}
	if loadErr.URL != "/does/not/exist.jpg" {
		t.Errorf("LoadError should name the source, got %q", loadErr.URL)
	}
}

func TestGetVersion(t *testing.T) {
	version := GetVersion()
	if version == "" {
		t.Error("Version should not be empty")
	}

	if version != Version {
		t.Errorf("GetVersion() returned %s, expected %s", version, Version)
	}
}
