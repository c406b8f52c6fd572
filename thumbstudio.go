// Package thumbstudio provides canvas-based thumbnail composition and
// face-crop utilities.
//
// The package renders layered documents (text with stroke, shadow, glow and
// gradient effects, images, tinted icons) onto preset-sized canvases, and
// prepares padded square face crops from detected or hand-picked regions.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		"github.com/creativemagic/thumbstudio"
//		"github.com/creativemagic/thumbstudio/pkg/canvas"
//		"github.com/creativemagic/thumbstudio/pkg/element"
//	)
//
//	func main() {
//		studio := thumbstudio.New(canvas.PresetYouTube)
//
//		studio.Document().AddText(element.Element{
//			Content:  "Hello",
//			FontSize: 120,
//			X:        640,
//			Y:        360,
//		})
//
//		surface, err := studio.Render(context.Background(), "background.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		if err := studio.Save(surface, "thumbnail.png", 92); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Document (pkg/element): Ordered element list with selection and patch-based updates
// 2. Renderer (pkg/canvas): Paints documents, maintains the hit map, drives drag interactions
// 3. Cropper (pkg/facecrop): Padded, squared face crops encoded concurrently
// 4. Detectors (pkg/detect): Local cascade and vision-model face detection
package thumbstudio

import (
	"context"
	"image"

	"github.com/creativemagic/thumbstudio/internal/fonts"
	"github.com/creativemagic/thumbstudio/pkg/canvas"
	"github.com/creativemagic/thumbstudio/pkg/detect"
	"github.com/creativemagic/thumbstudio/pkg/element"
	"github.com/creativemagic/thumbstudio/pkg/facecrop"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
	"github.com/creativemagic/thumbstudio/pkg/imageio"
)

// Version of the thumbstudio library
const Version = "1.0.0"

// Studio is a high-level facade over a document, its renderer and the
// face-crop pipeline.
type Studio struct {
	doc      *element.Document
	renderer *canvas.Renderer
	cropper  *facecrop.Cropper
	loader   imageio.Loader
	fonts    *fonts.Registry
}

// New creates a Studio rendering at the given preset with default
// configuration.
func New(preset canvas.Preset) *Studio {
	return NewWithOptions(canvas.Options{Preset: preset})
}

// NewWithOptions creates a Studio with explicit renderer options.
func NewWithOptions(opts canvas.Options) *Studio {
	doc := element.NewDocument()
	loader := imageio.NewLoader()
	registry := fonts.NewRegistry()

	return &Studio{
		doc:      doc,
		renderer: canvas.NewRenderer(doc, loader, registry, opts),
		cropper:  facecrop.New(loader),
		loader:   loader,
		fonts:    registry,
	}
}

// Document returns the studio's element document.
func (s *Studio) Document() *element.Document {
	return s.doc
}

// Renderer returns the underlying canvas renderer.
func (s *Studio) Renderer() *canvas.Renderer {
	return s.renderer
}

// Fonts returns the font registry so callers can register custom faces
// before rendering.
func (s *Studio) Fonts() *fonts.Registry {
	return s.fonts
}

// Render paints the current document over the given background source and
// returns the finished surface.
func (s *Studio) Render(ctx context.Context, backgroundSrc string) (image.Image, error) {
	return s.renderer.RenderDocument(ctx, backgroundSrc)
}

// Save encodes a rendered surface to a file, choosing the format from the
// file extension.
func (s *Studio) Save(img image.Image, path string, quality int) error {
	return imageio.Save(img, path, quality)
}

// CropFaces produces padded square crops of the given face boxes from the
// image at imageURL.
func (s *Studio) CropFaces(ctx context.Context, imageURL string, boxes []geometry.Box, opts facecrop.Options) ([][]byte, error) {
	return s.cropper.CropFaces(ctx, imageURL, boxes, opts)
}

// DetectFaces runs a detector over the image at src and returns face boxes
// in pixel coordinates.
func (s *Studio) DetectFaces(ctx context.Context, detector detect.Detector, src string) ([]geometry.Box, error) {
	img, err := s.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return detector.DetectFaces(ctx, img)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
