// Package detect finds face regions in uploaded images. Two detectors are
// provided: a local pigo cascade that works offline, and a vision-model
// detector speaking the FaceFinder boundary, whose percentage boxes are
// converted to pixels against an explicit reference resolution.
package detect

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	pigo "github.com/esimov/pigo/core"

	"github.com/creativemagic/thumbstudio/pkg/client"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
	"github.com/creativemagic/thumbstudio/pkg/imageio"
)

// DefaultReference is the frame historically assumed for percentage boxes.
// It is only a default: when the true image size is known, pass that instead,
// otherwise converted boxes land in the wrong place.
var DefaultReference = geometry.Resolution{Width: 1280, Height: 720}

// Detector finds face regions in an image, in the image's own pixel
// coordinates.
type Detector interface {
	DetectFaces(ctx context.Context, img image.Image) ([]geometry.Box, error)
}

// PigoDetector runs a pigo face cascade locally.
type PigoDetector struct {
	classifier *pigo.Pigo

	// Cascade run parameters.
	MinSize     int
	MaxSize     int
	ShiftFactor float64
	ScaleFactor float64
	// QualityThreshold filters weak detections.
	QualityThreshold float32
}

// NewPigoDetector unpacks a binary cascade and returns a detector with the
// usual defaults.
func NewPigoDetector(cascade []byte) (*PigoDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack face cascade: %w", err)
	}
	return &PigoDetector{
		classifier:       classifier,
		MinSize:          20,
		MaxSize:          2000,
		ShiftFactor:      0.1,
		ScaleFactor:      1.1,
		QualityThreshold: 5.0,
	}, nil
}

// DetectFaces returns face boxes in the image's own pixel coordinates. The
// cascade runs locally, so the context is unused.
func (d *PigoDetector) DetectFaces(_ context.Context, img image.Image) ([]geometry.Box, error) {
	nrgba := image.NewNRGBA(img.Bounds())
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)

	cols, rows := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	params := pigo.CascadeParams{
		MinSize:     d.MinSize,
		MaxSize:     d.MaxSize,
		ShiftFactor: d.ShiftFactor,
		ScaleFactor: d.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(nrgba),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := d.classifier.RunCascade(params, 0)
	detections = d.classifier.ClusterDetections(detections, 0.18)

	var boxes []geometry.Box
	for _, det := range detections {
		if det.Q <= d.QualityThreshold {
			continue
		}
		boxes = append(boxes, geometry.Box{
			X:      det.Col - det.Scale/2,
			Y:      det.Row - det.Scale/2,
			Width:  det.Scale,
			Height: det.Scale,
		})
	}
	return boxes, nil
}

// VisionDetector asks a remote vision model for faces and converts the
// percentage boxes it returns into pixels.
type VisionDetector struct {
	finder client.FaceFinder
	model  string

	// reference overrides the conversion frame; nil means "use the actual
	// image dimensions", which is correct whenever the image being analyzed
	// is the one the model saw.
	reference *geometry.Resolution
}

// NewVisionDetector builds a detector over a FaceFinder.
func NewVisionDetector(finder client.FaceFinder, model string) *VisionDetector {
	return &VisionDetector{finder: finder, model: model}
}

// WithReference pins the percentage conversion to a fixed frame, for callers
// that consume boxes in a coordinate space other than the analyzed image's.
func (d *VisionDetector) WithReference(ref geometry.Resolution) *VisionDetector {
	d.reference = &ref
	return d
}

// DetectFaces encodes the image for the model, requests face boxes and
// converts them to pixel coordinates.
func (d *VisionDetector) DetectFaces(ctx context.Context, img image.Image) ([]geometry.Box, error) {
	imgB64, err := imageio.EncodeBase64(img, imageio.JPEG, 1536, 85)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image for model: %w", err)
	}

	percents, err := d.finder.FindFaces(ctx, d.model, imgB64)
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}

	ref := geometry.Resolution{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	if d.reference != nil {
		ref = *d.reference
	}

	boxes := make([]geometry.Box, 0, len(percents))
	for _, pb := range percents {
		boxes = append(boxes, pb.ToPixels(ref))
	}
	return boxes, nil
}
