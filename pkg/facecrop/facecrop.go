// Package facecrop produces identity-reference crops: given a source image
// and face bounding boxes, it cuts padded (optionally square) regions and
// encodes each one independently. The crops feed the generative collaborator
// so a person's likeness survives generation.
package facecrop

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/sourcegraph/conc"

	"github.com/creativemagic/thumbstudio/pkg/geometry"
	"github.com/creativemagic/thumbstudio/pkg/imageio"
)

// DefaultPadding is the fraction of a box's own size added around it.
const DefaultPadding = 0.3

// DefaultQuality is the encode quality for crops.
const DefaultQuality = 92

// LoadError reports that a crop source image could not be loaded. It names
// the offending URL so a caller running several crops concurrently can tell
// which one failed.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image from %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options control crop expansion and output encoding.
type Options struct {
	// Padding expands each box symmetrically by this fraction of its own
	// width/height, clamped to the image. Negative means DefaultPadding;
	// zero is honored.
	Padding float64
	// NoSquare keeps the padded aspect ratio instead of expanding the
	// shorter side to a centered square.
	NoSquare bool
	Format   imageio.Format
	Quality  int
}

func (o Options) normalized() Options {
	if o.Padding < 0 {
		o.Padding = DefaultPadding
	}
	if o.Format == "" {
		o.Format = imageio.JPEG
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// DefaultOptions returns the product defaults: 0.3 padding, square crops,
// JPEG at quality 92.
func DefaultOptions() Options {
	return Options{Padding: DefaultPadding, Format: imageio.JPEG, Quality: DefaultQuality}
}

// Cropper cuts face crops out of source images.
type Cropper struct {
	loader imageio.Loader
}

// New returns a cropper using the given loader; nil falls back to the HTTP
// loader.
func New(loader imageio.Loader) *Cropper {
	if loader == nil {
		loader = imageio.NewLoader()
	}
	return &Cropper{loader: loader}
}

// CropRegion computes the final crop rectangle for one box: padded, clamped
// to the image, and squared when requested. The result never exceeds the
// source bounds. Exposed separately so the rectangle math is testable without
// decoding images.
func CropRegion(box geometry.Box, bounds geometry.Resolution, opts Options) geometry.Box {
	opts = opts.normalized()
	region := geometry.PadBox(box, opts.Padding, bounds)
	if !opts.NoSquare {
		region = geometry.SquareBox(region, bounds)
	}
	return region
}

// CropFaces loads the source once and produces one encoded crop per box.
// A source that fails to load fails the whole call with a *LoadError naming
// the URL; per-box geometry problems are clamped, never raised.
func (c *Cropper) CropFaces(ctx context.Context, imageURL string, boxes []geometry.Box, opts Options) ([][]byte, error) {
	opts = opts.normalized()

	src, err := c.loader.Load(ctx, imageURL)
	if err != nil {
		return nil, &LoadError{URL: imageURL, Err: err}
	}
	b := src.Bounds()
	bounds := geometry.Resolution{Width: b.Dx(), Height: b.Dy()}

	results := make([][]byte, len(boxes))
	errs := make([]error, len(boxes))

	var wg conc.WaitGroup
	var mu sync.Mutex
	for i, box := range boxes {
		i, box := i, box
		wg.Go(func() {
			data, err := encodeCrop(src, CropRegion(box, bounds, opts), opts)
			mu.Lock()
			results[i], errs[i] = data, err
			mu.Unlock()
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func encodeCrop(src image.Image, region geometry.Box, opts Options) ([]byte, error) {
	rect := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	cropped := imaging.Crop(src, rect)
	data, err := imageio.EncodeBytes(cropped, opts.Format, opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	return data, nil
}
