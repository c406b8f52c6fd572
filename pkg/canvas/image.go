package canvas

import (
	"context"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/creativemagic/thumbstudio/pkg/element"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

// coverFit scales and center-crops img to exactly fill the target frame, the
// "cover" semantics used for backgrounds: no letterboxing, center preserved.
func coverFit(img image.Image, size geometry.Resolution) image.Image {
	return imaging.Fill(img, size.Width, size.Height, imaging.Center, imaging.Lanczos)
}

// paintImage draws an image element into its top-left positioned box. A
// source that fails to load skips the draw but keeps the element pickable, so
// a broken URL never kills the frame.
func (r *Renderer) paintImage(ctx context.Context, dst *gg.Context, el element.Element) geometry.Rect {
	bounds := geometry.Rect{X: el.X, Y: el.Y, W: el.Width, H: el.Height}

	img, err := r.loader.Load(ctx, el.Src)
	if err != nil {
		return bounds
	}
	w := int(math.Max(1, math.Round(el.Width)))
	h := int(math.Max(1, math.Round(el.Height)))
	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	dst.DrawImage(resized, int(math.Round(el.X)), int(math.Round(el.Y)))
	return bounds
}

// paintIcon substitutes the element color into the vector markup's
// recolorable placeholder, rasterizes it at box size and draws it.
func (r *Renderer) paintIcon(dst *gg.Context, el element.Element) geometry.Rect {
	bounds := geometry.Rect{X: el.X, Y: el.Y, W: el.Width, H: el.Height}

	tint := el.Color
	if tint == "" {
		tint = "#FFFFFF"
	}
	markup := strings.ReplaceAll(el.SVGContent, "currentColor", tint)

	rendered, err := rasterizeSVG(markup, el.Width, el.Height)
	if err != nil {
		return bounds
	}
	dst.DrawImage(rendered, int(math.Round(el.X)), int(math.Round(el.Y)))
	return bounds
}

func rasterizeSVG(markup string, width, height float64) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	w := int(math.Max(1, math.Round(width)))
	h := int(math.Max(1, math.Round(height)))

	icon.SetTarget(0, 0, float64(w), float64(h))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, out, out.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return out, nil
}
