package canvas

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	xfont "golang.org/x/image/font"

	"github.com/creativemagic/thumbstudio/pkg/element"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

// Rendering defaults for unset text style fields.
const (
	defaultFontSize     = 16
	defaultLineHeight   = 1.2
	defaultFillColor    = "#FFFFFF"
	defaultStrokeColor  = "#000000"
	defaultStrokeWidth  = 1
	defaultShadowColor  = "rgba(0,0,0,0.8)"
	defaultGlowColor    = "#ffffff"
	defaultGlowBlur     = 10
	defaultPlateColor   = "#000000"
	defaultPlateOpacity = 0.5
)

// HasGradientFill reports whether the element renders with a gradient rather
// than its solid color.
func HasGradientFill(el element.Element) bool {
	return el.Gradient != nil && el.Gradient.Enabled && len(el.Gradient.Colors) >= 2
}

// TextFillColor resolves the solid fill for a text element. ok is false when
// a gradient fill applies instead.
func TextFillColor(el element.Element) (c color.NRGBA, ok bool) {
	if HasGradientFill(el) {
		return color.NRGBA{}, false
	}
	fill := el.Color
	if fill == "" {
		fill = defaultFillColor
	}
	return ParseColor(fill), true
}

// measureText builds the layout of a text run against a concrete face. The
// first line supplies the ascent/descent used for the bounding box, as the
// host canvas API did.
func measureText(face xfont.Face, el element.Element, fontSize float64) geometry.TextLayout {
	lines := strings.Split(el.Content, "\n")
	widths := make([]float64, len(lines))
	for i, line := range lines {
		widths[i] = float64(xfont.MeasureString(face, line)) / 64
	}

	m := face.Metrics()
	metrics := geometry.TextMetrics{
		Ascent:  float64(m.Ascent) / 64,
		Descent: float64(m.Descent) / 64,
	}

	lineHeight := el.LineHeight
	if lineHeight == 0 {
		lineHeight = defaultLineHeight
	}

	return geometry.TextLayout{
		Lines:       lines,
		LineWidths:  widths,
		Metrics:     metrics,
		LineAdvance: lineHeight * fontSize,
		Align:       geometry.ResolveAlign(el.TextAlign, el.IsHebrew),
	}
}

// paintText rasterizes one text element with its effect passes onto dst and
// returns its unpadded bounding box. All passes paint onto a private layer
// the size of the surface, so shadow/blur state never leaks into the next
// element.
func (r *Renderer) paintText(dst *gg.Context, el element.Element) (geometry.Rect, error) {
	fontSize := el.FontSize
	if fontSize == 0 {
		fontSize = defaultFontSize
	}
	fontSize = r.preset.ClampFontSize(math.Floor(fontSize))

	face, err := r.fonts.Face(el.FontFamily, el.FontWeight, fontSize)
	if err != nil {
		return geometry.Rect{}, err
	}

	layout := measureText(face, el, fontSize)
	bounds := layout.Bounds(el.X, el.Y)

	size := r.preset.Size()
	layer := gg.NewContext(size.Width, size.Height)
	layer.SetFontFace(face)

	if el.Background != nil && el.Background.Enabled {
		paintPlate(layer, *el.Background, bounds)
	}
	if el.Glow != nil && el.Glow.Enabled {
		r.paintBlurredPass(layer, face, layout, el, glowPass(*el.Glow))
	}
	if el.TextShadow != nil && el.TextShadow.Enabled {
		r.paintBlurredPass(layer, face, layout, el, shadowPass(*el.TextShadow))
	}
	if el.Stroke != nil && el.Stroke.Enabled {
		paintStroke(layer, layout, el, *el.Stroke)
	}

	if HasGradientFill(el) {
		r.paintGradientFill(layer, face, layout, el, bounds)
	} else {
		fill, _ := TextFillColor(el)
		layer.SetColor(fill)
		drawTextLines(layer, layout, el.X, el.Y)
	}

	dst.DrawImage(layer.Image(), 0, 0)
	return bounds, nil
}

func drawTextLines(dc *gg.Context, layout geometry.TextLayout, x, y float64) {
	for i, line := range layout.Lines {
		dc.DrawString(line, layout.LineStartX(x, i), layout.BaselineY(y, i))
	}
}

func paintPlate(dc *gg.Context, plate element.Plate, bounds geometry.Rect) {
	pad := plate.Padding
	radius := plate.BorderRadius
	fill := plate.Color
	if fill == "" {
		fill = defaultPlateColor
	}
	opacity := plate.Opacity
	if opacity == 0 {
		opacity = defaultPlateOpacity
	}
	dc.SetColor(withOpacity(ParseColor(fill), opacity))
	dc.DrawRoundedRectangle(bounds.X-pad, bounds.Y-pad, bounds.W+pad*2, bounds.H+pad*2, radius)
	dc.Fill()
}

// blurPass describes one offscreen text pass that gets gaussian-blurred and
// composited under the fill (glow and drop shadow share this machinery).
type blurPass struct {
	color   color.NRGBA
	blur    float64
	offsetX float64
	offsetY float64
}

func glowPass(g element.Glow) blurPass {
	c := g.Color
	if c == "" {
		c = defaultGlowColor
	}
	blur := g.Blur
	if blur == 0 {
		blur = defaultGlowBlur
	}
	return blurPass{color: ParseColor(c), blur: blur}
}

func shadowPass(s element.Shadow) blurPass {
	c := s.Color
	if c == "" {
		c = defaultShadowColor
	}
	return blurPass{color: ParseColor(c), blur: s.Blur, offsetX: s.OffsetX, offsetY: s.OffsetY}
}

func (r *Renderer) paintBlurredPass(layer *gg.Context, face xfont.Face, layout geometry.TextLayout, el element.Element, pass blurPass) {
	size := r.preset.Size()
	tmp := gg.NewContext(size.Width, size.Height)
	tmp.SetFontFace(face)
	tmp.SetColor(pass.color)
	drawTextLines(tmp, layout, el.X, el.Y)

	var rendered image.Image = tmp.Image()
	if pass.blur > 0 {
		// Canvas shadowBlur b is roughly a gaussian with sigma b/2.
		rendered = imaging.Blur(rendered, pass.blur/2)
	}
	layer.DrawImage(rendered, int(math.Round(pass.offsetX)), int(math.Round(pass.offsetY)))
}

// paintStroke approximates a centered text outline by stamping the filled run
// at offsets around a ring of half the stroke width.
func paintStroke(layer *gg.Context, layout geometry.TextLayout, el element.Element, stroke element.Stroke) {
	width := stroke.Width
	if width == 0 {
		width = defaultStrokeWidth
	}
	c := stroke.Color
	if c == "" {
		c = defaultStrokeColor
	}
	layer.SetColor(ParseColor(c))

	radius := width / 2
	const steps = 16
	for i := 0; i < steps; i++ {
		angle := float64(i) / steps * 2 * math.Pi
		dx := radius * math.Cos(angle)
		dy := radius * math.Sin(angle)
		drawTextLines(layer, layout, el.X+dx, el.Y+dy)
	}
}

func (r *Renderer) paintGradientFill(layer *gg.Context, face xfont.Face, layout geometry.TextLayout, el element.Element, bounds geometry.Rect) {
	size := r.preset.Size()
	mask := gg.NewContext(size.Width, size.Height)
	mask.SetFontFace(face)
	mask.SetRGB(1, 1, 1)
	drawTextLines(mask, layout, el.X, el.Y)

	var grad gg.Gradient
	if el.Gradient.Direction == element.GradientHorizontal {
		grad = gg.NewLinearGradient(bounds.X, 0, bounds.X+bounds.W, 0)
	} else {
		grad = gg.NewLinearGradient(0, bounds.Y, 0, bounds.Y+bounds.H)
	}
	stops := geometry.GradientStops(len(el.Gradient.Colors))
	for i, c := range el.Gradient.Colors {
		grad.AddColorStop(stops[i], ParseColor(c))
	}

	if err := layer.SetMask(mask.AsMask()); err != nil {
		// Same-size contexts cannot mismatch; fall back to the first color.
		layer.SetColor(ParseColor(el.Gradient.Colors[0]))
		drawTextLines(layer, layout, el.X, el.Y)
		return
	}
	layer.SetFillStyle(grad)
	expanded := bounds.Pad(2)
	layer.DrawRectangle(expanded.X, expanded.Y, expanded.W, expanded.H)
	layer.Fill()
}
