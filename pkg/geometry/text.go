package geometry

// Align is a horizontal text alignment relative to the element anchor x.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ResolveAlign validates an alignment value and falls back to the
// right-to-left default for Hebrew text, left otherwise.
func ResolveAlign(value string, hebrew bool) Align {
	switch Align(value) {
	case AlignLeft, AlignCenter, AlignRight:
		return Align(value)
	}
	if hebrew {
		return AlignRight
	}
	return AlignLeft
}

// TextMetrics carries the first line's vertical extents in pixels.
type TextMetrics struct {
	Ascent  float64
	Descent float64
}

// Height returns the single-line height (ascent plus descent).
func (m TextMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

// TextLayout is the measured geometry of a multi-line text run. Widths come
// from whichever font measurer the paint layer uses; the layout math itself
// is independent of any rendering surface.
type TextLayout struct {
	Lines       []string
	LineWidths  []float64
	Metrics     TextMetrics
	LineAdvance float64
	Align       Align
}

// MaxLineWidth returns the widest measured line.
func (l TextLayout) MaxLineWidth() float64 {
	var max float64
	for _, w := range l.LineWidths {
		if w > max {
			max = w
		}
	}
	return max
}

// TotalHeight is the first line's height plus the advance of every
// following line.
func (l TextLayout) TotalHeight() float64 {
	if len(l.Lines) == 0 {
		return 0
	}
	return l.Metrics.Height() + float64(len(l.Lines)-1)*l.LineAdvance
}

// Bounds returns the bounding rectangle of the run anchored at (x, y), where
// y is the first line's baseline and x is interpreted per the alignment.
func (l TextLayout) Bounds(x, y float64) Rect {
	w := l.MaxLineWidth()
	return Rect{
		X: l.anchorX(x, w),
		Y: y - l.Metrics.Ascent,
		W: w,
		H: l.TotalHeight(),
	}
}

// LineStartX returns the left edge of line i when the run is anchored at x.
// Each line aligns to the anchor independently.
func (l TextLayout) LineStartX(x float64, i int) float64 {
	if i < 0 || i >= len(l.LineWidths) {
		return x
	}
	return l.anchorX(x, l.LineWidths[i])
}

// BaselineY returns the baseline of line i when the first baseline is at y.
func (l TextLayout) BaselineY(y float64, i int) float64 {
	return y + float64(i)*l.LineAdvance
}

func (l TextLayout) anchorX(x, width float64) float64 {
	switch l.Align {
	case AlignCenter:
		return x - width/2
	case AlignRight:
		return x - width
	}
	return x
}
