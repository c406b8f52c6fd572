package element

// Patch describes a partial update to an element. Nil fields are left
// untouched. Nested effect patches merge field by field into the existing
// effect object, so toggling stroke.enabled never erases a previously set
// stroke.color.
type Patch struct {
	Visible *bool
	X       *float64
	Y       *float64

	Content    *string
	FontFamily *string
	FontSize   *float64
	FontWeight *string
	Color      *string
	TextAlign  *string
	LineHeight *float64
	IsHebrew   *bool

	Stroke     *StrokePatch
	TextShadow *ShadowPatch
	Glow       *GlowPatch
	Background *PlatePatch
	Gradient   *GradientPatch

	Src    *string
	Width  *float64
	Height *float64
}

// StrokePatch is a partial Stroke update.
type StrokePatch struct {
	Enabled *bool
	Color   *string
	Width   *float64
}

// ShadowPatch is a partial Shadow update.
type ShadowPatch struct {
	Enabled *bool
	Color   *string
	Blur    *float64
	OffsetX *float64
	OffsetY *float64
}

// GlowPatch is a partial Glow update.
type GlowPatch struct {
	Enabled *bool
	Color   *string
	Blur    *float64
}

// PlatePatch is a partial Plate update.
type PlatePatch struct {
	Enabled      *bool
	Color        *string
	Opacity      *float64
	Padding      *float64
	BorderRadius *float64
}

// GradientPatch is a partial Gradient update. A non-nil Colors slice replaces
// the color list wholesale; per-stop edits go through Document.SetGradientColor.
type GradientPatch struct {
	Enabled   *bool
	Direction *GradientDirection
	Colors    []string
}

// Bool returns a pointer to v for building patches.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v for building patches.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v for building patches.
func String(v string) *string { return &v }

// Direction returns a pointer to v for building patches.
func Direction(v GradientDirection) *GradientDirection { return &v }

// apply merges the patch into a copy of e and returns the merged value.
func (p Patch) apply(e Element) Element {
	out := e.Clone()

	if p.Visible != nil {
		out.Visible = *p.Visible
	}
	if p.X != nil {
		out.X = *p.X
	}
	if p.Y != nil {
		out.Y = *p.Y
	}
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.FontFamily != nil {
		out.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		out.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		out.FontWeight = *p.FontWeight
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.TextAlign != nil {
		out.TextAlign = *p.TextAlign
	}
	if p.LineHeight != nil {
		out.LineHeight = *p.LineHeight
	}
	if p.IsHebrew != nil {
		out.IsHebrew = *p.IsHebrew
	}
	if p.Src != nil {
		out.Src = *p.Src
	}
	if p.Width != nil {
		out.Width = *p.Width
	}
	if p.Height != nil {
		out.Height = *p.Height
	}

	if p.Stroke != nil {
		s := Stroke{}
		if out.Stroke != nil {
			s = *out.Stroke
		}
		if p.Stroke.Enabled != nil {
			s.Enabled = *p.Stroke.Enabled
		}
		if p.Stroke.Color != nil {
			s.Color = *p.Stroke.Color
		}
		if p.Stroke.Width != nil {
			s.Width = *p.Stroke.Width
		}
		out.Stroke = &s
	}
	if p.TextShadow != nil {
		s := Shadow{}
		if out.TextShadow != nil {
			s = *out.TextShadow
		}
		if p.TextShadow.Enabled != nil {
			s.Enabled = *p.TextShadow.Enabled
		}
		if p.TextShadow.Color != nil {
			s.Color = *p.TextShadow.Color
		}
		if p.TextShadow.Blur != nil {
			s.Blur = *p.TextShadow.Blur
		}
		if p.TextShadow.OffsetX != nil {
			s.OffsetX = *p.TextShadow.OffsetX
		}
		if p.TextShadow.OffsetY != nil {
			s.OffsetY = *p.TextShadow.OffsetY
		}
		out.TextShadow = &s
	}
	if p.Glow != nil {
		g := Glow{}
		if out.Glow != nil {
			g = *out.Glow
		}
		if p.Glow.Enabled != nil {
			g.Enabled = *p.Glow.Enabled
		}
		if p.Glow.Color != nil {
			g.Color = *p.Glow.Color
		}
		if p.Glow.Blur != nil {
			g.Blur = *p.Glow.Blur
		}
		out.Glow = &g
	}
	if p.Background != nil {
		b := Plate{}
		if out.Background != nil {
			b = *out.Background
		}
		if p.Background.Enabled != nil {
			b.Enabled = *p.Background.Enabled
		}
		if p.Background.Color != nil {
			b.Color = *p.Background.Color
		}
		if p.Background.Opacity != nil {
			b.Opacity = *p.Background.Opacity
		}
		if p.Background.Padding != nil {
			b.Padding = *p.Background.Padding
		}
		if p.Background.BorderRadius != nil {
			b.BorderRadius = *p.Background.BorderRadius
		}
		out.Background = &b
	}
	if p.Gradient != nil {
		g := Gradient{}
		if out.Gradient != nil {
			g = *out.Gradient
			g.Colors = append([]string(nil), out.Gradient.Colors...)
		}
		if p.Gradient.Enabled != nil {
			g.Enabled = *p.Gradient.Enabled
		}
		if p.Gradient.Direction != nil {
			g.Direction = *p.Gradient.Direction
		}
		if p.Gradient.Colors != nil {
			g.Colors = append([]string(nil), p.Gradient.Colors...)
		}
		out.Gradient = &g
	}

	return out
}
