// Package element owns the authoritative canvas element list: the tagged
// union of text/image/icon elements, the selection, and every mutation the
// property editors and the canvas engine perform on them.
//
// Elements are value types. Mutations produce new element values merged from
// the old value plus a patch, which keeps nested effect objects intact when a
// sibling field changes.
package element

import (
	"fmt"

	"github.com/google/uuid"
)

// Type discriminates the element union.
type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeIcon  Type = "icon"
)

// Stroke is the text outline effect.
type Stroke struct {
	Enabled bool    `json:"enabled"`
	Color   string  `json:"color,omitempty"`
	Width   float64 `json:"width,omitempty"`
}

// Shadow is the text drop-shadow effect.
type Shadow struct {
	Enabled bool    `json:"enabled"`
	Color   string  `json:"color,omitempty"`
	Blur    float64 `json:"blur,omitempty"`
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`
}

// Glow is the text halo effect (a blurred fill pass under the text).
type Glow struct {
	Enabled bool    `json:"enabled"`
	Color   string  `json:"color,omitempty"`
	Blur    float64 `json:"blur,omitempty"`
}

// Plate is the padded, rounded background behind a text run.
type Plate struct {
	Enabled      bool    `json:"enabled"`
	Color        string  `json:"color,omitempty"`
	Opacity      float64 `json:"opacity,omitempty"`
	Padding      float64 `json:"padding,omitempty"`
	BorderRadius float64 `json:"borderRadius,omitempty"`
}

// GradientDirection selects the axis of a linear text gradient.
type GradientDirection string

const (
	GradientVertical   GradientDirection = "vertical"
	GradientHorizontal GradientDirection = "horizontal"
)

// Gradient is the multi-stop linear fill for text. Colors must hold at least
// two entries while the gradient is enabled.
type Gradient struct {
	Enabled   bool              `json:"enabled"`
	Direction GradientDirection `json:"direction,omitempty"`
	Colors    []string          `json:"colors,omitempty"`
}

// Element is one visual object on the canvas. The Type field decides which of
// the remaining fields are meaningful; the JSON shape matches the project
// store's editor_json exactly.
type Element struct {
	ID      string  `json:"id"`
	Type    Type    `json:"type"`
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`

	// Text fields. X anchors the run per TextAlign; Y is the first baseline.
	Content    string  `json:"content,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	Color      string  `json:"color,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty"`
	IsHebrew   bool    `json:"isHebrew,omitempty"`

	Stroke     *Stroke   `json:"stroke,omitempty"`
	TextShadow *Shadow   `json:"textShadow,omitempty"`
	Glow       *Glow     `json:"glow,omitempty"`
	Background *Plate    `json:"backgroundColor,omitempty"`
	Gradient   *Gradient `json:"gradient,omitempty"`

	// Image and icon fields. X/Y is the top-left corner of the box.
	Src        string  `json:"src,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	SVGContent string  `json:"svgContent,omitempty"`
	Name       string  `json:"name,omitempty"`
}

// NewID returns a fresh element identifier, unique for the element's
// lifetime.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the element, including effect sub-objects and
// gradient colors.
func (e Element) Clone() Element {
	out := e
	if e.Stroke != nil {
		s := *e.Stroke
		out.Stroke = &s
	}
	if e.TextShadow != nil {
		s := *e.TextShadow
		out.TextShadow = &s
	}
	if e.Glow != nil {
		g := *e.Glow
		out.Glow = &g
	}
	if e.Background != nil {
		b := *e.Background
		out.Background = &b
	}
	if e.Gradient != nil {
		g := *e.Gradient
		g.Colors = append([]string(nil), e.Gradient.Colors...)
		out.Gradient = &g
	}
	return out
}

// Validate checks the element's own invariants.
func (e Element) Validate() error {
	switch e.Type {
	case TypeText, TypeImage, TypeIcon:
	default:
		return fmt.Errorf("unknown element type %q", e.Type)
	}
	if e.ID == "" {
		return fmt.Errorf("element has no id")
	}
	if e.Gradient != nil && e.Gradient.Enabled && len(e.Gradient.Colors) < 2 {
		return fmt.Errorf("gradient on element %s needs at least 2 colors, has %d", e.ID, len(e.Gradient.Colors))
	}
	return nil
}
