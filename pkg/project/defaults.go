package project

import (
	"math"
	"strings"

	"github.com/creativemagic/thumbstudio/pkg/canvas"
	"github.com/creativemagic/thumbstudio/pkg/element"
)

const fallbackHeadline = "איך לעצב\nת'אמבנייל"

const defaultFontStack = "Heebo, Noto Sans Hebrew, Arial"

// OpenDocument builds the editor document for a project: the stored elements
// when present, otherwise the default two-line headline for a fresh project.
func OpenDocument(p *Project) (*element.Document, canvas.Preset, error) {
	preset := canvas.ParsePreset(p.SizePreset)
	doc := element.NewDocument()
	if len(p.EditorJSON.Elements) > 0 {
		if err := doc.Load(p.EditorJSON.Elements); err != nil {
			return nil, preset, err
		}
		return doc, preset, nil
	}
	if err := doc.Load(DefaultElements(p.Headline, preset)); err != nil {
		return nil, preset, err
	}
	return doc, preset, nil
}

// DefaultElements produces the two styled headline lines a fresh project
// opens with: a plain top line and a gradient second line, both centered in
// the upper part of the frame.
func DefaultElements(headline string, preset canvas.Preset) []element.Element {
	size := preset.Size()
	baseFontSize := math.Round(float64(size.Width) * 0.12)

	y1 := math.Round(float64(size.Height) * 0.18)
	y2 := y1 + math.Round(baseFontSize*0.88)

	line1, line2 := splitHeadline(headline)

	common := element.Element{
		Type:       element.TypeText,
		Visible:    true,
		X:          float64(size.Width) / 2,
		FontSize:   baseFontSize,
		FontFamily: defaultFontStack,
		FontWeight: "900",
		TextAlign:  "center",
		IsHebrew:   true,
		LineHeight: 0.9,
		TextShadow: &element.Shadow{Enabled: true, OffsetX: 4, OffsetY: 4, Blur: 12, Color: "rgba(0,0,0,0.9)"},
		Stroke:     &element.Stroke{Enabled: true, Width: 9, Color: "#000000"},
		Glow:       &element.Glow{Enabled: true, Blur: 18, Color: "rgba(255,255,255,0.5)"},
		Background: &element.Plate{Color: "#000000", Opacity: 0.5, Padding: 10},
	}

	first := common.Clone()
	first.ID = element.NewID()
	first.Content = line1
	first.Y = y1
	first.Color = "#ECEFF4"

	second := common.Clone()
	second.ID = element.NewID()
	second.Content = line2
	second.Y = y2
	second.Color = "#FFD54A"
	second.Gradient = &element.Gradient{
		Enabled:   true,
		Direction: element.GradientVertical,
		Colors:    []string{"#F7D14C", "#FFFFFF", "#FF7A1A"},
	}

	return []element.Element{first, second}
}

// splitHeadline breaks a headline into two lines: on an explicit newline when
// present, otherwise at the midpoint word boundary.
func splitHeadline(headline string) (string, string) {
	headline = strings.TrimSpace(headline)
	if headline == "" {
		headline = fallbackHeadline
	}
	if i := strings.IndexByte(headline, '\n'); i >= 0 {
		return strings.TrimSpace(headline[:i]), strings.TrimSpace(headline[i+1:])
	}
	words := strings.Fields(headline)
	if len(words) <= 1 {
		return headline, ""
	}
	mid := (len(words) + 1) / 2
	return strings.Join(words[:mid], " "), strings.Join(words[mid:], " ")
}
