// Package canvas is the compositing engine: it rasterizes an ordered element
// list onto a fixed-resolution surface, keeps a per-frame hit map for pointer
// picking, and turns drag/keyboard input into element mutations.
package canvas

import "github.com/creativemagic/thumbstudio/pkg/geometry"

// Preset names a fixed output resolution.
type Preset string

const (
	PresetYouTube   Preset = "youtube"
	PresetInstagram Preset = "instagram"
	PresetSquare    Preset = "square"
)

// Size returns the pixel dimensions of the preset. Unknown presets fall back
// to the YouTube wide frame.
func (p Preset) Size() geometry.Resolution {
	switch p {
	case PresetInstagram:
		return geometry.Resolution{Width: 1080, Height: 1350}
	case PresetSquare:
		return geometry.Resolution{Width: 1080, Height: 1080}
	default:
		return geometry.Resolution{Width: 1280, Height: 720}
	}
}

// MaxFontSize is the clamp applied to text elements so runaway sizes cannot
// blow up the layout. Portrait and square frames use a smaller cap than the
// wide frame.
func (p Preset) MaxFontSize() float64 {
	switch p {
	case PresetInstagram, PresetSquare:
		return 350
	default:
		return 450
	}
}

// MinFontSize is the lower clamp for text rendering.
const MinFontSize = 10

// ClampFontSize bounds a requested font size to the preset's limits.
func (p Preset) ClampFontSize(size float64) float64 {
	if size < MinFontSize {
		return MinFontSize
	}
	if max := p.MaxFontSize(); size > max {
		return max
	}
	return size
}

// ParsePreset validates a preset name, defaulting to youtube.
func ParsePreset(s string) Preset {
	switch Preset(s) {
	case PresetInstagram:
		return PresetInstagram
	case PresetSquare:
		return PresetSquare
	default:
		return PresetYouTube
	}
}
