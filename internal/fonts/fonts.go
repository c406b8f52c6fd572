// Package fonts resolves element font families to concrete typeface handles.
// Families register once (project fonts downloaded by the host product), and
// unknown families fall back to the bundled Go fonts so measurement never
// runs against a missing face.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Registry maps font family names to parsed TrueType fonts and caches the
// sized faces the paint layer asks for.
type Registry struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face

	regular *truetype.Font
	bold    *truetype.Font
	ready   bool
	initErr error
}

type faceKey struct {
	family string
	bold   bool
	size   float64
}

// NewRegistry returns a registry backed by the bundled fallback fonts.
func NewRegistry() *Registry {
	return &Registry{
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Register parses raw TrueType data and binds it to a family name.
func (r *Registry) Register(family string, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("failed to parse font %q: %w", family, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[strings.ToLower(PrimaryFamily(family))] = f
	return nil
}

// Ready parses the fallback fonts once. Render passes call this as a single
// gate before any text measurement, so widths are never computed against an
// unparsed face.
func (r *Registry) Ready() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return r.initErr
	}
	r.ready = true

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		r.initErr = fmt.Errorf("failed to parse fallback font: %w", err)
		return r.initErr
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		r.initErr = fmt.Errorf("failed to parse fallback bold font: %w", err)
		return r.initErr
	}
	r.regular = regular
	r.bold = bold
	return nil
}

// Face returns a sized face for the given family list and weight. The family
// string may be a comma-separated stack; only the primary entry is resolved,
// the rest fall through to the bundled fonts.
func (r *Registry) Face(family, weight string, size float64) (font.Face, error) {
	if err := r.Ready(); err != nil {
		return nil, err
	}
	if size < 1 {
		size = 1
	}
	bold := IsBoldWeight(weight)
	key := faceKey{family: strings.ToLower(PrimaryFamily(family)), bold: bold, size: size}

	r.mu.Lock()
	defer r.mu.Unlock()
	if face, ok := r.faces[key]; ok {
		return face, nil
	}

	f := r.fonts[key.family]
	if f == nil {
		if bold {
			f = r.bold
		} else {
			f = r.regular
		}
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	r.faces[key] = face
	return face, nil
}

// PrimaryFamily extracts the first family from a CSS-style font stack,
// stripping quotes ("Heebo, Noto Sans Hebrew, Arial" -> "Heebo").
func PrimaryFamily(stack string) string {
	primary := stack
	if i := strings.IndexByte(stack, ','); i >= 0 {
		primary = stack[:i]
	}
	primary = strings.Trim(strings.TrimSpace(primary), `'"`)
	if primary == "" {
		return "sans-serif"
	}
	return primary
}

// IsBoldWeight reports whether a CSS font weight should map to the bold face.
func IsBoldWeight(weight string) bool {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "bold", "bolder":
		return true
	}
	// Numeric weights of 600 and above render bold.
	if len(w) == 3 && w[0] >= '6' && w[0] <= '9' && w[1] == '0' && w[2] == '0' {
		return true
	}
	return false
}
