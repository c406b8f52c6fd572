package canvas

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses the color notations elements carry: #rgb, #rrggbb,
// #rrggbbaa and rgb()/rgba() functional forms. Unparseable values degrade to
// opaque black, matching the editor's lenient handling of style fields.
func ParseColor(s string) color.NRGBA {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(strings.ToLower(s), "rgba("), strings.HasPrefix(strings.ToLower(s), "rgb("):
		return parseFunctional(s)
	}
	return color.NRGBA{A: 255}
}

func parseHex(h string) color.NRGBA {
	if len(h) == 3 {
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[i*2] = h[i]
			expanded[i*2+1] = h[i]
		}
		h = string(expanded)
	}
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{A: 255}
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	if len(h) == 8 {
		return color.NRGBA{
			R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v),
		}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func parseFunctional(s string) color.NRGBA {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close <= open {
		return color.NRGBA{A: 255}
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) < 3 {
		return color.NRGBA{A: 255}
	}
	channel := func(p string) uint8 {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || n < 0 {
			return 0
		}
		if n > 255 {
			n = 255
		}
		return uint8(n + 0.5)
	}
	out := color.NRGBA{R: channel(parts[0]), G: channel(parts[1]), B: channel(parts[2]), A: 255}
	if len(parts) >= 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err == nil {
			if a < 0 {
				a = 0
			}
			if a > 1 {
				a = 1
			}
			out.A = uint8(a*255 + 0.5)
		}
	}
	return out
}

// withOpacity scales a color's alpha by opacity in [0,1].
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}
