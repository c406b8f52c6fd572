package canvas

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#18181b", color.NRGBA{24, 24, 27, 255}},
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#FF000080", color.NRGBA{255, 0, 0, 128}},
		{"rgb(139, 92, 246)", color.NRGBA{139, 92, 246, 255}},
		{"rgba(0, 0, 0, 0.8)", color.NRGBA{0, 0, 0, 204}},
		{"rgba(255,255,255,0.5)", color.NRGBA{255, 255, 255, 128}},
		{"", color.NRGBA{0, 0, 0, 255}},
		{"not-a-color", color.NRGBA{0, 0, 0, 255}},
		{"#zzz", color.NRGBA{0, 0, 0, 255}},
	}

	for _, test := range tests {
		got := ParseColor(test.input)
		if got != test.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", test.input, got, test.want)
		}
	}
}

func TestWithOpacity(t *testing.T) {
	c := withOpacity(color.NRGBA{10, 20, 30, 255}, 0.5)
	if c.A != 128 {
		t.Errorf("Expected alpha 128, got %d", c.A)
	}

	c = withOpacity(color.NRGBA{10, 20, 30, 255}, 2)
	if c.A != 255 {
		t.Errorf("Opacity above 1 should clamp, got alpha %d", c.A)
	}

	c = withOpacity(color.NRGBA{10, 20, 30, 255}, -1)
	if c.A != 0 {
		t.Errorf("Negative opacity should clamp to 0, got alpha %d", c.A)
	}
}
