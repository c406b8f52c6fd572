package canvas

import "testing"

func TestPresetSize(t *testing.T) {
	tests := []struct {
		preset Preset
		width  int
		height int
	}{
		{PresetYouTube, 1280, 720},
		{PresetInstagram, 1080, 1350},
		{PresetSquare, 1080, 1080},
		{Preset("bogus"), 1280, 720},
	}

	for _, test := range tests {
		size := test.preset.Size()
		if size.Width != test.width || size.Height != test.height {
			t.Errorf("%s: expected %dx%d, got %dx%d",
				test.preset, test.width, test.height, size.Width, size.Height)
		}
	}
}

func TestClampFontSize(t *testing.T) {
	tests := []struct {
		preset Preset
		size   float64
		want   float64
	}{
		{PresetYouTube, 500, 450},
		{PresetYouTube, 450, 450},
		{PresetInstagram, 400, 350},
		{PresetSquare, 400, 350},
		{PresetYouTube, 5, 10},
		{PresetYouTube, 120, 120},
	}

	for _, test := range tests {
		if got := test.preset.ClampFontSize(test.size); got != test.want {
			t.Errorf("%s: ClampFontSize(%v) = %v, want %v", test.preset, test.size, got, test.want)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if got := ParsePreset("instagram"); got != PresetInstagram {
		t.Errorf("ParsePreset(instagram) = %q", got)
	}
	if got := ParsePreset("square"); got != PresetSquare {
		t.Errorf("ParsePreset(square) = %q", got)
	}
	if got := ParsePreset(""); got != PresetYouTube {
		t.Errorf("Unknown presets should default to youtube, got %q", got)
	}
}
