package colour

import (
	"strings"
	"testing"
)

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 16, G: 64, B: 255}, 4)
	if !strings.HasPrefix(got, "\033[48;2;16;64;255m") {
		t.Errorf("ColourPreview() missing background sequence: %q", got)
	}
	if !strings.HasSuffix(got, "    "+ansiReset) {
		t.Errorf("ColourPreview() has wrong block width: %q", got)
	}
}

func TestColourPreviewWithText(t *testing.T) {
	tests := []struct {
		name   string
		colour RGB
		fg     string
	}{
		{name: "light background", colour: RGB{R: 255, G: 255, B: 208}, fg: "\033[38;2;0;0;0m"},
		{name: "dark background", colour: RGB{R: 16, G: 16, B: 112}, fg: "\033[38;2;255;255;255m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColourPreviewWithText(tt.colour, "ab", 6)
			if !strings.Contains(got, tt.fg) {
				t.Errorf("ColourPreviewWithText() = %q, want foreground %q", got, tt.fg)
			}
			if !strings.Contains(got, "  ab  ") {
				t.Errorf("ColourPreviewWithText() did not centre text: %q", got)
			}
		})
	}
}

func TestGroupPreview(t *testing.T) {
	group := []RGB{{R: 1}, {G: 2}, {B: 3}}
	got := GroupPreview(group, 2)
	if n := strings.Count(got, ansiReset); n != len(group) {
		t.Errorf("GroupPreview() produced %d swatches, want %d", n, len(group))
	}
}
