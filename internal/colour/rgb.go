// Package colour provides colour conversion, candidate pools and distinct colour
// selection for marker generation.
package colour

import (
	"fmt"
	"image/color"
)

// RGB represents an opaque 8-bit sRGB colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA converts the colour to a fully opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Tuple returns the channels as a fixed array, the form used in manifests.
func (rgb RGB) Tuple() [3]uint8 {
	return [3]uint8{rgb.R, rgb.G, rgb.B}
}

// ToRGB converts a color.Color to RGB, dropping alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ToHex converts a slice of colours to hex strings.
func ToHex(colours []RGB) []string {
	out := make([]string, len(colours))
	for i, c := range colours {
		out[i] = c.Hex()
	}
	return out
}
