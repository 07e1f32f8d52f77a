package letterart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255. Cell colors are carried
// through the pipeline exactly as sampled from the source frame; no
// gamma correction or quantization is applied at any stage.
type RGB struct {
	R, G, B uint8
}

// toColor converts an RGB to a fully opaque color.RGBA.
func (c RGB) toColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// rgbFromColor converts any color.Color to an RGB by truncating the
// 16-bit premultiplied channels to 8 bits.
func rgbFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Threshold defines the per-channel background bound for silhouette
// suppression. A cell is background if and only if all three of its
// channels are less than or equal to the corresponding bound; a single
// channel above its bound keeps the cell visible.
type Threshold struct {
	R, G, B uint8
}

// Covers reports whether the given color falls at or below the
// threshold on every channel, i.e. whether the cell should be
// suppressed as background.
func (t Threshold) Covers(c RGB) bool {
	return c.R <= t.R && c.G <= t.G && c.B <= t.B
}

// ParseThreshold parses a threshold from a "r,g,b" string, such as
// "10,10,10". Each component must be an integer in [0, 255]. The
// function returns the parsed Threshold, or an error describing the
// first malformed component.
func ParseThreshold(s string) (Threshold, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Threshold{}, fmt.Errorf("threshold must be three comma-separated values, got %q", s)
	}
	var ch [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Threshold{}, fmt.Errorf("threshold component %q is not an integer", part)
		}
		if v < 0 || v > 255 {
			return Threshold{}, fmt.Errorf("threshold component %d out of range [0, 255]", v)
		}
		ch[i] = uint8(v)
	}
	return Threshold{R: ch[0], G: ch[1], B: ch[2]}, nil
}
