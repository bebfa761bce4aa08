package renderer

import (
	"fmt"
	"image/color"
	"strconv"
)

// parseHex parses a "#RRGGBB" color.
func parseHex(hexColor string) (color.RGBA, error) {
	if len(hexColor) > 0 && hexColor[0] == '#' {
		hexColor = hexColor[1:]
	}
	if len(hexColor) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", hexColor)
	}

	v, err := strconv.ParseUint(hexColor, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hexColor, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustHex(hexColor string) color.RGBA {
	c, err := parseHex(hexColor)
	if err != nil {
		panic(err)
	}
	return c
}

// darkenColor darkens a color by a percentage
func darkenColor(c color.Color, percent int) color.RGBA {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	factor := 1.0 - float64(percent)/100.0
	return color.RGBA{
		R: uint8(float64(rgba.R) * factor),
		G: uint8(float64(rgba.G) * factor),
		B: uint8(float64(rgba.B) * factor),
		A: rgba.A,
	}
}

// withAlpha returns c at the given opacity, premultiplied as image/color expects.
func withAlpha(c color.Color, alpha float64) color.RGBA {
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	rgba.A = uint8(alpha * 255)
	return color.RGBAModel.Convert(rgba).(color.RGBA)
}

// luminance returns the relative brightness of c in [0, 1].
func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
}

// textColorOn picks black or white text for legibility on background bg.
func textColorOn(bg color.Color) color.Color {
	if luminance(bg) < 0.45 {
		return color.White
	}
	return color.Black
}
