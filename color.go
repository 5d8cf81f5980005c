package gradpanel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms1"
	"github.com/soypat/geometry/ms3"
)

// HSV conversion logic adapted from Esme Lamb's (@dedelala) color manipulation
// work presented at Gophercon AU 2024.
// https://github.com/dedelala/disco/tree/main/color

// Color is an RGB color with channels nominally in [0,255].
// Channels outside that range are permitted and are not clamped.
type Color struct {
	R, G, B float32
}

// ColorFrom converts c to a Color. Alpha is ignored.
func ColorFrom(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: float32(r >> 8), G: float32(g >> 8), B: float32(b >> 8)}
}

// Normalized returns the channels divided by 255.
func (c Color) Normalized() ms3.Vec {
	return ms3.Vec{X: c.R / math.MaxUint8, Y: c.G / math.MaxUint8, Z: c.B / math.MaxUint8}
}

// InRange reports whether all channels lie in [0,255].
func (c Color) InRange() bool {
	in := func(v float32) bool { return v >= 0 && v <= math.MaxUint8 }
	return in(c.R) && in(c.G) && in(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("(%g,%g,%g)", c.R, c.G, c.B)
}

// ParseColor parses a color written as a decimal triplet "r,g,b" (e.g. "255,105,180")
// or as a hex string "#rrggbb". Triplet channels are not range checked.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("hex color %q must have 6 digits: %w", s, ErrInvalidArgument)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("hex color %q: %w", s, ErrInvalidArgument)
		}
		return Color{R: float32(uint8(v >> 16)), G: float32(uint8(v >> 8)), B: float32(uint8(v))}, nil
	}
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return Color{}, fmt.Errorf("color %q must have 3 comma separated channels: %w", s, ErrInvalidArgument)
	}
	var ch [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q channel %d: %w", s, i, ErrInvalidArgument)
		}
		ch[i] = float32(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func interpHSV(h0, s0, v0, h1, s1, v1, t float32) (h, s, v float32) {
	switch {
	case h1-h0 > 0.5:
		h0 += 1.0
	case h1-h0 < -0.5:
		h1 += 1.0
	}
	h = ms1.Interp(h0, h1, t)
	if h >= 1 {
		h -= 1
	}
	s = ms1.Interp(s0, s1, t)
	v = ms1.Interp(v0, v1, t)
	return h, s, v
}

// hsvToRGB converts hue, saturation and brightness values on the range of 0.0
// to 1.0 to RGB floating point values on the range of 0.0 to 1.0
func hsvToRGB(h, s, v float32) (r, g, b float32) {
	var (
		c = s * v
		x = c * (1 - math.Abs(math.Mod(h*6, 2)-1))
		m = v - c
	)

	switch {
	case h >= 0 && h <= 1.0/6:
		r, g, b = c, x, 0
	case h > 1.0/6 && h <= 2.0/6:
		r, g, b = x, c, 0
	case h > 2.0/6 && h <= 3.0/6:
		r, g, b = 0, c, x
	case h > 3.0/6 && h <= 4.0/6:
		r, g, b = 0, x, c
	case h > 4.0/6 && h <= 5.0/6:
		r, g, b = x, 0, c
	case h > 5.0/6 && h <= 1.0:
		r, g, b = c, 0, x
	}

	r, g, b = r+m, g+m, b+m
	return r, g, b
}

// rgbToHSV converts red, green, and blue floating point values on the range
// 0.0 to 1.0 to hue, saturation and brightness values on the range 0.0 to 1.0
func rgbToHSV(r, g, b float32) (h, s, v float32) {
	var (
		xmax = max(r, g, b)
		xmin = min(r, g, b)
		c    = xmax - xmin
	)
	v = xmax
	switch {
	case c == 0:
		h = 0
	case v == r:
		h = (g - b) / (c * 6)
	case v == g:
		h = 1.0/3 + (b-r)/(c*6)
	case v == b:
		h = 2.0/3 + (r-g)/(c*6)
	}
	if h < 0 {
		h += 1
	}
	if xmax > 0 {
		s = c / xmax
	}
	return
}
