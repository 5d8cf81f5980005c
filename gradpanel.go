// Package gradpanel generates square panels colored with a diagonal gradient
// between two RGB colors.
package gradpanel

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms3"
)

// ErrInvalidArgument is returned (wrapped) when generator inputs cannot produce an image.
var ErrInvalidArgument = errors.New("invalid argument")

// BlendSpace selects the color space in which two colors are mixed.
type BlendSpace uint8

const (
	// BlendRGB mixes each RGB channel linearly. This is the zero value.
	BlendRGB BlendSpace = iota
	// BlendHSV mixes hue, saturation and value, taking the short way around the hue circle.
	BlendHSV
)

func (bs BlendSpace) String() string {
	switch bs {
	case BlendRGB:
		return "rgb"
	case BlendHSV:
		return "hsv"
	}
	return fmt.Sprintf("BlendSpace(%d)", uint8(bs))
}

// ParseBlendSpace returns the BlendSpace named by s ("rgb" or "hsv").
func ParseBlendSpace(s string) (BlendSpace, error) {
	switch s {
	case "rgb", "RGB", "":
		return BlendRGB, nil
	case "hsv", "HSV":
		return BlendHSV, nil
	}
	return 0, fmt.Errorf("unknown blend space %q: %w", s, ErrInvalidArgument)
}

// Panel describes a square diagonal gradient between C0 and C1 at resolution N×N.
// Pixel (i,j) is mixed with factor t = (x[i]+x[j])/2 where x is [Linspace] of N,
// so for N>1 pixel (0,0) is pure C0 and (N-1,N-1) is pure C1.
type Panel struct {
	N     int
	C0    Color
	C1    Color
	Space BlendSpace
}

// Generate returns the N×N gradient image between c1 and c2 blended in RGB space.
// n must be positive. Channel values outside [0,255] are not validated.
func Generate(n int, c1, c2 Color) (*Image, error) {
	return Panel{N: n, C0: c1, C1: c2}.Generate()
}

// Validate checks the panel can be generated.
func (p Panel) Validate() error {
	var errs []error
	if p.N <= 0 {
		errs = append(errs, fmt.Errorf("resolution must be positive, got %d: %w", p.N, ErrInvalidArgument))
	}
	switch p.Space {
	case BlendRGB:
	case BlendHSV:
		if !p.C0.InRange() || !p.C1.InRange() {
			errs = append(errs, fmt.Errorf("hsv blending requires channels in [0,255]: %w", ErrInvalidArgument))
		}
	default:
		errs = append(errs, fmt.Errorf("bad blend space %s: %w", p.Space, ErrInvalidArgument))
	}
	return errors.Join(errs...)
}

// Generate allocates a new image and fills it with the panel's gradient.
func (p Panel) Generate() (*Image, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}
	img := &Image{N: p.N, Pix: make([]ms3.Vec, p.N*p.N)}
	err = p.Fill(img.Pix)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Fill writes the panel's N*N pixels into dst in row-major order.
// dst must have length N*N.
func (p Panel) Fill(dst []ms3.Vec) error {
	err := p.Validate()
	if err != nil {
		return err
	}
	if len(dst) != p.N*p.N {
		return fmt.Errorf("destination length %d does not match %d×%d panel: %w", len(dst), p.N, p.N, ErrInvalidArgument)
	}
	c0 := p.C0.Normalized()
	c1 := p.C1.Normalized()
	t := BlendFactors(Linspace(p.N))
	switch p.Space {
	case BlendRGB:
		for k, tk := range t {
			dst[k] = lerpRGB(c0, c1, tk)
		}
	case BlendHSV:
		h0, s0, v0 := rgbToHSV(c0.X, c0.Y, c0.Z)
		h1, s1, v1 := rgbToHSV(c1.X, c1.Y, c1.Z)
		for k, tk := range t {
			// Endpoints are exact regardless of HSV round trip error.
			switch tk {
			case 0:
				dst[k] = c0
				continue
			case 1:
				dst[k] = c1
				continue
			}
			r, g, b := hsvToRGB(interpHSV(h0, s0, v0, h1, s1, v1, tk))
			dst[k] = ms3.Vec{X: r, Y: g, Z: b}
		}
	}
	return nil
}

// Linspace returns n evenly spaced samples over [0,1] including both endpoints.
// A single sample sits at the midpoint 0.5, so a 1×1 panel is the even mix of both colors.
// This differs from numpy's linspace(0, 1, 1), which yields [0] and a pure C0 pixel.
// Returns nil for n <= 0.
func Linspace(n int) []float32 {
	if n <= 0 {
		return nil
	}
	x := make([]float32, n)
	if n == 1 {
		x[0] = 0.5
		return x
	}
	div := float32(n - 1)
	for k := range x {
		x[k] = float32(k) / div
	}
	return x
}

// BlendFactors returns the len(x)×len(x) row-major matrix t(i,j) = (x[i]+x[j])/2.
func BlendFactors(x []float32) []float32 {
	n := len(x)
	t := make([]float32, n*n)
	for i, xi := range x {
		row := t[i*n : (i+1)*n]
		for j, xj := range x {
			row[j] = (xi + xj) / 2
		}
	}
	return t
}

// lerpRGB is written as (1-t)*a + t*b so t=0 and t=1 return a and b exactly.
func lerpRGB(a, b ms3.Vec, t float32) ms3.Vec {
	return ms3.Add(ms3.Scale(1-t, a), ms3.Scale(t, b))
}
