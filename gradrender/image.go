package gradrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gradpanel"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// Origin selects which raster edge row 0 of a gradient image is drawn on.
type Origin uint8

const (
	// OriginLower draws row 0 along the bottom edge of the raster, the way the panel is displayed.
	OriginLower Origin = iota
	// OriginUpper draws row 0 along the top edge of the raster, the usual image convention.
	OriginUpper
)

// ImageRenderer converts floating point gradient images to 8 bit rasters.
type ImageRenderer struct {
	origin Origin
	conv   func(ms3.Vec) color.Color
}

// NewImageRenderer instances a new [ImageRenderer] that places row 0 according to origin.
// Channels are scaled by 255, clamped to [0,255] and rounded to the nearest integer.
func NewImageRenderer(origin Origin) (*ImageRenderer, error) {
	if origin > OriginUpper {
		return nil, fmt.Errorf("bad origin %d", origin)
	}
	return &ImageRenderer{origin: origin, conv: ToRGBA}, nil
}

// Render writes img into dst. dst bounds must be N×N.
func (ir *ImageRenderer) Render(img *gradpanel.Image, dst setImage) error {
	if img == nil || img.N <= 0 {
		return errors.New("empty gradient image")
	}
	bb := dst.Bounds()
	if bb.Dx() != img.N || bb.Dy() != img.N {
		return fmt.Errorf("destination %dx%d does not match %dx%d gradient image", bb.Dx(), bb.Dy(), img.N, img.N)
	}
	for i := 0; i < img.N; i++ {
		ir.renderRow(img.Row(i), ir.rasterY(i, img.N)+bb.Min.Y, bb.Min.X, dst)
	}
	return nil
}

// RenderRGBA allocates an [image.RGBA] and renders img into it.
func (ir *ImageRenderer) RenderRGBA(img *gradpanel.Image) (*image.RGBA, error) {
	if img == nil {
		return nil, errors.New("nil gradient image")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.N, img.N))
	err := ir.Render(img, rgba)
	if err != nil {
		return nil, err
	}
	return rgba, nil
}

func (ir *ImageRenderer) renderRow(row []ms3.Vec, y, xmin int, dst setImage) {
	conv := ir.conv
	for j, c := range row {
		dst.Set(xmin+j, y, conv(c))
	}
}

// rasterY returns the raster row gradient row i lands on.
func (ir *ImageRenderer) rasterY(i, n int) int {
	if ir.origin == OriginLower {
		return n - 1 - i
	}
	return i
}

// ToRGBA converts a color with channels nominally in [0,1] to an opaque [color.RGBA].
// Out of range channels are clamped.
func ToRGBA(c ms3.Vec) color.Color {
	return color.RGBA{R: to8bit(c.X), G: to8bit(c.Y), B: to8bit(c.Z), A: 255}
}

func to8bit(v float32) uint8 {
	if math32.IsNaN(v) || v <= 0 {
		return 0
	} else if v >= 1 {
		return 255
	}
	return uint8(math32.Floor(v*255 + 0.5))
}
