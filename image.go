package gradpanel

import (
	"fmt"

	"github.com/soypat/geometry/ms3"
)

// Image is an N×N raster of floating point RGB values stored row-major.
// Pix[i*N+j] holds row i, column j; X, Y and Z are the red, green and blue channels.
type Image struct {
	N   int
	Pix []ms3.Vec
}

// Shape returns the rows, columns and channels of the image.
func (img *Image) Shape() (rows, cols, channels int) {
	return img.N, img.N, 3
}

// Pixel returns the color at row i, column j.
func (img *Image) Pixel(i, j int) ms3.Vec {
	img.mustIndex(i, j)
	return img.Pix[i*img.N+j]
}

// Channel returns channel k (0=red, 1=green, 2=blue) at row i, column j.
func (img *Image) Channel(i, j, k int) float32 {
	c := img.Pixel(i, j)
	switch k {
	case 0:
		return c.X
	case 1:
		return c.Y
	case 2:
		return c.Z
	}
	panic(fmt.Sprintf("channel index %d out of range [0,3)", k))
}

// Row returns row i of the image. The returned slice aliases Pix.
func (img *Image) Row(i int) []ms3.Vec {
	img.mustIndex(i, 0)
	return img.Pix[i*img.N : (i+1)*img.N]
}

func (img *Image) mustIndex(i, j int) {
	if uint(i) >= uint(img.N) || uint(j) >= uint(img.N) {
		panic(fmt.Sprintf("pixel (%d,%d) out of range for %d×%d image", i, j, img.N, img.N))
	}
}
