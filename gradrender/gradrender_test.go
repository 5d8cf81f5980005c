package gradrender

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gradpanel"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	cyan = gradpanel.Color{R: 0, G: 255, B: 255}
	pink = gradpanel.Color{R: 255, G: 105, B: 180}

	cyanRGBA = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	pinkRGBA = color.RGBA{R: 255, G: 105, B: 180, A: 255}
)

func TestRenderOrigin(t *testing.T) {
	const n = 8
	img, err := gradpanel.Generate(n, cyan, pink)
	if err != nil {
		t.Fatal(err)
	}
	lower, err := NewImageRenderer(OriginLower)
	if err != nil {
		t.Fatal(err)
	}
	raster, err := lower.RenderRGBA(img)
	if err != nil {
		t.Fatal(err)
	}
	// Row 0, column 0 is pure cyan and sits at the bottom left.
	if got := raster.RGBAAt(0, n-1); got != cyanRGBA {
		t.Errorf("bottom-left got %v, want %v", got, cyanRGBA)
	}
	if got := raster.RGBAAt(n-1, 0); got != pinkRGBA {
		t.Errorf("top-right got %v, want %v", got, pinkRGBA)
	}

	upper, err := NewImageRenderer(OriginUpper)
	if err != nil {
		t.Fatal(err)
	}
	raster, err = upper.RenderRGBA(img)
	if err != nil {
		t.Fatal(err)
	}
	if got := raster.RGBAAt(0, 0); got != cyanRGBA {
		t.Errorf("top-left got %v, want %v", got, cyanRGBA)
	}
	if got := raster.RGBAAt(n-1, n-1); got != pinkRGBA {
		t.Errorf("bottom-right got %v, want %v", got, pinkRGBA)
	}
}

func TestRenderOffsetBounds(t *testing.T) {
	img, err := gradpanel.Generate(4, cyan, pink)
	if err != nil {
		t.Fatal(err)
	}
	ir, _ := NewImageRenderer(OriginUpper)
	dst := image.NewRGBA(image.Rect(10, 20, 14, 24))
	err = ir.Render(img, dst)
	if err != nil {
		t.Fatal(err)
	}
	if got := dst.RGBAAt(10, 20); got != cyanRGBA {
		t.Errorf("got %v, want %v", got, cyanRGBA)
	}
	if got := dst.RGBAAt(13, 23); got != pinkRGBA {
		t.Errorf("got %v, want %v", got, pinkRGBA)
	}
	err = ir.Render(img, image.NewRGBA(image.Rect(0, 0, 5, 4)))
	if err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestToRGBAClamps(t *testing.T) {
	got := ToRGBA(ms3.Vec{X: 2, Y: -1, Z: 0.5})
	want := color.RGBA{R: 255, G: 0, B: 128, A: 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodeDecode(t *testing.T) {
	const n = 16
	img, err := gradpanel.Generate(n, cyan, pink)
	if err != nil {
		t.Fatal(err)
	}
	ir, _ := NewImageRenderer(OriginLower)
	raster, err := ir.RenderRGBA(img)
	if err != nil {
		t.Fatal(err)
	}
	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		FormatTIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}
	for format, decode := range decoders {
		var buf bytes.Buffer
		err = Encode(&buf, raster, format)
		if err != nil {
			t.Fatalf("%s: %s", format, err)
		}
		got, err := decode(&buf)
		if err != nil {
			t.Fatalf("%s decode: %s", format, err)
		}
		if got.Bounds().Dx() != n || got.Bounds().Dy() != n {
			t.Errorf("%s: got bounds %v", format, got.Bounds())
		}
		if c := color.RGBAModel.Convert(got.At(0, n-1)); c != cyanRGBA {
			t.Errorf("%s: bottom-left got %v, want %v", format, c, cyanRGBA)
		}
		if c := color.RGBAModel.Convert(got.At(n-1, 0)); c != pinkRGBA {
			t.Errorf("%s: top-right got %v, want %v", format, c, pinkRGBA)
		}
	}
}

func TestFormatFromFilename(t *testing.T) {
	for name, want := range map[string]Format{
		"panel.png":     FormatPNG,
		"dir/panel.PNG": FormatPNG,
		"panel.bmp":     FormatBMP,
		"panel.tif":     FormatTIFF,
		"/tmp/out.tiff": FormatTIFF,
	} {
		got, err := FormatFromFilename(name)
		if err != nil || got != want {
			t.Errorf("%s: got %s %v, want %s", name, got, err, want)
		}
	}
	if _, err := FormatFromFilename("panel.jpg"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
