package gradaux

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/soypat/gradpanel"
	"github.com/soypat/gradpanel/gradeval"
	"github.com/soypat/gradpanel/gradrender"
)

type RenderConfig struct {
	// Origin sets which raster edge row 0 of the panel is drawn on. Zero value matches the display.
	Origin gradrender.Origin
	UseGPU bool
	Silent bool
}

// UIConfig configures the panel display window.
type UIConfig struct {
	// Width and Height of the window in screen coordinates. Zero values default to 600.
	Width, Height int
	// Title of the window. Empty defaults to "gradpanel".
	Title string
	// Context cancels the display loop when done. May be nil.
	Context context.Context
}

const defaultUISize = 600

// UI displays img in a window with row 0 at the bottom and no decorations.
// UI blocks until the window is closed or cfg.Context is done.
// It must be called from the main OS thread.
func UI(img *gradpanel.Image, cfg UIConfig) error {
	if img == nil || img.N <= 0 || len(img.Pix) != img.N*img.N {
		return errors.New("UI requires a non-empty gradient image")
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return fmt.Errorf("negative window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width == 0 {
		cfg.Width = defaultUISize
	}
	if cfg.Height == 0 {
		cfg.Height = defaultUISize
	}
	if cfg.Title == "" {
		cfg.Title = "gradpanel"
	}
	return ui(img, cfg)
}

// Evaluate is an auxiliary function that generates the panel image on the CPU or,
// if requested, on the GPU. GPU evaluation creates and releases its own hidden GL context.
func Evaluate(p gradpanel.Panel, cfg RenderConfig) (*gradpanel.Image, error) {
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	var eval gradeval.Evaluator
	watch := stopwatch()
	if cfg.UseGPU {
		log("using GPU")
		terminate, err := gradeval.Init1x1GLFW()
		if err != nil {
			return nil, err
		}
		defer terminate()
		gpu, err := gradeval.NewGPUEvaluator(gradeval.ComputeConfig{})
		if err != nil {
			return nil, fmt.Errorf("instantiating GPU evaluator: %w", err)
		}
		defer gpu.Delete()
		eval = gpu
	} else {
		log("using CPU")
		eval = &gradeval.CPUEvaluator{}
	}
	img, err := gradeval.Generate(eval, p)
	if err != nil {
		return nil, err
	}
	log("evaluated", p.N*p.N, "pixels in", watch())
	return img, nil
}

// RenderFile is an auxiliary function to aid users in getting a panel written to disk quickly.
// The raster format is chosen from the filename extension (.png, .bmp, .tif or .tiff).
func RenderFile(filename string, p gradpanel.Panel, cfg RenderConfig) error {
	format, err := gradrender.FormatFromFilename(filename)
	if err != nil {
		return err
	}
	img, err := Evaluate(p, cfg)
	if err != nil {
		return err
	}
	return WriteFile(filename, img, format, cfg)
}

// WriteFile converts img to an 8 bit raster and writes it to filename in the given format.
func WriteFile(filename string, img *gradpanel.Image, format gradrender.Format, cfg RenderConfig) (err error) {
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	ir, err := gradrender.NewImageRenderer(cfg.Origin)
	if err != nil {
		return err
	}
	raster, err := ir.RenderRGBA(img)
	if err != nil {
		return fmt.Errorf("rendering raster: %w", err)
	}
	watch := stopwatch()
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		errClose := fp.Close()
		if err == nil {
			err = errClose
		}
	}()
	w := bufio.NewWriter(fp)
	err = gradrender.Encode(w, raster, format)
	if err != nil {
		return fmt.Errorf("writing %s file: %w", format, err)
	}
	err = w.Flush()
	if err != nil {
		return err
	}
	log("wrote", fp.Name(), "in", watch())
	return nil
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
