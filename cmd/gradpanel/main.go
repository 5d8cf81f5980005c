package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/soypat/gradpanel"
	"github.com/soypat/gradpanel/gradaux"
	"github.com/soypat/gradpanel/gradrender"
)

type config struct {
	N      int
	C1, C2 string
	Space  string
	Output string
	Show   bool
	UseGPU bool
	Upper  bool
	Silent bool
}

func defaultConfig() config {
	return config{
		N:     100,
		C1:    "0,255,255",   // cyan
		C2:    "255,105,180", // pink
		Space: "rgb",
		Show:  true,
	}
}

func init() {
	// GLFW and GL calls must happen on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := defaultConfig()
	flag.IntVar(&cfg.N, "n", cfg.N, "Panel resolution in pixels per side")
	flag.StringVar(&cfg.C1, "c1", cfg.C1, "Color at the lower-left corner as \"r,g,b\" or #rrggbb")
	flag.StringVar(&cfg.C2, "c2", cfg.C2, "Color at the upper-right corner as \"r,g,b\" or #rrggbb")
	flag.StringVar(&cfg.Space, "space", cfg.Space, "Blend space: rgb or hsv")
	flag.StringVar(&cfg.Output, "o", cfg.Output, "Write the panel to this .png, .bmp or .tiff file")
	flag.BoolVar(&cfg.Show, "show", cfg.Show, "Display the panel in a window")
	flag.BoolVar(&cfg.UseGPU, "gpu", cfg.UseGPU, "Evaluate the panel on the GPU")
	flag.BoolVar(&cfg.Upper, "upper", cfg.Upper, "Place row 0 at the top of the output file")
	flag.BoolVar(&cfg.Silent, "silent", cfg.Silent, "Suppress progress output")
	flag.Parse()
	err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	panel, err := cfg.panel()
	if err != nil {
		return err
	}
	rcfg := gradaux.RenderConfig{UseGPU: cfg.UseGPU, Silent: cfg.Silent}
	if cfg.Upper {
		rcfg.Origin = gradrender.OriginUpper
	}
	img, err := gradaux.Evaluate(panel, rcfg)
	if err != nil {
		return fmt.Errorf("generating panel: %w", err)
	}
	if cfg.Output != "" {
		format, err := gradrender.FormatFromFilename(cfg.Output)
		if err != nil {
			return err
		}
		err = gradaux.WriteFile(cfg.Output, img, format, rcfg)
		if err != nil {
			return err
		}
	}
	if !cfg.Show {
		return nil
	}
	err = gradaux.UI(img, gradaux.UIConfig{Title: "gradpanel " + panel.C0.String() + " to " + panel.C1.String()})
	if err != nil {
		return fmt.Errorf("UI: %w", err)
	}
	return nil
}

func (cfg config) panel() (gradpanel.Panel, error) {
	c1, err1 := gradpanel.ParseColor(cfg.C1)
	c2, err2 := gradpanel.ParseColor(cfg.C2)
	space, err3 := gradpanel.ParseBlendSpace(cfg.Space)
	err := errors.Join(err1, err2, err3)
	if err != nil {
		return gradpanel.Panel{}, err
	}
	p := gradpanel.Panel{N: cfg.N, C0: c1, C1: c2, Space: space}
	return p, p.Validate()
}
