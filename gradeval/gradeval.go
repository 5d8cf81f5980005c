package gradeval

import (
	"errors"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gradpanel"
)

// Evaluator computes the pixels of a gradient panel.
type Evaluator interface {
	// Evaluate writes the N*N pixels of p into dst in row-major order.
	// dst must be of length p.N*p.N.
	Evaluate(p gradpanel.Panel, dst []ms3.Vec) error
}

var (
	errEmptyBuffers      = errors.New("empty buffers")
	errMismatchBufferLen = errors.New("pixel buffer length does not match panel size")
)

// CPUEvaluator evaluates panels on the CPU. The zero value is ready to use.
type CPUEvaluator struct {
	evals uint64
}

var _ Evaluator = (*CPUEvaluator)(nil)

func (e *CPUEvaluator) Evaluate(p gradpanel.Panel, dst []ms3.Vec) error {
	if len(dst) == 0 {
		return errEmptyBuffers
	}
	err := p.Fill(dst)
	if err != nil {
		return err
	}
	e.evals += uint64(len(dst))
	return nil
}

// Evaluations returns the number of pixels evaluated since creation.
func (e *CPUEvaluator) Evaluations() uint64 { return e.evals }

// Generate evaluates p with e into a newly allocated image.
func Generate(e Evaluator, p gradpanel.Panel) (*gradpanel.Image, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}
	img := &gradpanel.Image{N: p.N, Pix: make([]ms3.Vec, p.N*p.N)}
	err = e.Evaluate(p, img.Pix)
	if err != nil {
		return nil, err
	}
	return img, nil
}
