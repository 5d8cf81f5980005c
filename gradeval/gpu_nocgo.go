//go:build tinygo || !cgo

package gradeval

import (
	"errors"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gradpanel"
)

var errNoCGO = errors.New("GPU evaluation requires CGo and is not supported on TinyGo")

// Init1x1GLFW starts a 1x1 sized GLFW so that user can start working with GPU.
func Init1x1GLFW() (terminate func(), err error) {
	return nil, errNoCGO
}

type GPUEvaluator struct {
	cfg ComputeConfig
}

// NewGPUEvaluator compiles the panel compute shader.
func NewGPUEvaluator(cfg ComputeConfig) (*GPUEvaluator, error) {
	return nil, errNoCGO
}

func (e *GPUEvaluator) Evaluate(p gradpanel.Panel, dst []ms3.Vec) error {
	return errNoCGO
}

func (e *GPUEvaluator) Evaluations() uint64 { return 0 }

func (e *GPUEvaluator) Delete() {}
