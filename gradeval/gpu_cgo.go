//go:build !tinygo && cgo

package gradeval

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/gradpanel"
)

// Init1x1GLFW starts a 1x1 sized GLFW so that user can start working with GPU.
// It returns a termination function that should be called when user is done running loads on GPU.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "compute",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// GPUEvaluator evaluates panels with an OpenGL compute shader.
// A GL context must be current on the calling thread, see [Init1x1GLFW].
type GPUEvaluator struct {
	prog  glgl.Program
	cfg   ComputeConfig
	evals uint64
}

var _ Evaluator = (*GPUEvaluator)(nil)

// NewGPUEvaluator compiles the panel compute shader.
func NewGPUEvaluator(cfg ComputeConfig) (*GPUEvaluator, error) {
	cfg.setDefaults()
	if cfg.InvocX < 1 || cfg.InvocY < 1 {
		return nil, errors.New("zero or negative invocation size")
	}
	source := fmt.Sprintf(panelComputeShader, cfg.InvocX, cfg.InvocY) + "\x00"
	prog, err := glgl.CompileProgram(glgl.ShaderSource{Compute: source})
	if err != nil {
		return nil, fmt.Errorf("%s\n%w", source, err)
	}
	return &GPUEvaluator{prog: prog, cfg: cfg}, nil
}

func (e *GPUEvaluator) Evaluate(p gradpanel.Panel, dst []ms3.Vec) (err error) {
	if len(dst) == 0 {
		return errEmptyBuffers
	}
	err = validateGPUPanel(p)
	if err != nil {
		return err
	} else if len(dst) != p.N*p.N {
		return errMismatchBufferLen
	} else if e.prog.ID() == 0 {
		return errors.New("program id is 0, did you create GPUEvaluator with NewGPUEvaluator?")
	}
	prog := e.prog
	prog.Bind()
	defer prog.Unbind()

	c0, c1 := p.C0.Normalized(), p.C1.Normalized()
	locN, err := prog.UniformLocation("uN\x00")
	if err != nil {
		return err
	}
	locC0, err := prog.UniformLocation("uC0\x00")
	if err != nil {
		return err
	}
	locC1, err := prog.UniformLocation("uC1\x00")
	if err != nil {
		return err
	}
	gl.Uniform1i(locN, int32(p.N))
	gl.Uniform3f(locC0, c0.X, c0.Y, c0.Z)
	gl.Uniform3f(locC1, c1.X, c1.Y, c1.Z)

	var pinner runtime.Pinner
	var ssbo uint32
	pinner.Pin(&ssbo)
	defer pinner.Unpin()
	ssbo = createSSBO(elemSize[ms3.Vec]()*len(dst), 0, gl.DYNAMIC_READ)
	if ssbo == 0 {
		return glErrOrMessage("zero id SSBO creating pixel buffer")
	}
	defer gl.DeleteBuffers(1, &ssbo)

	nWorkX := (p.N + e.cfg.InvocX - 1) / e.cfg.InvocX
	nWorkY := (p.N + e.cfg.InvocY - 1) / e.cfg.InvocY
	gl.DispatchCompute(uint32(nWorkX), uint32(nWorkY), 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
	err = copySSBO(dst, ssbo)
	if err != nil {
		return err
	}
	e.evals += uint64(len(dst))
	return glgl.Err()
}

// Evaluations returns the number of pixels evaluated since creation.
func (e *GPUEvaluator) Evaluations() uint64 { return e.evals }

// Delete releases the compiled program.
func (e *GPUEvaluator) Delete() {
	e.prog.Delete()
}

func createSSBO(size int, base, usage uint32) (ssbo uint32) {
	gl.GenBuffers(1, &ssbo)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssbo)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, usage)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, base, ssbo)
	return ssbo
}

func copySSBO[T any](dst []T, ssbo uint32) error {
	bufSize := elemSize[T]() * len(dst)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssbo)
	ptr := gl.MapBufferRange(gl.SHADER_STORAGE_BUFFER, 0, bufSize, gl.MAP_READ_BIT)
	if ptr == nil {
		return glErrOrMessage("failed to map SSBO buffer during copy")
	}
	defer gl.UnmapBuffer(gl.SHADER_STORAGE_BUFFER)
	gpuBytes := unsafe.Slice((*byte)(ptr), bufSize)
	bufBytes := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), bufSize)
	copy(bufBytes, gpuBytes)
	return nil
}

func elemSize[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
