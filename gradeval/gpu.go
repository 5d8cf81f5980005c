package gradeval

import (
	"fmt"

	"github.com/soypat/gradpanel"
)

// DefaultInvocations is the default compute shader local work group size along each axis.
const DefaultInvocations = 8

// ComputeConfig configures the compute shader of a [GPUEvaluator].
type ComputeConfig struct {
	// InvocX and InvocY set the local work group size. Zero values are set to [DefaultInvocations].
	InvocX, InvocY int
}

func (cfg *ComputeConfig) setDefaults() {
	if cfg.InvocX == 0 {
		cfg.InvocX = DefaultInvocations
	}
	if cfg.InvocY == 0 {
		cfg.InvocY = DefaultInvocations
	}
}

// panelComputeShader computes pixel (row=gl_GlobalInvocationID.y, col=gl_GlobalInvocationID.x).
// Pixels are written as 3 tightly packed floats so the buffer maps directly onto []ms3.Vec.
const panelComputeShader = `#version 430
layout(local_size_x = %d, local_size_y = %d, local_size_z = 1) in;

uniform int uN;
uniform vec3 uC0;
uniform vec3 uC1;

layout(std430, binding = 0) buffer PixBuffer {
	float pix[];
};

float coord(uint k) {
	if (uN == 1) {
		return 0.5;
	}
	return float(k) / float(uN - 1);
}

void main() {
	uint j = gl_GlobalInvocationID.x;
	uint i = gl_GlobalInvocationID.y;
	if (i >= uint(uN) || j >= uint(uN)) {
		return;
	}
	float t = (coord(i) + coord(j)) / 2.0;
	vec3 c = (1.0 - t) * uC0 + t * uC1;
	uint base = 3u * (i * uint(uN) + j);
	pix[base] = c.x;
	pix[base + 1u] = c.y;
	pix[base + 2u] = c.z;
}
`

func validateGPUPanel(p gradpanel.Panel) error {
	err := p.Validate()
	if err != nil {
		return err
	}
	if p.Space != gradpanel.BlendRGB {
		return fmt.Errorf("GPU evaluation supports rgb blending only, got %s", p.Space)
	}
	return nil
}
