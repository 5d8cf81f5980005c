package gradeval

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gradpanel"
)

var testPanel = gradpanel.Panel{
	N:  13,
	C0: gradpanel.Color{R: 0, G: 255, B: 255},
	C1: gradpanel.Color{R: 255, G: 105, B: 180},
}

func TestCPUEvaluator(t *testing.T) {
	var e CPUEvaluator
	img, err := Generate(&e, testPanel)
	if err != nil {
		t.Fatal(err)
	}
	want, err := testPanel.Generate()
	if err != nil {
		t.Fatal(err)
	}
	for k := range want.Pix {
		if img.Pix[k] != want.Pix[k] {
			t.Fatalf("pixel %d: got %v, want %v", k, img.Pix[k], want.Pix[k])
		}
	}
	if e.Evaluations() != uint64(testPanel.N*testPanel.N) {
		t.Errorf("got %d evaluations, want %d", e.Evaluations(), testPanel.N*testPanel.N)
	}
}

func TestCPUEvaluatorErrors(t *testing.T) {
	var e CPUEvaluator
	err := e.Evaluate(testPanel, nil)
	if !errors.Is(err, errEmptyBuffers) {
		t.Error("expected empty buffer error, got", err)
	}
	err = e.Evaluate(testPanel, make([]ms3.Vec, 3))
	if !errors.Is(err, gradpanel.ErrInvalidArgument) {
		t.Error("expected length mismatch error, got", err)
	}
	bad := testPanel
	bad.N = 0
	_, err = Generate(&e, bad)
	if !errors.Is(err, gradpanel.ErrInvalidArgument) {
		t.Error("expected invalid resolution error, got", err)
	}
	if e.Evaluations() != 0 {
		t.Error("failed evaluations must not be counted")
	}
}

func TestValidateGPUPanel(t *testing.T) {
	p := testPanel
	p.Space = gradpanel.BlendHSV
	if validateGPUPanel(p) == nil {
		t.Error("expected hsv to be rejected for GPU evaluation")
	}
	if err := validateGPUPanel(testPanel); err != nil {
		t.Error(err)
	}
}

// glslReserved lists GLSL 4.x keywords and reserved words that are valid Go or C identifiers
// and so are easy to misuse as function or variable names.
var glslReserved = map[string]bool{
	"sample": true, "patch": true, "centroid": true, "smooth": true, "flat": true, "noperspective": true,
	"invariant": true, "precise": true, "layout": true, "subroutine": true, "buffer": true, "shared": true,
	"coherent": true, "volatile": true, "restrict": true, "readonly": true, "writeonly": true,
	"attribute": true, "varying": true, "uniform": true, "common": true, "partition": true, "active": true,
	"resource": true, "filter": true, "input": true, "output": true, "external": true, "interface": true,
	"template": true, "this": true, "goto": true, "inline": true, "noinline": true, "public": true,
	"static": true, "extern": true, "long": true, "short": true, "half": true, "fixed": true,
	"unsigned": true, "superp": true, "namespace": true, "using": true, "sizeof": true, "cast": true,
	"union": true, "enum": true, "typedef": true, "class": true, "lowp": true, "mediump": true, "highp": true,
}

func TestComputeShaderIdentifiers(t *testing.T) {
	source := fmt.Sprintf(panelComputeShader, DefaultInvocations, DefaultInvocations)
	funcNames := regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(`)
	declNames := regexp.MustCompile(`\b(?:float|int|uint|bool|vec[234]|uvec[234]|ivec[234])\s+([A-Za-z_]\w*)`)
	var idents []string
	for _, m := range funcNames.FindAllStringSubmatch(source, -1) {
		idents = append(idents, m[1])
	}
	for _, m := range declNames.FindAllStringSubmatch(source, -1) {
		idents = append(idents, m[1])
	}
	if len(idents) == 0 {
		t.Fatal("found no identifiers in compute shader")
	}
	for _, ident := range idents {
		// layout(...) is the one reserved word legitimately followed by a parenthesis.
		if ident == "layout" {
			continue
		}
		if glslReserved[ident] {
			t.Errorf("compute shader uses reserved GLSL word %q as an identifier", ident)
		}
	}
}
