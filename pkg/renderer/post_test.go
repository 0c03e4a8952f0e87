package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

func TestPostGammaOnly(t *testing.T) {
	config := PostConfig{Vignette: false, Contrast: false, Gamma: 2.2}

	in := core.NewVec3(0.5, 0.25, 0.8)
	out := config.Process(in, core.NewVec2(0, 0))

	// Decoding with the same exponent recovers the linear value
	for i, pair := range [][2]float64{{in.X, out.X}, {in.Y, out.Y}, {in.Z, out.Z}} {
		decoded := math.Pow(pair[1], 2.2)
		if math.Abs(decoded-pair[0]) > 1e-9 {
			t.Errorf("Channel %d: expected round-trip to %f, got %f", i, pair[0], decoded)
		}
	}
}

func TestPostVignetteDarkensCorners(t *testing.T) {
	config := PostConfig{Vignette: true, VignetteStrength: 0.5, Contrast: false, Gamma: 2.2}

	in := core.NewVec3(0.8, 0.8, 0.8)
	center := config.Process(in, core.NewVec2(0, 0))
	corner := config.Process(in, core.NewVec2(1, 1))

	if corner.Luminance() >= center.Luminance() {
		t.Errorf("Corner (%f) should be darker than center (%f)", corner.Luminance(), center.Luminance())
	}

	// Center is untouched by the vignette
	expected := core.NewVec3(0.8, 0.8, 0.8).GammaCorrect(2.2)
	if center.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Center pixel should only see gamma, got %v", center)
	}
}

func TestPostContrastPushesMidtonesApart(t *testing.T) {
	config := PostConfig{Vignette: false, Contrast: true, Gamma: 1.0}

	dark := config.Process(core.NewVec3(0.2, 0.2, 0.2), core.NewVec2(0, 0))
	bright := config.Process(core.NewVec3(0.8, 0.8, 0.8), core.NewVec2(0, 0))

	if dark.X >= 0.2 {
		t.Errorf("Contrast should darken values below 0.5, got %f", dark.X)
	}
	if bright.X <= 0.8 {
		t.Errorf("Contrast should brighten values above 0.5, got %f", bright.X)
	}

	// Endpoints are fixed points
	black := config.Process(core.NewVec3(0, 0, 0), core.NewVec2(0, 0))
	white := config.Process(core.NewVec3(1, 1, 1), core.NewVec2(0, 0))
	if black.X != 0 || white.X != 1 {
		t.Errorf("Contrast should fix 0 and 1, got %f and %f", black.X, white.X)
	}
}

func TestPostStageOrder(t *testing.T) {
	config := PostConfig{Vignette: true, VignetteStrength: 0.4, Contrast: false, Gamma: 2.2}

	in := core.NewVec3(0.6, 0.6, 0.6)
	ndc := core.NewVec2(0.8, -0.6)
	got := config.Process(in, ndc)

	// Vignette applies in linear space, gamma last
	radial := ndc.LengthSquared() / 2.0
	want := in.Multiply(1.0 - 0.4*radial).GammaCorrect(2.2)
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected vignette before gamma: want %v, got %v", want, got)
	}
}

func TestPostClampsBeforeGamma(t *testing.T) {
	config := PostConfig{Vignette: false, Contrast: false, Gamma: 2.2}

	over := config.Process(core.NewVec3(3, 1.5, 1), core.NewVec2(0, 0))
	if over.X != 1 || over.Y != 1 || over.Z != 1 {
		t.Errorf("Overbright input should clamp to white, got %v", over)
	}

	under := config.Process(core.NewVec3(-0.5, 0, 0), core.NewVec2(0, 0))
	if under.X != 0 {
		t.Errorf("Negative input should clamp to zero, got %v", under)
	}
}

func TestPostConfigValidate(t *testing.T) {
	if err := DefaultPostConfig().Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}

	badGamma := DefaultPostConfig()
	badGamma.Gamma = 0
	if err := badGamma.Validate(); err == nil {
		t.Error("Zero gamma should fail validation")
	}

	badStrength := DefaultPostConfig()
	badStrength.VignetteStrength = 1.5
	if err := badStrength.Validate(); err == nil {
		t.Error("Vignette strength above 1 should fail validation")
	}
}
