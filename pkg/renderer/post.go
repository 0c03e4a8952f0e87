package renderer

import (
	"fmt"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// PostConfig contains post-processing configuration. Stages run in a
// fixed order on linear color: vignette, contrast, then gamma encoding
// last so all earlier math stays in linear space.
type PostConfig struct {
	Vignette         bool
	VignetteStrength float64 // Darkening at the screen corners, in [0,1]
	Contrast         bool    // Smoothstep contrast remap
	Gamma            float64 // Encoding exponent denominator, typically 2.2
}

// DefaultPostConfig returns sensible default values
func DefaultPostConfig() PostConfig {
	return PostConfig{
		Vignette:         true,
		VignetteStrength: 0.35,
		Contrast:         true,
		Gamma:            2.2,
	}
}

// Validate checks the post-processing configuration
func (c PostConfig) Validate() error {
	if c.VignetteStrength < 0 || c.VignetteStrength > 1 {
		return fmt.Errorf("vignette strength must be in [0,1], got %f", c.VignetteStrength)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %f", c.Gamma)
	}
	return nil
}

// Process transforms a linear pixel color into its output value. The ndc
// argument is the pixel's screen position, used for the radial vignette.
func (c PostConfig) Process(color core.Vec3, ndc core.Vec2) core.Vec3 {
	if c.Vignette {
		// Radial falloff, 0 at the center and strength at unit radius
		radial := ndc.LengthSquared() / 2.0
		color = color.Multiply(1.0 - c.VignetteStrength*radial)
	}

	if c.Contrast {
		color = core.NewVec3(
			smoothstep(color.X),
			smoothstep(color.Y),
			smoothstep(color.Z),
		)
	}

	// Gamma encoding is always applied, and always last
	return color.Clamp(0, 1).GammaCorrect(c.Gamma)
}

// smoothstep remaps x through the cubic 3x² - 2x³ with clamping
func smoothstep(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x * x * (3 - 2*x)
}
