package shading

import (
	"fmt"
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
	"github.com/df07/go-sdf-raymarcher/pkg/marcher"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
)

// ShadowMode selects the shadow technique
type ShadowMode int

const (
	ShadowsOff ShadowMode = iota
	ShadowsHard
	ShadowsSoft
)

// Config contains shading configuration. Each stage can be toggled
// independently.
type Config struct {
	Lighting         bool       // Diffuse + ambient lighting
	Ambient          core.Vec3  // Constant ambient term
	Shadows          ShadowMode // Shadow technique
	ShadowSamples    int        // Secondary rays per light for soft shadows
	ShadowSoftness   float64    // Jitter falloff for soft shadow penumbra
	ShadowBias       float64    // Normal offset for shadow ray origins
	HardShadowFactor float64    // Diffuse attenuation in full shadow
	Texturing        bool       // Procedural texture sampling
	Fog              bool       // Distance fog
	FogColor         core.Vec3
	FogDensity       float64 // Exponential fog falloff rate
	BackgroundTop    core.Vec3
	BackgroundBottom core.Vec3
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Lighting:         true,
		Ambient:          core.NewVec3(0.08, 0.08, 0.1),
		Shadows:          ShadowsSoft,
		ShadowSamples:    8,
		ShadowSoftness:   0.05,
		ShadowBias:       2e-3,
		HardShadowFactor: 0.2,
		Texturing:        true,
		Fog:              true,
		FogColor:         core.NewVec3(0.65, 0.75, 0.9),
		FogDensity:       0.02,
		BackgroundTop:    core.NewVec3(0.5, 0.7, 1.0),
		BackgroundBottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Validate checks the shading configuration
func (c Config) Validate() error {
	if c.Shadows == ShadowsSoft && c.ShadowSamples <= 0 {
		return fmt.Errorf("soft shadows need a positive sample count, got %d", c.ShadowSamples)
	}
	if c.ShadowSoftness < 0 {
		return fmt.Errorf("shadow softness must be non-negative, got %f", c.ShadowSoftness)
	}
	if c.ShadowBias < 0 {
		return fmt.Errorf("shadow bias must be non-negative, got %f", c.ShadowBias)
	}
	if c.FogDensity < 0 {
		return fmt.Errorf("fog density must be non-negative, got %f", c.FogDensity)
	}
	if !c.Ambient.IsFinite() || !c.FogColor.IsFinite() ||
		!c.BackgroundTop.IsFinite() || !c.BackgroundBottom.IsFinite() {
		return fmt.Errorf("shading colors must be finite")
	}
	return nil
}

// Shader computes outgoing colors for surface hits and background misses
type Shader struct {
	field     sdf.Field
	materials []Material
	lights    []Light
	march     marcher.Config
	config    Config
}

// NewShader creates a shader over the given field, material palette and lights
func NewShader(field sdf.Field, materials []Material, lights []Light, march marcher.Config, config Config) *Shader {
	return &Shader{
		field:     field,
		materials: materials,
		lights:    lights,
		march:     march,
		config:    config,
	}
}

// Shade computes the outgoing color for a surface hit. The seed drives
// soft-shadow jitter: identical inputs produce bit-identical colors.
func (s *Shader) Shade(ray core.Ray, hit marcher.Hit, seed uint64) core.Vec3 {
	normal := sdf.Normal(s.field, hit.Point)
	base := s.surfaceColor(hit, normal)

	color := base
	if s.config.Lighting {
		irradiance := s.config.Ambient
		for i, light := range s.lights {
			nol := normal.Dot(light.Direction)
			if nol <= 0 {
				continue
			}
			visibility := 1.0
			if s.config.Shadows != ShadowsOff {
				visibility = s.shadowFactor(hit.Point, normal, light, seed, i)
			}
			irradiance = irradiance.Add(light.Color.Multiply(nol * visibility))
		}
		color = base.MultiplyVec(irradiance)
	}

	if s.config.Fog {
		fogAmount := 1.0 - math.Exp(-s.config.FogDensity*hit.T)
		color = color.Lerp(s.config.FogColor, fogAmount)
	}

	return color
}

// Background returns the sky color for a miss as a function of ray
// direction only
func (s *Shader) Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map the y-component from [-1,1] to [0,1] for a vertical gradient
	t := 0.5 * (unitDirection.Y + 1.0)

	return s.config.BackgroundBottom.Multiply(1.0 - t).Add(s.config.BackgroundTop.Multiply(t))
}

// surfaceColor resolves the base color for a hit: palette lookup, smooth
// union blending, and optional triplanar texturing
func (s *Shader) surfaceColor(hit marcher.Hit, normal core.Vec3) core.Vec3 {
	color := s.materialColor(hit.Sample.Material, hit.Point, normal)
	if hit.Sample.Blend > 0 {
		other := s.materialColor(hit.Sample.BlendMaterial, hit.Point, normal)
		color = color.Lerp(other, hit.Sample.Blend)
	}
	return color
}

// materialColor resolves a single material id at a surface point.
// Out-of-range ids clamp to the palette rather than failing mid-frame.
func (s *Shader) materialColor(id int, point, normal core.Vec3) core.Vec3 {
	if len(s.materials) == 0 {
		return core.NewVec3(0.8, 0.8, 0.8)
	}
	if id < 0 {
		id = 0
	}
	if id >= len(s.materials) {
		id = len(s.materials) - 1
	}

	mat := s.materials[id]
	if s.config.Texturing && mat.Texture != nil {
		return mat.Color.MultiplyVec(SampleTriplanar(mat.Texture, point, normal, mat.TextureScale))
	}
	return mat.Color
}

// shadowFactor returns the diffuse attenuation toward a light: 1 when
// fully lit, HardShadowFactor when fully shadowed
func (s *Shader) shadowFactor(point, normal core.Vec3, light Light, seed uint64, lightIndex int) float64 {
	// Bias along the normal to avoid immediate self-intersection
	origin := point.Add(normal.Multiply(s.config.ShadowBias))

	if s.config.Shadows == ShadowsHard || s.config.ShadowSamples <= 1 || s.config.ShadowSoftness <= 0 {
		ray := core.NewRay(origin, light.Direction)
		if marcher.Occluded(s.field, ray, s.march, math.Inf(1)) {
			return s.config.HardShadowFactor
		}
		return 1.0
	}

	// Soft shadows: jitter shadow rays inside a cone around the light
	// direction, seeded purely by the pixel seed and light index
	tangent, bitangent := orthonormalBasis(light.Direction)
	sampler := core.NewHashSampler(seed + uint64(lightIndex+1)*0x9e3779b97f4a7c15)

	occluded := 0
	for i := 0; i < s.config.ShadowSamples; i++ {
		jitter := sampler.Get2D()
		offset := tangent.Multiply((jitter.X - 0.5) * s.config.ShadowSoftness).
			Add(bitangent.Multiply((jitter.Y - 0.5) * s.config.ShadowSoftness))
		direction := light.Direction.Add(offset).Normalize()

		ray := core.NewRay(origin, direction)
		if marcher.Occluded(s.field, ray, s.march, math.Inf(1)) {
			occluded++
		}
	}

	shadow := float64(occluded) / float64(s.config.ShadowSamples)
	return 1.0 - shadow*(1.0-s.config.HardShadowFactor)
}

// orthonormalBasis builds two unit vectors perpendicular to w
func orthonormalBasis(w core.Vec3) (core.Vec3, core.Vec3) {
	// Find a vector not parallel to w
	var nt core.Vec3
	if math.Abs(w.X) > 0.1 {
		nt = core.NewVec3(0, 1, 0)
	} else {
		nt = core.NewVec3(1, 0, 0)
	}

	tangent := nt.Cross(w).Normalize()
	bitangent := w.Cross(tangent)
	return tangent, bitangent
}
