// Package marcher advances rays through signed distance fields by sphere
// tracing: each step moves exactly the sampled distance, which is safe
// because field distances never overestimate.
package marcher

import (
	"fmt"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
)

// Config contains marching configuration
type Config struct {
	MaxSteps        int     // Step budget per ray
	HitEpsilonScale float64 // Hit when distance <= scale * traveled distance
	MaxDistance     float64 // Rays past this distance count as misses
	StepScale       float64 // Step damping, 1.0 = full steps; lower for aggressive blends
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxSteps:        128,
		HitEpsilonScale: 1e-3,
		MaxDistance:     100.0,
		StepScale:       1.0,
	}
}

// Validate checks the marching configuration
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("march step budget must be positive, got %d", c.MaxSteps)
	}
	if c.HitEpsilonScale <= 0 {
		return fmt.Errorf("hit epsilon scale must be positive, got %f", c.HitEpsilonScale)
	}
	if c.MaxDistance <= 0 {
		return fmt.Errorf("max march distance must be positive, got %f", c.MaxDistance)
	}
	if c.StepScale <= 0 || c.StepScale > 1 {
		return fmt.Errorf("step scale must be in (0, 1], got %f", c.StepScale)
	}
	return nil
}

// Hit contains information about a ray-surface intersection
type Hit struct {
	T      float64    // Distance traveled along the ray
	Point  core.Vec3  // Intersection point
	Sample sdf.Sample // Field sample at the intersection
	Steps  int        // Steps taken to converge
}

// March traces a ray through the field. It returns the hit and true on
// intersection, or a zero hit and false on a miss.
//
// The hit epsilon is proportional to the traveled distance, keeping
// relative precision constant regardless of distance from the camera.
// Rays that leave MaxDistance terminate early without spending the full
// step budget. A ray starting inside geometry (negative distance at t=0)
// is not special-cased and reports a hit at the origin.
func March(field sdf.Field, ray core.Ray, cfg Config) (Hit, bool) {
	t := 0.0
	for step := 0; step < cfg.MaxSteps; step++ {
		point := ray.At(t)
		sample := field.Evaluate(point)

		if sample.Distance <= cfg.HitEpsilonScale*t {
			return Hit{T: t, Point: point, Sample: sample, Steps: step}, true
		}

		t += sample.Distance * cfg.StepScale
		if t > cfg.MaxDistance {
			return Hit{}, false
		}
	}
	return Hit{}, false
}

// Occluded reports whether anything blocks the ray before maxT. Used for
// shadow queries; maxT lets point-light style queries stop at the light.
func Occluded(field sdf.Field, ray core.Ray, cfg Config, maxT float64) bool {
	if maxT < cfg.MaxDistance {
		cfg.MaxDistance = maxT
	}
	hit, ok := March(field, ray, cfg)
	return ok && hit.T <= maxT
}
