package shading

import (
	"fmt"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// Light is a directional light. Direction points from the surface toward
// the light and is normalized on construction. Lights are per-frame
// constants and are never mutated during rendering.
type Light struct {
	Direction core.Vec3
	Color     core.Vec3
}

// NewDirectionalLight creates a directional light from an (unnormalized)
// direction toward the light and a radiant color
func NewDirectionalLight(direction, color core.Vec3) Light {
	return Light{Direction: direction.Normalize(), Color: color}
}

// Validate checks the light parameters
func (l Light) Validate() error {
	if l.Direction.LengthSquared() == 0 {
		return fmt.Errorf("light direction must be non-zero")
	}
	if !l.Direction.IsFinite() || !l.Color.IsFinite() {
		return fmt.Errorf("light parameters must be finite, got direction %v color %v", l.Direction, l.Color)
	}
	if l.Color.X < 0 || l.Color.Y < 0 || l.Color.Z < 0 {
		return fmt.Errorf("light color must be non-negative, got %v", l.Color)
	}
	return nil
}

// Material maps a field material id to surface appearance. When Texture
// is set, it is sampled triplanar at the hit position and modulates Color.
type Material struct {
	Color        core.Vec3
	Texture      Texture
	TextureScale float64
}

// NewMaterial creates a plain colored material
func NewMaterial(color core.Vec3) Material {
	return Material{Color: color}
}

// NewTexturedMaterial creates a material with a procedural texture applied
// by triplanar projection at the given world-space scale
func NewTexturedMaterial(color core.Vec3, texture Texture, scale float64) Material {
	return Material{Color: color, Texture: texture, TextureScale: scale}
}

// Validate checks the material parameters
func (m Material) Validate() error {
	if !m.Color.IsFinite() {
		return fmt.Errorf("material color must be finite, got %v", m.Color)
	}
	if m.Texture != nil && m.TextureScale <= 0 {
		return fmt.Errorf("textured material needs a positive texture scale, got %f", m.TextureScale)
	}
	return nil
}
