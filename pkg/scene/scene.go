package scene

import (
	"fmt"

	"github.com/df07/go-sdf-raymarcher/pkg/marcher"
	"github.com/df07/go-sdf-raymarcher/pkg/renderer"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
	"github.com/df07/go-sdf-raymarcher/pkg/shading"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Field          sdf.Field          // Scene geometry as one composed distance field
	Materials      []shading.Material // Palette indexed by field material ids
	Lights         []shading.Light    // Directional lights
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	MarchConfig    marcher.Config
	ShadingConfig  shading.Config
	PostConfig     renderer.PostConfig
}

// GetField returns the scene's distance field
func (s *Scene) GetField() sdf.Field { return s.Field }

// GetMaterials returns the material palette
func (s *Scene) GetMaterials() []shading.Material { return s.Materials }

// GetLights returns the scene lights
func (s *Scene) GetLights() []shading.Light { return s.Lights }

// GetCameraConfig returns the camera configuration
func (s *Scene) GetCameraConfig() renderer.CameraConfig { return s.CameraConfig }

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig { return s.SamplingConfig }

// GetMarchConfig returns the ray marching configuration
func (s *Scene) GetMarchConfig() marcher.Config { return s.MarchConfig }

// GetShadingConfig returns the shading configuration
func (s *Scene) GetShadingConfig() shading.Config { return s.ShadingConfig }

// GetPostConfig returns the post-processing configuration
func (s *Scene) GetPostConfig() renderer.PostConfig { return s.PostConfig }

// Validate checks the complete scene before rendering starts, so bad
// parameters fail up front instead of mid-frame
func (s *Scene) Validate() error {
	if s.Field == nil {
		return fmt.Errorf("scene has no distance field")
	}
	if v, ok := s.Field.(sdf.Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid field: %w", err)
		}
	}

	if len(s.Materials) == 0 {
		return fmt.Errorf("scene needs at least one material")
	}
	for i, mat := range s.Materials {
		if err := mat.Validate(); err != nil {
			return fmt.Errorf("invalid material %d: %w", i, err)
		}
	}

	if s.ShadingConfig.Lighting && len(s.Lights) == 0 {
		return fmt.Errorf("lighting is enabled but the scene has no lights")
	}
	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("invalid light %d: %w", i, err)
		}
	}

	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("invalid camera config: %w", err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid sampling config: %w", err)
	}
	if err := s.MarchConfig.Validate(); err != nil {
		return fmt.Errorf("invalid march config: %w", err)
	}
	if err := s.ShadingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid shading config: %w", err)
	}
	if err := s.PostConfig.Validate(); err != nil {
		return fmt.Errorf("invalid post config: %w", err)
	}

	return nil
}
