package scene

import (
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
	"github.com/df07/go-sdf-raymarcher/pkg/marcher"
	"github.com/df07/go-sdf-raymarcher/pkg/renderer"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
	"github.com/df07/go-sdf-raymarcher/pkg/shading"
)

// NewKaboomScene creates a fireball: a sphere displaced by fractal noise.
// Displacement breaks the distance lower bound, so the march config damps
// steps with StepScale below 1.
func NewKaboomScene(t float64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center: core.NewVec3(0, 1.6, 5.5),
		LookAt: core.NewVec3(0, 1.4, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Amplitude pulses with t to make the fireball churn
	amplitude := 0.45 + 0.1*math.Sin(t*1.7)
	fireball := sdf.NewDisplace(
		sdf.NewSphere(core.NewVec3(0, 1.4, 0), 1.4, 0),
		amplitude,
		3.4,
	)

	field := sdf.NewUnion(
		fireball,
		sdf.NewPlane(core.NewVec3(0, 1, 0), 0, 1),
	)

	materials := []shading.Material{
		shading.NewMaterial(core.NewVec3(0.95, 0.45, 0.12)), // fireball
		shading.NewMaterial(core.NewVec3(0.25, 0.25, 0.28)), // scorched ground
	}

	lights := []shading.Light{
		shading.NewDirectionalLight(core.NewVec3(0.4, 1, 0.6), core.NewVec3(1, 0.9, 0.8)),
	}

	// Displaced fields need damped steps and more of them
	marchConfig := marcher.DefaultConfig()
	marchConfig.StepScale = 0.7
	marchConfig.MaxSteps = 256

	shadingConfig := shading.DefaultConfig()
	shadingConfig.BackgroundTop = core.NewVec3(0.25, 0.2, 0.3)
	shadingConfig.BackgroundBottom = core.NewVec3(0.55, 0.4, 0.35)
	shadingConfig.FogColor = core.NewVec3(0.5, 0.4, 0.38)

	return &Scene{
		Field:          field,
		Materials:      materials,
		Lights:         lights,
		CameraConfig:   cameraConfig,
		SamplingConfig: renderer.DefaultSamplingConfig(),
		MarchConfig:    marchConfig,
		ShadingConfig:  shadingConfig,
		PostConfig:     renderer.DefaultPostConfig(),
	}
}
