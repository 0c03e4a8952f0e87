package scene

import (
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
	"github.com/df07/go-sdf-raymarcher/pkg/marcher"
	"github.com/df07/go-sdf-raymarcher/pkg/renderer"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
	"github.com/df07/go-sdf-raymarcher/pkg/shading"
)

// NewColumnsScene creates an infinite avenue of carved columns using
// domain repetition. Each column is a capsule with a sphere scooped out
// of its midsection and a flat cap on top.
func NewColumnsScene(t float64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center: core.NewVec3(1.2, 1.6, 6),
		LookAt: core.NewVec3(0, 1.2, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   55.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	shaft := sdf.NewCapsule(core.NewVec3(0, 0, 0), core.NewVec3(0, 2.0, 0), 0.35, 0)
	carved := sdf.NewSubtraction(
		shaft,
		sdf.NewSphere(core.NewVec3(0.3, 1.0, 0), 0.3, 0),
	)
	column := sdf.NewUnion(
		carved,
		sdf.NewBox(core.NewVec3(0, 2.15, 0), core.NewVec3(0.5, 0.08, 0.5), 2),
	)

	// Repeat on x and z only; zero period keeps the columns unique in y
	columns := sdf.NewRepeat(core.NewVec3(3.0, 0, 3.0), column)

	field := sdf.NewUnion(
		columns,
		sdf.NewPlane(core.NewVec3(0, 1, 0), 0, 1),
	)

	stripes := shading.NewStripeTexture(0.5, core.NewVec3(1, 1, 1), core.NewVec3(0.7, 0.7, 0.75))
	materials := []shading.Material{
		shading.NewTexturedMaterial(core.NewVec3(0.85, 0.8, 0.7), stripes, 1.0), // column marble
		shading.NewMaterial(core.NewVec3(0.4, 0.42, 0.45)), // ground
		shading.NewMaterial(core.NewVec3(0.7, 0.65, 0.55)), // caps
	}

	// The sun swings with t for long moving shadows
	sunDir := core.NewVec3(math.Cos(t*0.2), 0.8, math.Sin(t*0.2)+0.4)
	lights := []shading.Light{
		shading.NewDirectionalLight(sunDir, core.NewVec3(1, 0.95, 0.85)),
	}

	shadingConfig := shading.DefaultConfig()
	shadingConfig.FogDensity = 0.04 // fade the far columns out

	return &Scene{
		Field:          field,
		Materials:      materials,
		Lights:         lights,
		CameraConfig:   cameraConfig,
		SamplingConfig: renderer.DefaultSamplingConfig(),
		MarchConfig:    marcher.DefaultConfig(),
		ShadingConfig:  shadingConfig,
		PostConfig:     renderer.DefaultPostConfig(),
	}
}
