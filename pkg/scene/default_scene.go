package scene

import (
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
	"github.com/df07/go-sdf-raymarcher/pkg/marcher"
	"github.com/df07/go-sdf-raymarcher/pkg/renderer"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
	"github.com/df07/go-sdf-raymarcher/pkg/shading"
)

// NewDefaultScene creates the default scene: two blobs joined by a smooth
// union over a checkered ground, with a round box off to the side. The t
// parameter animates the left blob bobbing through the blend region.
func NewDefaultScene(t float64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center: core.NewVec3(0, 1.8, 4.5),
		LookAt: core.NewVec3(0, 0.8, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Blobs: the left one bobs with t so the blend bridge forms and breaks
	bobbing := 0.9 + 0.35*math.Sin(t)
	blobs := sdf.NewSmoothUnion(
		sdf.NewSphere(core.NewVec3(-0.7, bobbing, 0), 0.8, 0),
		sdf.NewSphere(core.NewVec3(0.75, 0.85, 0.2), 0.7, 2),
		0.6,
	)

	field := sdf.NewUnion(
		blobs,
		sdf.NewRoundBox(core.NewVec3(1.9, 0.35, -1.0), core.NewVec3(0.35, 0.35, 0.35), 0.08, 3),
		sdf.NewPlane(core.NewVec3(0, 1, 0), 0, 1),
	)

	checker := shading.NewCheckerTexture(1.0, core.NewVec3(1, 1, 1), core.NewVec3(0.45, 0.45, 0.45))
	materials := []shading.Material{
		shading.NewMaterial(core.NewVec3(0.85, 0.25, 0.2)), // left blob, warm red
		shading.NewTexturedMaterial(core.NewVec3(0.8, 0.8, 0.8), checker, 1.0), // ground
		shading.NewMaterial(core.NewVec3(0.2, 0.35, 0.8)),   // right blob, blue
		shading.NewMaterial(core.NewVec3(0.85, 0.65, 0.25)), // round box, gold
	}

	lights := []shading.Light{
		shading.NewDirectionalLight(core.NewVec3(0.6, 1, 0.4), core.NewVec3(1, 0.98, 0.92)),
		shading.NewDirectionalLight(core.NewVec3(-0.5, 0.8, -0.3), core.NewVec3(0.12, 0.14, 0.2)),
	}

	return &Scene{
		Field:          field,
		Materials:      materials,
		Lights:         lights,
		CameraConfig:   cameraConfig,
		SamplingConfig: renderer.DefaultSamplingConfig(),
		MarchConfig:    marcher.DefaultConfig(),
		ShadingConfig:  shading.DefaultConfig(),
		PostConfig:     renderer.DefaultPostConfig(),
	}
}
