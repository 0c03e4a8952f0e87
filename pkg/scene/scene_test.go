package scene

import (
	"testing"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
	"github.com/df07/go-sdf-raymarcher/pkg/renderer"
	"github.com/df07/go-sdf-raymarcher/pkg/sdf"
	"github.com/df07/go-sdf-raymarcher/pkg/shading"
)

func TestRegisteredScenesValidate(t *testing.T) {
	for _, id := range SceneIDs() {
		s, err := NewSceneByID(id, 0.5)
		if err != nil {
			t.Fatalf("Scene %q failed to build: %v", id, err)
		}
		if err := s.Validate(); err != nil {
			t.Errorf("Scene %q should validate, got %v", id, err)
		}
	}
}

func TestNewSceneByIDUnknown(t *testing.T) {
	if _, err := NewSceneByID("no-such-scene", 0); err == nil {
		t.Error("Unknown scene id should return an error")
	}
}

func TestSceneConstructorsDeterministic(t *testing.T) {
	a := NewDefaultScene(1.25)
	b := NewDefaultScene(1.25)

	// Same t yields the same field everywhere
	p := core.NewVec3(0.3, 1.1, -0.2)
	if sdf.Distance(a.Field, p) != sdf.Distance(b.Field, p) {
		t.Error("Identical construction times should produce identical fields")
	}
}

func TestSceneAnimatesWithTime(t *testing.T) {
	early := NewDefaultScene(0)
	late := NewDefaultScene(1.5)

	// The bobbing blob moves, so the field changes near it
	p := core.NewVec3(-0.7, 1.6, 0)
	if sdf.Distance(early.Field, p) == sdf.Distance(late.Field, p) {
		t.Error("Different construction times should move the animated blob")
	}
}

func TestCameraOverridesApply(t *testing.T) {
	override := renderer.CameraConfig{VFov: 90}
	s := NewDefaultScene(0, override)

	if s.CameraConfig.VFov != 90 {
		t.Errorf("Camera override should apply, got fov %f", s.CameraConfig.VFov)
	}
	if s.CameraConfig.Center == (core.Vec3{}) {
		t.Error("Unset override fields should keep scene defaults")
	}
}

func TestSceneValidateCatchesBadScenes(t *testing.T) {
	base := func() *Scene { return NewDefaultScene(0) }

	noField := base()
	noField.Field = nil
	if err := noField.Validate(); err == nil {
		t.Error("Scene without a field should fail validation")
	}

	noMaterials := base()
	noMaterials.Materials = nil
	if err := noMaterials.Validate(); err == nil {
		t.Error("Scene without materials should fail validation")
	}

	litWithoutLights := base()
	litWithoutLights.Lights = nil
	if err := litWithoutLights.Validate(); err == nil {
		t.Error("Lighting enabled with no lights should fail validation")
	}

	unlitWithoutLights := base()
	unlitWithoutLights.Lights = nil
	unlitWithoutLights.ShadingConfig.Lighting = false
	unlitWithoutLights.ShadingConfig.Shadows = shading.ShadowsOff
	if err := unlitWithoutLights.Validate(); err != nil {
		t.Errorf("Unlit scene without lights should validate, got %v", err)
	}

	badSphere := base()
	badSphere.Field = sdf.NewSphere(core.NewVec3(0, 0, 0), -1, 0)
	if err := badSphere.Validate(); err == nil {
		t.Error("Negative sphere radius should fail validation")
	}

	badCamera := base()
	badCamera.CameraConfig.VFov = -10
	if err := badCamera.Validate(); err == nil {
		t.Error("Invalid camera should fail validation")
	}

	badSampling := base()
	badSampling.SamplingConfig.SamplesPerPixel = 0
	if err := badSampling.Validate(); err == nil {
		t.Error("Zero samples per pixel should fail validation")
	}
}

func TestListAllScenesGrouping(t *testing.T) {
	response := ListAllScenes()

	if len(response.Groups) == 0 {
		t.Fatal("Expected at least one scene group")
	}
	if response.Groups[0].Name != "Built-in Scenes" {
		t.Errorf("Built-in scenes should come first, got %q", response.Groups[0].Name)
	}

	total := 0
	for _, group := range response.Groups {
		total += len(group.Scenes)
	}
	if total != len(SceneIDs()) {
		t.Errorf("Expected %d scenes across groups, got %d", len(SceneIDs()), total)
	}
}
