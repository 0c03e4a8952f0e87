package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

func TestCameraCenterRayMatchesForward(t *testing.T) {
	config := CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, 5),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}
	camera := NewCamera(config, 100, 50)

	// The ray through the screen center points along the view direction
	ray := camera.GetRay(50, 25, core.NewVec2(0, 0))
	forward := camera.GetCameraForward()

	if ray.Direction.Subtract(forward).Length() > 1e-9 {
		t.Errorf("Center ray %v should equal forward %v", ray.Direction, forward)
	}
	if math.Abs(ray.Direction.Length()-1.0) > 1e-9 {
		t.Errorf("Ray direction should be unit length, got %f", ray.Direction.Length())
	}
}

func TestCameraBasisIsOrthonormal(t *testing.T) {
	config := DefaultCameraConfig()
	camera := NewCamera(config, 200, 100)

	if math.Abs(camera.forward.Dot(camera.right)) > 1e-9 ||
		math.Abs(camera.forward.Dot(camera.up)) > 1e-9 ||
		math.Abs(camera.right.Dot(camera.up)) > 1e-9 {
		t.Error("Camera basis vectors should be mutually perpendicular")
	}
	for _, v := range []core.Vec3{camera.forward, camera.right, camera.up} {
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Errorf("Basis vector %v should be unit length", v)
		}
	}
}

func TestCameraDegenerateUpFallback(t *testing.T) {
	// Looking straight down with an up vector parallel to the view
	// direction must not produce NaN basis vectors
	config := CameraConfig{
		Center: core.NewVec3(0, 10, 0),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	}
	camera := NewCamera(config, 64, 64)

	if !camera.forward.IsFinite() || !camera.right.IsFinite() || !camera.up.IsFinite() {
		t.Fatalf("Degenerate up vector produced non-finite basis: f=%v r=%v u=%v",
			camera.forward, camera.right, camera.up)
	}
	ray := camera.GetRay(10, 50, core.NewVec2(0.5, 0.5))
	if !ray.Direction.IsFinite() {
		t.Errorf("Ray direction should be finite, got %v", ray.Direction)
	}
}

func TestCameraFallbackUpParallelToView(t *testing.T) {
	// An up vector parallel to the view direction on an axis other than Y
	// must not collapse the basis to zero vectors
	config := CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, 5),
		Up:     core.NewVec3(0, 0, 1),
		VFov:   60,
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("Config should pass validation, got %v", err)
	}
	camera := NewCamera(config, 64, 64)

	for _, v := range []core.Vec3{camera.right, camera.up} {
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Basis vector %v should be unit length", v)
		}
	}

	// Different pixels must get different rays
	a := camera.GetRay(0, 0, core.NewVec2(0.5, 0.5))
	b := camera.GetRay(63, 63, core.NewVec2(0.5, 0.5))
	if a.Direction == b.Direction {
		t.Error("Distinct pixels should produce distinct ray directions")
	}

	// The same fallback holds when looking along negative Z
	back := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -5),
		Up:     core.NewVec3(0, 0, -1),
		VFov:   60,
	}, 64, 64)
	if math.Abs(back.right.Length()-1.0) > 1e-9 || math.Abs(back.up.Length()-1.0) > 1e-9 {
		t.Errorf("Negative-Z view should keep a unit basis, got r=%v u=%v", back.right, back.up)
	}
}

func TestCameraFovControlsSpread(t *testing.T) {
	narrow := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, 1),
		Up: core.NewVec3(0, 1, 0), VFov: 20,
	}, 100, 100)
	wide := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, 1),
		Up: core.NewVec3(0, 1, 0), VFov: 90,
	}, 100, 100)

	// A corner ray diverges farther from forward with a wider fov
	narrowRay := narrow.GetRay(0, 0, core.NewVec2(0, 0))
	wideRay := wide.GetRay(0, 0, core.NewVec2(0, 0))

	narrowCos := narrowRay.Direction.Dot(narrow.GetCameraForward())
	wideCos := wideRay.Direction.Dot(wide.GetCameraForward())
	if wideCos >= narrowCos {
		t.Errorf("Wide fov corner ray should diverge more: narrow cos %f, wide cos %f", narrowCos, wideCos)
	}
}

func TestNDCMapping(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig(), 200, 100)

	center := camera.NDC(100, 50)
	if math.Abs(center.X) > 1e-12 || math.Abs(center.Y) > 1e-12 {
		t.Errorf("Image center should map to (0,0), got %v", center)
	}

	// Top-left corner: x = -aspect, y = +1
	corner := camera.NDC(0, 0)
	if math.Abs(corner.X+2.0) > 1e-12 || math.Abs(corner.Y-1.0) > 1e-12 {
		t.Errorf("Top-left corner should map to (-2, 1) at 2:1 aspect, got %v", corner)
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()

	merged := MergeCameraConfig(base, CameraConfig{VFov: 90})
	if merged.VFov != 90 {
		t.Errorf("Override VFov should win, got %f", merged.VFov)
	}
	if merged.Center != base.Center || merged.LookAt != base.LookAt {
		t.Error("Unset override fields should keep base values")
	}

	moved := MergeCameraConfig(base, CameraConfig{Center: core.NewVec3(5, 5, 5)})
	if moved.Center != core.NewVec3(5, 5, 5) {
		t.Errorf("Override center should win, got %v", moved.Center)
	}
	if moved.VFov != base.VFov {
		t.Error("Zero VFov override should keep base value")
	}
}

func TestCameraConfigValidate(t *testing.T) {
	if err := DefaultCameraConfig().Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}

	samePoint := DefaultCameraConfig()
	samePoint.LookAt = samePoint.Center
	if err := samePoint.Validate(); err == nil {
		t.Error("Look-at equal to center should fail validation")
	}

	badFov := DefaultCameraConfig()
	badFov.VFov = 200
	if err := badFov.Validate(); err == nil {
		t.Error("Fov of 200 degrees should fail validation")
	}
}
