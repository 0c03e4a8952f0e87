package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// CameraConfig contains camera configuration
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // World up direction
	VFov   float64   // Vertical field of view in degrees
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 1.5, 4),
		LookAt: core.NewVec3(0, 0.5, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50.0,
	}
}

// MergeCameraConfig merges override values into a base config. Zero-value
// fields in the override leave the base value in place.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if override.Center != (core.Vec3{}) {
		merged.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		merged.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		merged.Up = override.Up
	}
	if override.VFov > 0 {
		merged.VFov = override.VFov
	}
	return merged
}

// Validate checks the camera configuration
func (c CameraConfig) Validate() error {
	if !c.Center.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("camera vectors must be finite")
	}
	if c.LookAt.Subtract(c.Center).LengthSquared() == 0 {
		return fmt.Errorf("camera look-at must differ from its position")
	}
	if c.Up.LengthSquared() == 0 {
		return fmt.Errorf("camera up vector must be non-zero")
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("camera vertical fov must be in (0, 180) degrees, got %f", c.VFov)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	center           core.Vec3
	forward          core.Vec3
	right            core.Vec3
	up               core.Vec3
	perspectiveScale float64
	width, height    int
	aspectRatio      float64
}

// NewCamera creates a camera with an orthonormal basis built from the
// config. A forward direction parallel to the up vector falls back to an
// alternate up axis instead of normalizing a zero cross product.
func NewCamera(config CameraConfig, width, height int) *Camera {
	forward := config.LookAt.Subtract(config.Center).Normalize()

	worldUp := config.Up
	if worldUp == (core.Vec3{}) {
		worldUp = core.NewVec3(0, 1, 0)
	}

	right := worldUp.Cross(forward)
	if right.LengthSquared() < 1e-12 {
		// The configured up is parallel to the view direction; fall back
		// to whichever world axis forward is least aligned with
		worldUp = core.NewVec3(0, 0, 1)
		if math.Abs(forward.Z) > math.Abs(forward.Y) {
			worldUp = core.NewVec3(0, 1, 0)
		}
		right = worldUp.Cross(forward)
	}
	right = right.Normalize()
	up := forward.Cross(right).Normalize()

	// Larger scale narrows the field of view
	perspectiveScale := 1.0 / math.Tan(config.VFov*math.Pi/180.0/2.0)

	return &Camera{
		center:           config.Center,
		forward:          forward,
		right:            right,
		up:               up,
		perspectiveScale: perspectiveScale,
		width:            width,
		height:           height,
		aspectRatio:      float64(width) / float64(height),
	}
}

// GetRay generates a ray through pixel (i, j) offset by a sub-pixel
// jitter in [0,1)². The returned direction is unit length.
func (c *Camera) GetRay(i, j int, jitter core.Vec2) core.Ray {
	ndc := c.NDC(float64(i)+jitter.X, float64(j)+jitter.Y)

	direction := c.right.Multiply(ndc.X).
		Add(c.up.Multiply(ndc.Y)).
		Add(c.forward.Multiply(c.perspectiveScale)).
		Normalize()

	return core.NewRay(c.center, direction)
}

// NDC maps pixel coordinates to aspect-corrected normalized device
// coordinates with y up
func (c *Camera) NDC(x, y float64) core.Vec2 {
	u := (x/float64(c.width))*2 - 1
	v := (1-y/float64(c.height))*2 - 1
	return core.NewVec2(u*c.aspectRatio, v)
}

// GetCameraForward returns the camera's forward direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}
