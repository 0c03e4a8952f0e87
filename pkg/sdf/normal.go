package sdf

import (
	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// NormalEpsilon is the step used for finite-difference gradients. The
// estimate is only meaningful close to a surface.
const NormalEpsilon = 1e-3

// Normal estimates the surface normal at p via central differences of the
// scalar distance field. Falls back to +Y if the gradient vanishes.
func Normal(f Field, p core.Vec3) core.Vec3 {
	dx := Distance(f, core.NewVec3(p.X+NormalEpsilon, p.Y, p.Z)) -
		Distance(f, core.NewVec3(p.X-NormalEpsilon, p.Y, p.Z))
	dy := Distance(f, core.NewVec3(p.X, p.Y+NormalEpsilon, p.Z)) -
		Distance(f, core.NewVec3(p.X, p.Y-NormalEpsilon, p.Z))
	dz := Distance(f, core.NewVec3(p.X, p.Y, p.Z+NormalEpsilon)) -
		Distance(f, core.NewVec3(p.X, p.Y, p.Z-NormalEpsilon))

	gradient := core.NewVec3(dx, dy, dz)
	if gradient.LengthSquared() == 0 {
		return core.NewVec3(0, 1, 0)
	}
	return gradient.Normalize()
}
