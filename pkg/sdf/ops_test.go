package sdf

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// gridPoints returns a coarse sampling grid for property tests
func gridPoints() []core.Vec3 {
	var points []core.Vec3
	for x := -4.0; x <= 4.0; x += 1.0 {
		for y := -4.0; y <= 4.0; y += 1.0 {
			for z := -4.0; z <= 4.0; z += 1.0 {
				points = append(points, core.NewVec3(x, y, z))
			}
		}
	}
	return points
}

func TestUnionIsMinOfOperands(t *testing.T) {
	a := NewSphere(core.NewVec3(-1, 0, 0), 1, 1)
	b := NewBox(core.NewVec3(2, 0, 0), core.NewVec3(1, 1, 1), 2)
	union := &Union{A: a, B: b}

	for _, p := range gridPoints() {
		want := math.Min(a.Evaluate(p).Distance, b.Evaluate(p).Distance)
		if got := union.Evaluate(p).Distance; got != want {
			t.Fatalf("Union at %v: expected %g, got %g", p, want, got)
		}
	}
}

func TestUnionMaterialFromNearerOperand(t *testing.T) {
	a := NewSphere(core.NewVec3(-2, 0, 0), 1, 1)
	b := NewSphere(core.NewVec3(2, 0, 0), 1, 2)
	union := &Union{A: a, B: b}

	if m := union.Evaluate(core.NewVec3(-2, 0, 0)).Material; m != 1 {
		t.Errorf("Point near A should take A's material, got %d", m)
	}
	if m := union.Evaluate(core.NewVec3(2, 0, 0)).Material; m != 2 {
		t.Errorf("Point near B should take B's material, got %d", m)
	}

	// Equidistant points break ties toward the first operand
	if m := union.Evaluate(core.NewVec3(0, 0, 0)).Material; m != 1 {
		t.Errorf("Tie should prefer first operand, got material %d", m)
	}
}

func TestNewUnionFoldsVariadic(t *testing.T) {
	spheres := []Field{
		NewSphere(core.NewVec3(-2, 0, 0), 1, 0),
		NewSphere(core.NewVec3(0, 0, 0), 1, 1),
		NewSphere(core.NewVec3(2, 0, 0), 1, 2),
	}
	union := NewUnion(spheres...)

	for _, p := range gridPoints() {
		want := math.Inf(1)
		for _, s := range spheres {
			want = math.Min(want, s.Evaluate(p).Distance)
		}
		if got := union.Evaluate(p).Distance; got != want {
			t.Fatalf("Folded union at %v: expected %g, got %g", p, want, got)
		}
	}
}

func TestSmoothUnionZeroKDegeneratesToUnion(t *testing.T) {
	a := NewSphere(core.NewVec3(-1, 0, 0), 1, 1)
	b := NewSphere(core.NewVec3(1, 0, 0), 1, 2)
	smooth := NewSmoothUnion(a, b, 0)
	hard := &Union{A: a, B: b}

	for _, p := range gridPoints() {
		if smooth.Evaluate(p) != hard.Evaluate(p) {
			t.Fatalf("k=0 smooth union differs from hard union at %v", p)
		}
	}
}

func TestSmoothUnionBounds(t *testing.T) {
	a := NewSphere(core.NewVec3(-1, 0, 0), 1, 1)
	b := NewSphere(core.NewVec3(1, 0, 0), 1, 2)
	k := 0.5
	smooth := NewSmoothUnion(a, b, k)

	// The blend never exceeds the hard minimum and never undershoots it
	// by more than the accepted k-dependent slack
	slack := k / 6.0
	for _, p := range gridPoints() {
		hardMin := math.Min(a.Evaluate(p).Distance, b.Evaluate(p).Distance)
		d := smooth.Evaluate(p).Distance
		if d > hardMin+tolerance {
			t.Fatalf("Smooth union overestimates at %v: %g > %g", p, d, hardMin)
		}
		if d < hardMin-slack-tolerance {
			t.Fatalf("Smooth union undershoots beyond blend slack at %v: %g < %g", p, d, hardMin-slack)
		}
	}
}

func TestSmoothUnionMaterialBlend(t *testing.T) {
	a := NewSphere(core.NewVec3(-1, 0, 0), 1, 1)
	b := NewSphere(core.NewVec3(1, 0, 0), 1, 2)
	smooth := NewSmoothUnion(a, b, 0.5)

	// Far from the seam the blend weight vanishes
	nearA := smooth.Evaluate(core.NewVec3(-1.5, 0, 0))
	if nearA.Material != 1 || nearA.Blend > tolerance {
		t.Errorf("Expected pure material 1 near A, got material %d blend %g", nearA.Material, nearA.Blend)
	}

	// On the seam the two materials mix evenly
	seam := smooth.Evaluate(core.NewVec3(0, 0, 0))
	if math.Abs(seam.Blend-0.5) > tolerance {
		t.Errorf("Expected blend 0.5 on the seam, got %g", seam.Blend)
	}
	if seam.Material == seam.BlendMaterial {
		t.Errorf("Seam should blend two distinct materials, got %d and %d", seam.Material, seam.BlendMaterial)
	}
}

func TestSubtractionDistance(t *testing.T) {
	a := NewSphere(core.NewVec3(0, 0, 0), 2, 1)
	b := NewSphere(core.NewVec3(0, 0, 0), 1, 2)
	carved := NewSubtraction(a, b)

	for _, p := range gridPoints() {
		want := math.Max(a.Evaluate(p).Distance, -b.Evaluate(p).Distance)
		got := carved.Evaluate(p)
		if got.Distance != want {
			t.Fatalf("Subtraction at %v: expected %g, got %g", p, want, got.Distance)
		}
		if got.Material != 1 {
			t.Fatalf("Subtraction should keep A's material, got %d", got.Material)
		}
	}

	// The carved-out center is now outside the shell
	if d := carved.Evaluate(core.NewVec3(0, 0, 0)).Distance; d <= 0 {
		t.Errorf("Hollowed center should be outside, got %g", d)
	}
}

func TestIntersectionDistance(t *testing.T) {
	a := NewSphere(core.NewVec3(-0.5, 0, 0), 1, 1)
	b := NewSphere(core.NewVec3(0.5, 0, 0), 1, 2)
	lens := NewIntersection(a, b)

	for _, p := range gridPoints() {
		want := math.Max(a.Evaluate(p).Distance, b.Evaluate(p).Distance)
		if got := lens.Evaluate(p).Distance; got != want {
			t.Fatalf("Intersection at %v: expected %g, got %g", p, want, got)
		}
	}

	// The lens interior is inside both spheres
	if d := lens.Evaluate(core.NewVec3(0, 0, 0)).Distance; d >= 0 {
		t.Errorf("Lens center should be inside, got %g", d)
	}
}

func TestOperatorValidationRecurses(t *testing.T) {
	bad := NewUnion(
		NewSphere(core.NewVec3(0, 0, 0), 1, 0),
		NewSphere(core.NewVec3(3, 0, 0), -1, 0),
	)
	if v, ok := bad.(Validator); !ok {
		t.Fatal("Union should implement Validator")
	} else if err := v.Validate(); err == nil {
		t.Error("Expected nested validation error for negative radius")
	}

	badBlend := NewSmoothUnion(
		NewSphere(core.NewVec3(0, 0, 0), 1, 0),
		NewSphere(core.NewVec3(3, 0, 0), 1, 0),
		-0.5,
	)
	if err := badBlend.Validate(); err == nil {
		t.Error("Expected validation error for negative blend radius")
	}
}
