package sdf

import (
	"fmt"
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// Translate shifts a field by Offset
type Translate struct {
	Offset core.Vec3
	Field  Field
}

// NewTranslate creates a translated view of a field
func NewTranslate(offset core.Vec3, field Field) *Translate {
	return &Translate{Offset: offset, Field: field}
}

// Evaluate samples the wrapped field in its local frame
func (t *Translate) Evaluate(p core.Vec3) Sample {
	return t.Field.Evaluate(p.Subtract(t.Offset))
}

// Validate checks the offset and the wrapped field
func (t *Translate) Validate() error {
	if !t.Offset.IsFinite() {
		return fmt.Errorf("translate offset must be finite, got %v", t.Offset)
	}
	return validateOperands(t.Field)
}

// Repeat tiles a field infinitely along each axis with a non-zero period.
// Axes with period 0 are left untiled. The wrapped content must fit
// inside its cell or neighboring copies will be skipped over.
type Repeat struct {
	Period core.Vec3
	Field  Field
}

// NewRepeat creates an infinitely repeated view of a field
func NewRepeat(period core.Vec3, field Field) *Repeat {
	return &Repeat{Period: period, Field: field}
}

// Evaluate folds the point into the central cell and samples the wrapped field
func (r *Repeat) Evaluate(p core.Vec3) Sample {
	q := core.NewVec3(
		foldAxis(p.X, r.Period.X),
		foldAxis(p.Y, r.Period.Y),
		foldAxis(p.Z, r.Period.Z),
	)
	return r.Field.Evaluate(q)
}

// foldAxis maps x into [-period/2, period/2); period 0 disables folding
func foldAxis(x, period float64) float64 {
	if period == 0 {
		return x
	}
	return x - period*math.Round(x/period)
}

// Validate checks the period and the wrapped field
func (r *Repeat) Validate() error {
	if r.Period.X < 0 || r.Period.Y < 0 || r.Period.Z < 0 {
		return fmt.Errorf("repeat period must be non-negative, got %v", r.Period)
	}
	return validateOperands(r.Field)
}

// Displace perturbs a field's surface with fractal value noise. The
// displaced distance is no longer a strict lower bound, so scenes using
// it should march with a step scale below 1.
type Displace struct {
	Field     Field
	Amplitude float64
	Frequency float64
}

// NewDisplace creates a noise-displaced view of a field
func NewDisplace(field Field, amplitude, frequency float64) *Displace {
	return &Displace{Field: field, Amplitude: amplitude, Frequency: frequency}
}

// Evaluate subtracts a noise displacement from the wrapped distance
func (d *Displace) Evaluate(p core.Vec3) Sample {
	sample := d.Field.Evaluate(p)
	sample.Distance -= FBM(p.Multiply(d.Frequency)) * d.Amplitude
	return sample
}

// Validate checks the displacement parameters and the wrapped field
func (d *Displace) Validate() error {
	if d.Amplitude < 0 {
		return fmt.Errorf("displacement amplitude must be non-negative, got %f", d.Amplitude)
	}
	if d.Frequency <= 0 {
		return fmt.Errorf("displacement frequency must be positive, got %f", d.Frequency)
	}
	return validateOperands(d.Field)
}
