package vascular

// Physics carries the physical constants consumed by simulation preparation
// and the metric functions. It is passed explicitly wherever needed; nothing
// in this package reads ambient globals.
type Physics struct {
	// Viscosity is the blood dynamic viscosity in Pa·s.
	Viscosity float64

	// PressureDrop is the aggregate source-to-sink pressure drop in
	// cgs-consistent units (mmHg × 133.322387415).
	PressureDrop float64

	// TracerCoefficient scales per-edge tracer mass in the W(t) curve.
	TracerCoefficient float64
}

// DefaultPhysics returns the constants of the reference network:
// 3.5 mPa·s viscosity, a 25 mmHg pressure drop, and a tracer coefficient
// of 65.
func DefaultPhysics() Physics {
	return Physics{
		Viscosity:         3.5e-3,
		PressureDrop:      25 * 133.322387415,
		TracerCoefficient: 65,
	}
}
