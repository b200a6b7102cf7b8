package hydraulics

import (
	"fmt"
	"math"
)

// Practical deployment bounds. The engine itself never enforces these; the
// HTTP layer rejects out-of-range requests before Calculate runs.
const (
	MaxSegments = 20

	maxFlowRateM3Day = 10000.0
	minWellDepthM    = 1.0
	maxWellDepthM    = 10000.0
	maxPressureKPa   = 100000.0
	minDiameterMM    = 10.0
	maxDiameterMM    = 500.0
	minLengthM       = 0.1
	maxLengthM       = 5000.0
	maxRoughnessMM   = 10.0
	minDensityKgM3   = 700.0
	maxDensityKgM3   = 1500.0
	minViscosityPaS  = 0.0001
	maxViscosityPaS  = 1.0
)

// Velocity classification thresholds for the advisory layer, m/s.
const (
	ErosionVelocityMS  = 20.0
	CriticalVelocityMS = 25.0
)

// Validate checks an input against the practical deployment bounds. It is a
// front-door collaborator of the engine, not part of it: Calculate never
// calls Validate.
func Validate(in Input) error {
	if len(in.Segments) == 0 {
		return fmt.Errorf("at least one segment required")
	}
	if len(in.Segments) > MaxSegments {
		return fmt.Errorf("too many segments: %d (limit %d)", len(in.Segments), MaxSegments)
	}
	if bad(in.FlowRateM3Day, 0, maxFlowRateM3Day) {
		return fmt.Errorf("flow rate must be within 0..%g m3/day", maxFlowRateM3Day)
	}
	if bad(in.WellDepthM, minWellDepthM, maxWellDepthM) {
		return fmt.Errorf("well depth must be within %g..%g m", minWellDepthM, maxWellDepthM)
	}
	if bad(in.InjectionPressureKPa, 0, maxPressureKPa) {
		return fmt.Errorf("injection pressure must be within 0..%g kPa", maxPressureKPa)
	}
	if bad(in.BottomholePressureKPa, 0, maxPressureKPa) {
		return fmt.Errorf("bottomhole pressure must be within 0..%g kPa", maxPressureKPa)
	}
	if bad(in.DensityKgM3, minDensityKgM3, maxDensityKgM3) {
		return fmt.Errorf("density must be within %g..%g kg/m3", minDensityKgM3, maxDensityKgM3)
	}
	if bad(in.ViscosityPaS, minViscosityPaS, maxViscosityPaS) {
		return fmt.Errorf("viscosity must be within %g..%g Pa*s", minViscosityPaS, maxViscosityPaS)
	}
	seen := make(map[int]bool, len(in.Segments))
	for i, s := range in.Segments {
		if seen[s.ID] {
			return fmt.Errorf("segment %d: duplicate id %d", i+1, s.ID)
		}
		seen[s.ID] = true
		if bad(s.DiameterMM, minDiameterMM, maxDiameterMM) {
			return fmt.Errorf("segment %d: diameter must be within %g..%g mm", i+1, minDiameterMM, maxDiameterMM)
		}
		if bad(s.LengthM, minLengthM, maxLengthM) {
			return fmt.Errorf("segment %d: length must be within %g..%g m", i+1, minLengthM, maxLengthM)
		}
		if bad(s.RoughnessMM, 0, maxRoughnessMM) {
			return fmt.Errorf("segment %d: roughness must be within 0..%g mm", i+1, maxRoughnessMM)
		}
	}
	if in.OpenHoleDiameterMM != 0 && bad(in.OpenHoleDiameterMM, minDiameterMM, maxDiameterMM) {
		return fmt.Errorf("open hole diameter must be within %g..%g mm", minDiameterMM, maxDiameterMM)
	}
	return nil
}

func bad(v, min, max float64) bool {
	return math.IsNaN(v) || v < min || v > max
}
