package hydraulics

import (
	"fmt"
	"math"
)

// Flow regime thresholds (Reynolds number).
const (
	laminarLimit   = 2300.0
	turbulentLimit = 4000.0
)

type Regime string

const (
	RegimeLaminar      Regime = "laminar"
	RegimeTransitional Regime = "transitional"
	RegimeTurbulent    Regime = "turbulent"
)

// Constants are the numeric parameters of the march that are not part of the
// well description itself. Calculate uses DefaultConstants; CalculateWith
// accepts overrides.
type Constants struct {
	GravityMS2           float64 // m/s²
	EntryLossK           float64 // loss coefficient at the string entry
	OpenHoleRoughnessMM  float64 // wall roughness assumed for the uncased section
	OpenHoleToleranceM   float64 // residual depth below which no open hole is assumed
	MinRelativeRoughness float64 // floor for the Swamee-Jain log argument
}

func DefaultConstants() Constants {
	return Constants{
		GravityMS2:           9.81,
		EntryLossK:           0.5,
		OpenHoleRoughnessMM:  3.0,
		OpenHoleToleranceM:   0.1,
		MinRelativeRoughness: 1e-10,
	}
}

// Segment is one tubing section, ordered surface to depth.
type Segment struct {
	ID          int     `json:"id"`
	DiameterMM  float64 `json:"diameter_mm"`
	LengthM     float64 `json:"length_m"`
	RoughnessMM float64 `json:"roughness_mm"`
}

type Input struct {
	Segments              []Segment `json:"segments"`
	FlowRateM3Day         float64   `json:"flow_rate_m3_day"`
	InjectionPressureKPa  float64   `json:"injection_pressure_kpa"`
	BottomholePressureKPa float64   `json:"bottomhole_pressure_kpa"`
	DensityKgM3           float64   `json:"density_kg_m3"`
	ViscosityPaS          float64   `json:"viscosity_pa_s"`
	WellDepthM            float64   `json:"well_depth_m"`
	OpenHoleDiameterMM    float64   `json:"open_hole_diameter_mm"`
}

// SegmentResult reports one user-supplied segment of the march. The synthetic
// open-hole stage never appears here.
type SegmentResult struct {
	Number          int     `json:"number"`
	DiameterMM      float64 `json:"diameter_mm"`
	LengthM         float64 `json:"length_m"`
	DepthFromM      float64 `json:"depth_from_m"`
	DepthToM        float64 `json:"depth_to_m"`
	VelocityMS      float64 `json:"velocity_ms"`
	ReynoldsNumber  float64 `json:"reynolds_number"`
	Regime          Regime  `json:"regime"`
	FrictionFactor  float64 `json:"friction_factor"`
	FrictionLossKPa float64 `json:"friction_loss_kpa"`
	HydrostaticKPa  float64 `json:"hydrostatic_gain_kpa"`
	MinorLossKPa    float64 `json:"minor_loss_kpa"`
	NetChangeKPa    float64 `json:"net_change_kpa"`
	InletKPa        float64 `json:"inlet_pressure_kpa"`
	OutletKPa       float64 `json:"outlet_pressure_kpa"`
}

type Result struct {
	Segments              []SegmentResult `json:"segments"`
	TotalFrictionLossKPa  float64         `json:"total_friction_loss_kpa"`
	TotalPressureDropKPa  float64         `json:"total_pressure_drop_kpa"`
	BottomholePressureKPa float64         `json:"bottomhole_pressure_kpa"`
	MaxFlowRateM3Day      float64         `json:"max_flow_rate_m3_day"`
	MaxFlowRateUnlimited  bool            `json:"max_flow_rate_unlimited,omitempty"`
	ActualFlowRateM3Day   float64         `json:"actual_flow_rate_m3_day"`
	MaxVelocityMS         float64         `json:"max_velocity_ms"`
	MaxVelocitySegment    int             `json:"max_velocity_segment"`
	Warnings              []string        `json:"warnings,omitempty"`
}

// InputError is a configuration error: the caller must fix the well
// description before retrying. Segment is the 1-based position in the
// effective segment list, 0 when the error is not tied to one segment.
type InputError struct {
	Segment int
	Reason  string
}

func (e *InputError) Error() string {
	if e.Segment > 0 {
		return fmt.Sprintf("segment %d: %s", e.Segment, e.Reason)
	}
	return e.Reason
}

// Reynolds returns ρVD/μ. Zero viscosity or diameter is degenerate but
// valid at the formula level and yields exactly 0.
func Reynolds(velocityMS, diameterM, densityKgM3, viscosityPaS float64) float64 {
	if viscosityPaS == 0 || diameterM == 0 {
		return 0
	}
	return densityKgM3 * velocityMS * diameterM / viscosityPaS
}

// RegimeFor classifies a Reynolds number with the same thresholds the
// friction factor uses, so label and factor can never disagree.
func RegimeFor(re float64) Regime {
	switch {
	case re < laminarLimit:
		return RegimeLaminar
	case re < turbulentLimit:
		return RegimeTransitional
	default:
		return RegimeTurbulent
	}
}

// FrictionFactor returns the Darcy friction factor for the given Reynolds
// number and relative roughness ε/D. Laminar flow uses Hagen-Poiseuille,
// fully turbulent flow the explicit Swamee-Jain approximation, and the
// transitional band a linear blend between the two boundary values.
func FrictionFactor(re, relativeRoughness float64) float64 {
	return frictionFactor(re, relativeRoughness, DefaultConstants().MinRelativeRoughness)
}

func frictionFactor(re, relativeRoughness, minRelRoughness float64) float64 {
	if re <= 0 {
		return 0
	}
	if re < laminarLimit {
		return 64.0 / re
	}
	if re < turbulentLimit {
		lam := 64.0 / laminarLimit
		turb := swameeJain(turbulentLimit, relativeRoughness, minRelRoughness)
		w := (re - laminarLimit) / (turbulentLimit - laminarLimit)
		return lam*(1-w) + turb*w
	}
	return swameeJain(re, relativeRoughness, minRelRoughness)
}

func swameeJain(re, relativeRoughness, minRelRoughness float64) float64 {
	eff := math.Max(relativeRoughness, minRelRoughness)
	l := math.Log10(eff/3.7 + 5.74/math.Pow(re, 0.9))
	return 0.25 / (l * l)
}

// effective segment of the march; synthetic marks the derived open-hole
// stage, which is computed like any other but excluded from the output list.
type stage struct {
	diameterMM  float64
	lengthM     float64
	roughnessMM float64
	synthetic   bool
}

// Calculate runs the single-pass pressure march from surface to total depth
// and returns the aggregate result. It assumes numerically valid fluid
// properties; range validation is the caller's concern (see Validate).
func Calculate(in Input) (Result, error) {
	return CalculateWith(in, DefaultConstants())
}

func CalculateWith(in Input, c Constants) (Result, error) {
	stages := make([]stage, 0, len(in.Segments)+1)
	tubingLen := 0.0
	for _, s := range in.Segments {
		stages = append(stages, stage{s.DiameterMM, s.LengthM, s.RoughnessMM, false})
		tubingLen += s.LengthM
	}
	if residual := in.WellDepthM - tubingLen; residual > c.OpenHoleToleranceM {
		if in.OpenHoleDiameterMM <= 0 {
			return Result{}, &InputError{Reason: "open hole diameter required: well depth exceeds total tubing length"}
		}
		stages = append(stages, stage{in.OpenHoleDiameterMM, residual, c.OpenHoleRoughnessMM, true})
	}

	flow := in.FlowRateM3Day / 86400.0 // m³/s
	pressure := in.InjectionPressureKPa * 1000.0
	g := c.GravityMS2

	res := Result{
		Segments:            make([]SegmentResult, 0, len(in.Segments)),
		ActualFlowRateM3Day: in.FlowRateM3Day,
	}

	var (
		depth         float64
		prevArea      float64
		prevVelocity  float64
		totalFriction float64 // Pa, friction only
		totalDrop     float64 // Pa, friction + minor
		maxFriction   = -1.0
		dominant      Regime
		cavitated     bool
	)

	for i, st := range stages {
		d := st.diameterMM / 1000.0
		if st.diameterMM <= 0 {
			return Result{}, &InputError{Segment: i + 1, Reason: "non-positive diameter"}
		}
		area := math.Pi * (d / 2) * (d / 2)
		if area <= 0 {
			return Result{}, &InputError{Segment: i + 1, Reason: "degenerate cross-sectional area"}
		}
		velocity := flow / area

		if velocity > res.MaxVelocityMS {
			res.MaxVelocityMS = velocity
			res.MaxVelocitySegment = i + 1
		}

		re := Reynolds(velocity, d, in.DensityKgM3, in.ViscosityPaS)
		regime := RegimeFor(re)
		f := frictionFactor(re, st.roughnessMM/st.diameterMM, c.MinRelativeRoughness)

		var headLoss float64
		if velocity != 0 {
			headLoss = f * (st.lengthM / d) * velocity * velocity / (2 * g)
		}
		frictionLoss := in.DensityKgM3 * g * headLoss
		hydrostatic := in.DensityKgM3 * g * st.lengthM

		var minor float64
		if i == 0 {
			minor = c.EntryLossK * in.DensityKgM3 * velocity * velocity / 2
		} else if flow != 0 && area != prevArea {
			if area < prevArea {
				cc := 0.62 + 0.38*math.Pow(area/prevArea, 3)
				kc := (1/cc - 1) * (1/cc - 1)
				minor = kc * in.DensityKgM3 * velocity * velocity / 2
			} else {
				ke := (1 - prevArea/area) * (1 - prevArea/area)
				minor = ke * in.DensityKgM3 * prevVelocity * prevVelocity / 2
			}
		}

		net := hydrostatic - frictionLoss - minor
		inlet := pressure
		pressure += net

		if pressure < 0 && !cavitated {
			cavitated = true
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("cavitation risk: pressure becomes negative in segment %d", i+1))
		}

		totalFriction += frictionLoss
		totalDrop += frictionLoss + minor
		if frictionLoss > maxFriction {
			maxFriction = frictionLoss
			dominant = regime
		}

		if !st.synthetic {
			res.Segments = append(res.Segments, SegmentResult{
				Number:          i + 1,
				DiameterMM:      st.diameterMM,
				LengthM:         st.lengthM,
				DepthFromM:      depth,
				DepthToM:        depth + st.lengthM,
				VelocityMS:      velocity,
				ReynoldsNumber:  re,
				Regime:          regime,
				FrictionFactor:  f,
				FrictionLossKPa: frictionLoss / 1000,
				HydrostaticKPa:  hydrostatic / 1000,
				MinorLossKPa:    minor / 1000,
				NetChangeKPa:    net / 1000,
				InletKPa:        inlet / 1000,
				OutletKPa:       pressure / 1000,
			})
		}
		depth += st.lengthM
		prevArea = area
		prevVelocity = velocity
	}

	res.TotalFrictionLossKPa = totalFriction / 1000
	res.TotalPressureDropKPa = totalDrop / 1000
	res.BottomholePressureKPa = pressure / 1000

	// Extrapolate the sustainable maximum from the evaluated operating point.
	// Laminar friction scales linearly with flow, turbulent quadratically;
	// the exponent is picked from the single largest-friction stage.
	exponent := 2.0
	if dominant == RegimeLaminar {
		exponent = 1.0
	}
	hydrostaticTotal := in.DensityKgM3 * g * in.WellDepthM
	available := in.InjectionPressureKPa*1000 + hydrostaticTotal - in.BottomholePressureKPa*1000
	switch {
	case in.FlowRateM3Day == 0 || totalDrop <= 0:
		res.MaxFlowRateUnlimited = true
	case available <= 0:
		res.MaxFlowRateM3Day = 0
	default:
		res.MaxFlowRateM3Day = in.FlowRateM3Day * math.Pow(available/totalDrop, 1/exponent)
	}

	return res, nil
}
