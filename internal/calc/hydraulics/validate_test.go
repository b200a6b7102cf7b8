package hydraulics

import (
	"math"
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		Segments: []Segment{
			{ID: 1, DiameterMM: 100, LengthM: 1000, RoughnessMM: 0.05},
		},
		FlowRateM3Day:         1000,
		InjectionPressureKPa:  5000,
		BottomholePressureKPa: 15000,
		DensityKgM3:           1000,
		ViscosityPaS:          0.001,
		WellDepthM:            1000,
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validInput()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
		want   string
	}{
		{"no segments", func(in *Input) { in.Segments = nil }, "at least one segment"},
		{"flow rate", func(in *Input) { in.FlowRateM3Day = 10001 }, "flow rate"},
		{"flow rate NaN", func(in *Input) { in.FlowRateM3Day = math.NaN() }, "flow rate"},
		{"well depth", func(in *Input) { in.WellDepthM = 0.5 }, "well depth"},
		{"injection pressure", func(in *Input) { in.InjectionPressureKPa = -1 }, "injection pressure"},
		{"bottomhole pressure", func(in *Input) { in.BottomholePressureKPa = 100001 }, "bottomhole pressure"},
		{"density", func(in *Input) { in.DensityKgM3 = 650 }, "density"},
		{"viscosity", func(in *Input) { in.ViscosityPaS = 1.5 }, "viscosity"},
		{"segment diameter", func(in *Input) { in.Segments[0].DiameterMM = 5 }, "segment 1: diameter"},
		{"segment length", func(in *Input) { in.Segments[0].LengthM = 0.05 }, "segment 1: length"},
		{"segment roughness", func(in *Input) { in.Segments[0].RoughnessMM = 11 }, "segment 1: roughness"},
		{"open hole diameter", func(in *Input) { in.OpenHoleDiameterMM = 600 }, "open hole diameter"},
		{
			"duplicate ids",
			func(in *Input) {
				in.Segments = append(in.Segments, Segment{ID: 1, DiameterMM: 100, LengthM: 10, RoughnessMM: 0.05})
			},
			"duplicate id",
		},
	}
	for _, c := range cases {
		in := validInput()
		c.mutate(&in)
		err := Validate(in)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.want)
		}
	}
}

func TestValidateSegmentLimit(t *testing.T) {
	in := validInput()
	in.Segments = nil
	for i := 0; i < MaxSegments+1; i++ {
		in.Segments = append(in.Segments, Segment{ID: i + 1, DiameterMM: 100, LengthM: 10, RoughnessMM: 0.05})
	}
	err := Validate(in)
	if err == nil || !strings.Contains(err.Error(), "too many segments") {
		t.Fatalf("expected segment-limit error, got %v", err)
	}
	in.Segments = in.Segments[:MaxSegments]
	in.WellDepthM = 200
	if err := Validate(in); err != nil {
		t.Fatalf("exactly %d segments should pass: %v", MaxSegments, err)
	}
}

func TestAdvisories(t *testing.T) {
	in := validInput()
	res := Result{MaxVelocityMS: 26, MaxVelocitySegment: 1}
	notes := Advisories(in, res)
	if len(notes) != 1 || !strings.Contains(notes[0], "critical velocity") {
		t.Errorf("critical-velocity advisory missing: %v", notes)
	}

	res = Result{MaxVelocityMS: 21, MaxVelocitySegment: 1}
	notes = Advisories(in, res)
	if len(notes) != 1 || !strings.Contains(notes[0], "elevated velocity") {
		t.Errorf("elevated-velocity advisory missing: %v", notes)
	}

	res = Result{MaxFlowRateM3Day: 1000, ActualFlowRateM3Day: 950}
	notes = Advisories(in, res)
	if len(notes) != 1 || !strings.Contains(notes[0], "near the sustainable limit") {
		t.Errorf("capacity advisory missing: %v", notes)
	}

	long := in
	long.Segments = []Segment{{ID: 1, DiameterMM: 100, LengthM: 1200, RoughnessMM: 0.05}}
	notes = Advisories(long, Result{})
	if len(notes) != 1 || !strings.Contains(notes[0], "exceeds well depth") {
		t.Errorf("depth-mismatch advisory missing: %v", notes)
	}

	if notes = Advisories(in, Result{MaxVelocityMS: 5}); len(notes) != 0 {
		t.Errorf("unexpected advisories: %v", notes)
	}
}
