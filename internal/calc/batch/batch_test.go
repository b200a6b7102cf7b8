package batch

import (
	"strings"
	"testing"

	hydraulics "github.com/jcooper21/Well-Injection-Calculation/internal/calc/hydraulics"
)

func item() hydraulics.Input {
	return hydraulics.Input{
		Segments: []hydraulics.Segment{
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

func TestBatchEmpty(t *testing.T) {
	if _, err := Calculate(Input{}); err == nil {
		t.Fatal("expected error for empty batch")
	}
}

func TestBatchTwoItems(t *testing.T) {
	a := item()
	b := item()
	b.FlowRateM3Day = 2000
	res, err := Calculate(Input{Items: []hydraulics.Input{a, b}})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Results))
	}
	if res.Results[1].TotalFrictionLossKPa <= res.Results[0].TotalFrictionLossKPa {
		t.Error("higher rate should lose more friction")
	}
}

func TestBatchAbortsOnBadItem(t *testing.T) {
	a := item()
	b := item()
	b.Segments[0].DiameterMM = 5 // below the validation floor
	_, err := Calculate(Input{Items: []hydraulics.Input{a, b}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "item 2") {
		t.Errorf("error %q should name item 2", err)
	}
}
