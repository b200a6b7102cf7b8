package importer

import (
	"testing"
)

func TestParseSegmentRow(t *testing.T) {
	seg, err := parseSegmentRow(3, []string{"100", "1000", "0.05"})
	if err != nil {
		t.Fatalf("parseSegmentRow: %v", err)
	}
	if seg.ID != 3 || seg.DiameterMM != 100 || seg.LengthM != 1000 || seg.RoughnessMM != 0.05 {
		t.Errorf("unexpected segment %+v", seg)
	}
}

func TestParseSegmentRowDefaults(t *testing.T) {
	seg, err := parseSegmentRow(1, []string{"114.3", "850"})
	if err != nil {
		t.Fatalf("parseSegmentRow: %v", err)
	}
	if seg.RoughnessMM != 0 {
		t.Errorf("roughness = %g, want 0", seg.RoughnessMM)
	}
}

func TestParseSegmentRowErrors(t *testing.T) {
	if _, err := parseSegmentRow(1, []string{"100"}); err == nil {
		t.Error("short row should fail")
	}
	if _, err := parseSegmentRow(1, []string{"abc", "1000"}); err == nil {
		t.Error("non-numeric diameter should fail")
	}
	if _, err := parseSegmentRow(1, []string{"100", "1000", "x"}); err == nil {
		t.Error("non-numeric roughness should fail")
	}
}
