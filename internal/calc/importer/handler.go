package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	hydraulics "github.com/jcooper21/Well-Injection-Calculation/internal/calc/hydraulics"
	"github.com/xuri/excelize/v2"
)

type Handler struct{}

// Segments handles an XLSX upload describing the tubing string, one segment
// per row below a header: diameter_mm, length_m, roughness_mm. The fluid and
// boundary parameters arrive as ordinary form fields next to the file.
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	input, err := paramsFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i := 1; i < len(rows); i++ {
		seg, err := parseSegmentRow(i, rows[i])
		if err != nil {
			continue
		}
		input.Segments = append(input.Segments, seg)
	}
	if err := hydraulics.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := hydraulics.Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func paramsFromForm(r *http.Request) (hydraulics.Input, error) {
	var in hydraulics.Input
	fields := []struct {
		name     string
		dst      *float64
		required bool
	}{
		{"flow_rate_m3_day", &in.FlowRateM3Day, true},
		{"injection_pressure_kpa", &in.InjectionPressureKPa, true},
		{"bottomhole_pressure_kpa", &in.BottomholePressureKPa, true},
		{"density_kg_m3", &in.DensityKgM3, true},
		{"viscosity_pa_s", &in.ViscosityPaS, true},
		{"well_depth_m", &in.WellDepthM, true},
		{"open_hole_diameter_mm", &in.OpenHoleDiameterMM, false},
	}
	for _, f := range fields {
		raw := r.FormValue(f.name)
		if raw == "" {
			if f.required {
				return in, fmt.Errorf("form field %s required", f.name)
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("form field %s: not a number", f.name)
		}
		*f.dst = v
	}
	return in, nil
}

// parseSegmentRow expects diameter_mm, length_m, roughness_mm; roughness may
// be omitted and defaults to 0 (hydraulically smooth).
func parseSegmentRow(id int, row []string) (hydraulics.Segment, error) {
	if len(row) < 2 {
		return hydraulics.Segment{}, fmt.Errorf("short row")
	}
	d, err := strconv.ParseFloat(row[0], 64)
	if err != nil {
		return hydraulics.Segment{}, err
	}
	l, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return hydraulics.Segment{}, err
	}
	rough := 0.0
	if len(row) > 2 && row[2] != "" {
		if rough, err = strconv.ParseFloat(row[2], 64); err != nil {
			return hydraulics.Segment{}, err
		}
	}
	return hydraulics.Segment{ID: id, DiameterMM: d, LengthM: l, RoughnessMM: rough}, nil
}
