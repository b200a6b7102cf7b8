package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	hydraulics "github.com/jcooper21/Well-Injection-Calculation/internal/calc/hydraulics"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string           `json:"project"`
	Author  string           `json:"author"`
	Title   string           `json:"title"`
	Params  hydraulics.Input `json:"params"`
}

type Handler struct{}

// Generate runs the calculation and streams a PDF report with the boundary
// conditions, the per-segment table and the aggregate figures.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Injection Well Hydraulics Report"
	}
	if err := hydraulics.Validate(input.Params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := hydraulics.Calculate(input.Params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.Cell(0, 6, fmt.Sprintf("Flow rate: %.1f m3/day   Injection: %.1f kPa   Target bottomhole: %.1f kPa",
		input.Params.FlowRateM3Day, input.Params.InjectionPressureKPa, input.Params.BottomholePressureKPa))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Density: %.1f kg/m3   Viscosity: %.4f Pa*s   Well depth: %.1f m",
		input.Params.DensityKgM3, input.Params.ViscosityPaS, input.Params.WellDepthM))
	pdf.Ln(10)

	headers := []string{"#", "D, mm", "L, m", "From, m", "To, m", "V, m/s", "Re", "Regime",
		"f", "Friction, kPa", "Minor, kPa", "Out, kPa"}
	widths := []float64{8, 18, 20, 20, 20, 18, 24, 26, 20, 26, 22, 26}
	pdf.SetFont("Helvetica", "B", 9)
	for i, hd := range headers {
		pdf.CellFormat(widths[i], 7, hd, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, s := range res.Segments {
		cells := []string{
			fmt.Sprintf("%d", s.Number),
			fmt.Sprintf("%.1f", s.DiameterMM),
			fmt.Sprintf("%.1f", s.LengthM),
			fmt.Sprintf("%.1f", s.DepthFromM),
			fmt.Sprintf("%.1f", s.DepthToM),
			fmt.Sprintf("%.2f", s.VelocityMS),
			fmt.Sprintf("%.0f", s.ReynoldsNumber),
			string(s.Regime),
			fmt.Sprintf("%.5f", s.FrictionFactor),
			fmt.Sprintf("%.2f", s.FrictionLossKPa),
			fmt.Sprintf("%.2f", s.MinorLossKPa),
			fmt.Sprintf("%.1f", s.OutletKPa),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Bottomhole pressure: %.1f kPa", res.BottomholePressureKPa))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total friction loss: %.1f kPa   Total pressure drop: %.1f kPa",
		res.TotalFrictionLossKPa, res.TotalPressureDropKPa))
	pdf.Ln(6)
	maxFlow := "unlimited at this operating point"
	if !res.MaxFlowRateUnlimited {
		maxFlow = fmt.Sprintf("%.0f m3/day", res.MaxFlowRateM3Day)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Max velocity: %.2f m/s (segment %d)   Max sustainable rate: %s",
		res.MaxVelocityMS, res.MaxVelocitySegment, maxFlow))
	for _, warn := range res.Warnings {
		pdf.Ln(6)
		pdf.Cell(0, 6, "Warning: "+warn)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"hydraulics-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
