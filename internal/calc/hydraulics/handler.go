package hydraulics

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Handler struct{}

type calcResponse struct {
	Result
	Advisories []string `json:"advisories,omitempty"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calcResponse{Result: res, Advisories: Advisories(input, res)})
}

// Advisories derives the classification-only conditions from a finished
// result. These are presentation hints, never engine failures.
func Advisories(in Input, res Result) []string {
	var notes []string
	switch {
	case res.MaxVelocityMS >= CriticalVelocityMS:
		notes = append(notes, fmt.Sprintf("critical velocity %.1f m/s in segment %d: severe erosion risk",
			res.MaxVelocityMS, res.MaxVelocitySegment))
	case res.MaxVelocityMS >= ErosionVelocityMS:
		notes = append(notes, fmt.Sprintf("elevated velocity %.1f m/s in segment %d: erosion risk",
			res.MaxVelocityMS, res.MaxVelocitySegment))
	}
	if !res.MaxFlowRateUnlimited && res.MaxFlowRateM3Day > 0 &&
		res.ActualFlowRateM3Day >= 0.9*res.MaxFlowRateM3Day {
		notes = append(notes, fmt.Sprintf("flow rate %.0f m3/day is near the sustainable limit %.0f m3/day",
			res.ActualFlowRateM3Day, res.MaxFlowRateM3Day))
	}
	tubing := 0.0
	for _, s := range in.Segments {
		tubing += s.LengthM
	}
	if tubing > in.WellDepthM {
		notes = append(notes, fmt.Sprintf("total tubing length %.1f m exceeds well depth %.1f m",
			tubing, in.WellDepthM))
	}
	return notes
}
