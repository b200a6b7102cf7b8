package batch

import (
	"fmt"

	hydraulics "github.com/jcooper21/Well-Injection-Calculation/internal/calc/hydraulics"
)

type Input struct {
	Items []hydraulics.Input `json:"items"`
}

type Result struct {
	Results []hydraulics.Result `json:"results"`
}

// Calculate evaluates every parameter set in order. The first invalid item
// aborts the whole batch, identifying its position.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]hydraulics.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		if err := hydraulics.Validate(item); err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		res, err := hydraulics.Calculate(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
