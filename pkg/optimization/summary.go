// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a prepayment search.
type Summary struct {
	Scope          string   `json:"scope"`
	TargetName     string   `json:"targetName"`
	Field          string   `json:"field"`
	Original       float64  `json:"original"`
	Value          float64  `json:"value"`
	Max            float64  `json:"max"`
	Floor          float64  `json:"floor"`
	MinimumSavings float64  `json:"minimumSavings"`
	TightestYear   int      `json:"tightestYear,omitempty"`
	Headroom       float64  `json:"headroom"`
	Iterations     int      `json:"iterations"`
	Converged      bool     `json:"converged"`
	InterestSaved  float64  `json:"interestSaved"`
	Notes          []string `json:"notes,omitempty"`
	ValueDisplay   string   `json:"valueDisplay,omitempty"`
}

// Feasible reports whether the chosen value keeps every year above the floor.
func (s Summary) Feasible() bool {
	return s.Headroom >= 0
}
