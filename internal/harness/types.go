package harness

// TraceEvent is one recorded evaluation and its outcome, as read back from
// the store.
type TraceEvent struct {
	Op       string   `json:"op"`
	Operands []string `json:"operands"`
	Case     string   `json:"case"`
	Result   string   `json:"result,omitempty"`
	Seq      int64    `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step matched its expectation
	// and every property held.
	Pass bool `json:"pass"`

	// Session is the session the steps were recorded under.
	Session string `json:"session"`

	// Trace contains the recorded evaluations in seq order.
	Trace []TraceEvent `json:"trace"`

	// PropertyCases counts the property cases checked.
	PropertyCases int `json:"property_cases"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
