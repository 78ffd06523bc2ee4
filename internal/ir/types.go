package ir

// CaseOK is the output case of a successful evaluation. Failed evaluations
// use the signed.ErrorCode string (e.g. "MUL_OVERFLOW") as their case.
const CaseOK = "OK"

// Evaluation records a request to run one operation.
type Evaluation struct {
	ID            string   `json:"id"`
	Session       string   `json:"session"`
	Op            string   `json:"op"`
	Operands      []string `json:"operands"` // decimal strings, never floats
	Seq           int64    `json:"seq"`
	EngineVersion string   `json:"engine_version"`
}

// Outcome records the result of an Evaluation.
// Each evaluation has exactly one outcome.
type Outcome struct {
	ID           string `json:"id"`
	EvaluationID string `json:"evaluation_id"`
	Case         string `json:"case"`             // CaseOK or an error code
	Result       string `json:"result,omitempty"` // empty unless Case is CaseOK
	Seq          int64  `json:"seq"`
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Case == CaseOK
}
