package harness

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error

	// schemaMu serializes use of schemaCtx; a cue.Context is not safe for
	// concurrent use.
	schemaMu sync.Mutex
)

// scenarioSchema compiles the embedded schema once and returns #Scenario.
func scenarioSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		schemaDef = v.LookupPath(cue.ParsePath("#Scenario"))
		if err := schemaDef.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Scenario: %w", err)
		}
	})
	return schemaCtx, schemaDef, schemaErr
}

// SchemaError is a scenario that does not match the scenario schema.
type SchemaError struct {
	Scenario string
	Messages []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if len(e.Messages) == 1 {
		return fmt.Sprintf("scenario %q: %s", e.Scenario, e.Messages[0])
	}
	return fmt.Sprintf("scenario %q: %d schema violations, first: %s",
		e.Scenario, len(e.Messages), e.Messages[0])
}

// ValidateSchema checks the scenario's shape against the embedded CUE schema.
// JSON is a subset of CUE, so the scenario is handed over as JSON and
// unified with #Scenario.
func ValidateSchema(s *Scenario) error {
	ctx, def, err := scenarioSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}

	schemaMu.Lock()
	defer schemaMu.Unlock()

	v := ctx.CompileBytes(data, cue.Filename(s.Name+".json"))
	if err := v.Err(); err != nil {
		return fmt.Errorf("compile scenario: %w", err)
	}

	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Scenario: s.Name, Messages: cueMessages(err)}
	}
	return nil
}

// cueMessages flattens a CUE error list into one line per error.
func cueMessages(err error) []string {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return msgs
}
