package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/signed64/internal/engine"
)

// Scenario defines a conformance scenario: a list of operations with
// expected outcomes, plus algebraic properties checked over sample values.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Session is an optional fixed session id for deterministic traces.
	// If empty, defaults to "test-session-default".
	Session string `yaml:"session,omitempty" json:"session,omitempty"`

	// Steps are evaluated in order through the engine.
	Steps []Step `yaml:"steps,omitempty" json:"steps,omitempty"`

	// Properties are checked over their sample values after the steps run.
	Properties []PropertyCheck `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Step evaluates one op.
type Step struct {
	// Op is the engine op name (e.g. "add", "mul_u64").
	Op string `yaml:"op" json:"op"`

	// Operands are decimal strings. Quote them in YAML so large values
	// and leading signs survive as written.
	Operands []string `yaml:"operands" json:"operands"`

	// Expect specifies the expected outcome.
	// If nil, the step only has to evaluate without a runtime error.
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expect is exactly one of a success value or an error code.
type Expect struct {
	// Value is the expected decimal result, or less/equal/greater for cmp.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`

	// Error is the expected error code (e.g. "ADD_OVERFLOW").
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// PropertyCheck names a property and the values it is checked over.
type PropertyCheck struct {
	Type   string   `yaml:"type" json:"type"`
	Values []string `yaml:"values" json:"values"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "operand:" vs "operands:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by path.
// A filter, when non-empty, keeps only scenarios whose name contains it.
func LoadScenarios(dir, filter string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string)
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", path, s.Name, prev)
		}
		seen[s.Name] = path

		if filter != "" && !strings.Contains(s.Name, filter) {
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks the schema, then the rules CUE cannot express
// without duplicating the op catalogue.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if err := ValidateSchema(s); err != nil {
		return err
	}

	if len(s.Steps) == 0 && len(s.Properties) == 0 {
		return fmt.Errorf("at least one step or property is required")
	}

	for i, step := range s.Steps {
		op, err := engine.ParseOp(step.Op)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if want := len(engine.Signature(op)); len(step.Operands) != want {
			return fmt.Errorf("steps[%d]: %s takes %d operands, got %d", i, op, want, len(step.Operands))
		}
	}

	return nil
}
