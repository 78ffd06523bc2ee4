package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// SuiteResult summarizes a directory of scenarios.
type SuiteResult struct {
	Total    int               `json:"total"`
	Passed   int               `json:"passed"`
	Failed   int               `json:"failed"`
	Updated  int               `json:"updated,omitempty"` // golden files written
	Failures []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure is one failed scenario.
type ScenarioFailure struct {
	Scenario string   `json:"scenario"`
	Errors   []string `json:"errors"`
}

// SuiteOptions controls RunSuite.
type SuiteOptions struct {
	// Filter keeps only scenarios whose name contains it.
	Filter string

	// GoldenDir, when set, compares each trace with
	// GoldenDir/<name>.golden. Missing golden files fail the scenario.
	GoldenDir string

	// Update rewrites golden files instead of comparing them.
	Update bool

	// Options are passed to every Run.
	Options []Option
}

// RunSuite loads the scenarios in dir and runs each one.
//
// Unlike RunWithGolden, RunSuite needs no *testing.T: golden files are
// compared byte for byte so the CLI can use the same layout as the tests.
func RunSuite(dir string, opts SuiteOptions) (*SuiteResult, error) {
	scenarios, err := LoadScenarios(dir, opts.Filter)
	if err != nil {
		return nil, err
	}

	suite := &SuiteResult{}
	for _, s := range scenarios {
		suite.Total++

		result, err := Run(s, opts.Options...)
		if err != nil {
			suite.fail(s.Name, fmt.Sprintf("scenario execution failed: %v", err))
			continue
		}

		errs := append([]string{}, result.Errors...)
		if opts.GoldenDir != "" {
			updated, err := compareGolden(opts.GoldenDir, s.Name, result, opts.Update)
			if err != nil {
				errs = append(errs, err.Error())
			}
			if updated {
				suite.Updated++
			}
		}

		if len(errs) > 0 {
			suite.fail(s.Name, errs...)
			continue
		}
		suite.Passed++
	}

	return suite, nil
}

func (r *SuiteResult) fail(name string, errs ...string) {
	r.Failed++
	r.Failures = append(r.Failures, ScenarioFailure{Scenario: name, Errors: errs})
}

// compareGolden checks or rewrites dir/<name>.golden.
func compareGolden(dir, name string, result *Result, update bool) (bool, error) {
	got, err := MarshalTrace(name, result)
	if err != nil {
		return false, err
	}

	path := filepath.Join(dir, name+".golden")
	if update {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create golden dir: %w", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			return false, fmt.Errorf("write golden file: %w", err)
		}
		return true, nil
	}

	want, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("golden file %s missing (run with --update)", path)
		}
		return false, fmt.Errorf("read golden file: %w", err)
	}
	if !bytes.Equal(bytes.TrimSpace(want), bytes.TrimSpace(got)) {
		return false, fmt.Errorf("trace differs from %s", path)
	}
	return false, nil
}
