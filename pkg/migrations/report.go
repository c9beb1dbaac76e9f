package migrations

import (
	"github.com/google/uuid"
)

// StepResult is the outcome of one best-effort attempt.
type StepResult struct {
	Name string
	Err  error
}

// Report aggregates what startup did to the schema: which versions applied,
// which best-effort steps were skipped, which indices exist, and whether the
// migration transaction rolled back. It is diagnostics only; no caller
// branches on it beyond logging and tests.
type Report struct {
	RunID         string
	StoredVersion int
	TargetVersion int
	Applied       []int
	Skipped       []StepResult
	Indexes       []StepResult
	Failure       error
}

func NewReport(target int) *Report {
	return &Report{
		RunID:         uuid.NewString(),
		TargetVersion: target,
	}
}

func (r *Report) Skip(name string, err error) {
	r.Skipped = append(r.Skipped, StepResult{Name: name, Err: err})
}

func (r *Report) Fail(err error) {
	r.Failure = err
}

// OK reports whether the migration transaction itself committed. Skipped
// best-effort steps and failed index attempts don't count against it.
func (r *Report) OK() bool {
	return r.Failure == nil
}

// IndexFailures returns only the index attempts that errored.
func (r *Report) IndexFailures() []StepResult {
	failures := []StepResult{}
	for _, res := range r.Indexes {
		if res.Err != nil {
			failures = append(failures, res)
		}
	}
	return failures
}
