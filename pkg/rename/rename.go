package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quidome/media-renamer-go/pkg/plan"
)

var (
	// ErrTargetExists is returned when a rename target is already occupied
	// by another file.
	ErrTargetExists = errors.New("target file already exists")
)

// Outcome describes what happened to a single file.
type Outcome string

const (
	OutcomeRenamed   Outcome = "renamed"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// Result contains the outcome of one rename operation.
type Result struct {
	Operation plan.Operation
	Outcome   Outcome
	Error     error
}

// Options configures the executor.
type Options struct {
	// DryRun reports planned outcomes without touching the filesystem.
	DryRun bool
}

// Summary counts per-file outcomes for a whole run.
type Summary struct {
	Renamed   int `json:"renamed"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Execute performs rename operations within dir.
//
// It will:
// - Treat operations whose old and new name match as no-ops
// - Never overwrite an existing file; occupied targets fail with ErrTargetExists
// - Continue with remaining operations after a per-file failure
func Execute(dir string, ops []plan.Operation, opts Options) []Result {
	results := make([]Result, 0, len(ops))

	for _, op := range ops {
		if op.OldName == op.NewName {
			results = append(results, Result{Operation: op, Outcome: OutcomeUnchanged})
			continue
		}

		oldPath := filepath.Join(dir, op.OldName)
		newPath := filepath.Join(dir, op.NewName)

		// os.Rename replaces an existing target silently; probe first so
		// a collision never destroys data. The scan-to-rename window is
		// not raced against: the tool assumes exclusive access to dir.
		if _, err := os.Lstat(newPath); err == nil {
			results = append(results, Result{Operation: op, Outcome: OutcomeFailed, Error: ErrTargetExists})
			continue
		} else if !os.IsNotExist(err) {
			results = append(results, Result{Operation: op, Outcome: OutcomeFailed, Error: fmt.Errorf("stat target: %w", err)})
			continue
		}

		if opts.DryRun {
			results = append(results, Result{Operation: op, Outcome: OutcomeRenamed})
			continue
		}

		if err := os.Rename(oldPath, newPath); err != nil {
			results = append(results, Result{Operation: op, Outcome: OutcomeFailed, Error: fmt.Errorf("rename: %w", err)})
			continue
		}

		results = append(results, Result{Operation: op, Outcome: OutcomeRenamed})
	}

	return results
}

// Summarize tallies executor results plus the number of files skipped before
// planning (no date taken).
func Summarize(results []Result, skipped int) Summary {
	s := Summary{Skipped: skipped}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeRenamed:
			s.Renamed++
		case OutcomeUnchanged:
			s.Unchanged++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}
