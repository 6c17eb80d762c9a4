// Package report turns check results into the tool's two output surfaces:
// the human-readable text report and a machine-readable JSON document.
//
// A report is a snapshot: it captures the model path, a fresh run ID, and
// the findings at generation time. Rendering the same report twice produces
// identical output apart from nothing - run ID and timestamp are fixed at
// construction.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HatsuSumi/layercheck/pkg/layering"
)

// ErrViolationsFound signals that a completed check produced at least one
// violation. Callers use it to select the failure exit status after the
// report has been written; it carries no message worth printing.
var ErrViolationsFound = errors.New("layering violations found")

const bannerWidth = 80

// Report is a complete, self-describing record of one check run.
type Report struct {
	RunID       string               `json:"run_id" bson:"run_id"`
	GeneratedAt time.Time            `json:"generated_at" bson:"generated_at"`
	Model       string               `json:"model" bson:"model"`
	Violations  []layering.Violation `json:"violations" bson:"violations"`
	Accepted    []layering.Violation `json:"accepted,omitempty" bson:"accepted,omitempty"`
	Warnings    []layering.Warning   `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// New builds a report for a finished check. accepted holds violations that
// a baseline excused; they are listed for transparency but do not count
// against the exit status.
func New(modelPath string, res layering.Result, accepted []layering.Violation) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Model:       modelPath,
		Violations:  res.Violations,
		Accepted:    accepted,
		Warnings:    res.Warnings,
	}
}

// ExitCode is 0 iff the report carries no violations. Warnings and
// baseline-accepted findings never fail the run.
func (r *Report) ExitCode() int {
	if len(r.Violations) > 0 {
		return 1
	}
	return 0
}

// Err returns ErrViolationsFound when the report should fail the run,
// nil otherwise.
func (r *Report) Err() error {
	if len(r.Violations) > 0 {
		return ErrViolationsFound
	}
	return nil
}

// Render writes the text report. Warnings come first, then the verdict:
// either the success summary or every violation as a numbered block.
func (r *Report) Render(w io.Writer) error {
	banner := strings.Repeat("=", bannerWidth)

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("Architecture layering check: upward dependencies (lower layer → higher layer)\n")
	b.WriteString(banner + "\n\n")

	for _, warn := range r.Warnings {
		fmt.Fprintf(&b, "⚠️  warning: %s\n", warn)
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n")
	}

	if len(r.Violations) == 0 {
		b.WriteString("OK - no upward dependencies found. All components follow the layering policy.\n\n")
		b.WriteString("Dependency direction check passed:\n")
		b.WriteString("   - every component depends only on same-layer or lower-layer components\n")
		b.WriteString("   - no component depends on a higher-layer component\n")
	} else {
		fmt.Fprintf(&b, "ERROR - found %d upward %s:\n\n", len(r.Violations), plural(len(r.Violations), "dependency", "dependencies"))
		for i, v := range r.Violations {
			fmt.Fprintf(&b, "%d. %s (layer %d)\n", i+1, v.Source, v.SourceLayer)
			b.WriteString("   -> depends on\n")
			fmt.Fprintf(&b, "   %s (layer %d)\n", v.Dependency, v.DependencyLayer)
			fmt.Fprintf(&b, "   violation: %s\n\n", v.Direction())
		}
	}

	if len(r.Accepted) > 0 {
		fmt.Fprintf(&b, "\n%d %s accepted by baseline:\n", len(r.Accepted), plural(len(r.Accepted), "violation", "violations"))
		for _, v := range r.Accepted {
			fmt.Fprintf(&b, "   - %s (%s)\n", v.Key(), v.Direction())
		}
	}

	b.WriteString(banner + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the report as indented JSON, trailing newline included.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
