package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HatsuSumi/layercheck/pkg/baseline"
	"github.com/HatsuSumi/layercheck/pkg/layering"
	"github.com/HatsuSumi/layercheck/pkg/model"
	"github.com/HatsuSumi/layercheck/pkg/observability"
	"github.com/HatsuSumi/layercheck/pkg/report"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	cycles       bool   // also report same-layer dependency cycles
	baselinePath string // baseline file of accepted violations
	jsonOut      bool   // emit the report as JSON instead of text
	interactive  bool   // browse violations in a TUI
	output       string // report file path (stdout if empty)
}

// newCheckCmd creates the check command.
//
// The command exits 0 when every declared dependency points at the same
// layer or lower, 1 when at least one upward dependency remains after
// baseline filtering. Warnings never affect the exit status.
func newCheckCmd() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [model]",
		Short: "Check declared dependencies against the layer map",
		Long: `Check every declared dependency against the layer map and report
upward dependencies (a lower-layer component depending on a higher-layer one).

The model defaults to layers.toml in the current directory.

Examples:
  layercheck check                          # Check ./layers.toml
  layercheck check services/layers.toml     # Explicit model path
  layercheck check --json -o report.json    # Machine-readable report
  layercheck check --baseline accepted.json # Ignore recorded violations`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := defaultModelPath
			if len(args) == 1 {
				path = args[0]
			}
			return runCheck(c.Context(), path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.cycles, "cycles", false, "also report dependency cycles within a layer")
	cmd.Flags().StringVar(&opts.baselinePath, "baseline", "", "baseline file of accepted violations")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse violations interactively")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file (stdout if empty)")

	return cmd
}

// runCheck loads the model, classifies every edge, applies the baseline, and
// writes the report. It returns report.ErrViolationsFound when violations
// remain so main can select the failure exit status without reprinting.
func runCheck(ctx context.Context, path string, opts checkOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, err := model.LoadFile(path)
	if err != nil {
		return err
	}
	observability.Check().OnModelLoaded(ctx, path, m.ComponentCount(), m.EdgeCount())
	logger.Debugf("Loaded %d components with %d declared dependencies from %s",
		m.ComponentCount(), m.EdgeCount(), path)

	observability.Check().OnCheckStart(ctx, m.ComponentCount())
	start := time.Now()
	res := layering.Check(m)
	if opts.cycles {
		res.Warnings = append(res.Warnings, layering.FindLayerCycles(m)...)
	}
	observability.Check().OnCheckComplete(ctx, len(res.Violations), len(res.Warnings), time.Since(start))

	base := baseline.Empty()
	if opts.baselinePath != "" {
		base, err = baseline.ReadFile(opts.baselinePath)
		if err != nil {
			return err
		}
		if base.Stale(m) {
			logger.Warnf("Baseline %s is stale: the model changed since it was recorded", opts.baselinePath)
		}
	}
	var accepted []layering.Violation
	res.Violations, accepted = base.Filter(res.Violations)

	rep := report.New(path, res, accepted)
	prog.done(fmt.Sprintf("Checked %d edges", m.EdgeCount()))

	if opts.interactive && !opts.jsonOut && opts.output == "" && len(rep.Violations) > 0 {
		if err := browseViolations(rep.Violations); err != nil {
			return err
		}
		return rep.Err()
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if opts.jsonOut {
		err = rep.WriteJSON(out)
	} else {
		err = rep.Render(out)
	}
	if err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
	}

	return rep.Err()
}
