package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HatsuSumi/layercheck/pkg/baseline"
	"github.com/HatsuSumi/layercheck/pkg/layering"
	"github.com/HatsuSumi/layercheck/pkg/model"
)

// defaultBaselinePath is where the baseline command writes when -o is not given.
const defaultBaselinePath = ".layercheck-baseline.json"

// newBaselineCmd creates the baseline command.
//
// Recording a baseline accepts every current violation, so a later
// "check --baseline" fails only on violations introduced afterwards.
func newBaselineCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "baseline [model]",
		Short: "Record current violations as accepted",
		Long: `Run the check and record every violation it finds as accepted.

Use this to adopt layer checking on a codebase that already has violations:
the recorded edges stop failing "check --baseline", while new upward
dependencies still do.

Examples:
  layercheck baseline
  layercheck baseline services/layers.toml -o accepted.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := defaultModelPath
			if len(args) == 1 {
				path = args[0]
			}
			return runBaseline(c.Context(), path, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultBaselinePath, "baseline file to write")

	return cmd
}

func runBaseline(ctx context.Context, path, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, err := model.LoadFile(path)
	if err != nil {
		return err
	}

	res := layering.Check(m)
	b := baseline.New(m, res.Violations)
	if err := baseline.WriteFile(b, output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Recorded %d accepted violations", len(b.Entries)))

	if len(b.Entries) == 0 {
		printSuccess("No violations found, wrote an empty baseline")
	} else {
		printWarning("%d existing violations accepted", len(b.Entries))
	}
	printFile(output)

	return nil
}
