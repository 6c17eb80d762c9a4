package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	lcerrors "github.com/HatsuSumi/layercheck/pkg/errors"
	"github.com/HatsuSumi/layercheck/pkg/graph"
	"github.com/HatsuSumi/layercheck/pkg/layering"
	"github.com/HatsuSumi/layercheck/pkg/model"
	"github.com/HatsuSumi/layercheck/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format   string // json, dot, or svg
	output   string // output file path (stdout if empty)
	detailed bool   // include layer numbers in node labels
}

// newExportCmd creates the export command.
//
// Export runs the check so violating edges can be marked in the output, but
// it never fails on violations: the exit status reflects only I/O and
// rendering errors.
func newExportCmd() *cobra.Command {
	opts := exportOpts{format: "json"}

	cmd := &cobra.Command{
		Use:   "export [model]",
		Short: "Export the checked dependency graph",
		Long: `Export the dependency graph with layer assignments and violation flags.

Formats:
  json  Canonical graph serialization (nodes sorted, edges in declaration order)
  dot   Graphviz DOT with one rank per layer, violating edges in red
  svg   Rendered diagram via Graphviz

Examples:
  layercheck export --format dot -o layers.dot
  layercheck export services/layers.toml --format svg -o layers.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := defaultModelPath
			if len(args) == 1 {
				path = args[0]
			}
			return runExport(c.Context(), path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, dot, or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include layer numbers in node labels")

	return cmd
}

func runExport(ctx context.Context, path string, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	m, err := model.LoadFile(path)
	if err != nil {
		return err
	}
	g := graph.FromModel(m, layering.Check(m))
	logger.Debugf("Exporting %d nodes and %d edges as %s", len(g.Nodes), len(g.Edges), opts.format)

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch opts.format {
	case "json":
		err = graph.Write(g, out)
	case "dot":
		_, err = fmt.Fprint(out, render.ToDOT(g, render.Options{Detailed: opts.detailed}))
	case "svg":
		var svg []byte
		svg, err = render.RenderSVG(ctx, render.ToDOT(g, render.Options{Detailed: opts.detailed}))
		if err == nil {
			_, err = out.Write(svg)
		}
	default:
		return lcerrors.New(lcerrors.ErrCodeInvalidFormat, "unknown format: %s (available: json, dot, svg)", opts.format)
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
