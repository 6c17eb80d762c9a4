// Package render turns a checked dependency graph into Graphviz output:
// DOT text for external tooling and SVG for direct viewing. Components of
// the same layer share a rank, so the picture reads bottom-up the way the
// layer numbers do, and upward edges stand out in red.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/HatsuSumi/layercheck/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes the layer number in node labels.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format.
// Nodes of the same layer are grouped into rank=same subgraphs. Foundation
// nodes are shaded, unknown nodes dashed, violating edges red and bold.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	byLayer := make(map[int][]graph.Node)
	var unranked []graph.Node
	for _, n := range g.Nodes {
		if n.Layer > 0 {
			byLayer[n.Layer] = append(byLayer[n.Layer], n)
		} else {
			unranked = append(unranked, n)
		}
	}

	layers := make([]int, 0, len(byLayer))
	for l := range byLayer {
		layers = append(layers, l)
	}
	sort.Ints(layers)

	for _, l := range layers {
		fmt.Fprintf(&buf, "  { rank=same; // layer %d\n", l)
		for _, n := range byLayer[l] {
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
		}
		buf.WriteString("  }\n")
	}

	for _, n := range unranked {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Violation {
			fmt.Fprintf(&buf, "  %q -> %q [color=red, penwidth=2.0];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, opts Options) []string {
	label := n.ID
	if opts.Detailed && n.Layer > 0 {
		label = fmt.Sprintf("%s\nlayer %d", n.ID, n.Layer)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Foundation:
		attrs = append(attrs, "fillcolor=lightgrey")
	case n.Unknown:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightyellow")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
