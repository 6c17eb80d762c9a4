package layering

import (
	"strings"

	"github.com/HatsuSumi/layercheck/pkg/model"
)

// FindLayerCycles looks for dependency cycles between components of the
// same layer. Same-layer edges are compliant by policy, so this is an
// opt-in advisory: each cycle is reported as a layer-cycle warning and
// never affects the exit status.
//
// Only edges between two known components of equal layer participate;
// foundation nodes and unresolvable names are ignored (the main check
// already warns about the latter). Traversal follows declaration order,
// so the reported cycles are stable across runs.
func FindLayerCycles(m *model.Model) []Warning {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var stack []string
	var warnings []Warning

	sameLayerDeps := func(name string, layer int) []string {
		var out []string
		for _, dep := range m.Dependencies(name) {
			if m.IsFoundation(dep) {
				continue
			}
			if depLayer, ok := m.Layer(dep); ok && depLayer == layer {
				out = append(out, dep)
			}
		}
		return out
	}

	var dfs func(name string, layer int)
	dfs = func(name string, layer int) {
		color[name] = gray
		stack = append(stack, name)
		for _, dep := range sameLayerDeps(name, layer) {
			switch color[dep] {
			case white:
				dfs(dep, layer)
			case gray:
				warnings = append(warnings, Warning{
					Kind:  WarnLayerCycle,
					Layer: layer,
					Name:  cyclePath(stack, dep),
				})
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
	}

	for _, source := range m.Sources() {
		layer, ok := m.Layer(source)
		if !ok {
			continue
		}
		if color[source] == white {
			dfs(source, layer)
		}
	}

	return warnings
}

// cyclePath renders the cycle closed by a back edge to start,
// e.g. "a → b → c → a".
func cyclePath(stack []string, start string) string {
	from := 0
	for i, n := range stack {
		if n == start {
			from = i
			break
		}
	}
	parts := append([]string{}, stack[from:]...)
	parts = append(parts, start)
	return strings.Join(parts, " → ")
}
