// Package layering implements the layer-direction check at the heart of
// layercheck: every declared dependency must point at a component in the
// same layer or a strictly lower one.
//
// The check is a pure, single-pass decision procedure over an in-memory
// [model.Model]. It performs no I/O, allocates only its own result slices,
// and is safe for concurrent invocations with different models. Findings
// come out in discovery order - the declaration order of the model - so two
// runs over the same model produce byte-identical reports.
//
// Unresolvable edges (a name missing from the layer map) degrade to
// warnings rather than aborting the run, so a single typo in the registry
// never hides a real violation elsewhere in the graph.
package layering

import (
	"fmt"

	"github.com/HatsuSumi/layercheck/pkg/model"
)

// WarningKind classifies non-fatal findings.
type WarningKind string

const (
	// WarnUnknownSource marks a component that declared dependencies but has
	// no layer assignment. Its edges cannot be classified and are skipped.
	WarnUnknownSource WarningKind = "unknown-source"

	// WarnUnknownDependency marks a dependency target with no layer
	// assignment. The edge cannot be classified and is skipped.
	WarnUnknownDependency WarningKind = "unknown-dependency"

	// WarnLayerCycle marks a dependency cycle between components of the
	// same layer, found by the opt-in advisory in [FindLayerCycles].
	WarnLayerCycle WarningKind = "layer-cycle"
)

// Violation is an upward dependency: a component whose layer is numerically
// lower than the layer of something it depends on. Violations are produced
// fresh on every check and never mutated afterwards.
type Violation struct {
	Source          string `json:"source" bson:"source"`
	SourceLayer     int    `json:"source_layer" bson:"source_layer"`
	Dependency      string `json:"dependency" bson:"dependency"`
	DependencyLayer int    `json:"dependency_layer" bson:"dependency_layer"`
}

// Direction describes the breach, e.g. "layer 7 → layer 10".
func (v Violation) Direction() string {
	return fmt.Sprintf("layer %d → layer %d", v.SourceLayer, v.DependencyLayer)
}

// Key is the stable identity of the violated edge, used by baselines.
func (v Violation) Key() string {
	return v.Source + " -> " + v.Dependency
}

// Warning is a non-fatal finding: an unresolvable edge or a same-layer
// cycle. Warnings never affect the exit status.
type Warning struct {
	Kind   WarningKind `json:"kind" bson:"kind"`
	Source string      `json:"source,omitempty" bson:"source,omitempty"`
	Name   string      `json:"name" bson:"name"`
	Layer  int         `json:"layer,omitempty" bson:"layer,omitempty"`
}

// String renders the warning for the text report.
func (w Warning) String() string {
	switch w.Kind {
	case WarnUnknownSource:
		return fmt.Sprintf("%s is not in the layer map", w.Name)
	case WarnUnknownDependency:
		return fmt.Sprintf("%s depends on %s, which is not in the layer map", w.Source, w.Name)
	case WarnLayerCycle:
		return fmt.Sprintf("cycle within layer %d: %s", w.Layer, w.Name)
	default:
		return w.Name
	}
}

// Result carries everything a single check produced, in discovery order.
type Result struct {
	Violations []Violation
	Warnings   []Warning
}

// HasViolations reports whether the check found any upward dependency.
func (r Result) HasViolations() bool { return len(r.Violations) > 0 }

// Check walks every declared edge of the model and classifies it.
//
// For each source component, in declaration order:
//   - a source without a layer assignment yields one unknown-source warning
//     and its edges are skipped
//   - an edge to a foundation node is trivially compliant
//   - an edge to a target without a layer assignment yields one
//     unknown-dependency warning and is skipped
//   - an edge is a violation iff the source layer is strictly lower than
//     the dependency layer; same-layer and downward edges are compliant
//
// Check never fails: malformed names are rejected earlier, at model
// construction. Running it twice on the same model yields identical results.
func Check(m *model.Model) Result {
	var res Result

	for _, source := range m.Sources() {
		sourceLayer, ok := m.Layer(source)
		if !ok {
			res.Warnings = append(res.Warnings, Warning{Kind: WarnUnknownSource, Name: source})
			continue
		}

		for _, dep := range m.Dependencies(source) {
			if m.IsFoundation(dep) {
				continue
			}
			depLayer, ok := m.Layer(dep)
			if !ok {
				res.Warnings = append(res.Warnings, Warning{Kind: WarnUnknownDependency, Source: source, Name: dep})
				continue
			}
			if sourceLayer < depLayer {
				res.Violations = append(res.Violations, Violation{
					Source:          source,
					SourceLayer:     sourceLayer,
					Dependency:      dep,
					DependencyLayer: depLayer,
				})
			}
		}
	}

	return res
}
