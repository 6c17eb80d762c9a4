// Package graph provides the canonical JSON serialization of a layered
// dependency model together with the findings of a check run. The format
// is consumed by the export command and by downstream tooling that wants
// the graph without re-running the check.
package graph

import (
	"encoding/json"
	"slices"

	"github.com/HatsuSumi/layercheck/pkg/layering"
	"github.com/HatsuSumi/layercheck/pkg/model"
)

// =============================================================================
// Graph - Layered Dependency Graph Serialization
// =============================================================================

// Graph is the serialization format for a checked dependency model.
// Nodes are sorted by ID; edges keep declaration order. The same model and
// result always serialize to identical bytes.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is one component of the model.
type Node struct {
	ID         string `json:"id" bson:"id"`
	Layer      int    `json:"layer,omitempty" bson:"layer,omitempty"`
	Foundation bool   `json:"foundation,omitempty" bson:"foundation,omitempty"`
	Unknown    bool   `json:"unknown,omitempty" bson:"unknown,omitempty"` // no layer assignment
}

// Edge is one declared dependency. Violation marks an upward edge as found
// by the check that produced this graph.
type Edge struct {
	From      string `json:"from" bson:"from"`
	To        string `json:"to" bson:"to"`
	Violation bool   `json:"violation,omitempty" bson:"violation,omitempty"`
}

// =============================================================================
// Model → Graph Conversion
// =============================================================================

// FromModel flattens a model and its check result into serializable form.
// Every name the model mentions becomes a node: layered components,
// foundation nodes, and unresolvable dependency targets (flagged Unknown).
func FromModel(m *model.Model, res layering.Result) Graph {
	violating := make(map[string]bool, len(res.Violations))
	for _, v := range res.Violations {
		violating[v.Key()] = true
	}

	seen := make(map[string]bool)
	var out Graph

	addNode := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		n := Node{ID: id, Foundation: m.IsFoundation(id)}
		if layer, ok := m.Layer(id); ok {
			n.Layer = layer
		} else if !n.Foundation {
			n.Unknown = true
		}
		out.Nodes = append(out.Nodes, n)
	}

	for name := range m.Layers() {
		addNode(name)
	}
	for _, name := range m.Foundation() {
		addNode(name)
	}
	for _, source := range m.Sources() {
		addNode(source)
		for _, dep := range m.Dependencies(source) {
			addNode(dep)
			out.Edges = append(out.Edges, Edge{
				From:      source,
				To:        dep,
				Violation: violating[source+" -> "+dep],
			})
		}
	}

	slices.SortFunc(out.Nodes, func(a, b Node) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	return out
}

// Unmarshal deserializes JSON bytes to a Graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
