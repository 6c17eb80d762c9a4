// Package model holds the architecture model the validator runs against:
// a layer assignment per component, the declared dependency adjacency, and
// the set of foundation nodes that every layer may use.
//
// A Model is built once at startup (usually by [LoadFile]) and treated as
// read-only for the duration of a run. Declaration order is preserved for
// both sources and their dependency lists so that findings come out in a
// reproducible order across runs.
package model

import (
	"errors"

	lcerrors "github.com/HatsuSumi/layercheck/pkg/errors"
)

var (
	// ErrDuplicateComponent is returned by [Model.SetLayer] when a layer has
	// already been assigned to the component. Each component has at most one layer.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrDuplicateDependencySet is returned by [Model.DeclareDependencies]
	// when the component already declared its dependencies. A component's
	// dependency list is declared exactly once.
	ErrDuplicateDependencySet = errors.New("dependencies already declared")
)

// DefaultFoundationNodes are the reserved component names treated as layer 0
// when the registry does not declare a foundation set. They are the
// process-wide infrastructure pieces every layer is allowed to use.
func DefaultFoundationNodes() []string {
	return []string{"eventBus", "stateManager"}
}

// Model is the immutable-after-construction architecture model.
// The zero value is not usable - use New to create a Model, populate it with
// SetLayer/DeclareDependencies/AddFoundation, and then only read from it.
// Model is not safe for concurrent mutation; concurrent reads are safe.
type Model struct {
	layers     map[string]int
	sources    []string            // dependency declaration order
	deps       map[string][]string // source -> deduplicated deps in declared order
	foundation map[string]bool
	foundOrder []string
}

// New creates an empty model.
func New() *Model {
	return &Model{
		layers:     make(map[string]int),
		deps:       make(map[string][]string),
		foundation: make(map[string]bool),
	}
}

// SetLayer assigns a layer to a component.
// Returns a coded error for invalid names or layers (< 1), or
// ErrDuplicateComponent if the component already has a layer.
func (m *Model) SetLayer(name string, layer int) error {
	if err := lcerrors.ValidateComponentName(name); err != nil {
		return err
	}
	if err := lcerrors.ValidateLayer(name, layer); err != nil {
		return err
	}
	if _, exists := m.layers[name]; exists {
		return ErrDuplicateComponent
	}
	m.layers[name] = layer
	return nil
}

// DeclareDependencies records the outgoing edges of a component in declared
// order. Duplicate targets collapse into the first occurrence, so one logical
// edge can never produce more than one finding. Returns
// ErrDuplicateDependencySet if the component already declared dependencies.
//
// Declaring an empty (or nil) list is valid and distinct from not declaring
// at all: it registers the component as a source with zero edges.
func (m *Model) DeclareDependencies(name string, deps []string) error {
	if err := lcerrors.ValidateComponentName(name); err != nil {
		return err
	}
	if _, exists := m.deps[name]; exists {
		return ErrDuplicateDependencySet
	}

	seen := make(map[string]bool, len(deps))
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		if err := lcerrors.ValidateComponentName(d); err != nil {
			return err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}

	m.sources = append(m.sources, name)
	m.deps[name] = out
	return nil
}

// AddFoundation marks a component name as a universal foundation node.
// Foundation nodes are exempt from the layer check regardless of whether
// they appear in the layer map. Adding a name twice is a no-op.
func (m *Model) AddFoundation(name string) error {
	if err := lcerrors.ValidateComponentName(name); err != nil {
		return err
	}
	if m.foundation[name] {
		return nil
	}
	m.foundation[name] = true
	m.foundOrder = append(m.foundOrder, name)
	return nil
}

// Layer returns the layer assigned to the component and true, or 0 and false
// if the component is not in the layer map.
func (m *Model) Layer(name string) (int, bool) {
	l, ok := m.layers[name]
	return l, ok
}

// Layers returns a copy of the layer assignment map.
func (m *Model) Layers() map[string]int {
	out := make(map[string]int, len(m.layers))
	for k, v := range m.layers {
		out[k] = v
	}
	return out
}

// Sources returns the components that declared dependencies, in declaration
// order. The returned slice is a copy.
func (m *Model) Sources() []string {
	out := make([]string, len(m.sources))
	copy(out, m.sources)
	return out
}

// Dependencies returns the declared dependencies of a component in declared
// order. Returns nil if the component declared none (or never declared).
// The returned slice should not be modified - use it as a read-only view.
func (m *Model) Dependencies(name string) []string { return m.deps[name] }

// IsFoundation reports whether name is a foundation node.
func (m *Model) IsFoundation(name string) bool { return m.foundation[name] }

// Foundation returns the foundation node names in the order they were added.
// The returned slice is a copy.
func (m *Model) Foundation() []string {
	out := make([]string, len(m.foundOrder))
	copy(out, m.foundOrder)
	return out
}

// ComponentCount returns the number of components in the layer map.
func (m *Model) ComponentCount() int { return len(m.layers) }

// EdgeCount returns the total number of declared dependency edges after
// duplicate collapse.
func (m *Model) EdgeCount() int {
	n := 0
	for _, d := range m.deps {
		n += len(d)
	}
	return n
}
