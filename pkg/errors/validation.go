package errors

import (
	"strings"
	"unicode"
)

// ValidateComponentName validates a component name from a layer registry.
// It rejects names that could not have come from a real service registry
// and would otherwise corrupt reports or baselines.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No whitespace
//   - No arrow sequences (reserved by the report and baseline formats)
//   - Maximum length of 256 characters
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidComponent, "component name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidComponent, "component name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidComponent, "component name contains control characters: %q", name)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidComponent, "component name contains whitespace: %q", name)
		}
	}

	// "->" separates source and dependency in baseline entries.
	if strings.Contains(name, "->") {
		return New(ErrCodeInvalidComponent, "component name contains reserved sequence %q: %q", "->", name)
	}

	return nil
}

// ValidateLayer validates a layer assignment for a component.
// Layers are positive integers; layer 0 is reserved for foundation nodes
// and may not be assigned explicitly.
func ValidateLayer(name string, layer int) error {
	if layer < 1 {
		return New(ErrCodeInvalidLayer, "component %q has layer %d, layers must be >= 1", name, layer)
	}
	return nil
}
