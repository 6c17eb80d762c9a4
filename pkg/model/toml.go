package model

import (
	"os"

	"github.com/BurntSushi/toml"

	lcerrors "github.com/HatsuSumi/layercheck/pkg/errors"
)

// registryFile mirrors the TOML registry document:
//
//	[layers]
//	eventBus = 2
//
//	[dependencies]
//	scrollService = ["eventBus", "stateManager"]
//
//	[foundation]
//	nodes = ["eventBus", "stateManager"]
type registryFile struct {
	Layers       map[string]int      `toml:"layers"`
	Dependencies map[string][]string `toml:"dependencies"`
	Foundation   foundationTable     `toml:"foundation"`
}

type foundationTable struct {
	Nodes []string `toml:"nodes"`
}

// LoadFile reads a TOML registry file and builds the model.
// Returns a FILE_NOT_FOUND error if the path does not exist, or an
// INVALID_MODEL error for malformed documents (non-integer layers, a
// dependency value that is not an array of strings, duplicate table keys).
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, lcerrors.Wrap(lcerrors.ErrCodeFileNotFound, err, "model file %s", path)
	}
	if err != nil {
		return nil, lcerrors.Wrap(lcerrors.ErrCodeInvalidModel, err, "read model file %s", path)
	}
	return Load(string(data))
}

// Load parses a TOML registry document and builds the model.
// Declaration order of the [dependencies] table is preserved, which fixes
// the order findings are reported in. An absent [foundation] table selects
// [DefaultFoundationNodes]; an explicitly empty one disables the exemption.
func Load(doc string) (*Model, error) {
	var reg registryFile
	md, err := toml.Decode(doc, &reg)
	if err != nil {
		return nil, lcerrors.Wrap(lcerrors.ErrCodeInvalidModel, err, "parse model")
	}

	m := New()

	for _, key := range md.Keys() {
		if len(key) != 2 {
			continue
		}
		name := key[1]
		switch key[0] {
		case "layers":
			if err := m.SetLayer(name, reg.Layers[name]); err != nil {
				return nil, wrapModelErr(err)
			}
		case "dependencies":
			if err := m.DeclareDependencies(name, reg.Dependencies[name]); err != nil {
				return nil, wrapModelErr(err)
			}
		}
	}

	foundation := reg.Foundation.Nodes
	if !md.IsDefined("foundation") {
		foundation = DefaultFoundationNodes()
	}
	for _, name := range foundation {
		if err := m.AddFoundation(name); err != nil {
			return nil, wrapModelErr(err)
		}
	}

	return m, nil
}

// wrapModelErr ensures every loader failure carries a model error code.
// Validation errors from pkg/errors already do; sentinel errors from the
// model builder are wrapped.
func wrapModelErr(err error) error {
	if lcerrors.GetCode(err) != "" {
		return err
	}
	return lcerrors.Wrap(lcerrors.ErrCodeInvalidModel, err, "build model")
}
