// Package baseline lets a team adopt layer checking on a codebase that
// already has violations. A baseline file records the accepted upward
// edges together with a hash of the model they were recorded against;
// subsequent checks subtract the accepted edges from the verdict, so only
// new violations fail the run.
package baseline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	lcerrors "github.com/HatsuSumi/layercheck/pkg/errors"
	"github.com/HatsuSumi/layercheck/pkg/layering"
	"github.com/HatsuSumi/layercheck/pkg/model"
)

// Baseline is the accepted-violations record for one model.
type Baseline struct {
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`
	ModelHash   string    `json:"model_hash" bson:"model_hash"`
	Entries     []string  `json:"entries" bson:"entries"` // violation keys, "source -> dependency"
}

// Hash fingerprints the model for staleness detection. The fingerprint
// covers layers, declarations, and foundation nodes; any edit to the
// registry changes it.
func Hash(m *model.Model) string {
	h := sha256.New()
	enc := json.NewEncoder(h)

	// Layers in a canonical order via the sorted JSON map encoding.
	_ = enc.Encode(m.Layers())
	for _, source := range m.Sources() {
		_ = enc.Encode(source)
		_ = enc.Encode(m.Dependencies(source))
	}
	_ = enc.Encode(m.Foundation())

	return hex.EncodeToString(h.Sum(nil))
}

// New records the given violations as accepted against the model.
func New(m *model.Model, violations []layering.Violation) *Baseline {
	b := &Baseline{
		GeneratedAt: time.Now().UTC(),
		ModelHash:   Hash(m),
		Entries:     make([]string, 0, len(violations)),
	}
	for _, v := range violations {
		b.Entries = append(b.Entries, v.Key())
	}
	return b
}

// Empty is the null baseline: it accepts nothing and is never stale.
func Empty() *Baseline {
	return &Baseline{}
}

// Contains reports whether the violation is accepted.
func (b *Baseline) Contains(v layering.Violation) bool {
	key := v.Key()
	for _, e := range b.Entries {
		if e == key {
			return true
		}
	}
	return false
}

// Stale reports whether the model changed since the baseline was recorded.
// The empty baseline is never stale.
func (b *Baseline) Stale(m *model.Model) bool {
	return b.ModelHash != "" && b.ModelHash != Hash(m)
}

// Filter splits violations into those still failing the run and those the
// baseline accepts. Both slices keep the input order.
func (b *Baseline) Filter(violations []layering.Violation) (remaining, accepted []layering.Violation) {
	for _, v := range violations {
		if b.Contains(v) {
			accepted = append(accepted, v)
		} else {
			remaining = append(remaining, v)
		}
	}
	return remaining, accepted
}

// WriteFile stores the baseline as indented JSON.
// Parent directories are created as needed.
func WriteFile(b *Baseline, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return lcerrors.Wrap(lcerrors.ErrCodeInvalidBaseline, err, "encode baseline")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return lcerrors.Wrap(lcerrors.ErrCodeInternal, err, "create baseline directory")
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return lcerrors.Wrap(lcerrors.ErrCodeInternal, err, "write baseline")
	}
	return nil
}

// ReadFile loads a baseline. A missing file is FILE_NOT_FOUND so callers
// can fall back to Empty; malformed content is INVALID_BASELINE.
func ReadFile(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, lcerrors.Wrap(lcerrors.ErrCodeFileNotFound, err, "baseline file %s", path)
	}
	if err != nil {
		return nil, lcerrors.Wrap(lcerrors.ErrCodeInternal, err, "read baseline %s", path)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, lcerrors.Wrap(lcerrors.ErrCodeInvalidBaseline, err, "parse baseline %s", path)
	}
	return &b, nil
}
