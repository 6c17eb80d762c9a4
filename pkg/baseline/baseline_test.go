package baseline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	lcerrors "github.com/HatsuSumi/layercheck/pkg/errors"
	"github.com/HatsuSumi/layercheck/pkg/layering"
	"github.com/HatsuSumi/layercheck/pkg/model"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	for name, layer := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if err := m.SetLayer(name, layer); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.DeclareDependencies("a", []string{"b"}); err != nil {
		t.Fatal(err)
	}
	if err := m.DeclareDependencies("b", []string{"c"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddFoundation("eventBus"); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestHash(t *testing.T) {
	m := testModel(t)

	if Hash(m) != Hash(m) {
		t.Error("hash should be stable for the same model")
	}

	changed := testModel(t)
	if err := changed.SetLayer("d", 4); err != nil {
		t.Fatal(err)
	}
	if Hash(m) == Hash(changed) {
		t.Error("hash should change when the model changes")
	}
}

func TestFilter(t *testing.T) {
	m := testModel(t)
	violations := layering.Check(m).Violations
	if len(violations) != 2 {
		t.Fatalf("violations = %+v, want two", violations)
	}

	b := New(m, violations[:1])

	remaining, accepted := b.Filter(violations)
	if !reflect.DeepEqual(accepted, violations[:1]) {
		t.Errorf("accepted = %+v, want %+v", accepted, violations[:1])
	}
	if !reflect.DeepEqual(remaining, violations[1:]) {
		t.Errorf("remaining = %+v, want %+v", remaining, violations[1:])
	}
}

func TestEmpty(t *testing.T) {
	m := testModel(t)
	violations := layering.Check(m).Violations

	b := Empty()
	remaining, accepted := b.Filter(violations)
	if len(accepted) != 0 {
		t.Errorf("empty baseline accepted %+v", accepted)
	}
	if len(remaining) != len(violations) {
		t.Errorf("remaining = %+v", remaining)
	}
	if b.Stale(m) {
		t.Error("empty baseline should never be stale")
	}
}

func TestStale(t *testing.T) {
	m := testModel(t)
	b := New(m, nil)

	if b.Stale(m) {
		t.Error("fresh baseline should not be stale")
	}

	changed := testModel(t)
	if err := changed.SetLayer("d", 4); err != nil {
		t.Fatal(err)
	}
	if !b.Stale(changed) {
		t.Error("baseline should be stale after a model change")
	}
}

func TestWriteReadFile(t *testing.T) {
	m := testModel(t)
	violations := layering.Check(m).Violations
	b := New(m, violations)
	path := filepath.Join(t.TempDir(), "nested", "baseline.json")

	if err := WriteFile(b, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if back.ModelHash != b.ModelHash {
		t.Errorf("ModelHash = %q, want %q", back.ModelHash, b.ModelHash)
	}
	if !reflect.DeepEqual(back.Entries, b.Entries) {
		t.Errorf("Entries = %v, want %v", back.Entries, b.Entries)
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	if !lcerrors.Is(err, lcerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(bad)
	if !lcerrors.Is(err, lcerrors.ErrCodeInvalidBaseline) {
		t.Errorf("malformed file error = %v, want INVALID_BASELINE", err)
	}
}
