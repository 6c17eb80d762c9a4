package graph

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/HatsuSumi/layercheck/pkg/layering"
	"github.com/HatsuSumi/layercheck/pkg/model"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	for name, layer := range map[string]int{
		"scrollService":          11,
		"scrollAnimationService": 10,
		"scrollStrategyManager":  3,
	} {
		if err := m.SetLayer(name, layer); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.AddFoundation("eventBus"); err != nil {
		t.Fatal(err)
	}
	decls := [][2]any{
		{"scrollService", []string{"eventBus", "scrollAnimationService"}},
		{"scrollStrategyManager", []string{"scrollAnimationService", "legacyBridge"}},
	}
	for _, d := range decls {
		if err := m.DeclareDependencies(d[0].(string), d[1].([]string)); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestFromModel(t *testing.T) {
	m := testModel(t)
	res := layering.Check(m)
	g := FromModel(m, res)

	// Nodes sorted by ID, one per mentioned name.
	wantNodes := []Node{
		{ID: "eventBus", Foundation: true},
		{ID: "legacyBridge", Unknown: true},
		{ID: "scrollAnimationService", Layer: 10},
		{ID: "scrollService", Layer: 11},
		{ID: "scrollStrategyManager", Layer: 3},
	}
	if !reflect.DeepEqual(g.Nodes, wantNodes) {
		t.Errorf("nodes = %+v\nwant %+v", g.Nodes, wantNodes)
	}

	// Edges keep declaration order; the upward edge is flagged.
	wantEdges := []Edge{
		{From: "scrollService", To: "eventBus"},
		{From: "scrollService", To: "scrollAnimationService"},
		{From: "scrollStrategyManager", To: "scrollAnimationService", Violation: true},
		{From: "scrollStrategyManager", To: "legacyBridge"},
	}
	if !reflect.DeepEqual(g.Edges, wantEdges) {
		t.Errorf("edges = %+v\nwant %+v", g.Edges, wantEdges)
	}
}

func TestFromModelDeterministic(t *testing.T) {
	m := testModel(t)
	res := layering.Check(m)

	first, err := Marshal(FromModel(m, res))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Marshal(FromModel(m, res))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("serialization should be byte-identical across runs")
	}
}

func TestRoundTrip(t *testing.T) {
	m := testModel(t)
	g := FromModel(m, layering.Check(m))

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(g, back) {
		t.Errorf("round trip changed the graph:\nin  = %+v\nout = %+v", g, back)
	}
}

func TestWriteReadFile(t *testing.T) {
	m := testModel(t)
	g := FromModel(m, layering.Check(m))
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(g, back) {
		t.Error("file round trip changed the graph")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
