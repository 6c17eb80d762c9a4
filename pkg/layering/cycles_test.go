package layering

import (
	"reflect"
	"testing"
)

func TestFindLayerCycles(t *testing.T) {
	tests := []struct {
		name       string
		layers     map[string]int
		decls      [][2]any
		foundation []string
		want       []Warning
	}{
		{
			name:   "TwoNodeCycle",
			layers: map[string]int{"a": 5, "b": 5},
			decls: [][2]any{
				{"a", []string{"b"}},
				{"b", []string{"a"}},
			},
			want: []Warning{
				{Kind: WarnLayerCycle, Layer: 5, Name: "a → b → a"},
			},
		},
		{
			name:   "ThreeNodeCycle",
			layers: map[string]int{"a": 3, "b": 3, "c": 3},
			decls: [][2]any{
				{"a", []string{"b"}},
				{"b", []string{"c"}},
				{"c", []string{"a"}},
			},
			want: []Warning{
				{Kind: WarnLayerCycle, Layer: 3, Name: "a → b → c → a"},
			},
		},
		{
			name:   "AcyclicSameLayerChain",
			layers: map[string]int{"a": 5, "b": 5, "c": 5},
			decls: [][2]any{
				{"a", []string{"b"}},
				{"b", []string{"c"}},
			},
		},
		{
			name:   "CrossLayerLoopIsNotALayerCycle",
			layers: map[string]int{"a": 5, "b": 6},
			decls: [][2]any{
				{"a", []string{"b"}},
				{"b", []string{"a"}},
			},
		},
		{
			name:       "FoundationEdgeBreaksCycle",
			layers:     map[string]int{"a": 5, "eventBus": 5},
			foundation: []string{"eventBus"},
			decls: [][2]any{
				{"a", []string{"eventBus"}},
				{"eventBus", []string{"a"}},
			},
		},
		{
			name:   "SelfLoop",
			layers: map[string]int{"a": 2},
			decls:  [][2]any{{"a", []string{"a"}}},
			want: []Warning{
				{Kind: WarnLayerCycle, Layer: 2, Name: "a → a"},
			},
		},
		{
			name:   "UnknownNodesIgnored",
			layers: map[string]int{"a": 5},
			decls: [][2]any{
				{"a", []string{"ghost"}},
				{"ghost", []string{"a"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildModel(t, tt.layers, tt.decls, tt.foundation...)
			got := FindLayerCycles(m)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("cycles = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindLayerCyclesDeterministic(t *testing.T) {
	m := buildModel(t,
		map[string]int{"a": 5, "b": 5, "c": 5, "d": 5},
		[][2]any{
			{"a", []string{"b"}},
			{"b", []string{"a"}},
			{"c", []string{"d"}},
			{"d", []string{"c"}},
		},
	)

	first := FindLayerCycles(m)
	second := FindLayerCycles(m)

	if len(first) != 2 {
		t.Fatalf("cycles = %+v, want two", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
