package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/HatsuSumi/layercheck/pkg/layering"
)

func sampleResult() layering.Result {
	return layering.Result{
		Violations: []layering.Violation{
			{Source: "scrollStrategyManager", SourceLayer: 3, Dependency: "scrollAnimationService", DependencyLayer: 10},
			{Source: "validationService", SourceLayer: 4, Dependency: "scrollStrategyManager", DependencyLayer: 3},
		},
		Warnings: []layering.Warning{
			{Kind: layering.WarnUnknownDependency, Source: "configService", Name: "legacyBridge"},
		},
	}
}

func TestNew(t *testing.T) {
	r := New("layers.toml", sampleResult(), nil)

	if r.RunID == "" {
		t.Error("RunID should be set")
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
	if r.Model != "layers.toml" {
		t.Errorf("Model = %q", r.Model)
	}
	if len(r.Violations) != 2 || len(r.Warnings) != 1 {
		t.Errorf("findings not carried over: %+v", r)
	}

	other := New("layers.toml", sampleResult(), nil)
	if other.RunID == r.RunID {
		t.Error("run IDs should be unique per report")
	}
}

func TestExitCode(t *testing.T) {
	clean := New("layers.toml", layering.Result{}, nil)
	if clean.ExitCode() != 0 {
		t.Errorf("clean ExitCode = %d, want 0", clean.ExitCode())
	}
	if err := clean.Err(); err != nil {
		t.Errorf("clean Err = %v, want nil", err)
	}

	dirty := New("layers.toml", sampleResult(), nil)
	if dirty.ExitCode() != 1 {
		t.Errorf("dirty ExitCode = %d, want 1", dirty.ExitCode())
	}
	if err := dirty.Err(); err != ErrViolationsFound {
		t.Errorf("dirty Err = %v, want ErrViolationsFound", err)
	}

	// Warnings alone never fail the run.
	warned := New("layers.toml", layering.Result{
		Warnings: []layering.Warning{{Kind: layering.WarnUnknownSource, Name: "ghost"}},
	}, nil)
	if warned.ExitCode() != 0 {
		t.Errorf("warned ExitCode = %d, want 0", warned.ExitCode())
	}

	// Baseline-accepted violations do not count either.
	accepted := New("layers.toml", layering.Result{}, sampleResult().Violations)
	if accepted.ExitCode() != 0 {
		t.Errorf("accepted ExitCode = %d, want 0", accepted.ExitCode())
	}
}

func TestRenderViolations(t *testing.T) {
	var buf bytes.Buffer
	if err := New("layers.toml", sampleResult(), nil).Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		strings.Repeat("=", 80),
		"ERROR - found 2 upward dependencies:",
		"1. scrollStrategyManager (layer 3)",
		"   -> depends on",
		"   scrollAnimationService (layer 10)",
		"   violation: layer 3 → layer 10",
		"2. validationService (layer 4)",
		"warning: configService depends on legacyBridge, which is not in the layer map",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n---\n%s", want, out)
		}
	}

	// Warnings appear before the verdict.
	if strings.Index(out, "warning:") > strings.Index(out, "ERROR") {
		t.Error("warnings should precede the verdict")
	}
}

func TestRenderClean(t *testing.T) {
	var buf bytes.Buffer
	if err := New("layers.toml", layering.Result{}, nil).Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "OK - no upward dependencies found") {
		t.Errorf("missing success line:\n%s", out)
	}
	if strings.Contains(out, "ERROR") {
		t.Errorf("clean report should carry no error block:\n%s", out)
	}
}

func TestRenderAccepted(t *testing.T) {
	accepted := []layering.Violation{
		{Source: "dialogService", SourceLayer: 5, Dependency: "sidebarService", DependencyLayer: 9},
	}

	var buf bytes.Buffer
	if err := New("layers.toml", layering.Result{}, accepted).Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "1 violation accepted by baseline:") {
		t.Errorf("missing baseline note:\n%s", out)
	}
	if !strings.Contains(out, "dialogService -> sidebarService (layer 5 → layer 9)") {
		t.Errorf("missing accepted entry:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New("layers.toml", sampleResult(), nil)
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.RunID != r.RunID {
		t.Errorf("RunID = %q, want %q", decoded.RunID, r.RunID)
	}
	if len(decoded.Violations) != 2 {
		t.Errorf("violations = %d, want 2", len(decoded.Violations))
	}
	if decoded.Violations[0].Dependency != "scrollAnimationService" {
		t.Errorf("violation order not preserved: %+v", decoded.Violations)
	}
}
