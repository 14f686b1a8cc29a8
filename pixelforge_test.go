package pixelforge

import (
	"strings"
	"testing"

	"pixelforge/internal/asset"
	"pixelforge/internal/model"
)

func newValidGame() *model.Game {
	g := model.NewGame("demo")
	g.Scenes = append(g.Scenes, &model.Scene{Name: "main"})
	g.StartScene = "main"
	return g
}

func TestCompileValidGameProducesSource(t *testing.T) {
	result, err := Compile(newValidGame(), DefaultCompileOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}
	if !strings.Contains(result.Source, "SCENE_MAIN") {
		t.Errorf("expected generated source to reference SCENE_MAIN, got:\n%s", result.Source)
	}
}

func TestCompileInvalidGameReturnsErrorDiagnostics(t *testing.T) {
	g := model.NewGame("demo") // no scenes, no start scene: fails validation
	result, err := Compile(g, DefaultCompileOptions())
	if err == nil {
		t.Fatal("expected an error for an invalid game")
	}
	if !result.HasErrors() {
		t.Fatal("expected HasErrors() to be true")
	}
}

func TestCompileNilCodegenOptionFallsBackToDefault(t *testing.T) {
	opts := CompileOptions{Codegen: nil}
	result, err := Compile(newValidGame(), opts)
	if err != nil {
		t.Fatalf("Compile with nil Codegen option: %v", err)
	}
	if result.Source == "" {
		t.Error("expected non-empty generated source with default codegen config")
	}
}

func TestAnalyzeDefaultConfigFallback(t *testing.T) {
	var tile [16]byte
	report := Analyze(map[string][][16]byte{"empty": {tile}}, AnalyzeOptions{})
	if len(report.Assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(report.Assets))
	}
}

func TestServiceCompileAndAnalyze(t *testing.T) {
	svc := NewService(DefaultCompileOptions())
	result, err := svc.Compile(newValidGame())
	if err != nil {
		t.Fatalf("Service.Compile: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}

	report := svc.Analyze(map[string][][16]byte{"sprites": {{}}}, DefaultAnalyzeOptions())
	if len(report.Assets) != 1 {
		t.Fatalf("Service.Analyze: got %d assets, want 1", len(report.Assets))
	}
}

func TestAnalyzeScoresAssetWithNoTilesAsExcellent(t *testing.T) {
	report := Analyze(map[string][][16]byte{"bkg": {}}, DefaultAnalyzeOptions())
	aa := report.Assets[0]
	if aa.Grade != asset.GradeExcellent {
		t.Errorf("an asset with no tiles should grade EXCELLENT, got %q", aa.Grade)
	}
}
