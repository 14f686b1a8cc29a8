package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBuildConfig(t *testing.T) {
	cfg := DefaultBuildConfig()
	if !cfg.Codegen.GBCSupport {
		t.Error("default GBCSupport should be true")
	}
	if cfg.Codegen.DialogBufferSize != 80 {
		t.Errorf("default DialogBufferSize = %d, want 80", cfg.Codegen.DialogBufferSize)
	}
	if cfg.Analyzer.SimilarityThreshold != 0.8 {
		t.Errorf("default SimilarityThreshold = %v, want 0.8", cfg.Analyzer.SimilarityThreshold)
	}
	if cfg.Analyzer.MaxTilesForSimilarity != 256 {
		t.Errorf("default MaxTilesForSimilarity = %d, want 256", cfg.Analyzer.MaxTilesForSimilarity)
	}
}

func TestLoadBuildConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pixelforge.toml")
	contents := `
[codegen]
dialog_buffer_size = 40

[analyzer]
low_entropy_threshold = 0.3
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadBuildConfig(path)
	if err != nil {
		t.Fatalf("LoadBuildConfig: %v", err)
	}
	if cfg.Codegen.DialogBufferSize != 40 {
		t.Errorf("DialogBufferSize = %d, want 40", cfg.Codegen.DialogBufferSize)
	}
	if !cfg.Codegen.GBCSupport {
		t.Error("GBCSupport absent from file should fall back to default true")
	}
	if cfg.Analyzer.LowEntropyThreshold != 0.3 {
		t.Errorf("LowEntropyThreshold = %v, want 0.3", cfg.Analyzer.LowEntropyThreshold)
	}
	if cfg.Analyzer.MaxTilesForSimilarity != 256 {
		t.Errorf("MaxTilesForSimilarity absent from file should fall back to default 256")
	}
}

func TestLoadBuildConfigMissingFile(t *testing.T) {
	if _, err := LoadBuildConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error loading a nonexistent file")
	}
}

func TestToCodegenConfigAndToAssetConfig(t *testing.T) {
	cfg := DefaultBuildConfig()
	cg := cfg.Codegen.ToCodegenConfig()
	if cg.DialogBufferSize != cfg.Codegen.DialogBufferSize {
		t.Errorf("ToCodegenConfig DialogBufferSize = %d, want %d", cg.DialogBufferSize, cfg.Codegen.DialogBufferSize)
	}
	ac := cfg.Analyzer.ToAssetConfig()
	if ac.SimilarityThreshold != cfg.Analyzer.SimilarityThreshold {
		t.Errorf("ToAssetConfig SimilarityThreshold = %v, want %v", ac.SimilarityThreshold, cfg.Analyzer.SimilarityThreshold)
	}
}

func TestLoadAssetManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.yaml")
	contents := `
assets:
  - name: player
    path: player.png
    palette: sprites
  - name: tiles
    path: tiles.png
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadAssetManifest(path)
	if err != nil {
		t.Fatalf("LoadAssetManifest: %v", err)
	}
	if len(m.Assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(m.Assets))
	}
	if m.Assets[0].Name != "player" || m.Assets[0].Palette != "sprites" {
		t.Errorf("assets[0] = %+v, want name=player palette=sprites", m.Assets[0])
	}
	if m.Assets[1].Palette != "" {
		t.Errorf("assets[1].Palette = %q, want empty (omitted in source)", m.Assets[1].Palette)
	}
}

func TestLoadAssetManifestMissingFile(t *testing.T) {
	if _, err := LoadAssetManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error loading a nonexistent file")
	}
}
