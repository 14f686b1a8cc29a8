// Package config loads the ambient TOML build configuration and YAML asset
// manifests that sit around the core compiler/analyzer, using the same
// libraries the rest of this dependency graph already pulls in.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"pixelforge/internal/asset"
	"pixelforge/internal/codegen"
)

// CodegenConfig mirrors codegen.Config for TOML decoding; ToCodegenConfig
// converts it once the file is parsed.
type CodegenConfig struct {
	GBCSupport             bool `toml:"gbc_support"`
	WarnOnValidationErrors bool `toml:"warn_on_validation_errors"`
	DialogBufferSize       int  `toml:"dialog_buffer_size"`
}

// AnalyzerConfig mirrors asset.Config for TOML decoding.
type AnalyzerConfig struct {
	LowEntropyThreshold   float64 `toml:"low_entropy_threshold"`
	SimilarityThreshold   float64 `toml:"similarity_threshold"`
	MaxTilesForSimilarity int     `toml:"max_tiles_for_similarity"`
}

// BuildConfig is the root of a project's pixelforge.toml.
type BuildConfig struct {
	Codegen  CodegenConfig  `toml:"codegen"`
	Analyzer AnalyzerConfig `toml:"analyzer"`
}

// DefaultBuildConfig mirrors the in-code defaults from codegen.DefaultConfig
// and asset.DefaultConfig, so a project with no pixelforge.toml still
// compiles identically to one with an explicit but default-valued file.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Codegen: CodegenConfig{GBCSupport: true, WarnOnValidationErrors: true, DialogBufferSize: 80},
		Analyzer: AnalyzerConfig{LowEntropyThreshold: 0.5, SimilarityThreshold: 0.8, MaxTilesForSimilarity: 256},
	}
}

// LoadBuildConfig decodes a pixelforge.toml at path, falling back to
// DefaultBuildConfig()'s values for any field absent from the file.
func LoadBuildConfig(path string) (BuildConfig, error) {
	cfg := DefaultBuildConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return BuildConfig{}, err
	}
	return cfg, nil
}

func (c CodegenConfig) ToCodegenConfig() *codegen.Config {
	return &codegen.Config{
		GBCSupport:             c.GBCSupport,
		WarnOnValidationErrors: c.WarnOnValidationErrors,
		DialogBufferSize:       c.DialogBufferSize,
	}
}

func (c AnalyzerConfig) ToAssetConfig() asset.Config {
	return asset.Config{
		LowEntropyThreshold:   c.LowEntropyThreshold,
		SimilarityThreshold:   c.SimilarityThreshold,
		MaxTilesForSimilarity: c.MaxTilesForSimilarity,
	}
}

// AssetManifestEntry names one asset's tile-data source file and optional
// declared palette type, as authored in a project's assets.yaml.
type AssetManifestEntry struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Palette string `yaml:"palette,omitempty"`
}

// AssetManifest is the root of a project's assets.yaml.
type AssetManifest struct {
	Assets []AssetManifestEntry `yaml:"assets"`
}

// LoadAssetManifest decodes an assets.yaml at path.
func LoadAssetManifest(path string) (AssetManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AssetManifest{}, err
	}
	var m AssetManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return AssetManifest{}, err
	}
	return m, nil
}
