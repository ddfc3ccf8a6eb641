package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var envVars = []string{
	"MAILPREP_INPUT", "MAILPREP_FORMAT",
	"MAILPREP_WORKERS", "MAILPREP_STAGES", "MAILPREP_STEM_MODE",
	"MAILPREP_MAX_FEATURES", "MAILPREP_MAX_DF", "MAILPREP_MIN_DF",
	"MAILPREP_RECORDS", "MAILPREP_VOCABULARY", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input.Path != "" {
		t.Errorf("Input.Path: got %q, want empty", cfg.Input.Path)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Pipeline.Workers: got %d, want %d", cfg.Pipeline.Workers, 4)
	}
	if want := []string{"strip", "stem"}; !reflect.DeepEqual(cfg.Pipeline.Stages, want) {
		t.Errorf("Pipeline.Stages: got %v, want %v", cfg.Pipeline.Stages, want)
	}
	if cfg.Pipeline.StemMode != "token" {
		t.Errorf("Pipeline.StemMode: got %q, want %q", cfg.Pipeline.StemMode, "token")
	}
	if cfg.Features.MaxFeatures != 10000 {
		t.Errorf("Features.MaxFeatures: got %d, want %d", cfg.Features.MaxFeatures, 10000)
	}
	if cfg.Features.MaxDF != 0.95 {
		t.Errorf("Features.MaxDF: got %v, want %v", cfg.Features.MaxDF, 0.95)
	}
	if cfg.Features.MinDF != 2 {
		t.Errorf("Features.MinDF: got %d, want %d", cfg.Features.MinDF, 2)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAILPREP_INPUT", "/data/maildir")
	t.Setenv("MAILPREP_FORMAT", "MAILDIR")
	t.Setenv("MAILPREP_WORKERS", "16")
	t.Setenv("MAILPREP_STAGES", "entities,nouns")
	t.Setenv("MAILPREP_STEM_MODE", "whole")
	t.Setenv("MAILPREP_MAX_FEATURES", "500")
	t.Setenv("MAILPREP_MAX_DF", "0.5")
	t.Setenv("MAILPREP_MIN_DF", "5")
	t.Setenv("MAILPREP_RECORDS", "/out/records.jsonl")
	t.Setenv("MAILPREP_VOCABULARY", "/out/vocab.txt")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input.Path != "/data/maildir" {
		t.Errorf("Input.Path: got %q, want %q", cfg.Input.Path, "/data/maildir")
	}
	if cfg.Input.Format != "maildir" {
		t.Errorf("Input.Format: got %q, want %q", cfg.Input.Format, "maildir")
	}
	if cfg.Pipeline.Workers != 16 {
		t.Errorf("Pipeline.Workers: got %d, want %d", cfg.Pipeline.Workers, 16)
	}
	if want := []string{"entities", "nouns"}; !reflect.DeepEqual(cfg.Pipeline.Stages, want) {
		t.Errorf("Pipeline.Stages: got %v, want %v", cfg.Pipeline.Stages, want)
	}
	if cfg.Pipeline.StemMode != "whole" {
		t.Errorf("Pipeline.StemMode: got %q, want %q", cfg.Pipeline.StemMode, "whole")
	}
	if cfg.Features.MaxFeatures != 500 {
		t.Errorf("Features.MaxFeatures: got %d, want %d", cfg.Features.MaxFeatures, 500)
	}
	if cfg.Features.MaxDF != 0.5 {
		t.Errorf("Features.MaxDF: got %v, want %v", cfg.Features.MaxDF, 0.5)
	}
	if cfg.Features.MinDF != 5 {
		t.Errorf("Features.MinDF: got %d, want %d", cfg.Features.MinDF, 5)
	}
	if cfg.Output.Records != "/out/records.jsonl" {
		t.Errorf("Output.Records: got %q, want %q", cfg.Output.Records, "/out/records.jsonl")
	}
	if cfg.Output.Vocabulary != "/out/vocab.txt" {
		t.Errorf("Output.Vocabulary: got %q, want %q", cfg.Output.Vocabulary, "/out/vocab.txt")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_InvalidNumbersKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAILPREP_WORKERS", "many")
	t.Setenv("MAILPREP_MAX_DF", "most")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Pipeline.Workers: got %d, want %d", cfg.Pipeline.Workers, 4)
	}
	if cfg.Features.MaxDF != 0.95 {
		t.Errorf("Features.MaxDF: got %v, want %v", cfg.Features.MaxDF, 0.95)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAILPREP_MIN_DF", "3")

	content := `
input:
  path: /data/enron
  format: maildir
pipeline:
  workers: 2
  stages: [entities, strip]
features:
  max_features: 2000
  max_df: 0.8
  min_df: 10
logging:
  level: warn
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input.Path != "/data/enron" {
		t.Errorf("Input.Path: got %q, want %q", cfg.Input.Path, "/data/enron")
	}
	if cfg.Pipeline.Workers != 2 {
		t.Errorf("Pipeline.Workers: got %d, want %d", cfg.Pipeline.Workers, 2)
	}
	if want := []string{"entities", "strip"}; !reflect.DeepEqual(cfg.Pipeline.Stages, want) {
		t.Errorf("Pipeline.Stages: got %v, want %v", cfg.Pipeline.Stages, want)
	}
	if cfg.Pipeline.StemMode != "token" {
		t.Errorf("Pipeline.StemMode: got %q, want default %q", cfg.Pipeline.StemMode, "token")
	}
	if cfg.Features.MaxFeatures != 2000 {
		t.Errorf("Features.MaxFeatures: got %d, want %d", cfg.Features.MaxFeatures, 2000)
	}
	if cfg.Features.MinDF != 3 {
		t.Errorf("Features.MinDF: got %d, want env override %d", cfg.Features.MinDF, 3)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	clearEnv(t)

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pipeline: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Input: InputConfig{Path: "x"}}, false},
		{"mbox format", Config{Input: InputConfig{Path: "x", Format: "mbox"}}, false},
		{"missing path", Config{}, true},
		{"unknown format", Config{Input: InputConfig{Path: "x", Format: "pst"}}, true},
		{"negative workers", Config{Input: InputConfig{Path: "x"}, Pipeline: PipelineConfig{Workers: -1}}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("got error %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
