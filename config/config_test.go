package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.GestaltCommand != "gestalt" {
		t.Errorf("GestaltCommand = %q", cfg.GestaltCommand)
	}
	if cfg.IncludeColors != "colors.yml" || cfg.IncludeWidgets != "widgets.yml" {
		t.Errorf("include names = %q / %q", cfg.IncludeColors, cfg.IncludeWidgets)
	}
	if !cfg.Recursive || cfg.Force {
		t.Errorf("batch defaults = recursive:%v force:%v", cfg.Recursive, cfg.Force)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adl2gestalt.toml")
	doc := `
output_dir = "out"
gestalt_command = "/opt/gestalt/bin/gestalt"
catalog_path = "history.db"
recursive = false
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.OutputDir = "out"
	want.GestaltCommand = "/opt/gestalt/bin/gestalt"
	want.CatalogPath = "history.db"
	want.Recursive = false
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingExplicitPathIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing file should be an error")
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(old)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("output_dir = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should be an error")
	}
}
