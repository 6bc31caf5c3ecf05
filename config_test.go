package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="64" height="48" tilewidth="12" tileheight="12" infinite="0" nextlayerid="1" nextobjectid="1">
</map>
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(ConfigSources{})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Expected %+v, got %+v", DefaultConfig(), cfg)
	}
}

func TestLoadConfigScript(t *testing.T) {
	path := writeTemp(t, "viewer.star", `
cols = default_cols * 2
rows = 25
scale = viewport_width / 100
`)
	cfg, err := LoadConfig(ConfigSources{ScriptPath: path})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Cols != 2*DefaultCols || cfg.Rows != 25 {
		t.Errorf("Expected %dx25, got %dx%d", 2*DefaultCols, cfg.Cols, cfg.Rows)
	}
	if cfg.InitScale != 8 {
		t.Errorf("Expected scale 8, got %v", cfg.InitScale)
	}
	if cfg.Width != VisualizerWidth {
		t.Errorf("Expected width untouched, got %d", cfg.Width)
	}
}

func TestLoadConfigScriptErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"wrong type", `cols = "many"`, "cols must be an int"},
		{"bad scale", `scale = [1]`, "scale must be a number"},
		{"syntax", `cols = `, "config script"},
		{"invalid value", `rows = 0`, "grid must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "bad.star", tt.src)
			_, err := LoadConfig(ConfigSources{ScriptPath: path})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfigMap(t *testing.T) {
	path := writeTemp(t, "world.tmx", testTMX)

	cfg, err := LoadConfig(ConfigSources{MapPath: path})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Cols != 64 || cfg.Rows != 48 || cfg.InitScale != 12 {
		t.Errorf("Expected 64x48 at scale 12, got %+v", cfg)
	}

	// A script scale wins over the map's tile size.
	script := writeTemp(t, "scale.star", "scale = 5.5\n")
	cfg, err = LoadConfig(ConfigSources{ScriptPath: script, MapPath: path})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.InitScale != 5.5 || cfg.Cols != 64 {
		t.Errorf("Expected 64 cols at scale 5.5, got %+v", cfg)
	}
}

func TestLoadConfigFlagsWin(t *testing.T) {
	script := writeTemp(t, "viewer.star", "cols = 10\nrows = 10\nscale = 3\n")
	cfg, err := LoadConfig(ConfigSources{ScriptPath: script, Cols: 7, Scale: 20})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Cols != 7 || cfg.Rows != 10 || cfg.InitScale != 20 {
		t.Errorf("Expected 7x10 at scale 20, got %+v", cfg)
	}
}

func TestLoadConfigMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(ConfigSources{ScriptPath: filepath.Join(dir, "none.star")}); err == nil {
		t.Errorf("Expected error for missing script")
	}
	if _, err := LoadConfig(ConfigSources{MapPath: filepath.Join(dir, "none.tmx")}); err == nil {
		t.Errorf("Expected error for missing map")
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{Cols: 0, Rows: 1, InitScale: 1, Width: 1, Height: 1},
		{Cols: 1, Rows: -1, InitScale: 1, Width: 1, Height: 1},
		{Cols: 1, Rows: 1, InitScale: 0, Width: 1, Height: 1},
		{Cols: 1, Rows: 1, InitScale: 1, Width: 0, Height: 1},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: Expected error for %+v", i, cfg)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected defaults to be valid, got %v", err)
	}
}
