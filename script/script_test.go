package script

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExecReturnsGlobals(t *testing.T) {
	src := `
cols = default_cols * 2
rows = 48
scale = viewport_width / cols
name = "torus"
size = (cols, rows)
enabled = True
def helper():
    return 1
`
	out, err := Exec("test.star", src, map[string]interface{}{
		"default_cols":   32,
		"viewport_width": 640.0,
	})
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	if out["cols"] != 64 {
		t.Errorf("Expected cols 64, got %v", out["cols"])
	}
	if out["rows"] != 48 {
		t.Errorf("Expected rows 48, got %v", out["rows"])
	}
	if out["scale"] != 10.0 {
		t.Errorf("Expected scale 10.0, got %v", out["scale"])
	}
	if out["name"] != "torus" || out["enabled"] != true {
		t.Errorf("Unexpected name/enabled: %v %v", out["name"], out["enabled"])
	}
	if !reflect.DeepEqual(out["size"], []interface{}{64, 48}) {
		t.Errorf("Expected size [64 48], got %v", out["size"])
	}
	if _, ok := out["helper"]; ok {
		t.Errorf("Expected functions to be left out")
	}
	if _, ok := out["default_cols"]; ok {
		t.Errorf("Expected predeclared inputs to be left out")
	}
}

func TestExecSyntaxError(t *testing.T) {
	if _, err := Exec("bad.star", "cols = = 3", nil); err == nil {
		t.Errorf("Expected syntax error")
	}
}

func TestExecRejectsUnsupportedInput(t *testing.T) {
	_, err := Exec("x.star", "a = 1", map[string]interface{}{"bad": []int{1}})
	if err == nil {
		t.Errorf("Expected error for unsupported input type")
	}
}

func TestExecFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.star")
	if err := os.WriteFile(path, []byte("rows = 7\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := ExecFile(path, nil)
	if err != nil {
		t.Fatalf("ExecFile failed: %v", err)
	}
	if out["rows"] != 7 {
		t.Errorf("Expected rows 7, got %v", out["rows"])
	}

	if _, err := ExecFile(filepath.Join(t.TempDir(), "missing.star"), nil); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
