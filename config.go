package main

import (
	"fmt"
	"image/color"

	"torus-view/script"
	"torus-view/worldmap"
)

const (
	AppName = "torus-view"

	// --- Viewport ---
	VisualizerWidth  = 800
	VisualizerHeight = 600

	// --- Grid & Camera ---
	DefaultCols      = 80
	DefaultRows      = 60
	DefaultInitScale = 10.0
	ButtonZoomStep   = 1.0

	// --- World image ---
	CheckerSize = 8 // cells per checker square

	// --- Files ---
	DefaultStateFile = "view.yaml"
	RememberedItem   = "view"
)

var (
	// --- Colors ---
	ColorBackground = color.RGBA{30, 30, 35, 255}
	ColorCellEven   = color.RGBA{45, 45, 50, 255}
	ColorCellOdd    = color.RGBA{55, 55, 62, 255}
	ColorAxis       = color.RGBA{120, 60, 60, 255}
	ColorGrid       = color.RGBA{255, 255, 255, 20}
	ColorHover      = color.RGBA{0, 120, 255, 255}
)

// Config is the resolved startup configuration.
type Config struct {
	Cols, Rows    int
	InitScale     float64
	Width, Height int
}

func DefaultConfig() Config {
	return Config{
		Cols:      DefaultCols,
		Rows:      DefaultRows,
		InitScale: DefaultInitScale,
		Width:     VisualizerWidth,
		Height:    VisualizerHeight,
	}
}

func (c Config) Validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("grid must be positive, got %dx%d", c.Cols, c.Rows)
	}
	if !(c.InitScale > 0) {
		return fmt.Errorf("scale must be positive, got %v", c.InitScale)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// ConfigSources lists where configuration comes from. Later sources win:
// defaults, then the script, then the map, then non-zero flag values.
type ConfigSources struct {
	ScriptPath string
	MapPath    string
	Cols, Rows int
	Scale      float64
}

func LoadConfig(src ConfigSources) (Config, error) {
	cfg := DefaultConfig()
	scaleSet := false

	if src.ScriptPath != "" {
		var err error
		scaleSet, err = applyScript(&cfg, src.ScriptPath)
		if err != nil {
			return Config{}, fmt.Errorf("config script: %w", err)
		}
	}

	if src.MapPath != "" {
		d, err := worldmap.LoadFile(src.MapPath)
		if err != nil {
			return Config{}, err
		}
		cfg.Cols, cfg.Rows = d.Cols, d.Rows
		if !scaleSet && d.TileWidth > 0 {
			cfg.InitScale = float64(d.TileWidth)
		}
	}

	if src.Cols > 0 {
		cfg.Cols = src.Cols
	}
	if src.Rows > 0 {
		cfg.Rows = src.Rows
	}
	if src.Scale > 0 {
		cfg.InitScale = src.Scale
	}

	return cfg, cfg.Validate()
}

// applyScript runs a Starlark config script. The script sees the current values
// as default_cols, default_rows, default_scale, viewport_width and viewport_height,
// and may set cols, rows, scale, width and height.
func applyScript(cfg *Config, path string) (scaleSet bool, err error) {
	out, err := script.ExecFile(path, map[string]interface{}{
		"default_cols":    cfg.Cols,
		"default_rows":    cfg.Rows,
		"default_scale":   cfg.InitScale,
		"viewport_width":  cfg.Width,
		"viewport_height": cfg.Height,
	})
	if err != nil {
		return false, err
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"cols", &cfg.Cols},
		{"rows", &cfg.Rows},
		{"width", &cfg.Width},
		{"height", &cfg.Height},
	}
	for _, f := range ints {
		v, ok := out[f.name]
		if !ok {
			continue
		}
		n, ok := v.(int)
		if !ok {
			return false, fmt.Errorf("%s must be an int, got %T", f.name, v)
		}
		*f.dst = n
	}

	if v, ok := out["scale"]; ok {
		switch s := v.(type) {
		case int:
			cfg.InitScale = float64(s)
		case float64:
			cfg.InitScale = s
		default:
			return false, fmt.Errorf("scale must be a number, got %T", v)
		}
		scaleSet = true
	}
	return scaleSet, nil
}
