package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var src ConfigSources
	var stateFile string
	var restore bool
	flag.StringVar(&src.ScriptPath, "config", "", "Starlark config script (sets cols, rows, scale, width, height).")
	flag.StringVar(&src.MapPath, "map", "", "Tiled .tmx map whose size sets the grid.")
	flag.IntVar(&src.Cols, "cols", 0, "Grid columns (overrides config and map).")
	flag.IntVar(&src.Rows, "rows", 0, "Grid rows (overrides config and map).")
	flag.Float64Var(&src.Scale, "scale", 0, "Initial pixels per cell (overrides config and map).")
	flag.StringVar(&stateFile, "state", DefaultStateFile, "View state file, loaded at startup if present and written by Ctrl+S.")
	flag.BoolVar(&restore, "restore", false, "Restore the view remembered from the last session.")
	flag.Parse()

	cfg, err := LoadConfig(src)
	if err != nil {
		log.Fatal(err)
	}

	store, err := OpenViewStore(AppName)
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	g, err := NewGame(cfg, stateFile, store)
	if err != nil {
		log.Fatal(err)
	}

	if restore {
		if ok, err := store.Restore(g.camera); err != nil {
			log.Printf("Warning: Could not restore view: %v", err)
		} else if !ok {
			log.Println("No remembered view for this grid")
		}
	} else if err := LoadState(g.camera, stateFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Could not load %s: %v", stateFile, err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Torus View")
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	if err := store.Remember(g.camera); err != nil {
		log.Printf("Warning: Could not remember view: %v", err)
	}
}
