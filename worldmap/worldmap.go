// Package worldmap reads grid dimensions from Tiled (.tmx) maps.
package worldmap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lafriks/go-tiled"
)

// Dimensions is the wrapped grid described by a map: one cell per tile.
type Dimensions struct {
	Cols, Rows            int
	TileWidth, TileHeight int
}

// Load parses the TMX file at tmxPath inside fsys.
func Load(fsys fs.FS, tmxPath string) (Dimensions, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return Dimensions{}, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	d := Dimensions{
		Cols:       levelMap.Width,
		Rows:       levelMap.Height,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
	}
	if d.Cols <= 0 || d.Rows <= 0 {
		return Dimensions{}, fmt.Errorf("TMX %s: grid %dx%d is empty", tmxPath, d.Cols, d.Rows)
	}
	return d, nil
}

// LoadFile loads a map from the local file system.
func LoadFile(path string) (Dimensions, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
