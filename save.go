package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/quasilyte/gdata"
	"gopkg.in/yaml.v3"

	"torus-view/canvas"
)

type PanState struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ViewState is a saved camera view. Cols and Rows pin it to one grid size.
type ViewState struct {
	Cols  int      `yaml:"cols"`
	Rows  int      `yaml:"rows"`
	Scale float64  `yaml:"scale"`
	Pan   PanState `yaml:"pan"`
}

func CaptureView(cam *canvas.Camera) ViewState {
	pan := cam.Pan()
	return ViewState{
		Cols:  cam.Cols(),
		Rows:  cam.Rows(),
		Scale: cam.Scale(),
		Pan:   PanState{X: pan.X, Y: pan.Y},
	}
}

func ApplyView(cam *canvas.Camera, state ViewState) error {
	if state.Cols != cam.Cols() || state.Rows != cam.Rows() {
		return fmt.Errorf("view is for a %dx%d grid, camera is %dx%d", state.Cols, state.Rows, cam.Cols(), cam.Rows())
	}
	cam.SetView(state.Scale, state.Pan.X, state.Pan.Y)
	return nil
}

func EncodeView(state ViewState) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeView(data []byte) (ViewState, error) {
	var state ViewState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return ViewState{}, err
	}
	return state, nil
}

func SaveState(cam *canvas.Camera, filename string) error {
	data, err := EncodeView(CaptureView(cam))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func LoadState(cam *canvas.Camera, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	state, err := DecodeView(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	return ApplyView(cam, state)
}

// itemStore is the part of gdata.Manager the view store needs.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// ViewStore remembers the last view between sessions. A nil store does nothing.
type ViewStore struct {
	items itemStore
}

func OpenViewStore(appName string) (*ViewStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, err
	}
	return &ViewStore{items: m}, nil
}

func (s *ViewStore) Remember(cam *canvas.Camera) error {
	if s == nil || s.items == nil {
		return nil
	}
	data, err := EncodeView(CaptureView(cam))
	if err != nil {
		return err
	}
	return s.items.SaveItem(RememberedItem, data)
}

// Restore applies the remembered view. It reports false when nothing was remembered.
func (s *ViewStore) Restore(cam *canvas.Camera) (bool, error) {
	if s == nil || s.items == nil {
		return false, nil
	}
	data, err := s.items.LoadItem(RememberedItem)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	state, err := DecodeView(data)
	if err != nil {
		return false, err
	}
	if err := ApplyView(cam, state); err != nil {
		log.Printf("Warning: remembered view ignored: %v", err)
		return false, nil
	}
	return true, nil
}
