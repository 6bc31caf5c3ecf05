package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// DebugPanel shows the last error in the bottom-right corner until cleared.
type DebugPanel struct {
	Error string
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

func (d *DebugPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText DrawTextFunc) {
	if d == nil || d.Error == "" {
		return
	}
	w, h := getScreenSize()
	pw, ph := 300, 80
	x := w - pw - 10
	y := h - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), color.RGBA{40, 40, 40, 220}, false)
	if getFace != nil && drawText != nil {
		if face := getFace(); face != nil {
			drawText(screen, face, d.Error, x+8, y+8, color.RGBA{255, 200, 50, 255})
		}
	}
}
