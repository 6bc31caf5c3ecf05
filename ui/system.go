package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

const (
	ButtonSize    = 30
	ButtonMargin  = 10
	ButtonSpacing = 10
)

// DrawTextFunc draws s with its top-left corner at (x, y).
type DrawTextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

// Actions are the view controls the buttons trigger.
type Actions struct {
	ZoomIn  func()
	ZoomOut func()
	Reset   func()
}

type UISystem struct {
	buttons       []*Button
	getFontFace   func() font.Face
	getScreenSize func() (int, int)
	drawText      DrawTextFunc
	Debug         *DebugPanel
}

func NewUISystem(getFontFace func() font.Face, getScreenSize func() (int, int), actions Actions, drawText DrawTextFunc) *UISystem {
	ui := &UISystem{
		getFontFace:   getFontFace,
		getScreenSize: getScreenSize,
		drawText:      drawText,
		Debug:         &DebugPanel{},
	}
	// Right to left along the top edge.
	ui.buttons = []*Button{
		{Label: "+", W: ButtonSize, H: ButtonSize, OnClick: actions.ZoomIn},
		{Label: "-", W: ButtonSize, H: ButtonSize, OnClick: actions.ZoomOut},
		{Label: "R", W: ButtonSize, H: ButtonSize, OnClick: actions.Reset},
	}
	ui.updateButtonPositions()
	return ui
}

func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	x := float32(w) - ButtonMargin
	for _, b := range ui.buttons {
		x -= b.W
		b.X = x
		b.Y = ButtonMargin
		x -= ButtonSpacing
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// Click fires the button under (mx, my), if any.
func (ui *UISystem) Click(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		b.Draw(screen, ui.getFontFace, ui.drawText)
	}
	if ui.Debug != nil {
		ui.Debug.Draw(screen, ui.getScreenSize, ui.getFontFace, ui.drawText)
	}
}
