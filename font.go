package main

import (
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const UIFontPath = "fonts/Roboto-Regular.ttf"

// LoadUIFont loads a TrueType face from path, falling back to basicfont.Face7x13.
func LoadUIFont(path string) font.Face {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Println("LoadUIFont: using basic font:", err)
		return basicfont.Face7x13
	}
	f, err := opentype.Parse(data)
	if err != nil {
		log.Println("LoadUIFont: parse error, using basic font:", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Println("LoadUIFont: new face error, using basic font:", err)
		return basicfont.Face7x13
	}
	return face
}

// DrawTextLines draws multiline text with its top-left corner at (x, y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	// text.Draw takes the baseline, not the top.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+i*lineHeight, clr)
	}
}
