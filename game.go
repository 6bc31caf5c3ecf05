package main

import (
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"

	"torus-view/canvas"
	"torus-view/input"
	"torus-view/ui"
)

type Game struct {
	cfg    Config
	camera *canvas.Camera

	// Sub-systems
	input *input.InputSystem
	ui    *ui.UISystem
	face  font.Face

	world *ebiten.Image

	// dirty is set by the camera whenever the view transform changes.
	dirty     bool
	hover     canvas.CellPoint
	hoverSeen bool

	stateFile string
	store     *ViewStore

	screenshotRequested bool
}

func NewGame(cfg Config, stateFile string, store *ViewStore) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		dirty:     true,
		stateFile: stateFile,
		store:     store,
	}

	cam, err := canvas.NewCamera(cfg.InitScale, g.markDirty, cfg.Cols, cfg.Rows, canvas.Viewport{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
	})
	if err != nil {
		return nil, err
	}
	g.camera = cam

	g.input = input.NewInputSystem(g, input.EbitenSource{})
	g.input.Attach(g.camera)

	g.ui = ui.NewUISystem(g.fontFace, g.ViewportSize, ui.Actions{
		ZoomIn:  func() { g.camera.ZoomBy(0.5, 0.5, ButtonZoomStep) },
		ZoomOut: func() { g.camera.ZoomBy(0.5, 0.5, -ButtonZoomStep) },
		Reset:   g.ResetView,
	}, DrawTextLines)

	return g, nil
}

func (g *Game) markDirty() {
	g.dirty = true
}

func (g *Game) fontFace() font.Face {
	if g.face == nil {
		g.face = LoadUIFont(UIFontPath)
	}
	return g.face
}

// --- input.Host ---

func (g *Game) IsMouseOver(mx, my int) bool { return g.ui.IsMouseOver(mx, my) }
func (g *Game) ViewportSize() (int, int)    { return g.cfg.Width, g.cfg.Height }
func (g *Game) ResetView()                  { g.camera.Reset() }

func (g *Game) RequestScreenshot() {
	g.screenshotRequested = true
	g.dirty = true
}

func (g *Game) SaveState() error {
	if err := SaveState(g.camera, g.stateFile); err != nil {
		g.ui.Debug.SetError(fmt.Sprintf("save failed:\n%v", err))
		g.dirty = true
		return err
	}
	if err := g.store.Remember(g.camera); err != nil {
		log.Printf("Warning: Could not remember view: %v", err)
	}
	log.Println("View saved to", g.stateFile)
	if g.ui.Debug.Error != "" {
		g.ui.Debug.Clear()
		g.dirty = true
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.ui.Click(mx, my)
	}
	g.input.Update()

	mx, my := ebiten.CursorPosition()
	wx, wy := g.camera.ScreenToWorld(float64(mx), float64(my))
	if hover := (canvas.CellPoint{X: wx, Y: wy}); !g.hoverSeen || hover != g.hover {
		g.hover, g.hoverSeen = hover, true
		g.dirty = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// The screen keeps its contents between frames; repaint only on change.
	if !g.dirty {
		return
	}
	g.dirty = false

	if g.world == nil {
		g.world = ebiten.NewImage(g.cfg.Cols, g.cfg.Rows)
		g.world.WritePixels(worldPixels(g.cfg.Cols, g.cfg.Rows))
	}

	screen.Fill(ColorBackground)
	canvas.DrawGrid(g.camera, screen, g.world, ColorGrid)
	canvas.HighlightCell(g.camera, screen, g.hover.X, g.hover.Y, ColorHover)

	pan := g.camera.Pan()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"Grid: %dx%d  Scale: %.1f  Pan: (%d, %d)\n"+
			"Cell: (%d, %d)\n"+
			"Pan: Left Drag  Zoom: Wheel  Reset: R  Save: Ctrl+S",
		g.camera.Cols(), g.camera.Rows(), g.camera.Scale(), pan.X, pan.Y,
		g.hover.X, g.hover.Y,
	), 10, 10)

	g.ui.Draw(screen)

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := saveScreenshot(screen, "screenshot.png"); err != nil {
			log.Println("screenshot error:", err)
		} else {
			log.Println("Screenshot saved as screenshot.png")
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func saveScreenshot(screen *ebiten.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, screen)
}

// worldPixels returns RGBA bytes for a cols x rows image, one pixel per cell:
// a checkerboard with row 0 and column 0 marked so wraparound is visible.
func worldPixels(cols, rows int) []byte {
	pix := make([]byte, 4*cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var c color.RGBA
			switch {
			case x == 0 || y == 0:
				c = ColorAxis
			case (x/CheckerSize+y/CheckerSize)%2 == 0:
				c = ColorCellEven
			default:
				c = ColorCellOdd
			}
			i := 4 * (y*cols + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return pix
}
