package canvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MinGridLineScale is the scale below which cell borders are not drawn.
const MinGridLineScale = 6.0

// tileOrigins returns the left edges of every copy of a period of length full,
// shifted by offset, that overlaps [0, extent).
func tileOrigins(offset, full, extent float64) []float64 {
	start := math.Mod(offset, full)
	if start > 0 {
		start -= full
	}
	var out []float64
	for x := start; x < extent; x += full {
		out = append(out, x)
	}
	return out
}

// CellOrigins returns the top-left screen pixel of every visible copy of world cell (wx, wy).
func (c *Camera) CellOrigins(wx, wy int) []PixelPoint {
	cx, cy := c.WorldToCamera(wx, wy)
	fullWidth, fullHeight := c.FullSize()

	var out []PixelPoint
	for _, y := range tileOrigins(float64(cy)*c.scale, fullHeight, c.viewport.Height) {
		for _, x := range tileOrigins(float64(cx)*c.scale, fullWidth, c.viewport.Width) {
			if x+c.scale <= 0 || y+c.scale <= 0 {
				continue
			}
			out = append(out, PixelPoint{X: x, Y: y})
		}
	}
	return out
}

// DrawGrid tiles world (one pixel per cell) across the screen using the camera
// transform, then strokes cell borders when cells are large enough to see them.
func DrawGrid(cam *Camera, screen, world *ebiten.Image, gridColor color.Color) {
	fullWidth, fullHeight := cam.FullSize()
	vw, vh := cam.viewport.Width, cam.viewport.Height
	ox := float64(cam.pan.X) * cam.scale
	oy := float64(cam.pan.Y) * cam.scale

	base := cam.GeoM()
	op := &ebiten.DrawImageOptions{}
	for _, y := range tileOrigins(oy, fullHeight, vh) {
		for _, x := range tileOrigins(ox, fullWidth, vw) {
			op.GeoM = base
			op.GeoM.Translate(x-ox, y-oy)
			screen.DrawImage(world, op)
		}
	}

	if cam.scale < MinGridLineScale {
		return
	}

	// Vertical lines
	for x := math.Mod(ox, cam.scale); x < vw; x += cam.scale {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(vh), 1, gridColor, false)
	}

	// Horizontal lines
	for y := math.Mod(oy, cam.scale); y < vh; y += cam.scale {
		vector.StrokeLine(screen, 0, float32(y), float32(vw), float32(y), 1, gridColor, false)
	}
}

// HighlightCell outlines every visible copy of world cell (wx, wy).
func HighlightCell(cam *Camera, screen *ebiten.Image, wx, wy int, clr color.Color) {
	s := float32(cam.scale)
	for _, p := range cam.CellOrigins(wx, wy) {
		vector.StrokeRect(screen, float32(p.X), float32(p.Y), s, s, 2, clr, false)
	}
}
