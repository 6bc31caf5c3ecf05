package canvas

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrInvalidCamera is returned by NewCamera for non-positive dimensions or scale.
var ErrInvalidCamera = errors.New("invalid camera parameters")

// MaxZoomFactor bounds scale to [initScale, MaxZoomFactor*initScale].
const MaxZoomFactor = 10.0

// Viewport is the on-screen size of the view in pixels.
type Viewport struct {
	Width, Height float64
}

// CellPoint is a cell coordinate on the wrapped grid.
type CellPoint struct {
	X, Y int
}

// PixelPoint is a position in screen pixels.
type PixelPoint struct {
	X, Y float64
}

// Camera controls the viewport over a grid whose columns and rows wrap around.
//
// Pan is kept twice: in cells and in pixels. Drags accumulate in pixels and derive
// cells from them; zoom and PanBy work in cells and derive pixels.
type Camera struct {
	cols, rows int
	viewport   Viewport
	render     func()

	initScale float64
	scale     float64

	pan      CellPoint
	pixelPan PixelPoint

	// Gesture state
	state      GestureState
	dragAnchor PixelPoint
}

// NewCamera builds a camera for a cols x rows grid shown in viewport. render is
// called with no arguments every time the transform changes; it may be nil.
func NewCamera(initScale float64, render func(), cols, rows int, viewport Viewport) (*Camera, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidCamera, cols, rows)
	}
	if !(initScale > 0) || math.IsInf(initScale, 0) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidCamera, initScale)
	}
	if !(viewport.Width > 0) || !(viewport.Height > 0) {
		return nil, fmt.Errorf("%w: viewport %vx%v", ErrInvalidCamera, viewport.Width, viewport.Height)
	}
	if render == nil {
		render = func() {}
	}
	return &Camera{
		cols:      cols,
		rows:      rows,
		viewport:  viewport,
		render:    render,
		initScale: initScale,
		scale:     initScale,
	}, nil
}

func (c *Camera) Cols() int            { return c.cols }
func (c *Camera) Rows() int            { return c.rows }
func (c *Camera) Viewport() Viewport   { return c.viewport }
func (c *Camera) InitScale() float64   { return c.initScale }
func (c *Camera) Scale() float64       { return c.scale }
func (c *Camera) Pan() CellPoint       { return c.pan }
func (c *Camera) PixelPan() PixelPoint { return c.pixelPan }
func (c *Camera) State() GestureState  { return c.state }
func (c *Camera) IsDragging() bool     { return c.state == Dragging }
func (c *Camera) IsPointerDown() bool  { return c.state != Idle }
func (c *Camera) MaxScale() float64    { return MaxZoomFactor * c.initScale }

// FullSize is the pixel size of one full period of the grid at the current scale.
func (c *Camera) FullSize() (w, h float64) {
	return c.scale * float64(c.cols), c.scale * float64(c.rows)
}

// Reset returns the camera to its initial scale and pan.
func (c *Camera) Reset() {
	c.scale = c.initScale
	c.pan = CellPoint{}
	c.syncPixelsFromCells()
	c.render()
}

// SetView restores a view, typically one read back from a saved state.
// Scale is clamped and pan wrapped exactly as the gesture paths do.
func (c *Camera) SetView(scale float64, panX, panY int) {
	c.scale = c.clampScale(scale)
	c.pan = CellPoint{X: wrapInt(panX, c.cols), Y: wrapInt(panY, c.rows)}
	c.syncPixelsFromCells()
	c.render()
}

// ScreenToWorld returns the grid cell drawn at screen pixel (sx, sy).
// Any input, including negative or off-screen positions, maps into the grid.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy int) {
	cx := int(math.Floor(sx / c.scale))
	cy := int(math.Floor(sy / c.scale))
	return wrapInt(cx-c.pan.X, c.cols), wrapInt(cy-c.pan.Y, c.rows)
}

// WorldToCamera maps a world cell into the camera's wrapped cell frame.
// Multiply by Scale to get screen pixels.
func (c *Camera) WorldToCamera(wx, wy int) (cx, cy int) {
	return wrapInt(wx+c.pan.X, c.cols), wrapInt(wy+c.pan.Y, c.rows)
}

// ZoomBy changes scale by delta while keeping the cell under the anchor in place.
// anchorX and anchorY are fractions of the viewport width and height.
func (c *Camera) ZoomBy(anchorX, anchorY, delta float64) {
	centerX, centerY := c.ScreenToWorld(anchorX*c.viewport.Width, anchorY*c.viewport.Height)

	c.scale = c.clampScale(c.scale + delta)

	viewWidth := c.viewport.Width / c.scale
	viewHeight := c.viewport.Height / c.scale
	viewLeft := float64(centerX) - anchorX*viewWidth
	viewTop := float64(centerY) - anchorY*viewHeight

	// -0.5 recenters on the anchor cell.
	c.pan.X = roundWrap(-viewLeft-0.5, c.cols)
	c.pan.Y = roundWrap(-viewTop-0.5, c.rows)

	c.syncPixelsFromCells()
	c.render()
}

// PanBy shifts the view by whole cells.
func (c *Camera) PanBy(dx, dy int) {
	c.pan.X = wrapInt(c.pan.X+dx, c.cols)
	c.pan.Y = wrapInt(c.pan.Y+dy, c.rows)
	c.syncPixelsFromCells()
	c.render()
}

// GeoM is the transform the renderer applies to a one-pixel-per-cell world image
// positioned at the wrapped origin.
func (c *Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(c.scale, c.scale)
	m.Translate(float64(c.pan.X)*c.scale, float64(c.pan.Y)*c.scale)
	return m
}

func (c *Camera) clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return c.initScale
	}
	return math.Min(c.MaxScale(), math.Max(c.initScale, s))
}

// syncPixelsFromCells makes pan the source of truth.
func (c *Camera) syncPixelsFromCells() {
	c.pixelPan = PixelPoint{
		X: float64(c.pan.X) * c.scale,
		Y: float64(c.pan.Y) * c.scale,
	}
}

// syncCellsFromPixels makes pixelPan the source of truth.
func (c *Camera) syncCellsFromPixels() {
	fullWidth, fullHeight := c.FullSize()
	c.pixelPan.X = wrapFloat(c.pixelPan.X, fullWidth)
	c.pixelPan.Y = wrapFloat(c.pixelPan.Y, fullHeight)
	c.pan.X = wrapInt(int(math.Round(c.pixelPan.X/c.scale)), c.cols)
	c.pan.Y = wrapInt(int(math.Round(c.pixelPan.Y/c.scale)), c.rows)
}

func wrapInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func wrapFloat(v, n float64) float64 {
	v = math.Mod(v, n)
	if v < 0 {
		v += n
	}
	// -tiny + n can round up to n itself
	if v >= n {
		v = 0
	}
	return v
}

func roundWrap(v float64, n int) int {
	return wrapInt(int(math.Round(wrapFloat(v, float64(n)))), n)
}
