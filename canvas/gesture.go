package canvas

import "math"

const (
	// DragThreshold is the squared pointer travel, in pixels, that turns a press into a drag (5px).
	DragThreshold = 25.0

	// WheelUnit is the wheel magnitude that maps to one unit of scale change.
	WheelUnit = 150.0
	// MinWheelZoom and MaxWheelZoom bound the scale change of a single wheel event.
	MinWheelZoom = 1.0
	MaxWheelZoom = 2.0
)

// GestureState is the pointer gesture the camera is tracking.
type GestureState int

const (
	Idle GestureState = iota
	Pressed
	Dragging
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a pointer press, move, release or leave at an offset inside the viewport.
type PointerEvent struct {
	Button Button
	X, Y   float64
}

// WheelEvent is a wheel turn at an offset inside the viewport. Positive Delta zooms in.
type WheelEvent struct {
	Delta float64
	X, Y  float64
}

// WheelZoomDelta converts a raw wheel magnitude to a signed scale change in
// [MinWheelZoom, MaxWheelZoom], keeping the direction.
func WheelZoomDelta(wheelDelta float64) float64 {
	sign := 1.0
	if wheelDelta < 0 {
		sign = -1
	}
	return sign * math.Max(MinWheelZoom, math.Min(MaxWheelZoom, math.Abs(wheelDelta)/WheelUnit))
}

// OnWheel zooms around the pointer.
func (c *Camera) OnWheel(e WheelEvent) {
	delta := WheelZoomDelta(e.Delta)
	// Half a cell lines the anchor up with cell centers.
	percentX := (e.X + 0.5*c.scale) / c.viewport.Width
	percentY := (e.Y + 0.5*c.scale) / c.viewport.Height
	c.ZoomBy(percentX, percentY, delta)
}

// OnPointerDown arms a drag. Only the primary button pans.
func (c *Camera) OnPointerDown(e PointerEvent) {
	if e.Button != ButtonPrimary {
		return
	}
	c.state = Pressed
	c.dragAnchor = PixelPoint{X: e.X, Y: e.Y}
}

// OnPointerMove pans by the pointer motion once the press has become a drag.
func (c *Camera) OnPointerMove(e PointerEvent) {
	if c.state == Idle {
		return
	}

	dx := e.X - c.dragAnchor.X
	dy := e.Y - c.dragAnchor.Y
	if c.state == Pressed && dx*dx+dy*dy > DragThreshold {
		c.state = Dragging
	}
	if c.state != Dragging {
		return
	}

	c.pixelPan.X += dx
	c.pixelPan.Y += dy
	// Motion is measured from the last move, not from the press point.
	c.dragAnchor = PixelPoint{X: e.X, Y: e.Y}
	c.syncCellsFromPixels()
	c.render()
}

// OnPointerUp ends any gesture.
func (c *Camera) OnPointerUp(PointerEvent) {
	c.state = Idle
}

// OnPointerLeave ends any gesture.
func (c *Camera) OnPointerLeave(PointerEvent) {
	c.state = Idle
}
