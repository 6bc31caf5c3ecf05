package input

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"torus-view/canvas"
)

// WheelDeltaPerNotch scales Ebiten's wheel ticks to classic wheel-delta units.
const WheelDeltaPerNotch = 120.0

// Source is the device state polled once per tick.
type Source interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	Wheel() (float64, float64)
	IsKeyPressed(k ebiten.Key) bool
	IsKeyJustPressed(k ebiten.Key) bool
}

// EbitenSource reads the live Ebiten input state.
type EbitenSource struct{}

func (EbitenSource) CursorPosition() (int, int)                     { return ebiten.CursorPosition() }
func (EbitenSource) IsMouseButtonPressed(b ebiten.MouseButton) bool { return ebiten.IsMouseButtonPressed(b) }
func (EbitenSource) Wheel() (float64, float64)                      { return ebiten.Wheel() }
func (EbitenSource) IsKeyPressed(k ebiten.Key) bool                 { return ebiten.IsKeyPressed(k) }
func (EbitenSource) IsKeyJustPressed(k ebiten.Key) bool             { return inpututil.IsKeyJustPressed(k) }

// Handler receives pointer gestures. *canvas.Camera implements it.
type Handler interface {
	OnPointerDown(e canvas.PointerEvent)
	OnPointerMove(e canvas.PointerEvent)
	OnPointerUp(e canvas.PointerEvent)
	OnPointerLeave(e canvas.PointerEvent)
	OnWheel(e canvas.WheelEvent)
}

// Host defines the callbacks the input system needs from the main game.
type Host interface {
	IsMouseOver(mx, my int) bool
	ViewportSize() (int, int)
	RequestScreenshot()
	SaveState() error
	ResetView()
}

var buttons = []struct {
	mouse  ebiten.MouseButton
	button canvas.Button
}{
	{ebiten.MouseButtonLeft, canvas.ButtonPrimary},
	{ebiten.MouseButtonMiddle, canvas.ButtonMiddle},
	{ebiten.MouseButtonRight, canvas.ButtonSecondary},
}

type InputSystem struct {
	host    Host
	src     Source
	handler Handler

	// Previous tick
	hasLast    bool
	lastMouseX int
	lastMouseY int
	inside     bool
	held       [3]bool
}

func NewInputSystem(h Host, src Source) *InputSystem {
	return &InputSystem{host: h, src: src}
}

// Attach routes pointer and wheel events to h. Passing nil detaches.
func (is *InputSystem) Attach(h Handler) {
	is.handler = h
}

func (is *InputSystem) Update() {
	is.handleControlKeys()
	is.handlePointer()
}

func (is *InputSystem) handleControlKeys() {
	// --- Screenshot ---
	if is.src.IsKeyJustPressed(ebiten.KeyF12) {
		is.host.RequestScreenshot()
	}

	// --- Save State ---
	if is.src.IsKeyPressed(ebiten.KeyControl) && is.src.IsKeyJustPressed(ebiten.KeyS) {
		if err := is.host.SaveState(); err != nil {
			log.Println("save state:", err)
		}
	}

	// --- Reset View ---
	if is.src.IsKeyJustPressed(ebiten.KeyR) && !is.src.IsKeyPressed(ebiten.KeyControl) {
		is.host.ResetView()
	}
}

func (is *InputSystem) handlePointer() {
	mx, my := is.src.CursorPosition()
	w, h := is.host.ViewportSize()
	inside := mx >= 0 && my >= 0 && mx < w && my < h
	moved := is.hasLast && (mx != is.lastMouseX || my != is.lastMouseY)

	var pressed [3]bool
	for i, b := range buttons {
		pressed[i] = is.src.IsMouseButtonPressed(b.mouse)
	}
	_, wheelY := is.src.Wheel()

	defer func() {
		is.hasLast = true
		is.lastMouseX, is.lastMouseY = mx, my
		is.inside = inside
		is.held = pressed
	}()

	if is.handler == nil {
		return
	}

	pos := func(b canvas.Button) canvas.PointerEvent {
		return canvas.PointerEvent{Button: b, X: float64(mx), Y: float64(my)}
	}

	if !inside {
		if is.inside {
			is.handler.OnPointerLeave(pos(canvas.ButtonPrimary))
		}
		return
	}

	if moved {
		is.handler.OnPointerMove(pos(canvas.ButtonPrimary))
	}

	overUI := is.host.IsMouseOver(mx, my)
	for i, b := range buttons {
		switch {
		case pressed[i] && !is.held[i] && !overUI:
			is.handler.OnPointerDown(pos(b.button))
		case !pressed[i] && is.held[i]:
			is.handler.OnPointerUp(pos(b.button))
		}
	}

	if wheelY != 0 && !overUI {
		is.handler.OnWheel(canvas.WheelEvent{
			Delta: wheelY * WheelDeltaPerNotch,
			X:     float64(mx),
			Y:     float64(my),
		})
	}
}
