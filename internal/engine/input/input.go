// Package input handles SDL2 input events and turns them into orbit camera
// input: left-button drag, wheel and the WASDQE key state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/bounce/internal/engine/camera"
)

// Frame is the input gathered by one Update.
type Frame struct {
	Quit           bool
	Resized        bool
	DragDX, DragDY float32
	Scroll         float32
	Keys           camera.KeyState
	Pressed        []string // SDL key names pressed this frame, for hotkeys
}

// Input tracks held keys and the drag button across frames.
type Input struct {
	frame    Frame
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		frame: Frame{Pressed: make([]string, 0, 8)},
	}
}

// Update polls SDL events and returns the input of this frame. Key state
// persists across frames; deltas and presses do not.
func (i *Input) Update() Frame {
	f := &i.frame
	f.Quit, f.Resized = false, false
	f.DragDX, f.DragDY, f.Scroll = 0, 0, 0
	f.Pressed = f.Pressed[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			f.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				f.Resized = true
			}

		case *sdl.KeyboardEvent:
			down := e.Type == sdl.KEYDOWN
			if down && e.Repeat == 0 {
				f.Pressed = append(f.Pressed, sdl.GetKeyName(e.Keysym.Sym))
				if e.Keysym.Sym == sdl.K_ESCAPE {
					f.Quit = true
				}
			}
			setKey(&f.Keys, e.Keysym.Scancode, down)

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				f.DragDX += float32(e.XRel)
				f.DragDY += float32(e.YRel)
			}

		case *sdl.MouseWheelEvent:
			f.Scroll += float32(e.Y)
		}
	}

	return *f
}

// setKey maps the W/S, A/D, Q/E layout onto the key state.
func setKey(k *camera.KeyState, sc sdl.Scancode, down bool) {
	switch sc {
	case sdl.SCANCODE_W:
		k.Forward = down
	case sdl.SCANCODE_S:
		k.Back = down
	case sdl.SCANCODE_A:
		k.Left = down
	case sdl.SCANCODE_D:
		k.Right = down
	case sdl.SCANCODE_E:
		k.Up = down
	case sdl.SCANCODE_Q:
		k.Down = down
	}
}
