package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// slotKeys follow command.Glyphs
var slotKeys = []ebiten.Key{ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY   int
	LeftJustReleased bool
	WheelY           float64

	// Camera
	PanDir float64 // -1 left, +1 right, 0 none

	// Keyboard
	SlotsReleased []int // spend slots whose key was released this frame
	PauseToggled  bool
	RestartPushed bool
	QuitPushed    bool
}

func NewInputState() *InputState {
	return &InputState{}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	_, s.WheelY = ebiten.Wheel()

	s.PanDir = 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		s.PanDir--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		s.PanDir++
	}

	s.SlotsReleased = s.SlotsReleased[:0]
	for i, k := range slotKeys {
		if inpututil.IsKeyJustReleased(k) {
			s.SlotsReleased = append(s.SlotsReleased, i)
		}
	}

	s.PauseToggled = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	s.RestartPushed = inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	s.QuitPushed = inpututil.IsKeyJustPressed(ebiten.KeyF10)
}
