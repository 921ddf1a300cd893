package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/lanebattle/engine/ai"
	"github.com/1siamBot/lanebattle/engine/command"
	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/sim"
)

const (
	buttonW   = 170
	buttonH   = 26
	buttonGap = 8
)

// HUD is the in-game overlay: coin counter, spend buttons and danger meter
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	BottomBarHeight  int

	Desk    *command.Desk
	Catalog *core.Catalog
}

func NewHUD(sw, sh int, desk *command.Desk) *HUD {
	return &HUD{
		ScreenW:         sw,
		ScreenH:         sh,
		TopBarHeight:    30,
		BottomBarHeight: 44,
		Desk:            desk,
		Catalog:         desk.Catalog,
	}
}

// Draw renders the HUD for the latest snapshot
func (h *HUD) Draw(screen *ebiten.Image, snap sim.Snapshot, paused bool) {
	h.drawTopBar(screen, snap, paused)
	h.drawButtons(screen, snap)
}

func (h *HUD) drawTopBar(screen *ebiten.Image, snap sim.Snapshot, paused bool) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 180}, false)

	f := h.Desk.Faction
	info := command.CoinLabel(snap.Amount(f))
	if base, ok := snap.Base(f); ok {
		threat := ai.ThreatAssessment(snap, h.Catalog, f, base.X, 120)
		info += fmt.Sprintf(" | Base: %s | Threat: %.1f", core.Health{Current: base.Health, Max: base.MaxHealth}, threat)
	}
	if enemy, ok := snap.Base(f.Opponent()); ok {
		info += fmt.Sprintf(" | Enemy base: %s", core.Health{Current: enemy.Health, Max: enemy.MaxHealth})
	}
	info += fmt.Sprintf(" | Tick: %d", snap.Tick)
	if paused {
		info += " | PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 8)
}

func (h *HUD) drawButtons(screen *ebiten.Image, snap sim.Snapshot) {
	y := h.ScreenH - h.BottomBarHeight
	vector.DrawFilledRect(screen, 0, float32(y), float32(h.ScreenW), float32(h.BottomBarHeight), color.RGBA{20, 20, 40, 220}, false)

	for i, b := range h.Desk.Buttons(snap) {
		x, by := h.buttonRect(i)
		clr := color.RGBA{60, 80, 60, 255}
		if !b.Affordable {
			clr = color.RGBA{50, 50, 50, 255}
		}
		vector.DrawFilledRect(screen, float32(x), float32(by), buttonW, buttonH, clr, false)
		vector.StrokeRect(screen, float32(x), float32(by), buttonW, buttonH, 1, color.RGBA{100, 140, 100, 255}, false)
		ebitenutil.DebugPrintAt(screen, b.String(), x+6, by+6)
	}
}

func (h *HUD) buttonRect(i int) (int, int) {
	x := 10 + i*(buttonW+buttonGap)
	y := h.ScreenH - h.BottomBarHeight + (h.BottomBarHeight-buttonH)/2
	return x, y
}

// HandleClick returns the spend slot under the mouse, if any
func (h *HUD) HandleClick(mx, my int) (int, bool) {
	for i := 0; i < len(command.Glyphs) && i < h.Catalog.Len(); i++ {
		x, y := h.buttonRect(i)
		if mx >= x && mx < x+buttonW && my >= y && my < y+buttonH {
			return i, true
		}
	}
	return -1, false
}
