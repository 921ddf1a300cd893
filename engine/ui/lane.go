package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/render"
	"github.com/1siamBot/lanebattle/engine/sim"
)

var (
	groundColor   = color.RGBA{60, 70, 50, 255}
	baseColor     = color.RGBA{128, 128, 128, 255}
	friendlyColor = color.RGBA{60, 120, 255, 255}
	enemyColor    = color.RGBA{230, 70, 60, 255}
	windUpColor   = color.RGBA{255, 220, 0, 255}
	recoveryColor = color.RGBA{200, 200, 200, 255}
)

// LaneView draws bases and units from a snapshot
type LaneView struct {
	Camera *render.Camera
}

func NewLaneView(cam *render.Camera) *LaneView {
	return &LaneView{Camera: cam}
}

// Draw renders the lane
func (v *LaneView) Draw(screen *ebiten.Image, snap sim.Snapshot) {
	cam := v.Camera
	_, ly := cam.WorldToScreen(0, 0)
	vector.DrawFilledRect(screen, 0, float32(ly)+20, float32(cam.ScreenW), 6, groundColor, false)

	for _, e := range snap.Entities {
		sx, sy := cam.WorldToScreen(e.X, e.Y)
		if e.Kind == core.KindBase {
			v.drawBase(screen, e, float32(sx), float32(sy))
			continue
		}
		v.drawUnit(screen, e, float32(sx), float32(sy))
	}
}

func (v *LaneView) drawBase(screen *ebiten.Image, e sim.EntityView, sx, sy float32) {
	w := float32(25 * v.Camera.Zoom)
	h := float32(75 * v.Camera.Zoom)
	vector.DrawFilledRect(screen, sx-w/2, sy+20-h, w, h, baseColor, false)
	vector.StrokeRect(screen, sx-w/2, sy+20-h, w, h, 2, factionColor(e.Faction), false)
	drawHealthBar(screen, sx, sy+14-h, w+10, e)
}

func (v *LaneView) drawUnit(screen *ebiten.Image, e sim.EntityView, sx, sy float32) {
	r := float32(6 * v.Camera.Zoom)
	if r < 3 {
		r = 3
	}
	vector.DrawFilledCircle(screen, sx, sy, r, factionColor(e.Faction), false)
	switch e.Attack {
	case core.AttackWindUp{}.Label():
		vector.StrokeCircle(screen, sx, sy, r+2, 2, windUpColor, false)
	case core.AttackRecovery{}.Label():
		vector.StrokeCircle(screen, sx, sy, r+2, 1, recoveryColor, false)
	}
	drawHealthBar(screen, sx, sy-r-6, 2*r+6, e)
}

func drawHealthBar(screen *ebiten.Image, cx, y, w float32, e sim.EntityView) {
	hp := core.Health{Current: e.Health, Max: e.MaxHealth}
	ratio := float32(hp.Ratio())
	barColor := color.RGBA{0, 200, 0, 255}
	if ratio < 0.5 {
		barColor = color.RGBA{255, 200, 0, 255}
	}
	if ratio < 0.25 {
		barColor = color.RGBA{255, 0, 0, 255}
	}
	vector.DrawFilledRect(screen, cx-w/2, y, w, 3, color.RGBA{40, 40, 40, 200}, false)
	vector.DrawFilledRect(screen, cx-w/2, y, w*ratio, 3, barColor, false)
}

func factionColor(f core.Faction) color.RGBA {
	if f == core.Enemy {
		return enemyColor
	}
	return friendlyColor
}
