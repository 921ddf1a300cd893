package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/lanebattle/engine/command"
	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/sim"
)

// PostGame shows the result banner and match statistics
type PostGame struct {
	ScreenW, ScreenH int
	Faction          core.Faction
	face             font.Face

	banner string
	img    *ebiten.Image
}

func NewPostGame(sw, sh int, f core.Faction) *PostGame {
	return &PostGame{ScreenW: sw, ScreenH: sh, Faction: f, face: basicfont.Face7x13}
}

// Draw renders the overlay; it draws nothing while the match is running
func (p *PostGame) Draw(screen *ebiten.Image, snap sim.Snapshot, stats sim.Stats) {
	banner := command.ResultText(snap.State, p.Faction)
	if banner == "" {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(p.ScreenW), float32(p.ScreenH), color.RGBA{0, 0, 0, 150}, false)

	// basicfont is tiny; draw it onto a small image once and scale it up
	bounds := text.BoundString(p.face, banner)
	if p.img == nil || p.banner != banner {
		p.img = ebiten.NewImage(bounds.Dx()+2, bounds.Dy()+2)
		text.Draw(p.img, banner, p.face, -bounds.Min.X+1, -bounds.Min.Y+1, color.White)
		p.banner = banner
	}
	const scale = 6
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(p.ScreenW-bounds.Dx()*scale)/2, float64(p.ScreenH)/3)
	screen.DrawImage(p.img, op)

	mine, theirs := stats.Of(p.Faction), stats.Of(p.Faction.Opponent())
	lines := fmt.Sprintf(
		"Duration: %.1fs\nUnits spawned: %d (enemy %d)\nUnits lost: %d (enemy %d)\nDamage dealt: %.0f (enemy %.0f)\n\n[Enter] Play again",
		stats.Duration, mine.Spawned, theirs.Spawned, mine.Lost, theirs.Lost, mine.DamageDealt, theirs.DamageDealt,
	)
	ebitenutil.DebugPrintAt(screen, lines, p.ScreenW/2-110, p.ScreenH/3+bounds.Dy()*scale+30)
}
