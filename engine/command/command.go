// Package command turns player intents from any front end into spawn
// requests and labels.
package command

import (
	"fmt"
	"math"
	"strings"

	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/sim"
)

// Glyphs are the spend keys, one per catalog slot
var Glyphs = []string{"Q", "W", "E", "R"}

// SlotForGlyph maps a key glyph (case-insensitive) to its slot index
func SlotForGlyph(g string) (int, bool) {
	g = strings.ToUpper(g)
	for i, s := range Glyphs {
		if s == g {
			return i, true
		}
	}
	return -1, false
}

// Desk issues spawn requests for one faction
type Desk struct {
	Faction core.Faction
	Catalog *core.Catalog
}

// Request returns the spawn request for a slot if the faction can afford the
// archetype according to the snapshot. The spend itself happens inside the
// simulation on the next tick.
func (d *Desk) Request(slot int, snap sim.Snapshot) (core.SpawnRequest, bool) {
	if snap.State.Phase == core.Ended || slot >= len(Glyphs) {
		return core.SpawnRequest{}, false
	}
	arch, ok := d.Catalog.Slot(slot)
	if !ok || snap.Amount(d.Faction) < float64(arch.Cost) {
		return core.SpawnRequest{}, false
	}
	return core.SpawnRequest{Faction: d.Faction, Archetype: arch.Name}, true
}

// Button describes one spend button
type Button struct {
	Glyph      string
	Archetype  string
	Cost       int
	Affordable bool
}

func (b Button) String() string {
	return fmt.Sprintf("[%s] %s (%d G)", b.Glyph, b.Archetype, b.Cost)
}

// Buttons lists the spend buttons for the bound slots
func (d *Desk) Buttons(snap sim.Snapshot) []Button {
	var out []Button
	for i, g := range Glyphs {
		arch, ok := d.Catalog.Slot(i)
		if !ok {
			break
		}
		out = append(out, Button{
			Glyph:      g,
			Archetype:  arch.Name,
			Cost:       arch.Cost,
			Affordable: snap.Amount(d.Faction) >= float64(arch.Cost),
		})
	}
	return out
}

// CoinLabel renders a resource amount as whole coins
func CoinLabel(amount float64) string {
	return fmt.Sprintf("%.0f G", math.Floor(math.Max(0, amount)))
}

// ResultText is the post-game banner from the point of view of f
func ResultText(st core.MatchState, f core.Faction) string {
	switch {
	case st.Phase != core.Ended:
		return ""
	case st.Winner == f:
		return "You won!"
	case st.Winner == core.NoFaction:
		return "Draw!"
	}
	return "You lost!"
}
