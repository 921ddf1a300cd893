// Command tui plays a match against the scripted opponent in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/lanebattle/engine/ai"
	"github.com/1siamBot/lanebattle/engine/command"
	"github.com/1siamBot/lanebattle/engine/config"
	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/sim"
)

const frameInterval = 16 * time.Millisecond

var factionStyles = [2]tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tcell.StyleDefault.Foreground(tcell.ColorRed),
}

// unitGlyph is the first letter of the archetype name, lower case for the
// player and upper case for the opponent
func unitGlyph(name string, f core.Faction) rune {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		r = 'u'
	}
	if f == core.Enemy {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}

type Game struct {
	screen        tcell.Screen
	width, height int

	cfg    config.Match
	logger *slog.Logger

	match    *sim.Match
	loop     *core.GameLoop
	opponent *ai.Controller
	desk     *command.Desk
	snap     sim.Snapshot
	queued   []core.SpawnRequest
	lastTime time.Time
}

func NewGame(cfg config.Match, logger *slog.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newGame(screen, cfg, logger), nil
}

func newGame(screen tcell.Screen, cfg config.Match, logger *slog.Logger) *Game {
	g := &Game{screen: screen, cfg: cfg, logger: logger}
	g.width, g.height = screen.Size()
	g.start()
	return g
}

func (g *Game) start() {
	g.match = sim.New(g.cfg, sim.WithLogger(g.logger))
	g.desk = &command.Desk{Faction: core.Friendly, Catalog: g.match.Catalog}
	g.opponent = ai.NewController(core.Enemy, g.cfg.Opponent.Difficulty, g.match.Catalog, g.cfg.Opponent.Rotation)
	g.loop = core.NewGameLoop(g.cfg.TickRate, g.step)
	g.snap = g.match.Snapshot()
	g.queued = g.queued[:0]
	g.lastTime = time.Now()
}

func (g *Game) step(dt float64) {
	reqs := append(g.queued, g.opponent.Think(g.snap, dt)...)
	g.queued = g.queued[:0]
	g.snap = g.match.Advance(dt, reqs).Snapshot
}

// column maps a lane coordinate onto the screen width
func (g *Game) column(x float64) int {
	lo, hi := g.cfg.Lane.FriendlyBaseX, g.cfg.Lane.EnemyBaseX
	if hi == lo || g.width < 3 {
		return 0
	}
	t := (x - lo) / (hi - lo)
	col := 1 + int(math.Round(t*float64(g.width-3)))
	return max(0, min(g.width-1, col))
}

// print writes s one cell per rune and returns the column after it
func (g *Game) print(x, y int, style tcell.Style, s string) int {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (g *Game) draw() {
	g.screen.Clear()
	laneY := g.height / 2
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for x := 0; x < g.width; x++ {
		g.screen.SetContent(x, laneY+1, '─', nil, dim)
	}

	// Units stack upward when they share a column
	stack := make(map[int]int)
	for _, e := range g.snap.Entities {
		col := g.column(e.X)
		style := factionStyles[e.Faction]
		if e.Kind == core.KindBase {
			g.screen.SetContent(col, laneY, '█', nil, style)
			g.print(max(0, col-3), laneY+2, style, fmt.Sprintf("%3.0f HP", e.Health))
			continue
		}
		glyph := unitGlyph(e.Archetype, e.Faction)
		if e.Attack == "windup" {
			style = style.Bold(true).Reverse(true)
		}
		row := laneY - stack[col]
		stack[col]++
		if row >= 1 {
			g.screen.SetContent(col, row, glyph, nil, style)
		}
	}

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	g.print(0, 0, white, fmt.Sprintf("Gold %s   Tick %d", command.CoinLabel(g.snap.Amount(core.Friendly)), g.snap.Tick))
	x := 0
	for _, b := range g.desk.Buttons(g.snap) {
		style := dim
		if b.Affordable {
			style = white
		}
		x = g.print(x, g.height-1, style, b.String()) + 2
	}

	if banner := command.ResultText(g.snap.State, core.Friendly); banner != "" {
		g.print(max(0, (g.width-utf8.RuneCountInString(banner))/2), laneY-4, white.Bold(true), banner)
		hint := "[Enter] Play again"
		g.print(max(0, (g.width-utf8.RuneCountInString(hint))/2), laneY-3, dim, hint)
	} else if g.loop.Paused {
		g.print(max(0, (g.width-6)/2), laneY-4, white, "PAUSED")
	}

	g.screen.Show()
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			if g.match.Ended() {
				g.start()
			}
		case tcell.KeyRune:
			if ev.Rune() == ' ' {
				if g.loop.Paused {
					g.loop.Play()
				} else {
					g.loop.Pause()
				}
				return true
			}
			slot, ok := command.SlotForGlyph(string(ev.Rune()))
			if !ok || g.loop.Paused {
				return true
			}
			if req, ok := g.desk.Request(slot, g.snap); ok {
				g.queued = append(g.queued, req)
			}
		}
	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			g.loop.Update(now.Sub(g.lastTime).Seconds())
			g.lastTime = now
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.screen.Fini()
}

func main() {
	cfgPath := flag.String("config", "", "YAML match config (defaults built in)")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	// The terminal is the screen, so logs only go to a file
	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	game, err := NewGame(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
