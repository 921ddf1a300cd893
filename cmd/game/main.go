package main

import (
	"flag"
	"image/color"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/lanebattle/engine/ai"
	"github.com/1siamBot/lanebattle/engine/audio"
	"github.com/1siamBot/lanebattle/engine/command"
	"github.com/1siamBot/lanebattle/engine/config"
	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/input"
	"github.com/1siamBot/lanebattle/engine/render"
	"github.com/1siamBot/lanebattle/engine/sim"
	"github.com/1siamBot/lanebattle/engine/ui"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Game implements ebiten.Game interface
type Game struct {
	cfg    config.Match
	logger *slog.Logger

	match    *sim.Match
	gameLoop *core.GameLoop
	opponent *ai.Controller
	desk     *command.Desk
	input    *input.InputState
	camera   *render.Camera
	lane     *ui.LaneView
	hud      *ui.HUD
	postGame *ui.PostGame
	audio    *audio.AudioManager

	snap     sim.Snapshot
	queued   []core.SpawnRequest
	lastTime time.Time
}

func NewGame(cfg config.Match, logger *slog.Logger, am *audio.AudioManager) *Game {
	g := &Game{
		cfg:    cfg,
		logger: logger,
		input:  input.NewInputState(),
		camera: render.NewCamera(ScreenWidth, ScreenHeight),
		audio:  am,
	}
	g.camera.FitLane(cfg.Lane.FriendlyBaseX, cfg.Lane.EnemyBaseX, 60)
	g.lane = ui.NewLaneView(g.camera)
	g.postGame = ui.NewPostGame(ScreenWidth, ScreenHeight, core.Friendly)
	g.start()
	return g
}

// start begins a fresh match with the same settings
func (g *Game) start() {
	g.match = sim.New(g.cfg, sim.WithLogger(g.logger))
	g.desk = &command.Desk{Faction: core.Friendly, Catalog: g.match.Catalog}
	g.hud = ui.NewHUD(ScreenWidth, ScreenHeight, g.desk)

	g.opponent = ai.NewController(core.Enemy, g.cfg.Opponent.Difficulty, g.match.Catalog, g.cfg.Opponent.Rotation)

	g.gameLoop = core.NewGameLoop(g.cfg.TickRate, g.step)
	g.snap = g.match.Snapshot()
	g.queued = g.queued[:0]
	g.lastTime = time.Now()
}

// step runs one fixed simulation tick
func (g *Game) step(dt float64) {
	reqs := append(g.queued, g.opponent.Think(g.snap, dt)...)
	g.queued = g.queued[:0]
	sum := g.match.Advance(dt, reqs)
	g.snap = sum.Snapshot
	if g.audio != nil {
		g.audio.SetCameraPos(g.camera.X)
		g.audio.HandleEvents(sum.Events, g.snap)
	}
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.QuitPushed {
		return ebiten.Termination
	}

	if g.match.Ended() {
		if g.input.RestartPushed {
			g.start()
		}
		return nil
	}

	if g.input.PauseToggled {
		if g.gameLoop.Paused {
			g.gameLoop.Play()
		} else {
			g.gameLoop.Pause()
		}
	}

	for _, slot := range g.input.SlotsReleased {
		g.queue(slot)
	}
	if g.input.LeftJustReleased {
		if slot, ok := g.hud.HandleClick(g.input.MouseX, g.input.MouseY); ok {
			g.queue(slot)
		}
	}

	now := time.Now()
	frameTime := now.Sub(g.lastTime).Seconds()
	g.lastTime = now

	if g.input.WheelY != 0 {
		g.camera.ZoomAt(g.input.WheelY*0.1, g.input.MouseX)
	}
	g.camera.Pan(g.input.PanDir * g.camera.Speed * frameTime)

	g.gameLoop.Update(frameTime)
	return nil
}

func (g *Game) queue(slot int) {
	if g.gameLoop.Paused {
		return
	}
	if req, ok := g.desk.Request(slot, g.snap); ok {
		g.queued = append(g.queued, req)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})
	g.lane.Draw(screen, g.snap)
	g.hud.Draw(screen, g.snap, g.gameLoop.Paused)
	g.postGame.Draw(screen, g.snap, g.match.Stats())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	cfgPath := flag.String("config", "", "YAML match config (defaults built in)")
	seed := flag.Int64("seed", 0, "override the config seed (0 keeps it)")
	sound := flag.Bool("sound", false, "play audio cues")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var am *audio.AudioManager
	if *sound {
		am = audio.NewAudioManager()
		if err := am.Init(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("audio disabled", "err", err)
			am = nil
		} else {
			defer am.Close()
		}
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Lane Battle")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game := NewGame(cfg, logger, am)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
