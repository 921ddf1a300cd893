// Command simsvc plays scripted matches headlessly and reports the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/lanebattle/engine/ai"
	"github.com/1siamBot/lanebattle/engine/config"
	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/sim"
)

// result is the outcome of one match
type result struct {
	Seed     int64
	MatchID  string
	Winner   core.Faction
	Ended    bool
	Ticks    uint64
	Duration float64
	Stats    sim.Stats
	Final    sim.Snapshot
}

// play runs one AI-vs-AI match until it ends or maxTicks elapse
func play(ctx context.Context, cfg config.Match, logger *slog.Logger, maxTicks uint64) (result, error) {
	m := sim.New(cfg, sim.WithLogger(logger))
	bots := []*ai.Controller{
		ai.NewController(core.Friendly, cfg.Opponent.Difficulty, m.Catalog, cfg.Opponent.Rotation),
		ai.NewController(core.Enemy, cfg.Opponent.Difficulty, m.Catalog, cfg.Opponent.Rotation),
	}

	dt := 1 / cfg.TickRate
	snap := m.Snapshot()
	for snap.Tick < maxTicks && !m.Ended() {
		if err := ctx.Err(); err != nil {
			return result{}, err
		}
		var reqs []core.SpawnRequest
		for _, b := range bots {
			reqs = append(reqs, b.Think(snap, dt)...)
		}
		snap = m.Advance(dt, reqs).Snapshot
	}

	st := m.State()
	return result{
		Seed:     cfg.Seed,
		MatchID:  m.ID,
		Winner:   st.Winner,
		Ended:    st.Phase == core.Ended,
		Ticks:    snap.Tick,
		Duration: m.Stats().Duration,
		Stats:    m.Stats(),
		Final:    snap,
	}, nil
}

// snapshotPath numbers the output file when several matches are written
func snapshotPath(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}

func writeSnapshot(path string, s sim.Snapshot) error {
	b, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func main() {
	var cfgPath, snapOut string
	var seed int64
	var n, workers int
	var maxTicks uint64
	var verbose bool
	flag.StringVar(&cfgPath, "config", "", "YAML match config (defaults built in)")
	flag.StringVar(&snapOut, "snapshot", "", "write each final snapshot (msgpack) to this file")
	flag.Int64Var(&seed, "seed", 0, "first seed (0 keeps the config seed)")
	flag.IntVar(&n, "n", 1, "number of matches")
	flag.IntVar(&workers, "workers", 8, "matches played at once")
	flag.Uint64Var(&maxTicks, "max-ticks", 20*60*10, "stop a match after this many ticks")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			logger.Error("load config", "err", err)
			os.Exit(1)
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if n < 1 {
		n = 1
	}

	results := make([]result, n)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, workers))
	for i := 0; i < n; i++ {
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		g.Go(func() error {
			res, err := play(ctx, c, logger, maxTicks)
			if err != nil {
				return err
			}
			if snapOut != "" {
				if err := writeSnapshot(snapshotPath(snapOut, i, n), res.Final); err != nil {
					return err
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("batch failed", "err", err)
		os.Exit(1)
	}

	var wins [2]int
	var draws, unfinished int
	var sumT float64
	for _, r := range results {
		sumT += r.Duration
		switch {
		case !r.Ended:
			unfinished++
		case r.Winner == core.NoFaction:
			draws++
		default:
			wins[r.Winner]++
		}
		if n == 1 {
			for _, f := range core.Factions {
				s := r.Stats.Of(f)
				fmt.Printf("%-8s spawned=%d lost=%d strikes=%d damage=%.1f spent=%.0f dropped=%d\n",
					f, s.Spawned, s.Lost, s.Strikes, s.DamageDealt, s.Spent, s.Dropped)
			}
		}
	}
	fmt.Printf("Batch finished. N=%d friendly=%d enemy=%d draws=%d unfinished=%d meanT=%.2fs\n",
		n, wins[core.Friendly], wins[core.Enemy], draws, unfinished, sumT/float64(n))
}
