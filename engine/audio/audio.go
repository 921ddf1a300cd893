package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/sim"
)

const sampleRate = beep.SampleRate(44100)

// tone is a short sine blip
type tone struct {
	freq     float64
	duration time.Duration
}

// cues maps simulation events to sounds; unlisted events are silent
var cues = map[core.EventType]tone{
	core.EvtUnitSpawned: {freq: 440, duration: 40 * time.Millisecond},
	core.EvtStrike:      {freq: 880, duration: 30 * time.Millisecond},
	core.EvtEntityDied:  {freq: 220, duration: 90 * time.Millisecond},
	core.EvtMatchEnded:  {freq: 330, duration: 400 * time.Millisecond},
}

// AudioManager plays event cues through the system speaker
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	CameraX      float64
	MaxDistance  float64 // lane units at which a cue fades to silence

	ready bool
}

func NewAudioManager() *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.6,
		MaxDistance:  300,
	}
}

// Init opens the speaker. On failure the manager stays silent.
func (am *AudioManager) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	am.ready = true
	return nil
}

// Close releases the speaker
func (am *AudioManager) Close() {
	if am.ready {
		speaker.Close()
		am.ready = false
	}
}

// SetCameraPos updates the listener position for positional audio
func (am *AudioManager) SetCameraPos(x float64) {
	am.CameraX = x
}

// HandleEvents plays the cues of one tick. Positions come from the snapshot;
// events whose entity is already gone play at the camera.
func (am *AudioManager) HandleEvents(events []core.Event, snap sim.Snapshot) {
	if !am.ready {
		return
	}
	for _, e := range events {
		t, ok := cues[e.Type]
		if !ok {
			continue
		}
		x := am.CameraX
		if v, found := snap.Find(e.Source); found {
			x = v.X
		}
		if e.Type == core.EvtMatchEnded {
			x = am.CameraX
		}
		am.play(t, am.calcVolume(x))
	}
}

func (am *AudioManager) play(t tone, vol float64) {
	if vol <= 0 {
		return
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return
	}
	// Gain is relative: output = input * (1 + Gain)
	speaker.Play(&effects.Gain{
		Streamer: beep.Take(sampleRate.N(t.duration), sine),
		Gain:     vol - 1,
	})
}

// calcVolume computes volume based on distance from camera
func (am *AudioManager) calcVolume(wx float64) float64 {
	dist := math.Abs(wx - am.CameraX)
	if dist >= am.MaxDistance {
		return 0
	}
	return (1.0 - dist/am.MaxDistance) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	am.MasterVolume = math.Max(0, math.Min(1, v))
}
