package core

// maxFrameTime caps a single frame to avoid a spiral of death
const maxFrameTime = 0.25

// GameLoop runs a simulation at a fixed timestep. Frame time is supplied by
// the caller; the loop never reads the clock itself.
type GameLoop struct {
	TickRate    float64 // fixed ticks per second
	Paused      bool
	Step        func(dt float64)
	accumulator float64
	ticks       uint64
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64, step func(dt float64)) *GameLoop {
	return &GameLoop{
		TickRate: tickRate,
		Step:     step,
	}
}

// Update should be called every render frame with the elapsed frame time in
// seconds. It steps the simulation zero or more times and returns the
// interpolation alpha for smooth rendering.
func (gl *GameLoop) Update(frameTime float64) float64 {
	if frameTime < 0 {
		frameTime = 0
	}
	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}

	dt := 1.0 / gl.TickRate
	if gl.Paused {
		return gl.accumulator / dt
	}
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		if gl.Step != nil {
			gl.Step(dt)
		}
		gl.ticks++
		gl.accumulator -= dt
	}

	return gl.accumulator / dt
}

// Pause stops stepping until Play is called
func (gl *GameLoop) Pause() {
	gl.Paused = true
}

// Play resumes stepping
func (gl *GameLoop) Play() {
	gl.Paused = false
}

// Steps returns how many fixed steps have run
func (gl *GameLoop) Steps() uint64 {
	return gl.ticks
}
