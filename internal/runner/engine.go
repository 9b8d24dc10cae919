package runner

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// SessionState is the engine's lifecycle. Terminated is final.
type SessionState int

const (
	SessionRunning SessionState = iota
	SessionTerminated
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	if s == SessionTerminated {
		return "Terminated"
	}
	return "Running"
}

// Summary describes a finished session.
type Summary struct {
	Score      float64      // Accumulated score at the collision
	FinalScore int          // Score as shown to the player (floored)
	Frames     int          // Frames completed before the collision frame
	Speed      float64      // Scroll speed at the collision
	HitBy      ObstacleKind // What the player ran into
}

// StepResult is returned by Engine.Tick after each frame.
type StepResult struct {
	State    SessionState
	Frame    int     // Completed frames
	Score    float64 // Score after the frame
	Speed    float64 // Speed after the frame
	Spawned  bool    // An obstacle was created this frame
	SpedUp   bool    // Speed increased at the end of this frame
	Collided bool    // This frame ended the session
}

// Notifier receives the summary when a session ends.
type Notifier interface {
	SessionEnded(Summary)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Summary)

// SessionEnded calls f(s).
func (f NotifierFunc) SessionEnded(s Summary) { f(s) }

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for spawn and progression events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNotifier sets who is told about the end of the session.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// Engine runs one session: one player, one world, until the first collision.
type Engine struct {
	cfg      config.RunnerConfig
	world    *World
	player   *Player
	state    SessionState
	summary  Summary
	notifier Notifier
	logger   *log.Logger
	hud      TextStyle
}

// NewEngine creates a session. It refuses to start unless every sprite the
// game draws is in the catalog.
func NewEngine(cfg config.RunnerConfig, cat *assets.Catalog, seed int64, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Require(assets.RequiredKeys...); err != nil {
		return nil, fmt.Errorf("runner: assets not ready: %w", err)
	}

	world, err := NewWorld(cfg, cat, seed)
	if err != nil {
		return nil, err
	}
	player, err := NewPlayer(cat, cfg.Player, cfg.Physics)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		world:  world,
		player: player,
		logger: log.New(io.Discard),
		hud:    TextStyle{Color: core.ColorBrightWhite},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tick runs one frame against a snapshot of the input and draws it into r.
// Once the session is terminated Tick does nothing and returns the final state.
func (e *Engine) Tick(in core.InputFrame, r Renderer) StepResult {
	if e.state == SessionTerminated {
		return e.result()
	}

	r.Clear()

	e.world.DrawBackground(r)
	e.world.ScrollBackground()

	t := e.world.tick(in)
	e.player.Update(t)
	e.player.Draw(r)

	spawned := false
	if o := e.world.MaybeSpawn(); o != nil {
		spawned = true
		e.logger.Debug("spawned obstacle", "kind", o.Kind(), "frame", t.Frame, "speed", t.Speed)
	}

	playerBox := e.player.Bounds()
	for _, o := range e.world.Obstacles() {
		o.Update(t)
		o.Draw(r)

		if core.Collides(playerBox, o.Bounds()) {
			e.terminate(o)
			res := e.result()
			res.Spawned = spawned
			res.Collided = true
			return res
		}
	}
	e.world.Prune()

	e.drawScore(r)

	spedUp := e.world.Progress()
	if spedUp {
		e.logger.Debug("speed up", "score", e.world.Score(), "speed", e.world.Speed())
	}

	res := e.result()
	res.Spawned = spawned
	res.SpedUp = spedUp
	return res
}

// terminate moves the session to its final state and reports it once.
func (e *Engine) terminate(hit Obstacle) {
	e.state = SessionTerminated
	e.summary = Summary{
		Score:      e.world.Score(),
		FinalScore: int(math.Floor(e.world.Score())),
		Frames:     e.world.Frame(),
		Speed:      e.world.Speed(),
		HitBy:      hit.Kind(),
	}
	e.logger.Info("session ended",
		"score", e.summary.FinalScore,
		"frames", e.summary.Frames,
		"speed", e.summary.Speed,
		"hit", e.summary.HitBy)
	if e.notifier != nil {
		e.notifier.SessionEnded(e.summary)
	}
}

// Render redraws the current frame without advancing anything.
func (e *Engine) Render(r Renderer) {
	r.Clear()
	e.world.DrawBackground(r)
	e.player.Draw(r)
	for _, o := range e.world.Obstacles() {
		o.Draw(r)
	}
	e.drawScore(r)
}

func (e *Engine) drawScore(r Renderer) {
	text := fmt.Sprintf("Score: %d", int(math.Floor(e.world.Score())))
	r.DrawText(text, e.cfg.World.ScoreX, e.cfg.World.ScoreY, e.hud)
}

func (e *Engine) result() StepResult {
	return StepResult{
		State: e.state,
		Frame: e.world.Frame(),
		Score: e.world.Score(),
		Speed: e.world.Speed(),
	}
}

// InputSource supplies the input snapshot for the next frame.
type InputSource interface {
	Next(e *Engine) core.InputFrame
}

// InputFunc adapts a function to InputSource.
type InputFunc func(e *Engine) core.InputFrame

// Next calls f(e).
func (f InputFunc) Next(e *Engine) core.InputFrame { return f(e) }

// Run drives the engine headlessly until the session ends, maxFrames frames
// have run (0 = no limit) or ctx is cancelled. The bool result reports
// whether the session ended with a collision.
func (e *Engine) Run(ctx context.Context, src InputSource, r Renderer, maxFrames int) (bool, error) {
	for n := 0; maxFrames <= 0 || n < maxFrames; n++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if res := e.Tick(src.Next(e), r); res.State == SessionTerminated {
			return true, nil
		}
	}
	return false, nil
}

// State returns the session state.
func (e *Engine) State() SessionState { return e.state }

// Summary returns the final summary. It is zero until the session ends.
func (e *Engine) Summary() Summary { return e.summary }

// World returns the session's world.
func (e *Engine) World() *World { return e.world }

// Player returns the session's player.
func (e *Engine) Player() *Player { return e.player }

// Config returns the config the session was created with.
func (e *Engine) Config() config.RunnerConfig { return e.cfg }
