package runner

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// World owns the scrolling track, the active obstacles and the session's
// score and speed. At most one obstacle is active at any time.
type World struct {
	cfg  config.RunnerConfig
	prog *config.Progression
	rng  *rand.Rand

	track  *assets.Sprite
	cacti  [4]*assets.Sprite // small 1, small 2, large 1, large 2
	pteros [2]*assets.Sprite

	bgOffset  float64
	speed     float64
	score     float64
	frame     int
	spawned   int
	obstacles []Obstacle
}

// NewWorld creates a world at its starting speed with no obstacles.
func NewWorld(cfg config.RunnerConfig, cat *assets.Catalog, seed int64) (*World, error) {
	w := &World{
		cfg:       cfg,
		prog:      config.NewProgression(cfg.Difficulty, cfg.World.MaxSpeed),
		rng:       rand.New(rand.NewSource(seed)),
		speed:     cfg.World.InitialSpeed,
		obstacles: make([]Obstacle, 0, 1),
	}

	sprites := []struct {
		dst **assets.Sprite
		key string
	}{
		{&w.track, assets.KeyTrack},
		{&w.cacti[0], assets.KeySmallCactus1},
		{&w.cacti[1], assets.KeySmallCactus2},
		{&w.cacti[2], assets.KeyLargeCactus1},
		{&w.cacti[3], assets.KeyLargeCactus2},
		{&w.pteros[0], assets.KeyPtero1},
		{&w.pteros[1], assets.KeyPtero2},
	}
	for _, s := range sprites {
		sp, err := cat.Get(s.key)
		if err != nil {
			return nil, fmt.Errorf("runner: world: %w", err)
		}
		*s.dst = sp
	}

	return w, nil
}

// DrawBackground draws two copies of the track side by side so the scroll tiles seamlessly.
func (w *World) DrawBackground(r Renderer) {
	y := w.cfg.World.BackgroundY
	r.DrawSprite(w.track, w.bgOffset, y)
	r.DrawSprite(w.track, w.bgOffset+w.track.Width, y)
}

// ScrollBackground moves the track left by the current speed, wrapping
// back to 0 once a full track width has scrolled past.
func (w *World) ScrollBackground() {
	w.bgOffset -= w.speed
	if w.bgOffset <= -w.track.Width {
		w.bgOffset = 0
	}
}

// MaybeSpawn adds a new obstacle at the right edge when none is active.
// Returns the new obstacle, or nil if one was already active.
func (w *World) MaybeSpawn() Obstacle {
	if len(w.obstacles) > 0 {
		return nil
	}
	o := w.spawn()
	w.obstacles = append(w.obstacles, o)
	w.spawned++
	return o
}

// spawn picks flying vs ground, then a cactus variant uniformly.
func (w *World) spawn() Obstacle {
	oc := w.cfg.Obstacles
	x := w.cfg.Screen.Width

	if w.rng.Float64() < oc.FlyingChance {
		return NewFlyingObstacle(w.pteros, core.Vec2{X: x, Y: oc.FlyingY},
			w.cfg.Player.AnimPeriod, w.cfg.Player.FrameHold)
	}

	i := w.rng.Intn(len(w.cacti))
	if i < 2 {
		return NewGroundObstacle(KindSmallGround, w.cacti[i], core.Vec2{X: x, Y: oc.SmallY})
	}
	return NewGroundObstacle(KindLargeGround, w.cacti[i], core.Vec2{X: x, Y: oc.LargeY})
}

// Prune removes obstacles that have scrolled past the removal threshold.
// Returns how many were removed.
func (w *World) Prune() int {
	kept := w.obstacles[:0]
	for _, o := range w.obstacles {
		if !o.Offscreen(w.cfg.Obstacles.DespawnX) {
			kept = append(kept, o)
		}
	}
	removed := len(w.obstacles) - len(kept)
	for i := len(kept); i < len(w.obstacles); i++ {
		w.obstacles[i] = nil
	}
	w.obstacles = kept
	return removed
}

// Progress closes a survived frame: adds the per-frame score, steps the
// speed up on every milestone crossed and advances the frame counter.
// Returns true if the speed changed.
func (w *World) Progress() bool {
	prev := w.score
	w.score += w.prog.ScorePerFrame()

	old := w.speed
	w.speed = w.prog.NextSpeed(prev, w.score, w.speed)
	w.frame++
	return w.speed != old
}

// tick returns the per-frame view handed to entities.
func (w *World) tick(in core.InputFrame) Tick {
	return Tick{Input: in, Speed: w.speed, Frame: w.frame}
}

// Obstacles returns the active obstacles. The slice must not be modified.
func (w *World) Obstacles() []Obstacle { return w.obstacles }

// Score returns the accumulated score.
func (w *World) Score() float64 { return w.score }

// Speed returns the current scroll speed.
func (w *World) Speed() float64 { return w.speed }

// Frame returns the number of completed frames.
func (w *World) Frame() int { return w.frame }

// Spawned returns how many obstacles have been created this session.
func (w *World) Spawned() int { return w.spawned }

// BackgroundOffset returns the track scroll offset.
func (w *World) BackgroundOffset() float64 { return w.bgOffset }
