package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

func testCatalog(t *testing.T) *assets.Catalog {
	t.Helper()
	cat, err := assets.Default()
	if err != nil {
		t.Fatalf("assets.Default() failed: %v", err)
	}
	return cat
}

type drawCall struct {
	key  string
	x, y float64
}

// recorder is a Renderer that remembers what was drawn since the last Clear.
type recorder struct {
	clears  int
	sprites []drawCall
	texts   []string
}

func (r *recorder) Clear() {
	r.clears++
	r.sprites = r.sprites[:0]
	r.texts = r.texts[:0]
}

func (r *recorder) DrawSprite(s *assets.Sprite, x, y float64) {
	r.sprites = append(r.sprites, drawCall{key: s.Key, x: x, y: y})
}

func (r *recorder) DrawText(text string, x, y float64, _ TextStyle) {
	r.texts = append(r.texts, text)
}

// stubObstacle overlaps everything on its hitOn-th update and nothing otherwise.
type stubObstacle struct {
	updates int
	hitOn   int
}

func (s *stubObstacle) Update(Tick)            { s.updates++ }
func (s *stubObstacle) Draw(Renderer)          {}
func (s *stubObstacle) Kind() ObstacleKind     { return KindLargeGround }
func (s *stubObstacle) Position() core.Vec2    { return core.Vec2{X: 5000} }
func (s *stubObstacle) Offscreen(float64) bool { return false }

func (s *stubObstacle) Bounds() core.Rect {
	if s.updates == s.hitOn {
		return core.NewRect(0, 0, 1100, 600)
	}
	return core.NewRect(5000, 0, 1, 1)
}

// farConfig spawns obstacles so far right that nothing reaches the player for a long time.
func farConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Screen.Width = 100000
	return cfg
}

func newTestEngine(t *testing.T, cfg config.RunnerConfig, seed int64, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, testCatalog(t), seed, opts...)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return e
}

func TestEngineFirstFrameSpawns(t *testing.T) {
	e := newTestEngine(t, config.DefaultRunnerConfig(), 1)

	if len(e.World().Obstacles()) != 0 {
		t.Fatal("obstacles exist before the first frame")
	}
	res := e.Tick(core.InputFrame{}, NopRenderer{})
	if !res.Spawned || len(e.World().Obstacles()) != 1 {
		t.Errorf("first frame: spawned=%v obstacles=%d", res.Spawned, len(e.World().Obstacles()))
	}
	if res.State != SessionRunning || res.Frame != 1 || res.Score != 0.5 {
		t.Errorf("first frame result = %+v", res)
	}
}

func TestEngineScoreAndSpeedAfter200Frames(t *testing.T) {
	e := newTestEngine(t, farConfig(), 1)

	var res StepResult
	for i := 0; i < 200; i++ {
		res = e.Tick(core.InputFrame{}, NopRenderer{})
		if res.State != SessionRunning {
			t.Fatalf("collided on frame %d", i)
		}
		if len(e.World().Obstacles()) > 1 {
			t.Fatalf("frame %d: %d obstacles active", i, len(e.World().Obstacles()))
		}
	}

	if res.Score != 100 {
		t.Errorf("score after 200 frames = %v, expected 100", res.Score)
	}
	if res.Speed != 15.5 {
		t.Errorf("speed after 200 frames = %v, expected 15.5", res.Speed)
	}
	if !res.SpedUp {
		t.Error("frame 200 should report the speed-up")
	}
}

func TestEngineObstacleMovesBySpeed(t *testing.T) {
	e := newTestEngine(t, farConfig(), 2)
	e.Tick(core.InputFrame{}, NopRenderer{})
	o := e.World().Obstacles()[0]

	for i := 0; i < 300; i++ {
		before, speed := o.Position().X, e.World().Speed()
		e.Tick(core.InputFrame{}, NopRenderer{})
		if got := before - o.Position().X; got != speed {
			t.Fatalf("frame %d: obstacle moved %v at speed %v", i, got, speed)
		}
	}
}

func TestEngineCollisionAtFrameK(t *testing.T) {
	tests := []struct {
		name string
		k    int
	}{
		{"first frame", 0},
		{"early", 7},
		{"after a speed-up", 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, config.DefaultRunnerConfig(), 1)
			stub := &stubObstacle{hitOn: tt.k + 1}
			e.world.obstacles = []Obstacle{stub}

			var res StepResult
			for i := 0; i <= tt.k; i++ {
				res = e.Tick(core.InputFrame{}, NopRenderer{})
				if i < tt.k && res.State != SessionRunning {
					t.Fatalf("terminated early on frame %d", i)
				}
			}

			if !res.Collided || res.State != SessionTerminated {
				t.Fatalf("frame %d result = %+v, expected a collision", tt.k, res)
			}
			if want := 0.5 * float64(tt.k); res.Score != want {
				t.Errorf("score = %v, expected %v", res.Score, want)
			}
			if res.Frame != tt.k {
				t.Errorf("frame = %d, expected %d", res.Frame, tt.k)
			}

			after := e.Tick(core.InputFrame{}, NopRenderer{})
			if after.Score != res.Score || after.Frame != res.Frame || after.Collided {
				t.Errorf("tick after termination changed state: %+v", after)
			}
			if stub.updates != tt.k+1 {
				t.Errorf("obstacle updated %d times, expected %d", stub.updates, tt.k+1)
			}
		})
	}
}

func TestEngineNotifiesOnce(t *testing.T) {
	var got []Summary
	notifier := NotifierFunc(func(s Summary) { got = append(got, s) })

	e := newTestEngine(t, config.DefaultRunnerConfig(), 1, WithNotifier(notifier))
	e.world.obstacles = []Obstacle{&stubObstacle{hitOn: 11}}

	for i := 0; i < 20; i++ {
		e.Tick(core.InputFrame{}, NopRenderer{})
	}

	if len(got) != 1 {
		t.Fatalf("notifier called %d times, expected 1", len(got))
	}
	s := got[0]
	if s.Score != 5 || s.FinalScore != 5 || s.Frames != 10 || s.HitBy != KindLargeGround {
		t.Errorf("summary = %+v", s)
	}
	if e.Summary() != s {
		t.Errorf("Summary() = %+v, notifier got %+v", e.Summary(), s)
	}
}

func TestEngineIdleCollides(t *testing.T) {
	e := newTestEngine(t, config.DefaultRunnerConfig(), 1)

	collided, err := e.Run(context.Background(), InputFunc(func(*Engine) core.InputFrame {
		return core.InputFrame{}
	}), NopRenderer{}, 1000)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !collided {
		t.Fatal("standing still never hit anything")
	}
	if e.State() != SessionTerminated {
		t.Errorf("state = %v, expected Terminated", e.State())
	}
}

func TestEngineSameSeedSameRun(t *testing.T) {
	run := func() (Summary, int) {
		e := newTestEngine(t, config.DefaultRunnerConfig(), 1234)
		pilot := NewAutopilot()
		pilot.Lead = 2 // late reactions so the run actually ends
		if _, err := e.Run(context.Background(), pilot, NopRenderer{}, 20000); err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		return e.Summary(), e.World().Spawned()
	}

	s1, n1 := run()
	s2, n2 := run()
	if s1 != s2 || n1 != n2 {
		t.Errorf("same seed diverged: %+v/%d vs %+v/%d", s1, n1, s2, n2)
	}
}

func TestEngineRendersHUD(t *testing.T) {
	e := newTestEngine(t, farConfig(), 1)
	rec := &recorder{}

	for i := 0; i < 3; i++ {
		e.Tick(core.InputFrame{}, rec)
	}
	if rec.clears != 3 {
		t.Errorf("Clear called %d times, expected 3", rec.clears)
	}
	// Track twice, player, obstacle.
	if len(rec.sprites) != 4 {
		t.Errorf("drew %d sprites, expected 4", len(rec.sprites))
	}
	// The HUD is drawn before the frame's score is added.
	if len(rec.texts) != 1 || rec.texts[0] != "Score: 1" {
		t.Errorf("HUD = %v, expected [Score: 1]", rec.texts)
	}

	before := e.World().Frame()
	e.Render(rec)
	if e.World().Frame() != before {
		t.Error("Render advanced the world")
	}
	if rec.texts[0] != "Score: 1" {
		t.Errorf("Render HUD = %v", rec.texts)
	}
}

func TestEngineRequiresSprites(t *testing.T) {
	cat, err := assets.Parse([]byte(`
sprites:
  track:
    width: 10
    height: 10
    art: ["="]
`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	_, err = NewEngine(config.DefaultRunnerConfig(), cat, 1)
	if !errors.Is(err, assets.ErrMissingSprite) {
		t.Errorf("NewEngine() error = %v, expected ErrMissingSprite", err)
	}
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.World.InitialSpeed = 0

	_, err := NewEngine(cfg, testCatalog(t), 1)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewEngine() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestEngineRunStopsOnCancel(t *testing.T) {
	e := newTestEngine(t, farConfig(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, NewAutopilot(), NopRenderer{}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if e.World().Frame() != 0 {
		t.Errorf("ran %d frames after cancel", e.World().Frame())
	}
}

func TestEngineRunFrameLimit(t *testing.T) {
	e := newTestEngine(t, farConfig(), 1)

	collided, err := e.Run(context.Background(), NewAutopilot(), NopRenderer{}, 50)
	if err != nil || collided {
		t.Fatalf("Run() = %v, %v", collided, err)
	}
	if e.World().Frame() != 50 {
		t.Errorf("frame = %d, expected 50", e.World().Frame())
	}
}
