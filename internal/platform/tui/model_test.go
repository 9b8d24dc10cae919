package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	cat, err := assets.Default()
	if err != nil {
		t.Fatalf("assets.Default() failed: %v", err)
	}
	return Options{
		Config:        config.DefaultRunnerConfig(),
		Catalog:       cat,
		Runtime:       core.RuntimeConfig{ScreenW: 110, ScreenH: 31, TickRate: 60, Seed: 1},
		Difficulty:    "normal",
		ScreenshotDir: t.TempDir(),
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	m.clock = func() time.Time { return t0 }
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

// playUntilOver ticks without input until the session ends.
func playUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 1000 && m.sess.over == nil; i++ {
		m, _ = send(t, m, TickMsg(t0))
	}
	if m.sess.over == nil {
		t.Fatal("session never ended")
	}
	return m
}

func TestModelTicksEngine(t *testing.T) {
	m := newTestModel(t, testOptions(t))

	for i := 0; i < 10; i++ {
		var cmd tea.Cmd
		m, cmd = send(t, m, TickMsg(t0))
		if cmd == nil {
			t.Fatal("tick did not schedule the next tick")
		}
	}
	if got := m.sess.engine.World().Frame(); got != 10 {
		t.Errorf("frame = %d after 10 ticks", got)
	}
	if m.screen.Height() != 30 {
		t.Errorf("game rows = %d, expected 30 (one row for help)", m.screen.Height())
	}
}

func TestModelKeyPressReachesPlayer(t *testing.T) {
	m := newTestModel(t, testOptions(t))

	m, _ = send(t, m, runeKey("w"))
	m, _ = send(t, m, TickMsg(t0.Add(10*time.Millisecond)))

	if got := m.sess.engine.Player().State(); got != runner.StateJumping {
		t.Errorf("player state = %v, expected Jumping", got)
	}
}

func TestModelHeldKeyExpires(t *testing.T) {
	m := newTestModel(t, testOptions(t))

	m, _ = send(t, m, runeKey("s"))
	m, _ = send(t, m, TickMsg(t0.Add(2*time.Second)))

	if got := m.sess.engine.Player().State(); got != runner.StateRunning {
		t.Errorf("player state = %v, expected Running once the hold passed", got)
	}
}

func TestModelGameOverSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	opts := testOptions(t)
	opts.Store = store
	m := playUntilOver(t, newTestModel(t, opts))

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	sum := m.sess.engine.Summary()
	if runs[0].Score != sum.FinalScore || runs[0].Frames != sum.Frames || runs[0].Seed != 1 {
		t.Errorf("saved %+v for summary %+v", runs[0], sum)
	}
	if runs[0].HitBy != sum.HitBy.String() {
		t.Errorf("HitBy = %q, expected %q", runs[0].HitBy, sum.HitBy.String())
	}

	// Further ticks are frozen and never save again.
	frame := m.sess.engine.World().Frame()
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, TickMsg(t0))
	}
	if m.sess.engine.World().Frame() != frame {
		t.Error("ticks after game over advanced the world")
	}
	if runs, _ := store.RecentRuns(10); len(runs) != 1 {
		t.Errorf("saved %d runs after extra ticks", len(runs))
	}

	if view := m.View(); !strings.Contains(view, "GAME OVER") {
		t.Errorf("View() has no game over panel:\n%s", view)
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, testOptions(t))

	// R does nothing while running.
	first := m.sess
	m, _ = send(t, m, TickMsg(t0))
	m, _ = send(t, m, runeKey("r"))
	if m.sess != first {
		t.Fatal("restart replaced a running session")
	}

	m = playUntilOver(t, m)
	m, _ = send(t, m, runeKey("r"))

	if m.sess == first || m.sess.over != nil {
		t.Fatal("restart did not start a fresh session")
	}
	if m.sess.engine.World().Frame() != 0 || m.sess.engine.State() != runner.SessionRunning {
		t.Error("restarted session is not at frame 0")
	}
	if strings.Contains(m.View(), "GAME OVER") {
		t.Error("game over panel still shown after restart")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m := newTestModel(t, testOptions(t))
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, TickMsg(t0))
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})

	if m.screen.Width() != 80 || m.screen.Height() != 24 {
		t.Errorf("screen = %dx%d, expected 80x24", m.screen.Width(), m.screen.Height())
	}
	if m.sess.engine.World().Frame() != 5 {
		t.Error("resize reset the session")
	}
	if !strings.Contains(m.screen.String(), "Score: 2") {
		t.Errorf("resize did not repaint:\n%s", m.screen.String())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, testOptions(t))

	m, cmd := send(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command is not tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() not empty after quit")
	}
}

func TestModelScreenshot(t *testing.T) {
	opts := testOptions(t)
	m := newTestModel(t, opts)
	m, _ = send(t, m, TickMsg(t0))

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	path := filepath.Join(opts.ScreenshotDir, "runner_20260102_030405.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Errorf("screenshot content:\n%s", data)
	}
}

func TestNewModelRejectsIncompleteSprites(t *testing.T) {
	opts := testOptions(t)
	cat, err := assets.Parse([]byte("sprites:\n  track:\n    width: 1\n    height: 1\n    art: [\"=\"]\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	opts.Catalog = cat

	if _, err := NewModel(opts); err == nil {
		t.Error("NewModel() accepted a catalog without the game sprites")
	}
}
