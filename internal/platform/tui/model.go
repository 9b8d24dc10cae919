package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a terminal game.
type Options struct {
	Config        config.RunnerConfig
	Catalog       *assets.Catalog
	Runtime       core.RuntimeConfig
	Difficulty    string
	Hold          time.Duration  // Repeat hold window, see InputState
	Store         *storage.Store // nil disables the run history
	Logger        *log.Logger
	ScreenshotDir string // Defaults to ~/.arcade/screenshots
}

// session is one engine from first frame to game over.
type session struct {
	engine *runner.Engine
	seed   int64
	over   *gameOver
}

// Model is the Bubble Tea model for the runner.
type Model struct {
	opts     Options
	sess     *session
	screen   *core.Screen
	canvas   *Canvas
	input    *InputState
	keys     KeyMap
	help     help.Model
	clock    func() time.Time
	quitting bool
	err      error
}

// NewModel creates the model and its first session. It fails if the
// engine cannot start, for example when the sprite sheet is incomplete.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}

	screen := core.NewScreen(opts.Runtime.ScreenW, gameRows(opts.Runtime.ScreenH))
	m := Model{
		opts:   opts,
		screen: screen,
		canvas: NewCanvas(screen, opts.Config.Screen.Width, opts.Config.Screen.Height),
		input:  NewInputState(opts.Hold),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		clock:  time.Now,
	}
	m.help.Width = opts.Runtime.ScreenW

	sess, err := m.newSession()
	if err != nil {
		return Model{}, err
	}
	m.sess = sess
	return m, nil
}

// gameRows leaves the last terminal row for the help line.
func gameRows(h int) int {
	return core.Max(h-1, 1)
}

// newSession builds a fresh engine. A fixed seed replays the same course;
// otherwise every session gets a new one.
func (m Model) newSession() (*session, error) {
	seed := m.opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &session{seed: seed}
	notifier := &historyNotifier{
		store:      m.opts.Store,
		logger:     m.opts.Logger,
		difficulty: m.opts.Difficulty,
		seed:       seed,
		onEnd:      func(over *gameOver) { s.over = over },
	}

	engine, err := runner.NewEngine(m.opts.Config, m.opts.Catalog, seed,
		runner.WithLogger(m.opts.Logger),
		runner.WithNotifier(notifier),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot start session: %w", err)
	}
	s.engine = engine

	m.opts.Logger.Info("session started", "seed", seed, "difficulty", m.opts.Difficulty)
	return s, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionRestart:
		if m.sess.over == nil {
			return m, nil
		}
		sess, err := m.newSession()
		if err != nil {
			m.opts.Logger.Error("restart failed", "err", err)
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.sess = sess
		m.input.Reset()
		return m, nil

	case core.ActionNone:
		return m, nil

	default:
		m.input.Press(a, m.clock())
		return m, nil
	}
}

// handleResize keeps the session running; only the cell grid changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width

	m.sess.engine.Render(m.canvas)
	return m, nil
}

// handleTick advances the session by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.sess.over == nil {
		m.sess.engine.Tick(m.input.Snapshot(now), m.canvas)
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// saveScreenshot writes the current screen to a text file.
func (m Model) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("cannot find home directory", "err", err)
			return
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		return
	}

	name := fmt.Sprintf("runner_%s.txt", m.clock().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.sess.over != nil {
		drawGameOver(m.screen, m.sess.over)
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
