package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickburst/internal/breakout"
	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/core"
)

// Canvas units covered by one terminal cell.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// footerRows is the number of terminal rows reserved for the help footer.
const footerRows = 1

// GameOptions describes how to build a game for a terminal of a given size.
type GameOptions struct {
	Config config.BreakoutConfig
	Seed   uint64
	Store  breakout.HighScoreStore
	Sink   breakout.CueSink
}

// NewGame creates a game whose canvas fits a terminal of cols x rows cells.
func NewGame(opts GameOptions, cols, rows int) *breakout.Game {
	w, h := canvasSize(cols, rows)

	var gameOpts []breakout.Option
	if opts.Store != nil {
		gameOpts = append(gameOpts, breakout.WithStore(opts.Store))
	}
	if opts.Sink != nil {
		gameOpts = append(gameOpts, breakout.WithCueSink(opts.Sink))
	}
	return breakout.New(opts.Config, w, h, opts.Seed, gameOpts...)
}

// canvasSize converts a terminal size into canvas units, leaving room for the footer.
func canvasSize(cols, rows int) (float64, float64) {
	playRows := max(rows-footerRows, 2)
	return float64(max(cols, 1)) * CellWidth, float64(playRows) * CellHeight
}

// Model is the Bubble Tea model for one running game.
type Model struct {
	game     *breakout.Game
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	tickRate int
	lastTick time.Time
	logger   *log.Logger
	lastErr  error
	quitting bool
}

// NewModel creates a new Bubble Tea model driving game on a terminal of
// cfg.ScreenW x cfg.ScreenH cells. logger may be nil.
func NewModel(game *breakout.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 0)),
		keys:     DefaultKeyMap(),
		help:     h,
		tickRate: cfg.TickRate,
		logger:   logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey turns key presses into intents for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == ActionQuit {
		m.quitting = true
		// Persist a best reached mid-game before the session goes away
		_ = m.game.Flush()
		m = m.reportStoreErr()
		return m, tea.Quit
	}

	for _, in := range Intents(action, m.game.World()) {
		m.game.Submit(in)
	}
	return m, nil
}

// handleMouse centers the paddle under the pointer; a left click confirms.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.game.Submit(breakout.MoveTo((float64(msg.X) + 0.5) * CellWidth))

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for _, in := range Intents(ActionConfirm, m.game.World()) {
			m.game.Submit(in)
		}
	}
	return m, nil
}

// handleResize processes window resize events. Game state is preserved.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, max(msg.Height-footerRows, 0))
	m.help.Width = msg.Width
	m.game.Resize(canvasSize(msg.Width, msg.Height))
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1.0 / float64(max(m.tickRate, 1))
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	m.game.Step(dt)
	m = m.reportStoreErr()

	return m, tickCmd(m.tickRate)
}

// reportStoreErr logs each distinct store error once.
func (m Model) reportStoreErr() Model {
	if err := m.game.StoreErr(); err != nil && err != m.lastErr {
		if m.logger != nil {
			m.logger.Warn("high score not persisted", "error", err)
		}
		m.lastErr = err
	}
	return m
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for game on the local terminal.
// Store errors are reported through logger, which may be nil.
func Run(game *breakout.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Paddle follows the pointer
	)

	_, err := p.Run()
	return err
}
