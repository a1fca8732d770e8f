// Package tui runs cometfall sessions in a terminal. It owns the
// Bubble Tea loop, maps keys to game actions, renders the cell screen
// with lipgloss, and reacts to game events with sound cues and log
// entries. The same model serves local play and SSH sessions.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/cometfall/cometfall/internal/audio"
	"github.com/cometfall/cometfall/internal/core"
)

// helpRows is the number of screen rows reserved for the help bar.
const helpRows = 1

// Options carries the optional platform services for a session.
// A nil Sounds disables cues; a nil Logger disables session logging.
type Options struct {
	Sounds *audio.Board
	Logger *log.Logger
}

// Model is the Bubble Tea model driving one cometfall session.
type Model struct {
	game       core.Game
	screen     *core.Screen
	renderer   *Renderer
	keys       KeyMap
	help       help.Model
	sounds     *audio.Board
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	overLogged bool // Whether the game-over line was logged for this run
}

// NewModel creates a session model and resets the game for a fresh run.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-helpRows)),
		renderer:   NewRenderer(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		sounds:     opts.Sounds,
		logger:     opts.Logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionMoveLeft:
		m.inputFrame.Set(core.ActionMoveLeft)

	case core.ActionMoveRight:
		m.inputFrame.Set(core.ActionMoveRight)

	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}

	case core.ActionMute:
		if m.sounds != nil {
			m.sounds.SetMuted(!m.sounds.Muted())
		}
	}

	return m, nil
}

// handleResize reprojects the view onto the new terminal size. The
// game simulates in its own fixed logical space, so a resize never
// resets the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(1, msg.Height-helpRows))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new run
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.overLogged = false
		m.inputFrame.Clear()
		if m.logger != nil {
			m.logger.Info("run restarted", "game", m.game.ID(), "seed", m.config.Seed)
		}
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// handleEvent reacts to a single game event with cues and logging.
func (m *Model) handleEvent(ev core.Event) {
	switch ev {
	case core.EventLaneShift:
		if m.sounds != nil {
			m.sounds.LaneShift()
		}

	case core.EventGameOver:
		if !m.overLogged {
			m.overLogged = true
			if m.sounds != nil {
				m.sounds.GameOver()
			}
			if m.logger != nil {
				m.logger.Info("run ended",
					"game", m.game.ID(),
					"survived", fmt.Sprintf("%.1fs", m.gameState.Elapsed),
					"lane", m.gameState.Lane,
				)
			}
		}
	}
}

// View renders the playfield with the help bar underneath.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the game state as of the last processed tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run plays one session in the local terminal and blocks until the
// player quits. It returns the final game state for the caller's
// end-of-run summary.
func Run(game core.Game, cfg core.RuntimeConfig, opts Options) (core.GameState, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if m, ok := final.(Model); ok {
		return m.State(), nil
	}
	return game.State(), nil
}
