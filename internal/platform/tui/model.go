package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/schelling/internal/config"
	"github.com/vovakirdan/schelling/internal/core"
	"github.com/vovakirdan/schelling/internal/registry"
	"github.com/vovakirdan/schelling/internal/schelling"
	"github.com/vovakirdan/schelling/internal/storage"
)

// Model is the Bubble Tea model that hosts one simulation.
// Keys are collected into an input frame and applied on the next tick.
type Model struct {
	scenario   registry.Scenario
	cfg        config.SimulationConfig
	sim        *schelling.Simulation
	screen     *core.Screen
	store      *storage.Store
	runtime    core.RuntimeConfig
	keys       SimKeyMap
	help       help.Model
	inputFrame core.InputFrame
	paused     bool
	finished   bool // settled or reached MaxTicks
	saved      bool // whether the finished run has been stored
	status     string
	quitting   bool
	backToMenu bool
	loop       uint64
}

// NewModel builds the initial world for the scenario and returns a model
// ready to run. cfg overrides the scenario's own configuration.
func NewModel(scenario registry.Scenario, cfg config.SimulationConfig, store *storage.Store, rt core.RuntimeConfig) (Model, error) {
	sim, err := schelling.Initialize(cfg.ToParams())
	if err != nil {
		return Model{}, err
	}

	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = cfg.TickRate
	}
	rt.TickRate = core.ClampTickRate(rt.TickRate)

	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		scenario:   scenario,
		cfg:        cfg,
		sim:        sim,
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH-1),
		store:      store,
		runtime:    rt,
		keys:       DefaultSimKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		loop:       nextLoop(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.loop, m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, tea.Quit
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick applies pending actions and advances the world once if running.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restart := m.inputFrame.Has(core.ActionRestart)
	faster := m.inputFrame.Has(core.ActionFaster)
	slower := m.inputFrame.Has(core.ActionSlower)
	pause := m.inputFrame.Has(core.ActionPause)
	single := m.inputFrame.Has(core.ActionStep)
	m.inputFrame.Clear()

	if restart {
		if err := m.restart(); err != nil {
			m.status = err.Error()
		}
		return m, tickCmd(m.loop, m.runtime.TickRate)
	}

	if faster {
		m.runtime.TickRate = core.ClampTickRate(m.runtime.TickRate * 2)
	}
	if slower {
		m.runtime.TickRate = core.ClampTickRate(m.runtime.TickRate / 2)
	}
	if pause && !m.finished {
		m.paused = !m.paused
	}

	if (!m.paused || single) && !m.finished {
		m.advance()
	}

	return m, tickCmd(m.loop, m.runtime.TickRate)
}

// advance runs one tick and finishes the run when the world has settled
// or the tick budget is spent.
func (m *Model) advance() {
	res := m.sim.Advance()

	limit := m.cfg.MaxTicks > 0 && m.sim.Tick() >= uint64(m.cfg.MaxTicks)
	if !res.Settled() && !limit {
		return
	}

	m.finished = true
	m.paused = true
	if res.Settled() {
		m.status = "settled"
	} else {
		m.status = "tick limit reached"
	}
	m.saveRun()
}

// saveRun records the finished run once.
func (m *Model) saveRun() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	run, err := m.store.SaveRun(storage.NewRun(m.scenario.ID, m.sim.Params(), m.sim.Stats()))
	if err != nil {
		m.status += " (not saved: " + err.Error() + ")"
		return
	}
	m.status += " - saved run " + run.ID[:8]
}

// restart rebuilds the world with a fresh seed.
func (m *Model) restart() error {
	cfg := m.cfg
	cfg.Seed = time.Now().UnixNano()

	sim, err := schelling.Initialize(cfg.ToParams())
	if err != nil {
		return err
	}
	m.sim = sim
	m.paused = false
	m.finished = false
	m.saved = false
	m.status = ""
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// draw lays out the title, grid and status line into dst.
func (m Model) draw(dst *core.Screen) {
	dst.Clear()
	bounds := dst.Bounds()
	if bounds.H < 4 || bounds.W < 10 {
		dst.DrawText(0, 0, "too small")
		return
	}

	title := fmt.Sprintf(" %s  seed %d  threshold %.2f ", m.scenario.Title, m.sim.Params().Seed, m.sim.Params().Threshold)
	dst.DrawTextCentered(0, title, core.ColorAccent)

	frame := core.NewRect(0, 1, bounds.W, bounds.H-2)
	dst.DrawBox(frame, core.ColorBorder)
	DrawGrid(dst, m.sim.Snapshot(), frame.Inset(1))

	dst.DrawTextColored(0, bounds.H-1, hudLine(m.sim.Stats(), m.runtime.TickRate, m.state()), core.ColorHUD)
	if m.status != "" {
		dst.DrawTextColored(2, frame.Bottom()-1, " "+m.status+" ", core.ColorWarn)
	}
}

func (m Model) state() string {
	switch {
	case m.finished:
		return "DONE"
	case m.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// Simulation returns the hosted simulation.
func (m Model) Simulation() *schelling.Simulation {
	return m.sim
}

// Paused reports whether ticks are currently suspended.
func (m Model) Paused() bool {
	return m.paused
}

// Finished reports whether the run has settled or hit its tick limit.
func (m Model) Finished() bool {
	return m.finished
}

// TickRate returns the current ticks per second.
func (m Model) TickRate() int {
	return m.runtime.TickRate
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested the scenario menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one scenario.
// Returns true if user asked for the scenario menu rather than quitting.
func Run(scenario registry.Scenario, cfg config.SimulationConfig, store *storage.Store, rt core.RuntimeConfig) (backToMenu bool, err error) {
	model, err := NewModel(scenario, cfg, store, rt)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
