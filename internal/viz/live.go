// Package viz renders a live terminal view of a running simulation.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
)

const historyCapacity = 400

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a scallop simulation at a fixed frame rate and plots the
// recent velocity history.
type Model struct {
	sim           *scallop.Scallop
	speedHistory  []float64
	stepsPerFrame int
	frameInterval time.Duration
	running       bool
	done          bool
	err           error
}

func NewModel(sim *scallop.Scallop, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)

	// Keep wall-clock playback near real time when the solve allows it.
	steps := int(1.0 / (float64(fps) * sim.Params().Dt))
	if steps < 1 {
		steps = 1
	}

	return Model{
		sim:           sim,
		speedHistory:  make([]float64, 0, historyCapacity),
		stepsPerFrame: steps,
		frameInterval: interval,
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && !m.done {
				return m, m.tick()
			}
		}

	case TickMsg:
		if !m.running || m.done {
			return m, nil
		}

		for i := 0; i < m.stepsPerFrame; i++ {
			if m.sim.Time() >= m.sim.Params().Duration {
				m.done = true
				break
			}
			if err := m.sim.Tick(); err != nil {
				m.err = err
				m.done = true
				break
			}
			m.speedHistory = append(m.speedHistory, m.sim.Speed())
			if len(m.speedHistory) > historyCapacity {
				m.speedHistory = m.speedHistory[1:]
			}
		}

		if m.done {
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	s := headerStyle.Render("scallop: two-filament swimmer") + "\n"

	if len(m.speedHistory) > 1 {
		graph := asciigraph.Plot(m.speedHistory,
			asciigraph.Height(12),
			asciigraph.Width(72),
			asciigraph.Caption("translation speed U"),
		)
		s += graphStyle.Render(graph) + "\n"
	}

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}
	s += row("time", fmt.Sprintf("%.4f / %.4f", m.sim.Time(), m.sim.Params().Duration))
	s += row("speed U", fmt.Sprintf("%+.8f", m.sim.Speed()))
	s += row("hinge x", fmt.Sprintf("%+.8f", m.sim.HingeX()))
	s += row("theta1", fmt.Sprintf("%+.4f rad", m.sim.Theta1()))

	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	} else if m.done {
		s += valueStyle.Render("finished") + "\n"
	} else if !m.running {
		s += valueStyle.Render("paused") + "\n"
	}

	s += helpStyle.Render("space: pause/resume  q: quit")
	return s
}
