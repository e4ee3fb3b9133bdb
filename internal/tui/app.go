// Package tui is the interactive terminal front end: pick a circuit,
// step through it, inject errors and watch them propagate.
package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/qtrace/internal/analysis"
	"github.com/san-kum/qtrace/internal/config"
	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/session"
	"github.com/san-kum/qtrace/internal/sim"
	"github.com/san-kum/qtrace/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type state int

const (
	stateMenu state = iota
	stateSim
)

// chartRenderer caches the weight chart between redraw triggers so the
// view only replots when the history actually changed.
type chartRenderer struct {
	sess  *session.Session
	chart string
}

func (r *chartRenderer) UpdateDisplay() {}
func (r *chartRenderer) RenderCircuit() {}

func (r *chartRenderer) RenderErrorChart() {
	if r.sess == nil {
		return
	}
	r.chart = viz.WeightChart(analysis.WeightSeries(r.sess.Entries()), 40, 6)
}

type model struct {
	state   state
	cursor  int
	presets []string

	selected string
	sess     *session.Session
	renderer *chartRenderer
	qubit    int
	status   string

	width  int
	height int
}

func NewApp() model {
	return model{
		state:   stateMenu,
		presets: config.ListPresets(),
		width:   80,
		height:  24,
	}
}

// Run starts the interactive program on the alternate screen.
func Run() error {
	p := tea.NewProgram(NewApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		name := m.presets[m.cursor]
		if err := m.start(name); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state = stateSim
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) start(preset string) error {
	c, err := config.GetPreset(preset)
	if err != nil {
		return err
	}
	s, err := sim.New(c)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard)
	r := &chartRenderer{}
	sess := session.New(s, c, r, logger)
	r.sess = sess

	m.selected = preset
	m.sess = sess
	m.renderer = r
	m.qubit = 0
	m.status = ""

	// Record the clean pattern at step zero.
	sess.RecordErrorHistory(false)
	return nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	sess := m.sess
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "escape":
		m.state = stateMenu
		m.sess = nil
		m.renderer = nil
		return m, tea.ClearScreen
	case "up", "k":
		if m.qubit > 0 {
			m.qubit--
		}
	case "down", "j":
		if m.qubit < sess.Circuit.Qubits-1 {
			m.qubit++
		}
	case "x":
		sess.Selected = pauli.X
	case "y":
		sess.Selected = pauli.Y
	case "z":
		sess.Selected = pauli.Z
	case "i":
		sess.Selected = pauli.I
	case "enter", " ":
		sess.InjectError(m.qubit)
		sess.RecordErrorHistory(true)
		m.status = fmt.Sprintf("injected %s on q%d", sess.Selected, m.qubit)
	case "right", "l", "n":
		ok, err := sess.Sim.StepForward()
		if err != nil {
			m.status = err.Error()
			break
		}
		if !ok {
			m.status = "end of circuit"
			break
		}
		sess.CurrentTime = sess.Sim.CurrentTime()
		sess.RecordErrorHistory(false)
		m.status = ""
	case "left", "h", "p":
		if !sess.Sim.StepBackward() {
			m.status = "at start"
			break
		}
		sess.CurrentTime = sess.Sim.CurrentTime()
		sess.RecordErrorHistory(false)
		m.status = ""
	case "e":
		for {
			ok, err := sess.Sim.StepForward()
			if err != nil {
				m.status = err.Error()
				break
			}
			if !ok {
				break
			}
			sess.CurrentTime = sess.Sim.CurrentTime()
			sess.RecordErrorHistory(false)
		}
	case "r":
		if err := m.start(m.selected); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("q t r a c e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := config.PresetDescription(name)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("      " + yellow.Render(m.status) + "\n\n")
	}
	b.WriteString(dim.Render("      ↑↓ select   enter start   q quit") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	sess := m.sess
	var b strings.Builder

	label := "none"
	if sess.Selected != pauli.I {
		label = viz.OpStyle(sess.Selected.String()).Render(sess.Selected.String())
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  t=%s/%d  armed: %s\n\n",
		green.Render("●"),
		cyan.Render(m.selected),
		white.Render(fmt.Sprintf("%d", sess.CurrentTime)),
		sess.Sim.Depth(),
		label))

	diagram := viz.Diagram(sess.Circuit, sess.Sim.ErrorPattern(), sess.CurrentTime)
	for i, line := range strings.Split(strings.TrimRight(diagram, "\n"), "\n") {
		marker := "   "
		if i == m.qubit {
			marker = " " + cyan.Render("▸") + " "
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n")

	pattern := sess.Sim.ErrorPattern()
	b.WriteString("   " + viz.LabelStyle.Render("pattern") + viz.ValueStyle.Render(pattern.Format()) + "\n")
	b.WriteString("   " + viz.LabelStyle.Render("weight") + viz.ValueStyle.Render(fmt.Sprintf("%d", pattern.Weight())) + "\n")
	b.WriteString("   " + viz.LabelStyle.Render("history") + viz.ValueStyle.Render(fmt.Sprintf("%d steps", sess.HistoryLen())) + "\n\n")

	if m.renderer.chart != "" {
		b.WriteString(viz.GraphStyle.Render(m.renderer.chart) + "\n")
	}

	if m.status != "" {
		b.WriteString("   " + yellow.Render(m.status) + "\n")
	}
	b.WriteString(dim.Render("   ←→ step  ↑↓ qubit  x/y/z arm  enter inject  e run  r reset  esc back") + "\n")

	return b.String()
}
