package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/physics"
	"github.com/san-kum/mdsim/internal/sim"
)

const (
	canvasWidth     = 48
	canvasHeight    = 24
	historyCapacity = 300
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// LiveModel advances a Simulation by one batch per frame and draws the
// periodic box together with the energy history.
type LiveModel struct {
	sim      *sim.Simulation
	batch    int
	maxSteps int
	canvas   *Canvas
	theme    Theme
	styles   Styles
	running  bool
	done     bool
	err      error
	frame    sim.Frame
	history  []metrics.Record
	title    string
}

// NewLiveModel shows s, running batch steps per frame until maxSteps; a
// maxSteps of 0 runs until quit.
func NewLiveModel(s *sim.Simulation, batch, maxSteps int, title string) *LiveModel {
	if batch < 1 {
		batch = 1
	}
	return &LiveModel{
		sim:      s,
		batch:    batch,
		maxSteps: maxSteps,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		theme:    Themes[0],
		styles:   NewStyles(Themes[0]),
		running:  true,
		frame:    s.Frame(),
		history:  make([]metrics.Record, 0, historyCapacity),
		title:    title,
	}
}

func (m *LiveModel) Init() tea.Cmd {
	return tick()
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.SetTheme(NextTheme(m.theme))
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) advance() {
	n := m.batch
	if m.maxSteps > 0 {
		n = min(n, m.maxSteps-m.sim.StepCount())
	}
	if n <= 0 {
		m.done = true
		return
	}

	rec, err := m.sim.RunBatch(n)
	if err != nil {
		m.err = err
		m.done = true
		return
	}

	m.history = append(m.history, rec)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	m.frame = m.sim.Frame()
	if m.maxSteps > 0 && m.sim.StepCount() >= m.maxSteps {
		m.done = true
	}
}

func (m *LiveModel) SetTheme(t Theme) {
	m.theme = t
	m.styles = NewStyles(t)
}

func (m *LiveModel) Running() bool { return m.running }

func (m *LiveModel) Done() bool { return m.done }

// Err is the error that stopped the simulation, if any.
func (m *LiveModel) Err() error { return m.err }

func (m *LiveModel) History() []metrics.Record { return m.history }

func (m *LiveModel) draw() {
	m.canvas.Clear()
	m.canvas.Frame()
	for _, p := range m.frame.Positions {
		m.canvas.Disc(p, physics.RMin/2, m.frame.Box)
	}
}

func (m *LiveModel) View() string {
	m.draw()
	st := m.styles
	rec := m.frame.Record
	p := m.sim.Params()

	var s strings.Builder
	s.WriteString(st.Header.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(st.Warning.Render("STOPPED: "+m.err.Error()) + "\n\n")
	case m.done:
		s.WriteString(st.Paused.Render("FINISHED") + "\n\n")
	case m.running:
		s.WriteString(st.Running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.Paused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(st.Row("Step", fmt.Sprintf("%d", m.sim.StepCount())))
	s.WriteString(st.Row("Time", fmt.Sprintf("%.3f", rec.Time)))
	s.WriteString(st.Row("Ekin", fmt.Sprintf("%.4f", rec.Kinetic)))
	s.WriteString(st.Row("Epot", fmt.Sprintf("%.4f", rec.Potential)))
	s.WriteString(st.Row("Etot", fmt.Sprintf("%.4f", rec.Total)))
	s.WriteString(st.Row("kT inst", fmt.Sprintf("%.4f", rec.Kinetic/float64(p.Particles))))
	if cv, ok := m.sim.HeatCapacity(); ok {
		s.WriteString(st.Row("Cv", fmt.Sprintf("%.4f", cv)))
	}
	if m.maxSteps > 0 {
		frac := float64(m.sim.StepCount()) / float64(m.maxSteps)
		s.WriteString("\n" + st.ProgressBar(frac, 30) + "\n")
	}

	if len(m.history) > 1 {
		s.WriteString(st.Graph.Render(EnergyPlot(m.history, 30, 6)) + "\n")
	}

	s.WriteString(st.Help.Render("space pause  t theme  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.Canvas.Render(m.canvas.String()),
		st.Panel.Render(s.String()))
}
