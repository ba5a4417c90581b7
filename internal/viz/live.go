package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/thermosim/internal/control"
	"github.com/san-kum/thermosim/internal/thermo"
)

const (
	historyCapacity = 600

	defaultVesselWidth  = 32
	defaultVesselHeight = 12
	steamRows           = 3

	// HEAT and COOL buttons sit on the first row.
	buttonRow   = 0
	heatButtonX = 0
	coolButtonX = 10
	buttonWidth = 8
)

var (
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(34)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the interactive session: simulator, canvases, and UI context.
type Model struct {
	sim    *thermo.Simulator
	vessel *Vessel
	gauge  *Gauge
	frame  thermo.Frame

	fps           int
	width, height int
	ticks         int
	history       []float64
	regime        thermo.Regime
	mouseHeld     bool
	showHelp      bool

	// auto drives the inputs while autoOn; any manual input disengages it
	auto   control.Controller
	autoOn bool
}

// NewModel wraps sim for interactive use at fps frames per second.
func NewModel(sim *thermo.Simulator, fps int) Model {
	fps = max(fps, 1)
	m := Model{
		sim:     sim,
		vessel:  NewVessel(defaultVesselWidth, defaultVesselHeight, steamRows),
		gauge:   NewGauge(fps, defaultVesselHeight),
		fps:     fps,
		history: make([]float64, 0, historyCapacity),
	}
	m.frame = sim.Advance(0)
	sim.Resize(m.vessel.Sizes(m.frame.Visual))
	m.regime = m.frame.Visual.Regime
	m.gauge.Snap(m.frame.Visual.Level)
	return m
}

// WithController engages ctrl until the user takes over.
func (m Model) WithController(ctrl control.Controller) Model {
	m.auto = ctrl
	m.autoOn = ctrl != nil
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	log.Printf("session start: %.1f°C, %d fps", m.frame.Temperature, m.fps)
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		st := m.sim.State()
		switch msg.String() {
		case "q", "ctrl+c":
			log.Printf("session end: %.1f°C after %.1fs", st.Temperature, st.Clock)
			return m, tea.Quit
		case "h":
			m.autoOn = false
			m.sim.SetHeating(!st.Heating)
		case "c":
			m.autoOn = false
			m.sim.SetCooling(!st.Cooling)
		case " ", "space":
			m.autoOn = false
			m.release()
		case "a":
			m.toggleAuto()
		case "r":
			m.reset()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// handleMouse holds HEAT or COOL while the left button is down on it.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != buttonRow {
			return
		}
		switch {
		case hit(msg.X, heatButtonX):
			m.sim.SetHeating(true)
			m.mouseHeld, m.autoOn = true, false
		case hit(msg.X, coolButtonX):
			m.sim.SetCooling(true)
			m.mouseHeld, m.autoOn = true, false
		}
	case tea.MouseActionRelease:
		if m.mouseHeld {
			m.release()
		}
	}
}

func hit(x, start int) bool { return x >= start && x < start+buttonWidth }

func (m *Model) release() {
	m.sim.SetHeating(false)
	m.sim.SetCooling(false)
	m.mouseHeld = false
}

func (m *Model) toggleAuto() {
	if m.auto == nil {
		return
	}
	m.autoOn = !m.autoOn
	if m.autoOn {
		m.auto.Reset()
	} else {
		m.release()
	}
	log.Printf("controller engaged: %v", m.autoOn)
}

func (m *Model) reset() {
	m.sim.Reset()
	if m.auto != nil {
		m.auto.Reset()
	}
	m.history = m.history[:0]
	m.frame = m.sim.Advance(0)
	m.sim.Resize(m.vessel.Sizes(m.frame.Visual))
	m.regime = m.frame.Visual.Regime
	m.gauge.Snap(m.frame.Visual.Level)
	log.Printf("reset to %.1f°C", m.frame.Temperature)
}

// resize fits the vessel to the terminal, leaving room for the stats panel.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	vw := min(max(w-50, 10), 64)
	vh := min(max(h-steamRows-12, 4), 24)
	m.vessel.Resize(vw, vh, steamRows)
	m.gauge.Height = vh
	m.sim.Resize(m.vessel.Sizes(m.frame.Visual))
}

// step advances the simulator to now and redraws the canvases.
func (m *Model) step(now time.Time) {
	if m.autoOn {
		m.sim.SetInput(m.auto.Decide(m.frame))
	}
	m.frame = m.sim.Tick(now)
	m.ticks++

	if r := m.frame.Visual.Regime; r != m.regime {
		log.Printf("regime %s -> %s at %.1f°C", m.regime, r, m.frame.Temperature)
		m.regime = r
	}

	m.history = append(m.history, m.frame.Temperature)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	// bubbles rise through the liquid only, which grows and shrinks with temperature
	m.sim.Resize(m.vessel.Sizes(m.frame.Visual))
	m.gauge.Update(m.frame.Visual.Level)
	m.vessel.Draw(m.frame, m.sim.Constants())
}

// View renders the TUI interface.
func (m Model) View() string {
	f := m.frame
	c := m.sim.Constants()

	var top strings.Builder
	top.WriteString(m.buttons() + "  " + GradientText("THERMOSIM", CurrentTheme.Primary, CurrentTheme.Accent))
	top.WriteString(" " + Subtle.Render(AnimatedSpinner(m.ticks)) + "\n")

	vesselView := m.vessel.View(f.Visual, CurrentTheme)
	gaugeView := lipgloss.NewStyle().PaddingTop(steamRows).Render(m.gauge.View(f.Visual, c))
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, vesselView, "  ", gaugeView)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Padding(1, 2).Render(left), statsStyle.Render(m.stats()))
	if m.showHelp {
		return top.String() + helpOverlay + "\n" + mainView
	}
	return top.String() + mainView
}

func (m Model) buttons() string {
	heat, cool := ButtonIdle, ButtonIdle
	if m.frame.Heating {
		heat = ButtonHeld.Background(CurrentTheme.Hot)
	}
	if m.frame.Cooling {
		cool = ButtonHeld.Background(CurrentTheme.Cold)
	}
	return heat.Render("[ HEAT ]") + "  " + cool.Render("[ COOL ]")
}

func (m Model) stats() string {
	f := m.frame
	var s strings.Builder

	s.WriteString(headerStyle.Render(strings.ToUpper(f.Visual.Regime.String())) + "  ")
	if m.autoOn {
		s.WriteString(MetricValue.Render(fmt.Sprintf("AUTO %.0f°", m.auto.Target())) + " ")
	}
	switch {
	case f.Heating:
		s.WriteString(StatusHeating.Render("HEATING"))
	case f.Cooling:
		s.WriteString(StatusCooling.Render("COOLING"))
	default:
		s.WriteString(Subtle.Render("IDLE"))
	}
	s.WriteString("\n\n")

	for _, row := range f.Readings.Rows() {
		s.WriteString(labelStyle.Render(row.Label) + valueStyle.Render(row.Value) + "\n")
	}
	s.WriteString(labelStyle.Render("Bubbles") + valueStyle.Render(fmt.Sprintf("%d", f.BubbleCount)) + "\n")
	s.WriteString(labelStyle.Render("Steam") + valueStyle.Render(fmt.Sprintf("%d", f.SteamCount)) + "\n")
	if f.Visual.Regime == thermo.Boiling {
		s.WriteString(labelStyle.Render("Evaporated") + ProgressBar(f.Visual.Evaporation, 12, f.Visual.ThermometerColor) + "\n")
	}

	if f.FreezeWarning {
		s.WriteString("\n" + StatusWarning.Render("⚠ FREEZING: water expands as it turns to ice"))
	}
	if f.BoilWarning {
		s.WriteString("\n" + StatusWarning.Render("⚠ BOILING: rapid vaporization"))
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(24), asciigraph.Caption("Temperature °C"))
		s.WriteString("\n" + graphStyle.Render(chart))
	}

	s.WriteString(helpStyle.Render("\n" + Separator(30) + "\nH:Heat C:Cool SP:Release A:Auto\nR:Reset T:Theme Q:Quit ?:Help"))
	return s.String()
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  H        - Toggle heating           ║
║  C        - Toggle cooling           ║
║  Mouse    - Hold HEAT / COOL         ║
║  Space    - Release both             ║
║  A        - Toggle the controller    ║
║  R        - Reset temperature        ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`
