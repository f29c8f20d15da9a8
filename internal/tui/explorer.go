// Package tui hosts the progressive renderer in a bubbletea program.
package tui

import (
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/san-kum/dejong/internal/attractor"
	"github.com/san-kum/dejong/internal/config"
	"github.com/san-kum/dejong/internal/export"
	"github.com/san-kum/dejong/internal/metrics"
	"github.com/san-kum/dejong/internal/render"
	"github.com/san-kum/dejong/internal/scheduler"
	"github.com/san-kum/dejong/internal/viz"
)

var sidebarRank = map[string]int{
	"a": 0, "b": 1, "c": 2, "d": 3,
	"zoom": 4, "rotation": 5, "xoffset": 6, "yoffset": 7,
	"blur_radius": 8, "blur_ratio": 9,
}

// paramOrder is every name the map accepts, coefficients first. Names
// without a rank keep their sorted order at the end.
var paramOrder = sidebarOrder(attractor.ParamNames())

func sidebarOrder(names []string) []string {
	rank := func(n string) int {
		if r, ok := sidebarRank[n]; ok {
			return r
		}
		return len(sidebarRank)
	}
	out := slices.Clone(names)
	slices.SortStableFunc(out, func(x, y string) int { return cmp.Compare(rank(x), rank(y)) })
	return out
}

const defaultStep = 0.01

var paramStep = map[string]float64{
	"a": 0.01, "b": 0.01, "c": 0.01, "d": 0.01,
	"zoom": 0.05, "rotation": 0.05, "xoffset": 0.05, "yoffset": 0.05,
	"blur_radius": 0.005, "blur_ratio": 0.05,
}

const (
	sidebarWidth = 30
	chromeRows   = 6
)

type Options struct {
	Config     *config.Config
	Palette    string
	SaveDir    string
	SaveFormat string
	Recorder   metrics.Recorder
	Clock      clockwork.Clock
	Logger     zerolog.Logger
}

// Model is the explorer's bubbletea model.
type Model struct {
	s *session

	cursor   int
	help     bool
	quitting bool

	width  int
	height int
}

// New builds the render state and scheduler from opts.Config. It fails
// when the configured size or the snapshot format is unusable.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	st, err := render.New(cfg.Width, cfg.Height, cfg.Seed)
	if err != nil {
		return Model{}, err
	}
	if err := cfg.Apply(st); err != nil {
		return Model{}, err
	}

	store, err := export.NewStore(opts.SaveDir, opts.SaveFormat, opts.Clock)
	if err != nil {
		return Model{}, err
	}

	s := &session{
		loop:    scheduler.NewIdleLoop(),
		state:   st,
		store:   store,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		log:     opts.Logger.With().Str("component", "tui").Logger(),
		palette: viz.PaletteMono.Name,
	}
	if opts.Palette != "" {
		p := viz.GetPalette(opts.Palette)
		s.palette = p.Name
		st.Look.Foreground, st.Look.Background = p.Foreground, p.Background
	}
	s.sched = scheduler.New(s.loop, st, s, scheduler.Options{
		Quantum:  cfg.Quantum,
		Clock:    opts.Clock,
		Recorder: opts.Recorder,
		Logger:   opts.Logger,
	})
	s.coord = scheduler.NewCoordinator(s.sched)

	return Model{s: s, width: 80, height: 24}, nil
}

// Scheduler exposes the scheduler for callers that outlive the program.
func (m Model) Scheduler() *scheduler.Scheduler { return m.s.sched }

type reloadMsg struct{ cfg *config.Config }

type reloadErrMsg struct{ err error }

// ReloadMsg wraps a freshly loaded config for Program.Send.
func ReloadMsg(cfg *config.Config) tea.Msg { return reloadMsg{cfg: cfg} }

// ReloadErrorMsg reports a config file that failed to load.
func ReloadErrorMsg(err error) tea.Msg { return reloadErrMsg{err: err} }

func (m Model) Init() tea.Cmd {
	if err := m.s.sched.Start(); err != nil {
		m.s.log.Error().Err(err).Msg("start failed")
	}
	return m.s.armed()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case idleMsg:
		return m, m.s.runIdle(msg)
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.s.setViewport(m.canvasSize())
	case reloadMsg:
		m.applyConfig(msg.cfg)
	case reloadErrMsg:
		m.s.alert = "config: " + msg.err.Error()
	}
	return m, m.s.armed(cmd)
}

func (m Model) canvasSize() (int, int) {
	return max(m.width-sidebarWidth-4, 8), max(m.height-chromeRows, 4)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.s
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		s.sched.Close()
		m.quitting = true
		return m, tea.Quit
	case " ", "p":
		if s.sched.Running() {
			s.sched.Stop()
		} else if err := s.sched.Start(); err != nil {
			s.alert = err.Error()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(paramOrder)-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "H":
		m.nudge(-10)
	case "L":
		m.nudge(10)
	case "e":
		s.state.Look.Exposure = math.Max(s.state.Look.Exposure-0.1, 0.1)
		s.coord.LookChanged()
	case "E":
		s.state.Look.Exposure += 0.1
		s.coord.LookChanged()
	case "g":
		s.state.Look.Gamma = math.Max(s.state.Look.Gamma-0.1, 0.1)
		s.coord.LookChanged()
	case "G":
		s.state.Look.Gamma += 0.1
		s.coord.LookChanged()
	case "c":
		p := viz.NextPalette(s.palette)
		s.palette = p.Name
		s.state.Look.Foreground, s.state.Look.Background = p.Foreground, p.Background
		s.coord.ColorChanged()
	case "x":
		s.state.Look.Foreground, s.state.Look.Background = s.state.Look.Background, s.state.Look.Foreground
		s.coord.ColorChanged()
	case "r":
		m.report(s.coord.Randomize(s.rng))
	case "backspace", "0":
		m.report(s.coord.Restart())
	case "s":
		s.save()
	case "?":
		m.help = !m.help
	}
	return m, nil
}

func (m Model) nudge(steps float64) {
	name := paramOrder[m.cursor]
	p := &m.s.state.Params
	step, ok := paramStep[name]
	if !ok {
		step = defaultStep
	}
	old := p.GetParams()[name]
	v := old + steps*step
	if name == "blur_radius" && v < 0 {
		v = 0
	}
	if err := p.SetParam(name, v); err != nil {
		m.s.alert = err.Error()
		return
	}
	if p.GetParams()[name] == old {
		return
	}
	m.report(m.s.coord.ParameterChanged())
}

func (m Model) report(err error) {
	if err != nil {
		m.s.log.Error().Err(err).Msg("scheduler")
		m.s.alert = err.Error()
		return
	}
	m.s.alert = ""
}

// applyConfig routes each changed section to the matching coordinator call.
func (m Model) applyConfig(cfg *config.Config) {
	s := m.s
	st := s.state
	look, err := cfg.Look.RenderLook()
	if err != nil {
		s.alert = "config: " + err.Error()
		return
	}
	if cfg.Quantum != s.sched.Quantum() {
		s.log.Warn().Int("quantum", cfg.Quantum).Msg("quantum changes need a restart of the program")
	}

	params := cfg.Map.Params()
	sizeChanged := cfg.Width != st.Width || cfg.Height != st.Height
	paramsChanged := params != st.Params
	colourChanged := look.Foreground != st.Look.Foreground || look.Background != st.Look.Background
	toneChanged := look.Exposure != st.Look.Exposure || look.Gamma != st.Look.Gamma

	st.Params = params
	st.Look = look
	switch {
	case sizeChanged:
		m.report(s.coord.Resize(cfg.Width, cfg.Height))
	case paramsChanged:
		m.report(s.coord.ParameterChanged())
	case colourChanged:
		s.coord.ColorChanged()
	case toneChanged:
		s.coord.LookChanged()
	}
	s.log.Info().Bool("size", sizeChanged).Bool("params", paramsChanged).Msg("config applied")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.s
	var b strings.Builder

	state := viz.StatusPaused.Render("○ stopped")
	if s.sched.Running() {
		state = viz.StatusRunning.Render("● rendering")
	}
	b.WriteString(" " + viz.Title.Render("d e   j o n g") + "  " + state + "\n")

	side := m.viewSidebar()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, s.frame, "  ", side))
	b.WriteString("\n")

	if s.alert != "" {
		b.WriteString(" " + viz.StatusError.Render(s.alert) + "\n")
	} else {
		b.WriteString(" " + viz.MetricLabel.Render(s.status.Text()) + "\n")
	}
	if m.help {
		b.WriteString(viz.KeyHint.Render(" space run/stop  ↑↓ select  ←→ adjust (HL ×10)  eE exposure  gG gamma") + "\n")
		b.WriteString(viz.KeyHint.Render(" c palette  x invert  r random  0 restart  s save  q quit") + "\n")
	} else {
		b.WriteString(viz.KeyHint.Render(" ? keys") + "\n")
	}
	return b.String()
}

func (m Model) viewSidebar() string {
	s := m.s
	var b strings.Builder
	values := s.state.Params.GetParams()
	for i, name := range paramOrder {
		line := fmt.Sprintf("%-12s%9.4f", name, values[name])
		if i == m.cursor {
			b.WriteString(viz.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(viz.Subtle.Render("  "+line) + "\n")
		}
	}
	b.WriteString(viz.Separator(sidebarWidth-4) + "\n")

	look := s.state.Look
	b.WriteString(viz.MetricLabel.Render("exposure ") + viz.MetricValue.Render(fmt.Sprintf("%.2f", look.Exposure)) + "\n")
	b.WriteString(viz.MetricLabel.Render("gamma    ") + viz.MetricValue.Render(fmt.Sprintf("%.2f", look.Gamma)) + "\n")
	b.WriteString(viz.MetricLabel.Render("colours  ") + viz.MetricValue.Render(viz.HexColor(look.Foreground)+" on "+viz.HexColor(look.Background)) + "\n")
	b.WriteString(viz.MetricLabel.Render("size     ") + viz.MetricValue.Render(fmt.Sprintf("%dx%d", s.state.Width, s.state.Height)) + "\n")
	b.WriteString(viz.Plot(s.history, sidebarWidth-10, 4, "peak density") + "\n")

	return viz.Panel.Width(sidebarWidth).Render(b.String())
}

var _ scheduler.Shell = (*session)(nil)
