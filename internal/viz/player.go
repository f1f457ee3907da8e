package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/24dai03-saifchaus/algonexus/internal/algorithms"
	"github.com/24dai03-saifchaus/algonexus/internal/codepanel"
	"github.com/24dai03-saifchaus/algonexus/internal/export"
	"github.com/24dai03-saifchaus/algonexus/internal/playback"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	barRows       = 10
)

// TickMsg advances playback. Ticks armed under an older generation are
// dropped.
type TickMsg struct {
	Gen uint64
}

// Model plays one trace.
type Model struct {
	info      algorithms.Info
	cursor    *playback.Cursor
	gen       uint64
	lang      codepanel.Language
	codeOpts  codepanel.Options
	theme     Theme
	width     int
	height    int
	showHelp  bool
	recording bool
	frames    trace.Trace
	gifDir    string
	status    string
	celebrate bool
	series    []float64
}

type ModelOption func(*Model)

func WithLanguage(l codepanel.Language) ModelOption { return func(m *Model) { m.lang = l } }
func WithTheme(name string) ModelOption             { return func(m *Model) { m.theme = GetTheme(name) } }
func WithDelay(d time.Duration) ModelOption         { return func(m *Model) { m.cursor.SetDelay(d) } }

// WithGIFDir sets where recordings are written.
func WithGIFDir(dir string) ModelOption { return func(m *Model) { m.gifDir = dir } }

// WithCodeOptions overrides the code panel renderer settings.
func WithCodeOptions(o codepanel.Options) ModelOption { return func(m *Model) { m.codeOpts = o } }

// NewModel loads tr paused on its first step.
func NewModel(info algorithms.Info, tr trace.Trace, opts ...ModelOption) Model {
	m := Model{
		info:     info,
		cursor:   playback.NewCursor(),
		lang:     codepanel.Cpp,
		codeOpts: codepanel.DefaultOptions(),
		theme:    ThemeCyberpunk,
		width:    defaultWidth,
		height:   defaultHeight,
		gifDir:   ".",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.Load(tr)
	return m
}

// Load swaps in a new trace; any pending tick is invalidated.
func (m *Model) Load(tr trace.Trace) {
	m.cursor.Load(tr)
	m.gen++
	m.celebrate = false
	m.status = ""
	m.series = export.CumulativeComparisons(tr)
	if m.recording {
		m.frames = trace.Trace{m.cursor.Current()}
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.cursor.Delay(), func(time.Time) tea.Msg { return TickMsg{Gen: gen} })
}

// rearm invalidates the pending tick and arms a fresh one while playing.
func (m *Model) rearm() tea.Cmd {
	m.gen++
	if m.cursor.Playing() {
		return m.tick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.onEvent(m.cursor.Advance())
		if m.cursor.Playing() {
			return m, m.tick()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		m.cursor.Toggle()
		m.celebrate = false
		return m, m.rearm()
	case "right", "l":
		m.onEvent(m.cursor.Next())
		return m, m.rearm()
	case "left", "h":
		m.onEvent(m.cursor.Prev())
		return m, m.rearm()
	case "r", "home":
		m.onEvent(m.cursor.Reset())
		return m, m.rearm()
	case "end":
		m.onEvent(m.cursor.Seek(m.cursor.Len() - 1))
		return m, m.rearm()
	case "+", "=":
		m.cursor.SetDelay(m.cursor.Delay() + playback.DelayStep)
		return m, m.rearm()
	case "-", "_":
		m.cursor.SetDelay(m.cursor.Delay() - playback.DelayStep)
		return m, m.rearm()
	case "c":
		m.lang = m.lang.Next()
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) onEvent(ev playback.Event) {
	if ev == playback.EventNone {
		return
	}
	if m.recording {
		m.frames = append(m.frames, m.cursor.Current())
	}
	m.celebrate = ev == playback.EventCelebrate
	switch ev {
	case playback.EventCelebrate:
		m.status = "complete"
	case playback.EventFinished:
		m.status = "finished"
	default:
		m.status = ""
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = trace.Trace{m.cursor.Current()}
		m.status = "recording"
		return
	}
	m.recording = false
	path, err := saveGIF(m.gifDir, m.info.ID, m.frames)
	m.frames = nil
	if err != nil {
		m.status = "gif: " + err.Error()
		return
	}
	m.status = "saved " + path
}

// Cursor exposes the playback position.
func (m Model) Cursor() *playback.Cursor     { return m.cursor }
func (m Model) Language() codepanel.Language { return m.lang }
func (m Model) Theme() Theme                 { return m.theme }
func (m Model) Recording() bool              { return m.recording }
func (m Model) Celebrating() bool            { return m.celebrate }
func (m Model) Generation() uint64           { return m.gen }
func (m Model) Status() string               { return m.status }

func (m Model) View() string {
	t := m.theme
	step := m.cursor.Current()

	var s strings.Builder
	s.WriteString(GradientText("ALGONEXUS", t.Secondary, t.Primary))
	s.WriteString("  " + lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(m.info.Name))
	s.WriteString("  " + MetricLabel.Render(fmt.Sprintf("%s · %s · %s", m.info.Category, m.info.TimeComplexity, m.info.SpaceComplexity)))
	s.WriteString("\n" + Separator(min(m.width, 80)) + "\n")

	s.WriteString(m.confetti() + "\n")
	s.WriteString(RenderBars(step, t, barRows) + "\n")
	s.WriteString(Legend(t) + "\n\n")

	desc := step.Description
	if desc == "" {
		desc = "(no step)"
	}
	left := Panel(t, "Step", lipgloss.NewStyle().Foreground(t.Text).Width(40).Render(desc), 44)
	right := Panel(t, m.lang.Label(), m.codeView(step.Line), 0)
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right) + "\n")

	if len(m.series) > 1 {
		upto := m.series[:m.cursor.Index()+1]
		if len(upto) > 1 {
			chart := asciigraph.Plot(upto, asciigraph.Height(3), asciigraph.Width(40), asciigraph.Caption("comparisons"))
			s.WriteString(lipgloss.NewStyle().Foreground(t.Secondary).Render(chart) + "\n")
		}
	}

	s.WriteString(m.statusLine() + "\n")
	s.WriteString(KeyHelp("space", "play", "←/→", "step", "r", "restart", "+/-", "delay", "c", "lang", "t", "theme", "g", "gif", "?", "help", "q", "quit"))

	if m.showHelp {
		return helpOverlay + "\n\n" + s.String()
	}
	return s.String()
}

func (m Model) codeView(line int) string {
	code, err := codepanel.Snippet(m.info.ID, m.lang)
	if err != nil {
		return Subtle.Render(err.Error())
	}
	out, err := codepanel.Render(code, m.lang, line, m.codeOpts)
	if err != nil {
		return code
	}
	return out
}

func (m Model) statusLine() string {
	i, n := m.cursor.Progress()
	var state string
	switch {
	case m.recording:
		state = StatusRecording.Render("● REC")
	case m.cursor.Playing():
		state = StatusRunning.Render("▶ PLAYING")
	default:
		state = StatusPaused.Render("❚❚ PAUSED")
	}

	pct := 0.0
	if n > 0 {
		pct = float64(i) / float64(n)
	}
	line := fmt.Sprintf("%s  %s  %s  %s",
		state,
		ProgressBar(m.theme, pct, 24),
		MetricLabel.Render(fmt.Sprintf("%d / %d", i, n)),
		MetricLabel.Render(fmt.Sprintf("delay %dms", m.cursor.Delay().Milliseconds())),
	)
	if m.status != "" && m.status != "recording" {
		line += "  " + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.status)
	}
	return line
}

// confetti is the celebration banner shown on a successful final step.
func (m Model) confetti() string {
	if !m.celebrate {
		return ""
	}
	colors := []lipgloss.Color{m.theme.Compare, m.theme.Swap, m.theme.Primary}
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Render("✦ "))
	}
	return b.String()
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  ← / H    - Previous step            ║
║  → / L    - Next step                ║
║  R        - Restart from step 1      ║
║  + / -    - Slower / faster (100ms)  ║
║  C        - Cycle code language      ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  Esc      - Back to input            ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
