package viz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/24dai03-saifchaus/algonexus/internal/algorithms"
	"github.com/24dai03-saifchaus/algonexus/internal/cache"
	"github.com/24dai03-saifchaus/algonexus/internal/codepanel"
	"github.com/24dai03-saifchaus/algonexus/internal/config"
	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/input"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

const (
	stateMenu = iota
	stateConfig
	statePlay
)

const (
	fieldDataset = iota
	fieldTarget
)

// randomLength and randomMax match the Random button: eight values below 100.
const (
	randomLength = 8
	randomMax    = 100
)

// App is the interactive visualizer: algorithm menu, input editing, player.
type App struct {
	state    int
	cursor   int
	infos    []algorithms.Info
	selected algorithms.Info

	dataset string
	target  string
	field   int
	editing bool
	editBuf string
	err     string

	registry *experiment.Registry
	store    cache.Store
	cfg      *config.Config
	rng      *rand.Rand

	width, height int
	player        Model
}

func NewApp(cfg *config.Config, registry *experiment.Registry, store cache.Store) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	a := &App{
		state:    stateMenu,
		infos:    registry.Infos(),
		dataset:  cfg.Input,
		target:   cfg.Target,
		registry: registry,
		store:    store,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	for i, info := range a.infos {
		if info.ID == experiment.Normalize(cfg.Algorithm) {
			a.cursor = i
		}
	}
	return a
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.state == statePlay {
			p, _ := a.player.Update(msg)
			a.player = p.(Model)
		}
		return a, nil
	default:
		if a.state == statePlay {
			p, cmd := a.player.Update(msg)
			a.player = p.(Model)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateConfig:
		return a.configKey(msg)
	case statePlay:
		if msg.String() == "esc" {
			a.player.Cursor().Pause()
			a.player.gen++
			a.state = stateConfig
			return a, nil
		}
		p, cmd := a.player.Update(msg)
		a.player = p.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.infos)-1 {
			a.cursor++
		}
	case "enter", " ":
		if len(a.infos) == 0 {
			return a, nil
		}
		a.selected = a.infos[a.cursor]
		a.state, a.field, a.err = stateConfig, fieldDataset, ""
	}
	return a, nil
}

func (a App) fields() []int {
	if a.selected.Category == algorithms.Searching {
		return []int{fieldDataset, fieldTarget}
	}
	return []int{fieldDataset}
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			if a.field == fieldTarget {
				a.target = a.editBuf
			} else {
				a.dataset = a.editBuf
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			switch msg.Type {
			case tea.KeyRunes:
				a.editBuf += string(msg.Runes)
			case tea.KeySpace:
				a.editBuf += " "
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.field > 0 {
			a.field--
		}
	case "down", "j":
		if a.field < len(a.fields())-1 {
			a.field++
		}
	case "enter", "e":
		a.editing = true
		if a.field == fieldTarget {
			a.editBuf = a.target
		} else {
			a.editBuf = a.dataset
		}
	case "r":
		values, target := input.Random(a.rng, randomLength, randomMax)
		a.dataset = input.FormatDataset(values)
		if a.selected.Category == algorithms.Searching {
			a.target = target.String()
		}
	case "s", "a":
		return a.start()
	}
	return a, nil
}

// start generates the trace for the current inputs and switches to the
// player. An empty sort dataset keeps the user on the input screen.
func (a App) start() (App, tea.Cmd) {
	cfg := experiment.Config{
		Algorithm: a.selected.ID,
		Input:     input.ParseDataset(a.dataset),
		Target:    input.ParseTarget(a.target),
	}
	res, _, err := cache.Generate(context.Background(), a.store, a.registry, cfg, nil)
	if err != nil {
		if errors.Is(err, trace.ErrEmptyDataset) {
			a.err = "enter at least one integer"
		} else {
			a.err = err.Error()
		}
		return a, nil
	}
	a.err = ""

	lang, err := codepanel.ParseLanguage(a.cfg.Language)
	if err != nil {
		lang = codepanel.Cpp
	}
	theme := a.cfg.Theme
	delay := time.Duration(a.cfg.DelayMS) * time.Millisecond
	if a.player.cursor != nil {
		lang, theme, delay = a.player.Language(), a.player.Theme().Name, a.player.Cursor().Delay()
	}

	a.player = NewModel(a.selected, res.Trace, WithLanguage(lang), WithTheme(theme), WithDelay(delay))
	a.player.width, a.player.height = a.width, a.height
	a.state = statePlay
	return a, a.player.Init()
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case statePlay:
		return a.player.View() + "\n" + KeyHelp("esc", "edit input")
	}
	return ""
}

var (
	menuTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuPointer = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4757")).Bold(true)
)

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("ALGONEXUS") + "\n    " + menuSub.Render("algorithm step visualizer") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")

	category := ""
	for i, info := range a.infos {
		if string(info.Category) != category {
			category = string(info.Category)
			b.WriteString("    " + menuSub.Render(strings.ToUpper(category)) + "\n")
		}
		desc := info.TimeComplexity
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-16s", info.Name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-16s", info.Name)), menuIdle.Render(desc)))
		}
	}
	if a.cursor < len(a.infos) {
		b.WriteString("\n    " + lipgloss.NewStyle().Width(60).Foreground(lipgloss.Color("#888899")).Render(a.infos[a.cursor].Description) + "\n")
	}
	b.WriteString("\n    " + KeyHelp("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(a.selected.Name)) + "\n    " + menuSub.Render(a.selected.Description) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")

	labels := map[int]string{fieldDataset: "dataset", fieldTarget: "target"}
	values := map[int]string{fieldDataset: a.dataset, fieldTarget: a.target}
	for _, f := range a.fields() {
		val := values[f]
		if a.editing && f == a.field {
			val = a.editBuf + "_"
		}
		if f == a.field {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", labels[f])), menuDesc.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", labels[f])), menuIdle.Render(val)))
		}
	}

	parsed := input.ParseDataset(a.dataset)
	b.WriteString("\n    " + menuSub.Render(fmt.Sprintf("parsed: [%s] (%d values)", input.FormatDataset(parsed), len(parsed))) + "\n")
	if a.err != "" {
		b.WriteString("    " + menuErr.Render(a.err) + "\n")
	}
	b.WriteString("\n    " + KeyHelp("j/k", "select", "enter", "edit", "r", "random", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive runs the visualizer until the user quits.
func RunInteractive(cfg *config.Config, registry *experiment.Registry, store cache.Store) error {
	_, err := tea.NewProgram(NewApp(cfg, registry, store), tea.WithAltScreen()).Run()
	return err
}

// Play runs the player alone for one trace.
func Play(info algorithms.Info, tr trace.Trace, opts ...ModelOption) error {
	_, err := tea.NewProgram(NewModel(info, tr, opts...), tea.WithAltScreen()).Run()
	return err
}
