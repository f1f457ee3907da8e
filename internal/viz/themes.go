package viz

import (
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Bar colors by role.
	Idle    lipgloss.Color
	Compare lipgloss.Color
	Swap    lipgloss.Color
	Found   lipgloss.Color
	Done    lipgloss.Color
}

// RoleColor returns the bar color for a role.
func (t Theme) RoleColor(r trace.Role) lipgloss.Color {
	switch r {
	case trace.RoleCompare:
		return t.Compare
	case trace.RoleSwap:
		return t.Swap
	case trace.RoleFound:
		return t.Found
	case trace.RoleComplete:
		return t.Done
	default:
		return t.Idle
	}
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"), // Magenta
		Secondary: lipgloss.Color("#00ffff"), // Cyan
		Accent:    lipgloss.Color("#ffff00"), // Yellow
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff0000"),
		Idle:      lipgloss.Color("#444466"),
		Compare:   lipgloss.Color("#00f2ff"),
		Swap:      lipgloss.Color("#bc13fe"),
		Found:     lipgloss.Color("#00ff88"),
		Done:      lipgloss.Color("#ff00ff"),
	}

	ThemeLight = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("#2563eb"), // Blue
		Secondary: lipgloss.Color("#7c3aed"), // Violet
		Accent:    lipgloss.Color("#059669"), // Emerald
		Text:      lipgloss.Color("#0f172a"),
		Muted:     lipgloss.Color("#94a3b8"),
		Success:   lipgloss.Color("#059669"),
		Warning:   lipgloss.Color("#d97706"),
		Error:     lipgloss.Color("#dc2626"),
		Idle:      lipgloss.Color("#cbd5e1"),
		Compare:   lipgloss.Color("#2563eb"),
		Swap:      lipgloss.Color("#7c3aed"),
		Found:     lipgloss.Color("#059669"),
		Done:      lipgloss.Color("#10b981"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
		Idle:      lipgloss.Color("#005500"),
		Compare:   lipgloss.Color("#00ff00"),
		Swap:      lipgloss.Color("#ffff00"),
		Found:     lipgloss.Color("#88ff88"),
		Done:      lipgloss.Color("#00cc00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"), // Ocean blue
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
		Idle:      lipgloss.Color("#1e3a5f"),
		Compare:   lipgloss.Color("#00a8cc"),
		Swap:      lipgloss.Color("#ffd700"),
		Found:     lipgloss.Color("#00ff88"),
		Done:      lipgloss.Color("#0077be"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
		Idle:      lipgloss.Color("#5a3d5c"),
		Compare:   lipgloss.Color("#feca57"),
		Swap:      lipgloss.Color("#ff9ff3"),
		Found:     lipgloss.Color("#5fd068"),
		Done:      lipgloss.Color("#ff6b6b"),
	}

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeLight,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
