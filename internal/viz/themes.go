package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Cold       lipgloss.Color
	Warning    lipgloss.Color
	Hot        lipgloss.Color
	Vessel     lipgloss.Color
	Bubble     lipgloss.Color
	Steam      lipgloss.Color
}

// Available themes
var (
	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Cold:       lipgloss.Color("#88ddff"),
		Warning:    lipgloss.Color("#ffcc00"),
		Hot:        lipgloss.Color("#ff4444"),
		Vessel:     lipgloss.Color("#0a2238"),
		Bubble:     lipgloss.Color("#e6f6ff"),
		Steam:      lipgloss.Color("#d0d8e0"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Cold:       lipgloss.Color("#66ccff"),
		Warning:    lipgloss.Color("#ffaa00"),
		Hot:        lipgloss.Color("#ff0000"),
		Vessel:     lipgloss.Color("#111111"),
		Bubble:     lipgloss.Color("#ffffff"),
		Steam:      lipgloss.Color("#bbbbbb"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Cold:       lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Hot:        lipgloss.Color("#ff0000"),
		Vessel:     lipgloss.Color("#002200"),
		Bubble:     lipgloss.Color("#ccffcc"),
		Steam:      lipgloss.Color("#66aa66"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Cold:       lipgloss.Color("#9fd8ff"),
		Warning:    lipgloss.Color("#ffc048"),
		Hot:        lipgloss.Color("#ff4757"),
		Vessel:     lipgloss.Color("#3a2540"),
		Bubble:     lipgloss.Color("#fff0f5"),
		Steam:      lipgloss.Color("#e8d0e0"),
	}

	// Default theme
	CurrentTheme = ThemeOcean

	// All available themes
	Themes = []Theme{
		ThemeOcean,
		ThemeMinimal,
		ThemeRetroGreen,
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
	return ThemeOcean
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
