package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the viewer. Curve and Normal color the two canvas layers.
type Theme struct {
	Name   string
	Curve  lipgloss.Color
	Normal lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Curve:  lipgloss.Color("#00ffff"),
		Normal: lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Warn:   lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Curve:  lipgloss.Color("#00ff00"),
		Normal: lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#ccffcc"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Curve:  lipgloss.Color("#00a8cc"),
		Normal: lipgloss.Color("#ffd700"),
		Accent: lipgloss.Color("#0077be"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Warn:   lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Curve:  lipgloss.Color("#feca57"),
		Normal: lipgloss.Color("#ff6b6b"),
		Accent: lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Warn:   lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
