package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// Glass panel effect with subtle border
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	// Subtle muted text
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Status indicators
	StatusHeating = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff6644"))

	StatusCooling = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#44bbff"))

	StatusWarning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffcc00")).
			Blink(true)

	// Metric value style
	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	// Metric label style
	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	// Key hint style
	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	// Buttons, idle and held
	ButtonIdle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#aaaacc")).
			Background(lipgloss.Color("#222233"))

	ButtonHeld = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff"))
)

// GradientText colors each rune of text along a Lab blend from start to end.
// Unparseable colors fall back to white.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from := parseColor(start)
	to := parseColor(end)

	var result strings.Builder
	n := len(runes)
	for i, r := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := from.BlendLab(to, t).Clamped()
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders percent in [0, 1] as a bar of width cells tinted with c.
func ProgressBar(percent float64, width int, c colorful.Color) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled)
	rest := strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(bar) + Subtle.Render(rest)
}

// BoxWithTitle renders a titled box
func BoxWithTitle(title, content string, width int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Secondary)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderTop(false).
		BorderForeground(lipgloss.Color("#444466")).
		Width(width).
		Padding(0, 1)

	fill := max(width-lipgloss.Width(title)-3, 0)
	header := Subtle.Render("╭─ ") + titleStyle.Render(title) + Subtle.Render(" "+strings.Repeat("─", fill)+"╮")
	return header + "\n" + box.Render(content)
}

// Separator is a muted horizontal rule with a centered diamond.
func Separator(width int) string {
	if width < 6 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}

func parseColor(c lipgloss.Color) colorful.Color {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return parsed
}
