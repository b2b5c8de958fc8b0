package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette: greens for growth, amber for "not yet", ruby for broken streaks.
var (
	Leaf   = lipgloss.Color("#50C878")
	Amber  = lipgloss.Color("#FFBF00")
	Ember  = lipgloss.Color("#FF7F27")
	Ruby   = lipgloss.Color("#E0115F")
	Sky    = lipgloss.Color("#0F52BA")
	Dim    = lipgloss.Color("#666666")
	Bright = lipgloss.Color("#FFFFFF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Leaf)

	Success = lipgloss.NewStyle().
		Foreground(Leaf)

	Error = lipgloss.NewStyle().
		Foreground(Ruby)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Leaf).
		Bold(true)

	Streak = lipgloss.NewStyle().
		Foreground(Ember).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)

	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Leaf).
		Padding(0, 1)
)

// Icons used across output.
const (
	IconHabit = "🌱 "
	IconDone  = "✓"
	IconTodo  = "·"
	IconRest  = " "
	IconFire  = "🔥"
	IconStar  = "⭐"
	IconParty = "🎉 "
	IconBell  = "🔔 "
	IconWarn  = "⚠️ "
	IconError = "✗ "
	IconOk    = "✓ "
	IconArrow = "→"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		DisableColor()
	}
}

// DisableColor switches all styles to plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
