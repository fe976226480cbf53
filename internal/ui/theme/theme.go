package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Base palette
var (
	Primary   = lipgloss.Color("#EC4899") // Pink
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Scoreboard sides
var (
	AIColor   = ArcadeCyan
	UserColor = ArcadeYellow
)

// Emotion colors, keyed by lower-case label.
var emotionColors = map[string]color.Color{
	"happy":   lipgloss.Color("#FACC15"),
	"sad":     lipgloss.Color("#60A5FA"),
	"angry":   lipgloss.Color("#EF4444"),
	"stress":  lipgloss.Color("#F97316"),
	"neutral": lipgloss.Color("#A3A3A3"),
}

// EmotionColor returns the display color for an emotion label. Labels from
// an external corpus fall back to the secondary color.
func EmotionColor(label string) color.Color {
	if c, ok := emotionColors[strings.ToLower(label)]; ok {
		return c
	}
	return Secondary
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Win = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Loss = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
