package components

import (
	"strconv"

	"charm.land/lipgloss/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all arcade sections.
func ContentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double-border frame, centered in the
// given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeButton renders a fixed-width button. The selected button is filled.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}

// Scoreboard renders "AI n : n You" plus the round count.
func Scoreboard(aiScore, userScore, rounds int) string {
	ai := lipgloss.NewStyle().Foreground(theme.AIColor).Bold(true).Render("AI " + strconv.Itoa(aiScore))
	user := lipgloss.NewStyle().Foreground(theme.UserColor).Bold(true).Render(strconv.Itoa(userScore) + " YOU")
	sep := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  :  ")
	total := lipgloss.NewStyle().Foreground(theme.TextDim).Render("   ROUNDS " + strconv.Itoa(rounds))
	return ai + sep + user + total
}
