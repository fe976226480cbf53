package round

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/components"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

func (s *RoundScreen) renderError(width int) string {
	if s.errMsg == "" {
		return ""
	}
	return "\n" + centered(width).Foreground(theme.Error).Render(s.errMsg)
}

func (s *RoundScreen) renderTextView(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).
		Render("Write a sentence. Can the AI read your mood?"))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Render("> " + s.input.View()))
	b.WriteString(s.renderError(width))
	return b.String()
}

func (s *RoundScreen) renderEmotionView(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Italic(true).
		Render(fmt.Sprintf("%q", s.text)))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(s.choices.View())))
	b.WriteString(s.renderError(width))
	return b.String()
}

func renderWaiting(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render("The AI is reading your mind...")
}

func (s *RoundScreen) renderResult(width, height int) string {
	r := s.result
	if r == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var verdict string
	if r.AICorrect {
		verdict = theme.Loss.Render("The AI guessed it! Point to the AI.")
	} else {
		verdict = theme.Win.Render("You fooled the AI! Point to you.")
	}

	guess := lipgloss.NewStyle().Foreground(theme.TextDim).Render("AI guess: ") +
		lipgloss.NewStyle().Foreground(theme.EmotionColor(r.PredictedEmotion)).Bold(true).
			Render(r.PredictedEmotion) +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%.0f%% via %s)", r.Confidence*100, r.ModelUsed))

	var b strings.Builder
	b.WriteString(verdict)
	b.WriteString("\n\n")
	b.WriteString(guess)
	b.WriteString("\n\n")
	b.WriteString(renderProbabilities(r.Probabilities, cw-8))
	b.WriteString("\n\n")
	b.WriteString(components.Scoreboard(r.AIScore, r.UserScore, r.TotalRounds))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.ArcadeCard(b.String(), cw))
}

// renderProbabilities draws one bar per emotion, most likely first.
func renderProbabilities(probs map[string]float64, width int) string {
	labels := make([]string, 0, len(probs))
	labelWidth := 0
	for l := range probs {
		labels = append(labels, l)
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		if probs[labels[i]] != probs[labels[j]] {
			return probs[labels[i]] > probs[labels[j]]
		}
		return labels[i] < labels[j]
	})

	lines := make([]string, 0, len(labels))
	for _, l := range labels {
		bar := components.NewProgressBar(l, probs[l], true, width)
		bar.LabelWidth = labelWidth
		bar.Color = theme.EmotionColor(l)
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}
