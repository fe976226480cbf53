package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/router"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screen"
	"github.com/aminaaguel/Guess-My-Emotion/internal/store"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/layout"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/theme"
)

// pageSize is the number of rounds loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Rounds []store.RoundEventRecord
	Stats  store.RoundStats
	Err    error
}

// HistoryScreen lists past rounds, newest first.
type HistoryScreen struct {
	repo     store.RoundRepo
	rounds   []store.RoundEventRecord
	stats    store.RoundStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.RoundRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		rounds, err := s.repo.QueryRounds(ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := s.repo.RoundStats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Rounds: rounds, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rounds = msg.Rounds
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rounds)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.rounds) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No rounds yet. Go play one!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderSummary()))
	b.WriteString("\n\n")

	for i, r := range s.rounds {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		outcome := theme.Win.Render("YOU")
		if r.AICorrect {
			outcome = theme.Loss.Render("AI ")
		}

		line := fmt.Sprintf("%s%s  %-8s vs %-8s %3.0f%%  ",
			prefix, r.Timestamp.Format("Jan 02 15:04"), r.UserEmotion, r.PredictedEmotion, r.Confidence*100)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+outcome))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %q  (%s)", r.Text, r.ModelUsed)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderSummary() string {
	st := s.stats
	var rate float64
	if st.Rounds > 0 {
		rate = float64(st.AICorrect) / float64(st.Rounds) * 100
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%d rounds over %d sessions  AI %d : %d You  (AI right %.0f%% of the time)",
			st.Rounds, st.Sessions, st.AICorrect, st.UserWins(), rate))
}
