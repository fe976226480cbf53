package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/router"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screen"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/components"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/theme"
)

// NoticeScreen shows a message with a single OK button that goes back.
type NoticeScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*NoticeScreen)(nil)

// New creates a notice screen.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

// ModelsNotLoaded explains how to produce the missing artifacts.
func ModelsNotLoaded() *NoticeScreen {
	return New("Models Not Loaded",
		"No trained models were found.\n\nRun `guess-my-emotion train` and start the game again.")
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
		return n, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render(n.message)

	content := body + "\n\n" + components.ArcadeButton("OK", true, 12)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (n *NoticeScreen) Title() string {
	return n.title
}
