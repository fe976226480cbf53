package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/theme"
)

// ChoiceList picks one option from a short list. Options can be chosen with
// the arrows plus Enter or directly with their number key.
type ChoiceList struct {
	Prompt    string
	Options   []string
	Selected  int
	Submitted bool
}

// NewChoiceList creates a list with the first option highlighted.
func NewChoiceList(prompt string, options []string) ChoiceList {
	return ChoiceList{
		Prompt:  prompt,
		Options: options,
	}
}

// Update handles navigation and selection. It does nothing once submitted.
func (c ChoiceList) Update(msg tea.Msg) ChoiceList {
	if c.Submitted || len(c.Options) == 0 {
		return c
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.Options) {
			c.Selected = n - 1
			c.Submitted = true
		}
	}
	return c
}

// Chosen returns the submitted option, or "" while the player is still
// choosing.
func (c ChoiceList) Chosen() string {
	if !c.Submitted || c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// Reopen clears the submission so the player can choose again.
func (c *ChoiceList) Reopen() {
	c.Submitted = false
}

// View renders the prompt and the numbered options.
func (c ChoiceList) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Selected {
			style = lipgloss.NewStyle().Foreground(theme.EmotionColor(opt)).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
