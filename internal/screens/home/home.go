package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/game"
	"github.com/aminaaguel/Guess-My-Emotion/internal/router"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screen"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screens/history"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screens/notice"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screens/round"
	"github.com/aminaaguel/Guess-My-Emotion/internal/store"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/components"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/layout"
)

// scoreResetMsg is sent by the RESET SCORE menu item.
type scoreResetMsg struct{}

// HomeScreen is the main menu with the live scoreboard.
type HomeScreen struct {
	svc    *game.Service
	menu   components.Menu
	banner string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. rounds may be nil when no history database
// is available; the HISTORY item is then disabled.
func New(svc *game.Service, rounds store.RoundRepo) *HomeScreen {
	items := []components.MenuItem{
		{Label: "PLAY ROUND", Action: func() tea.Cmd {
			if !svc.ModelsLoaded() {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: notice.ModelsNotLoaded()}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: round.New(svc)}
			}
		}},
		{Label: "HISTORY", Disabled: rounds == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(rounds)}
			}
		}},
		{Label: "RESET SCORE", Action: func() tea.Cmd {
			return func() tea.Msg { return scoreResetMsg{} }
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		svc:  svc,
		menu: components.NewMenu(items),
	}
	if !svc.ModelsLoaded() {
		h.banner = "⚠ Models not loaded. Run `guess-my-emotion train` first."
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(scoreResetMsg); ok {
		h.svc.ResetRound()
		h.banner = "Score reset. Fresh start!"
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	st := h.svc.State()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if h.banner != "" {
		sections = append(sections, renderBanner(h.banner, cw))
	}
	if !compact {
		sections = append(sections, renderMascotBox(variantFor(st), cw))
	}
	sections = append(sections, renderStatsBar(st, cw))

	labels, disabled := h.menu.Labels(), h.menu.DisabledSet()
	if compact {
		sections = append(sections, renderArcadeMenuCompact(labels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderArcadeMenu(labels, h.menu.Selected, cw, disabled))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
