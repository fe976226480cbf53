package home

import (
	"charm.land/lipgloss/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/game"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/theme"
)

// MascotVariant selects which robot face to display.
type MascotVariant int

const (
	MascotIdle    MascotVariant = iota // no rounds yet or tied
	MascotSmug                         // AI is ahead
	MascotPuzzled                      // player is ahead
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ─  │
│ ??? │
└─────┘`

const mascotSmug = `┌─────┐
│ ◕ ◕ │
│  ◡  │
│ ^_^ │
└─╥═╥─┘
  ╚═╝`

const mascotPuzzled = `┌─────┐
│ ◉ ◔ │ ?
│  ~  │
│ o_O │
└─────┘`

// variantFor picks the face for the current scoreboard.
func variantFor(st game.State) MascotVariant {
	switch {
	case st.AIScore > st.UserScore:
		return MascotSmug
	case st.UserScore > st.AIScore:
		return MascotPuzzled
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotSmug:
		art = mascotSmug
		fg = theme.AIColor
	case MascotPuzzled:
		art = mascotPuzzled
		fg = theme.UserColor
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
