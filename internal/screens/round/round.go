package round

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/aminaaguel/Guess-My-Emotion/internal/emotion"
	"github.com/aminaaguel/Guess-My-Emotion/internal/game"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screens/notice"
	"github.com/aminaaguel/Guess-My-Emotion/internal/router"
	"github.com/aminaaguel/Guess-My-Emotion/internal/screen"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/components"
	"github.com/aminaaguel/Guess-My-Emotion/internal/ui/layout"
)

type phase int

const (
	phaseText    phase = iota // typing the sentence
	phaseEmotion              // declaring the true emotion
	phaseWaiting              // prediction in flight
	phaseResult               // showing who won
)

// maxTextLen caps the sentence length.
const maxTextLen = 280

// RoundScreen plays rounds: type a sentence, declare its emotion, then see
// whether the model guessed it.
type RoundScreen struct {
	svc     *game.Service
	phase   phase
	input   components.TextInput
	choices components.ChoiceList
	text    string
	result  *game.RoundResult
	errMsg  string
}

var _ screen.Screen = (*RoundScreen)(nil)
var _ screen.KeyHintProvider = (*RoundScreen)(nil)

// New creates a round screen bound to svc.
func New(svc *game.Service) *RoundScreen {
	return &RoundScreen{
		svc:     svc,
		input:   components.NewTextInput("Type how you feel...", maxTextLen),
		choices: components.NewChoiceList("Which emotion did you mean?", emotionOptions(svc)),
	}
}

// emotionOptions lists the emotions the player may declare: the built-in
// five first, then any extra labels the loaded models know.
func emotionOptions(svc *game.Service) []string {
	opts := emotion.Canonical()
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		seen[o] = true
	}
	for _, c := range svc.Classes() {
		if !seen[c] {
			opts = append(opts, c)
			seen[c] = true
		}
	}
	return opts
}

func (s *RoundScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *RoundScreen) Title() string {
	return "Round"
}

func (s *RoundScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseText:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseEmotion:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Pick"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Guess!"},
			{Key: "Tab", Description: "Edit text"},
		}
	case phaseResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next round"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return nil
}

func (s *RoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roundResultMsg:
		return s.handleResult(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseText {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *RoundScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseText:
		if msg.String() == "enter" {
			if s.input.Blank() {
				s.errMsg = (&game.ErrEmptyInput{Field: game.FieldText}).Error()
				return s, nil
			}
			s.errMsg = ""
			s.text = s.input.Value()
			s.phase = phaseEmotion
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseEmotion:
		if msg.String() == "tab" {
			s.phase = phaseText
			return s, nil
		}
		s.choices = s.choices.Update(msg)
		if declared := s.choices.Chosen(); declared != "" {
			s.phase = phaseWaiting
			return s, s.predict(s.text, declared)
		}
		return s, nil

	case phaseResult:
		if msg.String() == "enter" || msg.String() == "n" {
			return s, s.nextRound()
		}
	}
	return s, nil
}

func (s *RoundScreen) predict(text, declared string) tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		res, err := svc.PredictRound(context.Background(), text, declared)
		return roundResultMsg{Result: res, Err: err}
	}
}

func (s *RoundScreen) handleResult(msg roundResultMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var notLoaded *predictor.ErrModelsNotLoaded
		if errors.As(msg.Err, &notLoaded) {
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: notice.ModelsNotLoaded()} }
		}
		s.errMsg = msg.Err.Error()
		s.choices.Reopen()
		s.phase = phaseEmotion
		return s, nil
	}
	s.errMsg = ""
	s.result = msg.Result
	s.phase = phaseResult
	return s, nil
}

func (s *RoundScreen) nextRound() tea.Cmd {
	s.phase = phaseText
	s.result = nil
	s.text = ""
	s.errMsg = ""
	s.choices = components.NewChoiceList(s.choices.Prompt, s.choices.Options)
	return s.input.Reset()
}

func (s *RoundScreen) View(width, height int) string {
	switch s.phase {
	case phaseEmotion:
		return s.renderEmotionView(width, height)
	case phaseWaiting:
		return renderWaiting(width, height)
	case phaseResult:
		return s.renderResult(width, height)
	default:
		return s.renderTextView(width, height)
	}
}
