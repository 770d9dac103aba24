// Package study runs the question loop: present the current card,
// collect an answer for its variant, show feedback, advance.
package study

import (
	"context"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// StudyScreen implements screen.Screen for the active study loop.
type StudyScreen struct {
	services *screen.Services

	question *quiz.Question
	choices  components.ChoiceList
	input    components.TextInput

	// Stepped variants (matching, word bank) pick one option per step.
	steps        []string
	stepIdx      int
	picks        []string
	matchOptions []string

	result *session.Result

	mediaNote string
	mediaErr  string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates the study screen bound to the current session.
func New(services *screen.Services) *StudyScreen {
	return &StudyScreen{services: services}
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.loadQuestion()
}

func (s *StudyScreen) Title() string {
	if subj := s.services.Machine.ActiveSubject(); subj != nil {
		return subj.Name
	}
	return "Study"
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.result != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case s.question == nil:
		return []layout.KeyHint{
			{Key: "R", Description: "Go again"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Skip"},
		}
		if s.question.Type == quiz.TypeMultipleAnswer {
			hints = append([]layout.KeyHint{{Key: "Space", Description: "Toggle"}}, hints...)
		}
		return hints
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mediaReadyMsg:
		if s.question != nil && msg.QuestionID == s.question.ID {
			s.mediaNote = describeBlob(msg.Blob)
		}
		return s, nil

	case mediaFailedMsg:
		if s.question != nil && msg.QuestionID == s.question.ID {
			s.mediaErr = "attachment unavailable: " + msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Non-key messages (blink ticks) still drive the text input.
	if s.question != nil && s.result == nil && s.question.Type == quiz.TypeKeywords {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// Feedback overlay: any key advances.
	if s.result != nil {
		s.services.Machine.NextQuestion()
		return s, s.loadQuestion()
	}

	// Deck exhausted.
	if s.question == nil {
		if k := msg.String(); k == "r" || k == "R" {
			s.services.Machine.RestartQueue()
			return s, s.loadQuestion()
		}
		return s, nil
	}

	switch msg.String() {
	case "tab":
		s.services.Machine.SkipQuestion()
		return s, s.loadQuestion()
	case "ctrl+r":
		s.services.Machine.RestartQueue()
		return s, s.loadQuestion()
	}

	switch s.question.Type {
	case quiz.TypeMultipleChoice, quiz.TypeMultipleAnswer, quiz.TypeTrueFalse:
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		if s.choices.Submitted {
			return s, s.submit(s.selectionAnswer())
		}
		return s, cmd

	case quiz.TypeKeywords:
		if msg.String() == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s, s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case quiz.TypeMatching, quiz.TypeWordBank:
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		if !s.choices.Submitted {
			return s, cmd
		}
		s.picks = append(s.picks, s.choices.Options[s.choices.Cursor])
		s.stepIdx++
		if s.stepIdx < len(s.steps) {
			s.choices = components.NewChoiceList(s.stepOptions())
			return s, nil
		}
		return s, s.submit(s.steppedAnswer())
	}

	return s, nil
}

// selectionAnswer converts the submitted choice list into the raw
// answer shape the checker expects for the active variant.
func (s *StudyScreen) selectionAnswer() any {
	if s.question.Type == quiz.TypeTrueFalse {
		return s.choices.Cursor == 0
	}
	return s.choices.Selection()
}

// steppedAnswer assembles the collected picks into the final answer.
func (s *StudyScreen) steppedAnswer() any {
	if s.question.Type == quiz.TypeWordBank {
		return append([]string(nil), s.picks...)
	}
	answer := make(map[string]string, len(s.steps))
	for i, left := range s.steps {
		answer[left] = s.picks[i]
	}
	return answer
}

func (s *StudyScreen) submit(answer any) tea.Cmd {
	res := s.services.Machine.SubmitAnswer(answer)
	s.result = &res
	return nil
}

// loadQuestion pulls the current question off the machine and rebuilds
// the input state for its variant.
func (s *StudyScreen) loadQuestion() tea.Cmd {
	s.result = nil
	s.mediaNote = ""
	s.mediaErr = ""
	s.steps = nil
	s.stepIdx = 0
	s.picks = nil

	s.question = s.services.Machine.CurrentQuestion()
	if s.question == nil {
		return nil
	}
	q := s.question

	var cmd tea.Cmd
	switch q.Type {
	case quiz.TypeMultipleChoice:
		s.choices = components.NewChoiceList(q.Choices)
	case quiz.TypeMultipleAnswer:
		s.choices = components.NewMultiChoiceList(q.Choices)
	case quiz.TypeTrueFalse:
		s.choices = components.NewChoiceList([]string{"True", "False"})
	case quiz.TypeKeywords:
		s.input = components.NewTextInput("Type your answer...")
		cmd = s.input.Init()
	case quiz.TypeMatching:
		s.steps = make([]string, 0, len(q.Pairs))
		rights := make([]string, 0, len(q.Pairs))
		for _, p := range q.Pairs {
			s.steps = append(s.steps, p.Left)
			rights = append(rights, p.Right)
		}
		rand.Shuffle(len(rights), func(i, j int) {
			rights[i], rights[j] = rights[j], rights[i]
		})
		s.matchOptions = rights
		s.choices = components.NewChoiceList(rights)
	case quiz.TypeWordBank:
		s.steps = make([]string, len(q.Answers))
		for i := range s.steps {
			s.steps[i] = blankLabel(i)
		}
		s.choices = components.NewChoiceList(s.stepOptions())
	}

	return tea.Batch(cmd, s.fetchMedia())
}

// stepOptions returns the option list for the current step of a
// stepped variant. The word bank offers every word each time; matching
// removes options already paired off.
func (s *StudyScreen) stepOptions() []string {
	if s.question.Type == quiz.TypeWordBank {
		return s.question.WordBank
	}

	used := make(map[string]int, len(s.picks))
	for _, p := range s.picks {
		used[p]++
	}
	remaining := make([]string, 0, len(s.matchOptions))
	for _, opt := range s.matchOptions {
		if used[opt] > 0 {
			used[opt]--
			continue
		}
		remaining = append(remaining, opt)
	}
	return remaining
}

// fetchMedia prefetches a stored attachment for the current question.
func (s *StudyScreen) fetchMedia() tea.Cmd {
	q := s.question
	if q == nil || q.Media == nil || !q.Media.IsStored() {
		return nil
	}
	loader := s.services.Media
	if loader == nil {
		return nil
	}
	id := q.Media.StoredID()
	qid := q.ID
	return func() tea.Msg {
		blob, err := loader.Load(context.Background(), id)
		if err != nil {
			return mediaFailedMsg{QuestionID: qid, Err: err}
		}
		return mediaReadyMsg{QuestionID: qid, Blob: blob}
	}
}
