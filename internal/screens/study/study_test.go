package study

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/profile"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testServices(questions ...quiz.Question) *screen.Services {
	for i := range questions {
		questions[i].TopicID = "t1"
	}
	ps := profile.NewStore()
	ps.SetSubjects(ps.ActiveID(), []quiz.Subject{{
		ID:   "s1",
		Name: "Biology",
		Topics: []quiz.Topic{{
			ID:        "t1",
			Name:      "Cells",
			Questions: questions,
		}},
	}})

	svc := &screen.Services{Profiles: ps}
	svc.Machine = session.NewMachine(ps.Active())
	svc.Machine.SetMode(session.ModeTopicOrder)
	svc.Machine.StartSession("s1")
	return svc
}

func TestStudy_CorrectAnswerShowsFeedbackAndAdvances(t *testing.T) {
	svc := testServices(
		quiz.Question{ID: "q1", Type: quiz.TypeTrueFalse, Prompt: "Cells divide.", BoolAnswer: true, Explanation: "Mitosis."},
		quiz.Question{ID: "q2", Type: quiz.TypeTrueFalse, Prompt: "Rocks divide.", BoolAnswer: false},
	)
	svc.Settings.ShowExplanations = true

	s := New(svc)
	s.Init()

	if s.question == nil || s.question.ID != "q1" {
		t.Fatalf("expected q1 on screen, got %+v", s.question)
	}

	// "True" is the first option; enter submits it.
	s.Update(specialKey(tea.KeyEnter))

	if s.result == nil || !s.result.Correct {
		t.Fatalf("expected a correct result, got %+v", s.result)
	}
	if view := s.View(80, 24); !strings.Contains(view, "Mitosis.") {
		t.Error("explanation should render when enabled")
	}

	// Any key dismisses feedback and advances.
	s.Update(keyPress('x'))
	if s.result != nil {
		t.Error("feedback should be dismissed")
	}
	if s.question == nil || s.question.ID != "q2" {
		t.Fatalf("expected q2 after advancing, got %+v", s.question)
	}
}

func TestStudy_ExplanationHiddenWhenDisabled(t *testing.T) {
	svc := testServices(
		quiz.Question{ID: "q1", Type: quiz.TypeTrueFalse, Prompt: "p", BoolAnswer: true, Explanation: "secret"},
	)
	s := New(svc)
	s.Init()

	s.Update(specialKey(tea.KeyEnter))
	if view := s.View(80, 24); strings.Contains(view, "secret") {
		t.Error("explanation should stay hidden when disabled")
	}
}

func TestStudy_SkipAdvancesWithoutFeedback(t *testing.T) {
	svc := testServices(
		quiz.Question{ID: "q1", Type: quiz.TypeTrueFalse, Prompt: "p1", BoolAnswer: true},
		quiz.Question{ID: "q2", Type: quiz.TypeTrueFalse, Prompt: "p2", BoolAnswer: true},
	)
	s := New(svc)
	s.Init()

	s.Update(specialKey(tea.KeyTab))

	if s.result != nil {
		t.Error("skip must not open feedback")
	}
	if s.question == nil || s.question.ID != "q2" {
		t.Fatalf("expected q2 after skip, got %+v", s.question)
	}
}

func TestStudy_SkippingOnlyQuestionExhaustsDeck(t *testing.T) {
	svc := testServices(
		quiz.Question{ID: "q1", Type: quiz.TypeTrueFalse, Prompt: "p1", BoolAnswer: true},
	)
	s := New(svc)
	s.Init()

	s.Update(specialKey(tea.KeyTab))

	if s.question != nil {
		t.Fatalf("expected exhausted deck, got %+v", s.question)
	}
	if view := s.View(80, 24); !strings.Contains(view, "Deck complete") {
		t.Error("exhausted view should render")
	}

	// R restarts the queue; the skipped question comes back.
	s.Update(keyPress('r'))
	if s.question == nil || s.question.ID != "q1" {
		t.Fatalf("expected q1 after restart, got %+v", s.question)
	}
}

func TestStudy_KeywordsFlow(t *testing.T) {
	svc := testServices(
		quiz.Question{ID: "q1", Type: quiz.TypeKeywords, Prompt: "Powerhouse?", Answers: []string{"mitochondria"}},
	)
	s := New(svc)
	s.Init()

	// Enter on an empty input is ignored.
	s.Update(specialKey(tea.KeyEnter))
	if s.result != nil {
		t.Fatal("empty input must not submit")
	}

	for _, r := range "mitochondria" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))

	if s.result == nil || !s.result.Correct {
		t.Fatalf("expected correct keyword result, got %+v", s.result)
	}
}

func TestStudy_MultipleAnswerTogglesAndSubmits(t *testing.T) {
	svc := testServices(
		quiz.Question{
			ID: "q1", Type: quiz.TypeMultipleAnswer, Prompt: "Pick organelles.",
			Choices:       []string{"nucleus", "granite", "ribosome"},
			AnswerIndices: []int{0, 2},
		},
	)
	s := New(svc)
	s.Init()

	s.Update(keyPress(' ')) // toggle nucleus
	s.Update(keyPress('j')) // down to granite
	s.Update(keyPress('j')) // down to ribosome
	s.Update(keyPress(' ')) // toggle ribosome
	s.Update(specialKey(tea.KeyEnter))

	if s.result == nil || !s.result.Correct {
		t.Fatalf("expected correct multi-answer result, got %+v", s.result)
	}
}

func TestStudy_WordBankStepsThroughBlanks(t *testing.T) {
	svc := testServices(
		quiz.Question{
			ID: "q1", Type: quiz.TypeWordBank,
			Prompt:   "The [blank] pumps [blank].",
			WordBank: []string{"heart", "blood"},
			Answers:  []string{"heart", "blood"},
		},
	)
	s := New(svc)
	s.Init()

	// First blank: pick "heart" (cursor starts on it).
	s.Update(specialKey(tea.KeyEnter))
	if s.result != nil {
		t.Fatal("one pick should not complete a two-blank question")
	}

	// Second blank: move to "blood" and submit.
	s.Update(keyPress('j'))
	s.Update(specialKey(tea.KeyEnter))

	if s.result == nil || !s.result.Correct {
		t.Fatalf("expected correct word-bank result, got %+v", s.result)
	}
}

func TestStudy_MatchingCollectsAllPairs(t *testing.T) {
	svc := testServices(
		quiz.Question{
			ID: "q1", Type: quiz.TypeMatching, Prompt: "Match.",
			Pairs: []quiz.MatchPair{{Left: "dog", Right: "bark"}},
		},
	)
	s := New(svc)
	s.Init()

	// A single pair shuffles to itself.
	s.Update(specialKey(tea.KeyEnter))

	if s.result == nil || !s.result.Correct {
		t.Fatalf("expected correct matching result, got %+v", s.result)
	}
}

func TestStudy_WrongAnswerReportsIncorrect(t *testing.T) {
	svc := testServices(
		quiz.Question{ID: "q1", Type: quiz.TypeMultipleChoice, Prompt: "Pick a.",
			Choices: []string{"a", "b"}, AnswerIndex: 0},
		quiz.Question{ID: "q2", Type: quiz.TypeTrueFalse, Prompt: "p", BoolAnswer: true},
	)
	s := New(svc)
	s.Init()

	s.Update(keyPress('j')) // move to the wrong choice
	s.Update(specialKey(tea.KeyEnter))

	if s.result == nil || s.result.Correct {
		t.Fatalf("expected incorrect result, got %+v", s.result)
	}

	// The question stays on screen until the feedback is dismissed.
	if s.question.ID != "q1" {
		t.Error("current question must not advance on a wrong answer")
	}
}
