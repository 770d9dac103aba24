package session

import (
	"testing"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// testWorkspace is a minimal in-memory Workspace.
type testWorkspace struct {
	subjects []quiz.Subject
	progress quiz.ProgressMap
	state    State
}

func (w *testWorkspace) Library() []quiz.Subject       { return w.subjects }
func (w *testWorkspace) ProgressMap() quiz.ProgressMap { return w.progress }
func (w *testWorkspace) State() *State                 { return &w.state }

func trueFalse(id, topicID string) quiz.Question {
	return quiz.Question{
		ID:          id,
		TopicID:     topicID,
		Type:        quiz.TypeTrueFalse,
		Prompt:      "Is this true?",
		BoolAnswer:  true,
		Explanation: "because it is",
	}
}

func testSubject() quiz.Subject {
	return quiz.Subject{
		ID:   "bio",
		Name: "Biology",
		Topics: []quiz.Topic{
			{ID: "cells", Name: "Cells", Questions: []quiz.Question{
				trueFalse("q1", "cells"),
				trueFalse("q2", "cells"),
				trueFalse("q3", "cells"),
			}},
			{ID: "genes", Name: "Genes", Questions: []quiz.Question{
				trueFalse("q4", "genes"),
				trueFalse("q5", "genes"),
				trueFalse("q6", "genes"),
			}},
		},
	}
}

func newTestMachine(subjects ...quiz.Subject) (*Machine, *testWorkspace) {
	ws := &testWorkspace{
		subjects: subjects,
		progress: quiz.ProgressMap{},
		state:    State{Mode: ModeTopicOrder},
	}
	return NewMachine(ws, WithRand(testRand(7))), ws
}

func TestStartSession_UnknownSubjectIsNoOp(t *testing.T) {
	m, ws := newTestMachine(testSubject())

	m.StartSession("nope")

	if ws.state.SubjectID != "" {
		t.Errorf("SubjectID = %q, want empty", ws.state.SubjectID)
	}
	if ws.state.CurrentQuestionID != "" {
		t.Errorf("CurrentQuestionID = %q, want empty", ws.state.CurrentQuestionID)
	}
}

func TestStartSession_TopicOrder(t *testing.T) {
	m, ws := newTestMachine(testSubject())

	m.StartSession("bio")

	if ws.state.SubjectID != "bio" {
		t.Fatalf("SubjectID = %q, want bio", ws.state.SubjectID)
	}
	if ws.state.CurrentQuestionID != "q1" {
		t.Errorf("CurrentQuestionID = %q, want q1", ws.state.CurrentQuestionID)
	}
	want := []string{"q2", "q3", "q4", "q5", "q6"}
	if len(ws.state.Queue) != len(want) {
		t.Fatalf("queue = %v, want %v", ws.state.Queue, want)
	}
	for i := range want {
		if ws.state.Queue[i] != want[i] {
			t.Errorf("queue[%d] = %s, want %s", i, ws.state.Queue[i], want[i])
		}
	}
	if len(ws.state.SelectedTopicIDs) != 0 {
		t.Errorf("expected topic selection reset to all, got %v", ws.state.SelectedTopicIDs)
	}
}

func TestSubmitAnswer_Correct(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	res := m.SubmitAnswer(true)

	if !res.Correct {
		t.Fatal("expected correct result")
	}
	if res.Explanation != "because it is" {
		t.Errorf("Explanation = %q", res.Explanation)
	}
	qp := ws.progress.Question("bio", "cells", "q1")
	if qp == nil {
		t.Fatal("expected progress record for q1")
	}
	if qp.Attempts != 1 || qp.Streak != 1 || !qp.Mastered {
		t.Errorf("progress = %+v, want attempts 1, streak 1, mastered", qp)
	}
	// The current question does not advance on submit.
	if ws.state.CurrentQuestionID != "q1" {
		t.Errorf("CurrentQuestionID = %q, want q1", ws.state.CurrentQuestionID)
	}
}

func TestSubmitAnswer_WrongReinserts(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	res := m.SubmitAnswer(false)

	if res.Correct {
		t.Fatal("expected incorrect result")
	}
	qp := ws.progress.Question("bio", "cells", "q1")
	if qp == nil || qp.Mastered || qp.Streak != 0 || qp.Attempts != 1 {
		t.Errorf("progress = %+v, want attempts 1, streak 0, not mastered", qp)
	}

	// q1 stays current; it is also reinserted 4-6 positions from the head.
	if ws.state.CurrentQuestionID != "q1" {
		t.Errorf("CurrentQuestionID = %q, want q1", ws.state.CurrentQuestionID)
	}
	pos := -1
	for i, id := range ws.state.Queue {
		if id == "q1" {
			pos = i
			break
		}
	}
	if pos < 4 || pos > 6 {
		t.Errorf("reinsertion position = %d (queue %v), want 4-6", pos, ws.state.Queue)
	}

	m.NextQuestion()
	if ws.state.CurrentQuestionID != "q2" {
		t.Errorf("after NextQuestion, CurrentQuestionID = %q, want q2", ws.state.CurrentQuestionID)
	}
}

func TestSubmitAnswer_MasteredClearedOnWrong(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	if res := m.SubmitAnswer(true); !res.Correct {
		t.Fatal("expected first submit correct")
	}
	if res := m.SubmitAnswer(false); res.Correct {
		t.Fatal("expected second submit incorrect")
	}

	qp := ws.progress.Question("bio", "cells", "q1")
	if qp.Mastered {
		t.Error("expected mastery cleared by wrong answer")
	}
	if qp.Streak != 0 {
		t.Errorf("Streak = %d, want 0", qp.Streak)
	}
	if qp.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", qp.Attempts)
	}
}

func TestSubmitAnswer_NoSessionIsNoOp(t *testing.T) {
	m, ws := newTestMachine(testSubject())

	res := m.SubmitAnswer(true)

	if res.Correct {
		t.Error("expected incorrect result without a session")
	}
	if len(ws.progress) != 0 {
		t.Error("expected no progress mutation")
	}
}

func TestSkipQuestion_CountsAsMissAndAdvances(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	m.SkipQuestion()

	qp := ws.progress.Question("bio", "cells", "q1")
	if qp == nil || qp.Attempts != 1 || qp.Streak != 0 || qp.Mastered {
		t.Errorf("progress = %+v, want attempts 1, streak 0, not mastered", qp)
	}
	if ws.state.CurrentQuestionID != "q2" {
		t.Errorf("CurrentQuestionID = %q, want q2", ws.state.CurrentQuestionID)
	}
	found := false
	for _, id := range ws.state.Queue {
		if id == "q1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected q1 reinserted into queue %v", ws.state.Queue)
	}
}

func TestSkipQuestion_SingleQuestionClampsToEmptyQueue(t *testing.T) {
	solo := quiz.Subject{
		ID:   "solo",
		Name: "Solo",
		Topics: []quiz.Topic{
			{ID: "t", Name: "T", Questions: []quiz.Question{trueFalse("only", "t")}},
		},
	}
	m, ws := newTestMachine(solo)
	m.StartSession("solo")

	if ws.state.CurrentQuestionID != "only" {
		t.Fatalf("CurrentQuestionID = %q, want only", ws.state.CurrentQuestionID)
	}

	m.SkipQuestion()

	if ws.state.CurrentQuestionID != "" {
		t.Errorf("CurrentQuestionID = %q, want empty after skip", ws.state.CurrentQuestionID)
	}
	if len(ws.state.Queue) != 1 || ws.state.Queue[0] != "only" {
		t.Errorf("queue = %v, want [only]", ws.state.Queue)
	}

	// The skipped question comes back on the next advance.
	m.NextQuestion()
	if ws.state.CurrentQuestionID != "only" {
		t.Errorf("CurrentQuestionID = %q, want only", ws.state.CurrentQuestionID)
	}
}

func TestNextQuestion_TurnCounterAlwaysAdvances(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	turn := ws.state.Turn
	m.NextQuestion()
	if ws.state.Turn != turn+1 {
		t.Errorf("Turn = %d, want %d", ws.state.Turn, turn+1)
	}
}

func TestNextQuestion_ExhaustsQueue(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	for i := 0; i < 6; i++ {
		m.NextQuestion()
	}

	if ws.state.CurrentQuestionID != "" {
		t.Errorf("CurrentQuestionID = %q, want empty", ws.state.CurrentQuestionID)
	}
	if !ws.state.Exhausted() {
		t.Error("expected exhausted state")
	}
}

func TestToggleTopic_RestrictsPool(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	m.ToggleTopic("cells")

	if !ws.state.SelectedTopicIDs["cells"] {
		t.Fatal("expected cells selected")
	}
	seen := map[string]bool{ws.state.CurrentQuestionID: true}
	for _, id := range ws.state.Queue {
		seen[id] = true
	}
	for _, id := range []string{"q4", "q5", "q6"} {
		if seen[id] {
			t.Errorf("question %s from unselected topic present", id)
		}
	}
}

func TestToggleTopic_FullSelectionNormalizesToEmpty(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	m.ToggleTopic("cells")
	m.ToggleTopic("genes")

	if len(ws.state.SelectedTopicIDs) != 0 {
		t.Errorf("SelectedTopicIDs = %v, want empty (all-selected sentinel)", ws.state.SelectedTopicIDs)
	}
}

func TestToggleTopic_UnknownTopicIsNoOp(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")
	turn := ws.state.Turn

	m.ToggleTopic("nope")

	if len(ws.state.SelectedTopicIDs) != 0 || ws.state.Turn != turn {
		t.Error("expected no-op for unknown topic")
	}
}

func TestSetIncludeMastered_DoesNotRegenerate(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	// Master everything.
	for ws.state.CurrentQuestionID != "" {
		m.SubmitAnswer(true)
		m.NextQuestion()
	}
	m.RestartQueue()
	if !ws.state.Exhausted() {
		t.Fatal("expected exhausted queue with everything mastered")
	}

	m.SetIncludeMastered(true)
	if !ws.state.Exhausted() {
		t.Error("expected flag commit alone to leave the queue untouched")
	}

	// The flag takes effect on the next explicit regeneration.
	m.RestartQueue()
	if ws.state.CurrentQuestionID == "" || len(ws.state.Queue) != 5 {
		t.Errorf("after restart: current %q, queue %v", ws.state.CurrentQuestionID, ws.state.Queue)
	}
}

func TestResetSubjectProgress_RegeneratesActiveSubject(t *testing.T) {
	m, ws := newTestMachine(testSubject())
	m.StartSession("bio")

	for ws.state.CurrentQuestionID != "" {
		m.SubmitAnswer(true)
		m.NextQuestion()
	}
	m.RestartQueue()
	if !ws.state.Exhausted() {
		t.Fatal("expected exhausted queue")
	}

	m.ResetSubjectProgress("bio")

	if len(ws.progress) != 0 {
		t.Error("expected progress deleted")
	}
	if ws.state.CurrentQuestionID == "" {
		t.Error("expected regenerated queue after reset")
	}
}

func TestOnChangeHookFires(t *testing.T) {
	calls := 0
	ws := &testWorkspace{
		subjects: []quiz.Subject{testSubject()},
		progress: quiz.ProgressMap{},
		state:    State{Mode: ModeTopicOrder},
	}
	m := NewMachine(ws, WithRand(testRand(1)), WithOnChange(func() { calls++ }))

	m.StartSession("bio")
	m.SubmitAnswer(true)
	m.NextQuestion()

	if calls != 3 {
		t.Errorf("onChange fired %d times, want 3", calls)
	}
}
