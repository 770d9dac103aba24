package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Reinsertion offsets for wrong or skipped questions: the question comes
// back 4 to 6 positions from the queue head (clamped to queue length),
// a short-delay re-drill rather than immediate repetition.
const (
	reinsertMinOffset  = 4
	reinsertOffsetSpan = 3
)

// Workspace is the state a machine operates on: one profile's subject
// library, progress history, and session snapshot.
type Workspace interface {
	// Library returns the profile's subjects.
	Library() []quiz.Subject

	// ProgressMap returns the profile's progress records.
	ProgressMap() quiz.ProgressMap

	// State returns the mutable session snapshot.
	State() *State
}

// Result is the outcome of an answer submission.
type Result struct {
	Correct     bool
	Explanation string
}

// Machine drives a study session over a workspace. Every transition is a
// defensive no-op on a missing subject or question; the machine never
// returns errors and never panics on degenerate state. A mutex makes each
// transition a single read-then-write unit so reentrant invocation (e.g.
// from a completion callback) cannot lose updates.
type Machine struct {
	mu       sync.Mutex
	ws       Workspace
	rng      *rand.Rand
	onChange func()
}

// Option configures a Machine.
type Option func(*Machine)

// WithRand injects the random source used for shuffling and reinsertion
// offsets. Tests pass a seeded source for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(m *Machine) { m.rng = rng }
}

// WithOnChange registers a hook invoked after every mutating transition,
// used to mirror state to durable storage fire-and-forget.
func WithOnChange(fn func()) Option {
	return func(m *Machine) { m.onChange = fn }
}

// NewMachine creates a machine over the given workspace.
func NewMachine(ws Workspace, opts ...Option) *Machine {
	m := &Machine{
		ws:  ws,
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartSession begins studying a subject: topic selection resets to "all"
// and the queue regenerates from scratch. Unknown subject IDs are a no-op.
// This is the only transition that resets topic selection.
func (m *Machine) StartSession(subjectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.subject(subjectID) == nil {
		return
	}

	st := m.ws.State()
	st.SubjectID = subjectID
	st.SelectedTopicIDs = make(map[string]bool)
	m.regenerate()
	m.changed()
}

// ToggleTopic flips a topic in the selected set and regenerates the
// queue. Selecting every topic of the subject normalizes back to the
// empty "all topics" sentinel. No-op without an active subject or for a
// topic the subject does not contain.
func (m *Machine) ToggleTopic(topicID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.ws.State()
	subj := m.subject(st.SubjectID)
	if subj == nil || subj.Topic(topicID) == nil {
		return
	}

	if st.SelectedTopicIDs == nil {
		st.SelectedTopicIDs = make(map[string]bool)
	}
	if st.SelectedTopicIDs[topicID] {
		delete(st.SelectedTopicIDs, topicID)
	} else {
		st.SelectedTopicIDs[topicID] = true
	}
	if len(st.SelectedTopicIDs) == len(subj.Topics) {
		st.SelectedTopicIDs = make(map[string]bool)
	}

	m.regenerate()
	m.changed()
}

// SetMode switches the study mode and regenerates the queue.
func (m *Machine) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !mode.Valid() {
		return
	}
	st := m.ws.State()
	st.Mode = mode
	if st.SubjectID != "" {
		m.regenerate()
	}
	m.changed()
}

// SetIncludeMastered commits the mastered-inclusion flag without touching
// the queue. The new value takes effect on the next explicit
// regeneration: start, topic toggle, mode change, or restart.
func (m *Machine) SetIncludeMastered(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ws.State().IncludeMastered = on
	m.changed()
}

// RestartQueue regenerates the queue from the current selection, mode,
// and progress.
func (m *Machine) RestartQueue() {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.ws.State()
	if st.SubjectID == "" {
		return
	}
	m.regenerate()
	m.changed()
}

// SubmitAnswer checks the raw answer against the current question and
// records the attempt. On a correct answer the streak grows and the
// question is marked mastered; on a wrong answer the streak resets, the
// question is un-mastered and reinserted a few positions down the queue.
// The current question does not advance; it stays on screen until
// NextQuestion. Without a subject or current question this is a no-op
// returning an incorrect result.
func (m *Machine) SubmitAnswer(raw any) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.ws.State()
	subj := m.subject(st.SubjectID)
	if subj == nil || st.CurrentQuestionID == "" {
		return Result{}
	}
	q := subj.Question(st.CurrentQuestionID)
	if q == nil {
		return Result{}
	}

	correct := quiz.CheckAnswer(*q, raw)

	qp := m.ws.ProgressMap().Ensure(subj.ID, q.TopicID, q.ID)
	qp.Attempts++
	if correct {
		qp.Streak++
		qp.Mastered = true
	} else {
		qp.Streak = 0
		qp.Mastered = false
		m.reinsert(q.ID)
	}

	m.changed()
	return Result{Correct: correct, Explanation: q.Explanation}
}

// SkipQuestion records the skip as a miss (attempt counted, streak and
// mastery cleared), reinserts the question a few positions down, and,
// unlike SubmitAnswer, advances immediately to the next question. The
// advance happens before the reinsertion: skipping the last remaining
// question leaves the session exhausted with the skipped ID as the sole
// queue entry rather than presenting it again back to back.
func (m *Machine) SkipQuestion() {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.ws.State()
	subj := m.subject(st.SubjectID)
	if subj == nil || st.CurrentQuestionID == "" {
		return
	}
	q := subj.Question(st.CurrentQuestionID)
	if q == nil {
		return
	}

	qp := m.ws.ProgressMap().Ensure(subj.ID, q.TopicID, q.ID)
	qp.Attempts++
	qp.Streak = 0
	qp.Mastered = false

	m.advance()
	m.reinsert(q.ID)
	m.changed()
}

// NextQuestion pops the queue head into the current slot ("" when the
// queue is empty) and bumps the turn counter.
func (m *Machine) NextQuestion() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.advance()
	m.changed()
}

// ResetSubjectProgress deletes all progress for a subject. If it is the
// active subject the queue regenerates against the now-empty progress.
func (m *Machine) ResetSubjectProgress(subjectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ws.ProgressMap().DeleteSubject(subjectID)
	if m.ws.State().SubjectID == subjectID {
		m.regenerate()
	}
	m.changed()
}

// CurrentQuestion returns the question on screen, or nil.
func (m *Machine) CurrentQuestion() *quiz.Question {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.ws.State()
	subj := m.subject(st.SubjectID)
	if subj == nil || st.CurrentQuestionID == "" {
		return nil
	}
	return subj.Question(st.CurrentQuestionID)
}

// ActiveSubject returns the subject being studied, or nil.
func (m *Machine) ActiveSubject() *quiz.Subject {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.subject(m.ws.State().SubjectID)
}

// regenerate rebuilds the queue from the active pool and pops the head
// into the current slot. Callers hold the mutex.
func (m *Machine) regenerate() {
	st := m.ws.State()
	subj := m.subject(st.SubjectID)
	if subj == nil {
		st.Queue = nil
		st.CurrentQuestionID = ""
		return
	}

	pool := subj.ActiveQuestions(st.SelectedTopicIDs)
	progress := m.ws.ProgressMap().BySubject(subj.ID)
	st.Queue = GenerateQueue(pool, progress, st.Mode, st.IncludeMastered, m.rng)
	m.advance()
}

// advance pops the queue head into the current slot.
func (m *Machine) advance() {
	st := m.ws.State()
	if len(st.Queue) == 0 {
		st.CurrentQuestionID = ""
	} else {
		st.CurrentQuestionID = st.Queue[0]
		st.Queue = st.Queue[1:]
	}
	st.Turn++
}

// reinsert places a question ID back into the queue at a randomized
// offset of 4-6 positions from the head, clamped to the queue length.
func (m *Machine) reinsert(questionID string) {
	st := m.ws.State()
	offset := reinsertMinOffset + m.rng.IntN(reinsertOffsetSpan)
	if offset > len(st.Queue) {
		offset = len(st.Queue)
	}

	queue := make([]string, 0, len(st.Queue)+1)
	queue = append(queue, st.Queue[:offset]...)
	queue = append(queue, questionID)
	queue = append(queue, st.Queue[offset:]...)
	st.Queue = queue
}

// subject looks up a subject in the workspace library.
func (m *Machine) subject(id string) *quiz.Subject {
	if id == "" {
		return nil
	}
	subjects := m.ws.Library()
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i]
		}
	}
	return nil
}

func (m *Machine) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}
