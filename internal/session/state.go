package session

// Mode selects how the study queue is ordered.
type Mode string

const (
	// ModeRandom shuffles the active pool uniformly.
	ModeRandom Mode = "random"

	// ModeTopicOrder keeps questions in topic order, then position order.
	ModeTopicOrder Mode = "topic_order"
)

// Valid reports whether m is a recognized study mode.
func (m Mode) Valid() bool {
	return m == ModeRandom || m == ModeTopicOrder
}

// State is the per-profile session snapshot. The zero value (no subject
// selected, empty queue) is the NoSubject state.
type State struct {
	// SubjectID is the subject being studied, "" when none is selected.
	SubjectID string `json:"subjectId,omitempty"`

	// SelectedTopicIDs restricts the active pool. An empty map is the
	// sentinel for "all topics"; a selection covering every topic of the
	// subject is normalized back to empty.
	SelectedTopicIDs map[string]bool `json:"selectedTopicIds,omitempty"`

	// Mode orders the queue on regeneration.
	Mode Mode `json:"mode"`

	// IncludeMastered keeps mastered questions in the pool. Committing
	// the flag does not regenerate the queue by itself; it takes effect
	// on the next explicit regeneration.
	IncludeMastered bool `json:"includeMastered"`

	// Queue is the pending question IDs, current question excluded.
	Queue []string `json:"queue,omitempty"`

	// CurrentQuestionID is the question on screen, "" when the queue is
	// exhausted or no session is active.
	CurrentQuestionID string `json:"currentQuestionId,omitempty"`

	// Turn increases on every advance so the view layer can distinguish
	// an immediate re-presentation of the same question ID.
	Turn int `json:"turn"`
}

// Exhausted reports the "all caught up" state: a subject is selected but
// nothing is left to present.
func (s *State) Exhausted() bool {
	return s.SubjectID != "" && s.CurrentQuestionID == "" && len(s.Queue) == 0
}
