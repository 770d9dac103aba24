package quiz

// QuestionProgress is the per-question study record. Mastered is
// single-shot: set by any correct submission, cleared by any incorrect
// submission or skip.
type QuestionProgress struct {
	// ID always equals the question ID this record belongs to.
	ID string `json:"id"`

	// Attempts counts submissions and skips.
	Attempts int `json:"attempts"`

	// Streak is the current run of consecutive correct submissions.
	Streak int `json:"streak"`

	// Mastered reflects whether the most recent submission was correct.
	Mastered bool `json:"mastered"`
}

// TopicProgress maps question ID to its progress record.
type TopicProgress map[string]*QuestionProgress

// SubjectProgress maps topic ID to per-question progress.
type SubjectProgress map[string]TopicProgress

// ProgressMap maps subject ID to per-topic progress. Entries are created
// lazily on first submit or skip, never pre-populated.
type ProgressMap map[string]SubjectProgress

// Question returns the progress record for a question, or nil if the
// learner has never answered it.
func (pm ProgressMap) Question(subjectID, topicID, questionID string) *QuestionProgress {
	return pm[subjectID][topicID][questionID]
}

// Ensure returns the progress record for a question, creating the nested
// maps and a zero-valued record on first use.
func (pm ProgressMap) Ensure(subjectID, topicID, questionID string) *QuestionProgress {
	sp := pm[subjectID]
	if sp == nil {
		sp = make(SubjectProgress)
		pm[subjectID] = sp
	}
	tp := sp[topicID]
	if tp == nil {
		tp = make(TopicProgress)
		sp[topicID] = tp
	}
	qp := tp[questionID]
	if qp == nil {
		qp = &QuestionProgress{ID: questionID}
		tp[questionID] = qp
	}
	return qp
}

// DeleteSubject removes all progress recorded for a subject.
func (pm ProgressMap) DeleteSubject(subjectID string) {
	delete(pm, subjectID)
}

// BySubject flattens a subject's progress into a question-ID-keyed map,
// the shape the queue generator and mastery model consume.
func (pm ProgressMap) BySubject(subjectID string) map[string]*QuestionProgress {
	flat := make(map[string]*QuestionProgress)
	for _, tp := range pm[subjectID] {
		for id, qp := range tp {
			flat[id] = qp
		}
	}
	return flat
}
