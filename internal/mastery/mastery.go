// Package mastery computes completion percentages from progress records.
// A question counts as mastered when its most recent submission was
// correct; the functions here only aggregate, they never mutate.
package mastery

import (
	"math"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Percent returns the integer mastery percentage for a question set:
// round(100 * mastered / total). An empty set is 0, not a division error.
func Percent(questions []quiz.Question, progress map[string]*quiz.QuestionProgress) int {
	if len(questions) == 0 {
		return 0
	}
	mastered := 0
	for _, q := range questions {
		if qp := progress[q.ID]; qp != nil && qp.Mastered {
			mastered++
		}
	}
	return int(math.Round(100 * float64(mastered) / float64(len(questions))))
}

// TopicPercent returns the mastery percentage for a single topic.
func TopicPercent(subjectID string, t quiz.Topic, pm quiz.ProgressMap) int {
	return Percent(t.Questions, pm.BySubject(subjectID))
}

// SubjectPercent returns the mastery percentage across all of a subject's
// topics.
func SubjectPercent(s quiz.Subject, pm quiz.ProgressMap) int {
	return Percent(s.Questions(), pm.BySubject(s.ID))
}
