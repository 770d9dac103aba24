package profile

import "github.com/abhisek/quizdeck/internal/quiz"

// MergeSubjects deep-merges src into dst by ID at subject, topic, and
// question granularity. Unknown IDs are appended in order; known subjects
// and topics keep their position and shallow-merge metadata while their
// children merge recursively; known questions are overwritten whole.
func MergeSubjects(dst, src []quiz.Subject) []quiz.Subject {
	for _, in := range src {
		merged := false
		for i := range dst {
			if dst[i].ID == in.ID {
				if in.Name != "" {
					dst[i].Name = in.Name
				}
				dst[i].Topics = mergeTopics(dst[i].Topics, in.Topics)
				merged = true
				break
			}
		}
		if !merged {
			dst = append(dst, in)
		}
	}
	return dst
}

func mergeTopics(dst, src []quiz.Topic) []quiz.Topic {
	for _, in := range src {
		merged := false
		for i := range dst {
			if dst[i].ID == in.ID {
				if in.Name != "" {
					dst[i].Name = in.Name
				}
				dst[i].Questions = mergeQuestions(dst[i].Questions, in.Questions)
				merged = true
				break
			}
		}
		if !merged {
			dst = append(dst, in)
		}
	}
	return dst
}

func mergeQuestions(dst, src []quiz.Question) []quiz.Question {
	for _, in := range src {
		merged := false
		for i := range dst {
			if dst[i].ID == in.ID {
				dst[i] = in
				merged = true
				break
			}
		}
		if !merged {
			dst = append(dst, in)
		}
	}
	return dst
}

// MergeProgress overlays src progress onto dst per subject, overwriting
// question-level entries on conflict and preserving unrelated entries.
func MergeProgress(dst, src quiz.ProgressMap) {
	for subjectID, sp := range src {
		for topicID, tp := range sp {
			for questionID, qp := range tp {
				if qp == nil {
					continue
				}
				rec := *qp
				rec.ID = questionID
				*dst.Ensure(subjectID, topicID, questionID) = rec
			}
		}
	}
}
