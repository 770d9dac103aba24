package quiz

// QuestionType discriminates the closed set of question variants.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeMultipleAnswer QuestionType = "multiple_answer"
	TypeTrueFalse      QuestionType = "true_false"
	TypeKeywords       QuestionType = "keywords"
	TypeMatching       QuestionType = "matching"
	TypeWordBank       QuestionType = "word_bank"
)

// AllTypes lists every recognized question type.
var AllTypes = []QuestionType{
	TypeMultipleChoice,
	TypeMultipleAnswer,
	TypeTrueFalse,
	TypeKeywords,
	TypeMatching,
	TypeWordBank,
}

// Valid reports whether t is one of the recognized question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeMultipleAnswer, TypeTrueFalse,
		TypeKeywords, TypeMatching, TypeWordBank:
		return true
	}
	return false
}

// BlankMarker is the placeholder for a fill-in slot inside a word bank prompt.
const BlankMarker = "[blank]"

// MatchPair is a single left/right pairing in a matching question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is the polymorphic question record. Type selects which of the
// per-variant fields are meaningful; the rest stay at their zero values.
type Question struct {
	// ID is the stable question identifier.
	ID string `json:"id"`

	// TopicID references the owning topic.
	TopicID string `json:"topicId"`

	// Type discriminates the variant.
	Type QuestionType `json:"type"`

	// Prompt is the question text shown to the learner. For word_bank
	// questions it contains one BlankMarker per fill-in slot.
	Prompt string `json:"prompt"`

	// Explanation is an optional note shown after answering.
	Explanation string `json:"explanation,omitempty"`

	// Media is an optional image or video attachment.
	Media *Media `json:"media,omitempty"`

	// Choices holds the options for multiple_choice and multiple_answer.
	Choices []string `json:"choices,omitempty"`

	// AnswerIndex is the correct choice index for multiple_choice.
	AnswerIndex int `json:"answerIndex"`

	// AnswerIndices is the correct index set for multiple_answer.
	AnswerIndices []int `json:"answerIndices,omitempty"`

	// BoolAnswer is the correct value for true_false.
	BoolAnswer bool `json:"boolAnswer"`

	// Answers holds the acceptable strings for keywords (any one matches)
	// and the ordered blank fills for word_bank (one per marker).
	Answers []string `json:"answers,omitempty"`

	// CaseSensitive disables case folding for keywords comparison.
	CaseSensitive bool `json:"caseSensitive,omitempty"`

	// Pairs holds the declared pairings for matching.
	Pairs []MatchPair `json:"pairs,omitempty"`

	// WordBank is the candidate word pool for word_bank.
	WordBank []string `json:"wordBank,omitempty"`
}

// Topic is an ordered list of questions under a name. Question order is
// significant: it drives the topic_order study mode.
type Topic struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Subject is the unit a learner studies: an ordered list of topics.
type Subject struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// Questions returns every question of the subject in topic order.
func (s Subject) Questions() []Question {
	var out []Question
	for _, t := range s.Topics {
		out = append(out, t.Questions...)
	}
	return out
}

// ActiveQuestions returns the questions of the selected topics in topic
// order. An empty selection means every topic is active.
func (s Subject) ActiveQuestions(selected map[string]bool) []Question {
	if len(selected) == 0 {
		return s.Questions()
	}
	var out []Question
	for _, t := range s.Topics {
		if selected[t.ID] {
			out = append(out, t.Questions...)
		}
	}
	return out
}

// Topic returns the topic with the given ID, or nil.
func (s Subject) Topic(id string) *Topic {
	for i := range s.Topics {
		if s.Topics[i].ID == id {
			return &s.Topics[i]
		}
	}
	return nil
}

// Question returns the question with the given ID, searching all topics.
func (s Subject) Question(id string) *Question {
	for i := range s.Topics {
		for j := range s.Topics[i].Questions {
			if s.Topics[i].Questions[j].ID == id {
				return &s.Topics[i].Questions[j]
			}
		}
	}
	return nil
}
