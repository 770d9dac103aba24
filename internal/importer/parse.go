// Package importer turns user-authored JSON into the subject data model.
// Validation is all-or-nothing: any failure aborts the import with a
// message naming the offending subject, topic, and question, and no
// partial data escapes.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// subjectDoc, topicDoc, and questionDoc are the loose wire shapes.
// Caller-supplied IDs are preserved; missing ones are generated.
type subjectDoc struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Topics []topicDoc `json:"topics"`
}

type topicDoc struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Questions []questionDoc `json:"questions"`
}

type questionDoc struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Prompt      string `json:"prompt"`
	Question    string `json:"question"` // synonym for prompt
	Explanation string `json:"explanation"`

	// Media accepts a bare source string or a {kind, source} object.
	Media json.RawMessage `json:"media"`

	Choices       []string `json:"choices"`
	AnswerIndex   *int     `json:"answerIndex"`
	AnswerIndices []int    `json:"answerIndices"`

	// Answer is a bool for true_false, or a string / string list for
	// keywords (synonym for answers).
	Answer  json.RawMessage `json:"answer"`
	Answers []string        `json:"answers"`

	CaseSensitive bool             `json:"caseSensitive"`
	Pairs         []quiz.MatchPair `json:"pairs"`
	WordBank      []string         `json:"wordBank"`
}

// Parse decodes and validates an import document: either a single
// subject object or an array of them. On success every subject, topic,
// and question carries an ID (caller-supplied ones preserved) and
// question TopicID back-references are filled in.
func Parse(data []byte) ([]quiz.Subject, error) {
	if err := validateShape(data); err != nil {
		return nil, err
	}

	docs, err := decodeSubjects(data)
	if err != nil {
		return nil, err
	}

	var errs []error
	subjects := make([]quiz.Subject, 0, len(docs))
	for si, sd := range docs {
		subjects = append(subjects, buildSubject(si, sd, &errs))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return subjects, nil
}

// decodeSubjects accepts both the array and single-object forms.
func decodeSubjects(data []byte) ([]subjectDoc, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one subjectDoc
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("parse subject: %w", err)
		}
		return []subjectDoc{one}, nil
	}
	var many []subjectDoc
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("parse subjects: %w", err)
	}
	return many, nil
}

func buildSubject(index int, sd subjectDoc, errs *[]error) quiz.Subject {
	subj := quiz.Subject{
		ID:   sd.ID,
		Name: sd.Name,
	}
	if subj.ID == "" {
		subj.ID = uuid.NewString()
	}

	for ti, td := range sd.Topics {
		topic := quiz.Topic{ID: td.ID, Name: td.Name}
		if topic.ID == "" {
			topic.ID = uuid.NewString()
		}
		for qi, qd := range td.Questions {
			at := path{subject: sd.Name, subjectIndex: index, topic: td.Name, topicIndex: ti, question: qi}
			q, qErrs := buildQuestion(qd, topic.ID, at)
			if len(qErrs) > 0 {
				*errs = append(*errs, qErrs...)
				continue
			}
			topic.Questions = append(topic.Questions, q)
		}
		subj.Topics = append(subj.Topics, topic)
	}
	return subj
}

// path identifies a question's position for error messages.
type path struct {
	subject      string
	subjectIndex int
	topic        string
	topicIndex   int
	question     int
}

func (p path) errorf(format string, args ...any) error {
	loc := fmt.Sprintf("subject %q: topic %d (%q): question %d",
		p.subject, p.topicIndex+1, p.topic, p.question+1)
	if p.subject == "" {
		loc = fmt.Sprintf("subject %d: topic %d (%q): question %d",
			p.subjectIndex+1, p.topicIndex+1, p.topic, p.question+1)
	}
	return fmt.Errorf("%s: %s", loc, fmt.Sprintf(format, args...))
}

func buildQuestion(qd questionDoc, topicID string, at path) (quiz.Question, []error) {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, at.errorf(format, args...))
	}

	q := quiz.Question{
		ID:            qd.ID,
		TopicID:       topicID,
		Type:          quiz.QuestionType(qd.Type),
		Prompt:        qd.Prompt,
		Explanation:   qd.Explanation,
		Choices:       qd.Choices,
		AnswerIndices: qd.AnswerIndices,
		Answers:       qd.Answers,
		CaseSensitive: qd.CaseSensitive,
		Pairs:         qd.Pairs,
		WordBank:      qd.WordBank,
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Prompt == "" {
		q.Prompt = qd.Question
	}
	if qd.AnswerIndex != nil {
		q.AnswerIndex = *qd.AnswerIndex
	}

	if !q.Type.Valid() {
		fail("unknown question type %q", qd.Type)
		return q, errs
	}
	if q.Prompt == "" {
		fail("missing prompt")
	}

	if media, err := parseMedia(qd.Media); err != nil {
		fail("%v", err)
	} else {
		q.Media = media
	}

	switch q.Type {
	case quiz.TypeMultipleChoice:
		if len(q.Choices) < 2 {
			fail("multiple_choice requires at least 2 choices")
		}
		if qd.AnswerIndex == nil {
			fail("multiple_choice requires answerIndex")
		} else if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
			fail("answerIndex %d out of range for %d choices", q.AnswerIndex, len(q.Choices))
		}

	case quiz.TypeMultipleAnswer:
		if len(q.Choices) < 2 {
			fail("multiple_answer requires at least 2 choices")
		}
		if len(q.AnswerIndices) == 0 {
			fail("multiple_answer requires answerIndices")
		}
		for _, idx := range q.AnswerIndices {
			if idx < 0 || idx >= len(q.Choices) {
				fail("answer index %d out of range for %d choices", idx, len(q.Choices))
			}
		}

	case quiz.TypeTrueFalse:
		if len(qd.Answer) == 0 {
			fail("true_false requires a boolean answer")
		} else if err := json.Unmarshal(qd.Answer, &q.BoolAnswer); err != nil {
			fail("true_false answer must be a boolean")
		}

	case quiz.TypeKeywords:
		q.Answers = keywordAnswers(qd)
		if len(q.Answers) == 0 {
			fail("keywords requires at least one acceptable answer")
		}

	case quiz.TypeMatching:
		if len(q.Pairs) == 0 {
			fail("matching requires at least one pair")
		}
		for pi, pair := range q.Pairs {
			if pair.Left == "" || pair.Right == "" {
				fail("pair %d is incomplete", pi+1)
			}
		}

	case quiz.TypeWordBank:
		blanks := strings.Count(q.Prompt, quiz.BlankMarker)
		if blanks == 0 {
			fail("word_bank prompt has no %s markers", quiz.BlankMarker)
		}
		if len(q.WordBank) == 0 {
			fail("word_bank requires a word pool")
		}
		if len(q.Answers) != blanks {
			fail("word_bank has %d blanks but %d answers", blanks, len(q.Answers))
		}
	}

	return q, errs
}

// keywordAnswers merges the answers list with the answer synonym, which
// may be a single string or a list.
func keywordAnswers(qd questionDoc) []string {
	answers := qd.Answers
	if len(qd.Answer) == 0 {
		return answers
	}
	var one string
	if err := json.Unmarshal(qd.Answer, &one); err == nil {
		return append(answers, one)
	}
	var many []string
	if err := json.Unmarshal(qd.Answer, &many); err == nil {
		return append(answers, many...)
	}
	return answers
}

// parseMedia accepts a bare source string or a {kind, source} object.
func parseMedia(raw json.RawMessage) (*quiz.Media, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var source string
	if err := json.Unmarshal(raw, &source); err == nil {
		if source == "" {
			return nil, nil
		}
		return &quiz.Media{Kind: inferKind(source), Source: source}, nil
	}

	var m quiz.Media
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("media must be a source string or {kind, source} object")
	}
	if m.Source == "" {
		return nil, fmt.Errorf("media object missing source")
	}
	if m.Kind == "" {
		m.Kind = inferKind(m.Source)
	}
	return &m, nil
}

// inferKind guesses image vs video from the source extension.
func inferKind(source string) quiz.MediaKind {
	s := strings.ToLower(source)
	for _, ext := range []string{".mp4", ".webm", ".mov", ".mkv", ".avi"} {
		if strings.HasSuffix(s, ext) {
			return quiz.MediaVideo
		}
	}
	if strings.HasPrefix(s, "data:video/") {
		return quiz.MediaVideo
	}
	return quiz.MediaImage
}
