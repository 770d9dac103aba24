package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/media"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.question == nil {
		return s.renderExhausted(width, height)
	}

	var sections []string
	sections = append(sections, theme.Body.Bold(true).Render(s.question.Prompt))

	if s.mediaErr != "" {
		sections = append(sections, theme.Banner.Render(s.mediaErr))
	} else if s.mediaNote != "" {
		sections = append(sections, theme.Hint.Render(s.mediaNote))
	}

	sections = append(sections, s.renderInput())

	if s.result != nil {
		sections = append(sections, s.renderFeedback())
	} else {
		st := s.services.Profiles.Active().State()
		sections = append(sections, theme.Subtitle.Render(
			fmt.Sprintf("%d more in the queue", len(st.Queue))))
	}

	card := theme.Card.Width(min(width-4, 76)).Render(strings.Join(sections, "\n\n"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// renderInput renders the answer area for the active variant.
func (s *StudyScreen) renderInput() string {
	q := s.question

	switch q.Type {
	case quiz.TypeMultipleChoice, quiz.TypeMultipleAnswer, quiz.TypeTrueFalse:
		return s.choices.View(s.correctIndices())

	case quiz.TypeKeywords:
		return s.input.View()

	case quiz.TypeMatching:
		var b strings.Builder
		for i, left := range s.steps {
			switch {
			case i < len(s.picks):
				b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %s → %s", left, s.picks[i])) + "\n")
			case i == s.stepIdx && s.result == nil:
				b.WriteString(theme.Selected.Render(fmt.Sprintf("  %s → ?", left)) + "\n")
			default:
				b.WriteString(theme.Unselected.Render(fmt.Sprintf("  %s → ?", left)) + "\n")
			}
		}
		if s.result == nil && s.stepIdx < len(s.steps) {
			b.WriteString("\n" + s.choices.View(nil))
		}
		return b.String()

	case quiz.TypeWordBank:
		prompt := s.renderFilledPrompt()
		if s.result == nil && s.stepIdx < len(s.steps) {
			prompt += "\n\n" + s.choices.View(nil)
		}
		return prompt
	}

	return ""
}

// renderFilledPrompt shows the word-bank prompt with blanks replaced by
// the picks made so far.
func (s *StudyScreen) renderFilledPrompt() string {
	parts := strings.Split(s.question.Prompt, quiz.BlankMarker)
	var b strings.Builder
	for i, part := range parts {
		b.WriteString(theme.Body.Render(part))
		if i == len(parts)-1 {
			break
		}
		switch {
		case i < len(s.picks):
			b.WriteString(theme.Selected.Render(s.picks[i]))
		case i == s.stepIdx:
			b.WriteString(theme.Selected.Render("[____]"))
		default:
			b.WriteString(theme.Subtitle.Render("[____]"))
		}
	}
	return b.String()
}

// correctIndices maps the stored answer to choice indices for
// post-submission highlighting. Nil before feedback.
func (s *StudyScreen) correctIndices() map[int]bool {
	if s.result == nil {
		return nil
	}
	q := s.question
	switch q.Type {
	case quiz.TypeMultipleChoice:
		return map[int]bool{q.AnswerIndex: true}
	case quiz.TypeMultipleAnswer:
		m := make(map[int]bool, len(q.AnswerIndices))
		for _, i := range q.AnswerIndices {
			m[i] = true
		}
		return m
	case quiz.TypeTrueFalse:
		if q.BoolAnswer {
			return map[int]bool{0: true}
		}
		return map[int]bool{1: true}
	}
	return nil
}

// renderFeedback renders the verdict, the expected answer where the
// input area cannot show it, and the explanation when enabled.
func (s *StudyScreen) renderFeedback() string {
	var b strings.Builder

	if s.result.Correct {
		b.WriteString(theme.Correct.Render("✓ Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Not quite."))
		if expected := s.expectedAnswer(); expected != "" {
			b.WriteString("\n" + theme.Subtitle.Render("Answer: ") + theme.Body.Render(expected))
		}
	}

	if s.services.Settings.ShowExplanations && s.result.Explanation != "" {
		b.WriteString("\n\n" + theme.Hint.Render(s.result.Explanation))
	}

	b.WriteString("\n\n" + theme.Subtitle.Render("Press any key to continue"))
	return b.String()
}

// expectedAnswer formats the stored answer for variants whose input
// area cannot highlight it.
func (s *StudyScreen) expectedAnswer() string {
	q := s.question
	switch q.Type {
	case quiz.TypeKeywords:
		return strings.Join(q.Answers, " / ")
	case quiz.TypeMatching:
		pairs := make([]string, 0, len(q.Pairs))
		for _, p := range q.Pairs {
			pairs = append(pairs, p.Left+" → "+p.Right)
		}
		return strings.Join(pairs, ", ")
	case quiz.TypeWordBank:
		return strings.Join(q.Answers, ", ")
	}
	return ""
}

func (s *StudyScreen) renderExhausted(width, height int) string {
	st := s.services.Profiles.Active().State()

	msg := theme.Title.Render("Deck complete!") + "\n\n"
	if len(st.Queue) > 0 {
		msg += theme.Subtitle.Render("Skipped questions are waiting for the next round.") + "\n\n"
	}
	msg += theme.Hint.Render("R to go again · Esc to pick another subject")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}

// describeBlob produces the one-line attachment note shown under the
// prompt; terminals do not render the bytes themselves.
func describeBlob(b media.Blob) string {
	kind := "attachment"
	switch {
	case strings.HasPrefix(b.MIME, "image/"):
		kind = "image"
	case strings.HasPrefix(b.MIME, "video/"):
		kind = "video"
	}
	return fmt.Sprintf("◈ %s attached (%s, %d bytes)", kind, b.MIME, len(b.Data))
}

// blankLabel names a word-bank step for the picker header.
func blankLabel(i int) string {
	return fmt.Sprintf("blank %d", i+1)
}
