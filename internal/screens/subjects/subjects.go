// Package subjects lets the learner pick a subject and tune the
// session before studying: topic selection, ordering mode, and whether
// mastered questions come back.
package subjects

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// SubjectsScreen lists the active profile's subjects with mastery.
type SubjectsScreen struct {
	services *screen.Services
	cursor   int
}

var _ screen.Screen = (*SubjectsScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectsScreen)(nil)

// New creates the subject list screen.
func New(services *screen.Services) *SubjectsScreen {
	return &SubjectsScreen{services: services}
}

func (s *SubjectsScreen) Init() tea.Cmd {
	return nil
}

func (s *SubjectsScreen) Title() string {
	return "Subjects"
}

func (s *SubjectsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SubjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	subjects := s.services.Profiles.Active().Subjects
	if s.cursor >= len(subjects) {
		s.cursor = 0
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(subjects)-1 {
			s.cursor++
		}
	case "enter":
		if len(subjects) == 0 {
			return s, nil
		}
		subj := subjects[s.cursor]
		s.services.Machine.StartSession(subj.ID)
		return s, func() tea.Msg {
			return router.PushMsg{Screen: newTopicsScreen(s.services, subj.ID)}
		}
	}

	return s, nil
}

func (s *SubjectsScreen) View(width, height int) string {
	active := s.services.Profiles.Active()

	if len(active.Subjects) == 0 {
		empty := theme.Subtitle.Render("No subjects yet.") + "\n\n" +
			theme.Hint.Render("Import one with:  quizdeck import <file.json>")
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(empty)
	}

	var body string
	for i, subj := range active.Subjects {
		pct := mastery.SubjectPercent(subj, active.Progress)
		count := len(subj.Questions())

		var line string
		if i == s.cursor {
			line = theme.Selected.Render("  ▸ " + subj.Name)
		} else {
			line = theme.Unselected.Render("    " + subj.Name)
		}
		line += "  " + theme.Hint.Render(fmt.Sprintf("%d questions", count)) +
			"  " + theme.Mastered.Render(fmt.Sprintf("%d%%", pct))
		body += line + "\n"
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Title.Render("Pick a subject") + "\n\n" + body)
}
