package subjects

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/study"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// topicsScreen tunes a fresh session before entering the study loop.
type topicsScreen struct {
	services  *screen.Services
	subjectID string
	cursor    int
	confirm   bool // reset-progress confirmation pending
}

var _ screen.Screen = (*topicsScreen)(nil)
var _ screen.KeyHintProvider = (*topicsScreen)(nil)
var _ screen.ModalProvider = (*topicsScreen)(nil)

func newTopicsScreen(services *screen.Services, subjectID string) *topicsScreen {
	return &topicsScreen{services: services, subjectID: subjectID}
}

func (t *topicsScreen) Init() tea.Cmd {
	return nil
}

// InModal reports whether the reset confirmation owns the Esc key.
func (t *topicsScreen) InModal() bool {
	return t.confirm
}

func (t *topicsScreen) Title() string {
	if subj := t.services.Profiles.Active().Subject(t.subjectID); subj != nil {
		return subj.Name
	}
	return "Topics"
}

func (t *topicsScreen) KeyHints() []layout.KeyHint {
	if t.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset progress"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle topic"},
		{Key: "M", Description: "Mode"},
		{Key: "I", Description: "Mastered"},
		{Key: "E", Description: "Explanations"},
		{Key: "R", Description: "Reset"},
		{Key: "Enter", Description: "Start"},
	}
}

func (t *topicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	if t.confirm {
		switch kmsg.String() {
		case "y", "Y":
			t.services.Machine.ResetSubjectProgress(t.subjectID)
		}
		t.confirm = false
		return t, nil
	}

	subj := t.services.Profiles.Active().Subject(t.subjectID)
	if subj == nil {
		return t, func() tea.Msg { return router.PopMsg{} }
	}

	st := t.services.Profiles.Active().State()

	switch kmsg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(subj.Topics)-1 {
			t.cursor++
		}
	case "space", " ":
		t.services.Machine.ToggleTopic(subj.Topics[t.cursor].ID)
	case "m", "M":
		if st.Mode == session.ModeRandom {
			t.services.Machine.SetMode(session.ModeTopicOrder)
		} else {
			t.services.Machine.SetMode(session.ModeRandom)
		}
	case "i", "I":
		t.services.Machine.SetIncludeMastered(!st.IncludeMastered)
		// The flag only affects future queues; apply it now.
		t.services.Machine.RestartQueue()
	case "e", "E":
		t.services.Settings.ShowExplanations = !t.services.Settings.ShowExplanations
		t.services.SaveState()
	case "r", "R":
		t.confirm = true
	case "enter":
		return t, func() tea.Msg {
			return router.PushMsg{Screen: study.New(t.services)}
		}
	}

	return t, nil
}

func (t *topicsScreen) View(width, height int) string {
	subj := t.services.Profiles.Active().Subject(t.subjectID)
	if subj == nil {
		return ""
	}

	if t.confirm {
		warn := theme.Incorrect.Render("Reset all progress for "+subj.Name+"?") + "\n\n" +
			theme.Subtitle.Render("Every attempt, streak, and mastered mark is erased.")
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(warn)
	}

	active := t.services.Profiles.Active()
	st := active.State()

	var body string
	for i, topic := range subj.Topics {
		mark := "[x]"
		if len(st.SelectedTopicIDs) > 0 && !st.SelectedTopicIDs[topic.ID] {
			mark = "[ ]"
		}
		pct := mastery.TopicPercent(subj.ID, topic, active.Progress)

		var line string
		if i == t.cursor {
			line = theme.Selected.Render(fmt.Sprintf("  ▸ %s %s", mark, topic.Name))
		} else {
			line = theme.Unselected.Render(fmt.Sprintf("    %s %s", mark, topic.Name))
		}
		line += "  " + theme.Mastered.Render(fmt.Sprintf("%d%%", pct))
		body += line + "\n"
	}

	mode := "shuffled"
	if st.Mode == session.ModeTopicOrder {
		mode = "in topic order"
	}
	mastered := "hidden"
	if st.IncludeMastered {
		mastered = "included"
	}
	explain := "off"
	if t.services.Settings.ShowExplanations {
		explain = "on"
	}
	remaining := len(st.Queue)
	if st.CurrentQuestionID != "" {
		remaining++
	}
	settings := theme.Hint.Render(fmt.Sprintf("Questions %s · mastered %s · explanations %s · %d queued",
		mode, mastered, explain, remaining))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Title.Render(subj.Name) + "\n\n" + body + "\n" + settings)
}
