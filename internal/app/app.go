// Package app wires the Bubble Tea program: root model, global keys,
// and the header/footer frame around the routed screens.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	services *screen.Services
	router   *router.Router
	width    int
	height   int
}

// newAppModel creates the root model with the home screen mounted.
func newAppModel(services *screen.Services) AppModel {
	return AppModel{
		services: services,
		router:   router.New(home.New(services)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if mp, ok := m.router.Active().(screen.ModalProvider); ok && mp.InModal() {
				break // the screen's dialog owns Esc
			}
			if m.router.Depth() > 1 {
				// Returning to the menu replaces the stack so the home
				// screen rebuilds with a fresh resume entry.
				if m.router.Depth() == 2 {
					m.router.Pop()
					return m, m.router.Replace(home.New(m.services))
				}
				return m, func() tea.Msg { return router.PopMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.services.Profiles.Active().Name, m.overallMastery(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	if m.router.Depth() > 1 {
		footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// overallMastery averages subject mastery across the active profile.
func (m AppModel) overallMastery() int {
	active := m.services.Profiles.Active()
	if len(active.Subjects) == 0 {
		return 0
	}
	var sum int
	for _, subj := range active.Subjects {
		sum += mastery.SubjectPercent(subj, active.Progress)
	}
	return sum / len(active.Subjects)
}

// Run starts the Bubble Tea program and flushes pending writes on exit.
func Run(services *screen.Services) error {
	p := tea.NewProgram(newAppModel(services))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}

	if services.Persister != nil {
		services.SaveState()
		services.Persister.Flush()
		if err := services.Persister.Err(); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	return nil
}
