// Package home is the landing screen: resume studying, browse
// subjects, or manage profiles.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/profiles"
	"github.com/abhisek/quizdeck/internal/screens/study"
	"github.com/abhisek/quizdeck/internal/screens/subjects"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	services *screen.Services
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(services *screen.Services) *HomeScreen {
	h := &HomeScreen{services: services}
	h.menu = components.NewMenu(h.buildItems())
	return h
}

func (h *HomeScreen) buildItems() []components.MenuItem {
	items := []components.MenuItem{}

	// Resume entry only when a session subject is active.
	if subj := h.services.Machine.ActiveSubject(); subj != nil {
		items = append(items, components.MenuItem{
			Label:  "RESUME STUDYING",
			Detail: subj.Name,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushMsg{Screen: study.New(h.services)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "SUBJECTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushMsg{Screen: subjects.New(h.services)}
			}
		}},
		components.MenuItem{Label: "PROFILES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushMsg{Screen: profiles.New(h.services)}
			}
		}},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	active := h.services.Profiles.Active()

	var mastered, total int
	for _, subj := range active.Subjects {
		total += len(subj.Questions())
		for _, q := range subj.Questions() {
			if p := active.Progress.Question(subj.ID, q.TopicID, q.ID); p != nil && p.Mastered {
				mastered++
			}
		}
	}

	title := theme.Title.Render("Quizdeck")
	tagline := theme.Subtitle.Render("Study anything, one card at a time.")

	stats := theme.Body.Render(fmt.Sprintf("%d subjects", len(active.Subjects))) +
		theme.Subtitle.Render("   ·   ") +
		theme.Mastered.Render(fmt.Sprintf("%d / %d mastered", mastered, total))

	sections := []string{
		title,
		tagline,
		"",
		stats,
		"",
		h.menu.View(),
	}
	content := strings.Join(sections, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
