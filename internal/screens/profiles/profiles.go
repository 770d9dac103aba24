// Package profiles manages learner profiles: switch, create, rename,
// and delete. Every mutation rebinds the session machine to the active
// profile.
package profiles

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeCreate
	modeRename
	modeConfirmDelete
)

// ProfilesScreen lists profiles and edits them in place.
type ProfilesScreen struct {
	services *screen.Services
	cursor   int
	mode     mode
	input    components.TextInput
}

var _ screen.Screen = (*ProfilesScreen)(nil)
var _ screen.KeyHintProvider = (*ProfilesScreen)(nil)
var _ screen.ModalProvider = (*ProfilesScreen)(nil)

// New creates the profiles screen.
func New(services *screen.Services) *ProfilesScreen {
	return &ProfilesScreen{services: services}
}

func (p *ProfilesScreen) Init() tea.Cmd {
	return nil
}

// InModal reports whether an inline dialog owns the Esc key.
func (p *ProfilesScreen) InModal() bool {
	return p.mode != modeList
}

func (p *ProfilesScreen) Title() string {
	return "Profiles"
}

func (p *ProfilesScreen) KeyHints() []layout.KeyHint {
	switch p.mode {
	case modeCreate, modeRename:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Switch"},
			{Key: "N", Description: "New"},
			{Key: "R", Description: "Rename"},
			{Key: "D", Description: "Delete"},
		}
	}
}

func (p *ProfilesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if p.mode == modeCreate || p.mode == modeRename {
		return p.updateNameEntry(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	list := p.services.Profiles.List()
	if p.cursor >= len(list) {
		p.cursor = len(list) - 1
	}

	if p.mode == modeConfirmDelete {
		switch kmsg.String() {
		case "y", "Y":
			p.services.Profiles.Delete(list[p.cursor].ID)
			p.services.Rebind()
			p.services.SaveState()
		}
		p.mode = modeList
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(list)-1 {
			p.cursor++
		}
	case "enter":
		if p.services.Profiles.Switch(list[p.cursor].ID) {
			p.services.Rebind()
			p.services.SaveState()
		}
	case "n", "N":
		p.mode = modeCreate
		p.input = components.NewTextInput("Profile name...")
		return p, p.input.Init()
	case "r", "R":
		p.mode = modeRename
		p.input = components.NewTextInput(list[p.cursor].Name)
		return p, p.input.Init()
	case "d", "D":
		p.mode = modeConfirmDelete
	}

	return p, nil
}

func (p *ProfilesScreen) updateNameEntry(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			p.mode = modeList
			return p, nil
		case "enter":
			name := p.input.Value()
			if name == "" {
				return p, nil
			}
			if p.mode == modeCreate {
				p.services.Profiles.Create(name)
				p.services.Rebind()
			} else {
				list := p.services.Profiles.List()
				p.services.Profiles.Rename(list[p.cursor].ID, name)
			}
			p.services.SaveState()
			p.mode = modeList
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *ProfilesScreen) View(width, height int) string {
	list := p.services.Profiles.List()
	activeID := p.services.Profiles.ActiveID()

	var content string

	switch p.mode {
	case modeCreate:
		content = theme.Title.Render("New profile") + "\n\n" + p.input.View()
	case modeRename:
		content = theme.Title.Render("Rename profile") + "\n\n" + p.input.View()
	case modeConfirmDelete:
		name := ""
		if p.cursor >= 0 && p.cursor < len(list) {
			name = list[p.cursor].Name
		}
		content = theme.Incorrect.Render("Delete "+name+"?") + "\n\n" +
			theme.Subtitle.Render("Subjects and progress for this profile are erased.")
	default:
		var body string
		for i, prof := range list {
			marker := "  "
			if prof.ID == activeID {
				marker = "● "
			}
			detail := fmt.Sprintf("%d subjects", len(prof.Subjects))
			var line string
			if i == p.cursor {
				line = theme.Selected.Render("  ▸ "+marker+prof.Name) + "  " + theme.Hint.Render(detail)
			} else {
				line = theme.Unselected.Render("    "+marker+prof.Name) + "  " + theme.Hint.Render(detail)
			}
			body += line + "\n"
		}
		content = theme.Title.Render("Profiles") + "\n\n" + body
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
