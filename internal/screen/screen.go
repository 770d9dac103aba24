// Package screen defines the contract between the router and the
// application screens, plus the shared services handed to every screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/media"
	"github.com/abhisek/quizdeck/internal/profile"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Screen is one full-content view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen supply custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ModalProvider lets a screen consume Esc while an inline dialog is
// open instead of navigating back.
type ModalProvider interface {
	InModal() bool
}

// Services bundles the shared application state screens operate on. The
// machine is rebound whenever the active profile changes, so screens
// must always go through the struct rather than capture the pointer.
type Services struct {
	Profiles  *profile.Store
	Machine   *session.Machine
	Settings  store.Settings
	Persister *store.Persister
	Media     *media.Loader
}

// Rebind builds a fresh session machine over the active profile. Called
// after profile create/switch/delete/import.
func (s *Services) Rebind() {
	s.Machine = session.NewMachine(s.Profiles.Active(), session.WithOnChange(s.SaveState))
}

// SaveState mirrors the in-memory state to durable storage,
// fire-and-forget. Safe to call with no persister wired (tests).
func (s *Services) SaveState() {
	if s.Persister == nil {
		return
	}
	// Background write; the in-memory state stays authoritative.
	_ = s.Persister.Save(store.NewDocument(s.Profiles, s.Settings))
}
