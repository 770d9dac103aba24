package profiles

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/profile"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testServices() *screen.Services {
	ps := profile.NewStore()
	svc := &screen.Services{Profiles: ps}
	svc.Machine = session.NewMachine(ps.Active())
	return svc
}

func TestProfiles_CreateFlow(t *testing.T) {
	svc := testServices()
	p := New(svc)

	p.Update(keyPress('n'))
	if !p.InModal() {
		t.Fatal("name entry should be modal")
	}

	for _, r := range "Sam" {
		p.Update(keyPress(r))
	}
	p.Update(specialKey(tea.KeyEnter))

	if p.InModal() {
		t.Error("entry should close after saving")
	}
	if got := svc.Profiles.Active().Name; got != "Sam" {
		t.Errorf("active profile = %q, want %q", got, "Sam")
	}
	if len(svc.Profiles.List()) != 2 {
		t.Errorf("expected 2 profiles, got %d", len(svc.Profiles.List()))
	}
}

func TestProfiles_CreateRejectsEmptyName(t *testing.T) {
	svc := testServices()
	p := New(svc)

	p.Update(keyPress('n'))
	p.Update(specialKey(tea.KeyEnter))

	if !p.InModal() {
		t.Error("empty name should keep the entry open")
	}
	if len(svc.Profiles.List()) != 1 {
		t.Error("no profile should be created")
	}
}

func TestProfiles_EscCancelsEntry(t *testing.T) {
	svc := testServices()
	p := New(svc)

	p.Update(keyPress('n'))
	p.Update(specialKey(tea.KeyEscape))

	if p.InModal() {
		t.Error("esc should cancel the entry")
	}
	if len(svc.Profiles.List()) != 1 {
		t.Error("cancelled entry must not create a profile")
	}
}

func TestProfiles_DeleteNeedsConfirmation(t *testing.T) {
	svc := testServices()
	svc.Profiles.Create("Second")
	p := New(svc)

	p.Update(keyPress('d'))
	if !p.InModal() {
		t.Fatal("delete should ask for confirmation")
	}

	// Anything but Y keeps the profile.
	p.Update(keyPress('x'))
	if len(svc.Profiles.List()) != 2 {
		t.Fatal("declined delete must keep the profile")
	}

	p.Update(keyPress('d'))
	p.Update(keyPress('y'))
	if len(svc.Profiles.List()) != 1 {
		t.Error("confirmed delete should remove the profile")
	}
}

func TestProfiles_SwitchRebindsMachine(t *testing.T) {
	svc := testServices()
	svc.Profiles.Create("Second") // becomes active
	before := svc.Machine

	p := New(svc)
	// Cursor starts on the first (oldest) profile; switch to it.
	p.Update(specialKey(tea.KeyEnter))

	if svc.Profiles.Active().Name != profile.DefaultName {
		t.Fatalf("expected the default profile active, got %q", svc.Profiles.Active().Name)
	}
	if svc.Machine == before {
		t.Error("switching profiles must rebind the session machine")
	}
}

func TestProfiles_ViewMarksActive(t *testing.T) {
	svc := testServices()
	p := New(svc)

	view := p.View(80, 24)
	if !strings.Contains(view, profile.DefaultName) {
		t.Error("view should list the default profile")
	}
	if !strings.Contains(view, "●") {
		t.Error("view should mark the active profile")
	}
}
