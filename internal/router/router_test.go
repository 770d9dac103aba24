package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/screen"
)

type stubScreen struct {
	name   string
	inited bool
	seen   []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestRouter_PushPopReplace(t *testing.T) {
	root := &stubScreen{name: "root"}
	r := New(root)

	if r.Depth() != 1 || r.Active() != screen.Screen(root) {
		t.Fatal("router should start with the initial screen active")
	}

	// Pop at the root is a no-op.
	r.Pop()
	if r.Depth() != 1 {
		t.Error("popping the root must not empty the stack")
	}

	second := &stubScreen{name: "second"}
	r.Update(PushMsg{Screen: second})
	if r.Depth() != 2 || !second.inited {
		t.Fatal("push should stack the screen and run its Init")
	}

	third := &stubScreen{name: "third"}
	r.Update(ReplaceMsg{Screen: third})
	if r.Depth() != 2 || r.Active() != screen.Screen(third) || !third.inited {
		t.Fatal("replace should swap the active screen in place")
	}

	r.Update(PopMsg{})
	if r.Depth() != 1 || r.Active() != screen.Screen(root) {
		t.Fatal("pop should return to the root")
	}
}

func TestRouter_ForwardsOtherMessages(t *testing.T) {
	root := &stubScreen{name: "root"}
	top := &stubScreen{name: "top"}
	r := New(root)
	r.Push(top)

	r.Update("hello")

	if len(top.seen) != 1 {
		t.Error("active screen should receive non-navigation messages")
	}
	if len(root.seen) != 0 {
		t.Error("covered screens must not receive messages")
	}
}

func TestRouter_ViewRendersActive(t *testing.T) {
	r := New(&stubScreen{name: "root"})
	r.Push(&stubScreen{name: "top"})

	if got := r.View(80, 24); got != "top" {
		t.Errorf("View = %q, want %q", got, "top")
	}
}
