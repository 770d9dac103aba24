package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ChoiceList is a keyboard-driven option selector. In multi mode space
// toggles options and enter submits the toggled set; in single mode
// enter submits the cursor position.
type ChoiceList struct {
	Options   []string
	Multi     bool
	Cursor    int
	Toggled   map[int]bool
	Submitted bool
}

// NewChoiceList creates a single-select list.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, Toggled: map[int]bool{}}
}

// NewMultiChoiceList creates a multi-select list.
func NewMultiChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, Multi: true, Toggled: map[int]bool{}}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation, toggling, and submission.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi {
			c.Toggled[c.Cursor] = !c.Toggled[c.Cursor]
		}
	case "enter":
		if len(c.Options) > 0 {
			c.Submitted = true
		}
	}

	return c, nil
}

// Selection returns the submitted answer: the cursor index in single
// mode, the sorted toggled indices in multi mode.
func (c ChoiceList) Selection() any {
	if !c.Multi {
		return c.Cursor
	}
	indices := make([]int, 0, len(c.Toggled))
	for i := range c.Options {
		if c.Toggled[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

// View renders the list. correct, when non-nil, holds the indices to
// highlight as right answers after submission.
func (c ChoiceList) View(correct map[int]bool) string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.Submitted {
			prefix = "▸ "
		}

		mark := ""
		if c.Multi {
			mark = "[ ] "
			if c.Toggled[i] {
				mark = "[x] "
			}
		}

		line := fmt.Sprintf("%s%s%c)  %s", prefix, mark, 'a'+i, opt)

		switch {
		case c.Submitted && correct != nil && correct[i]:
			s += theme.Correct.Render(line) + "\n"
		case c.Submitted && correct != nil && c.chose(i):
			s += theme.Incorrect.Render(line) + "\n"
		case c.Submitted:
			s += theme.Subtitle.Render(line) + "\n"
		case i == c.Cursor:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}

func (c ChoiceList) chose(i int) bool {
	if c.Multi {
		return c.Toggled[i]
	}
	return i == c.Cursor
}
