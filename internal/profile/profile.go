// Package profile manages independent study namespaces. Each profile
// bundles its own subject library, progress history, and session state;
// nothing is shared across profiles.
package profile

import (
	"time"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/session"
)

// DefaultID is the well-known ID of the profile that always exists.
// Deleting the last remaining profile recreates a fresh one under this ID
// rather than leaving the store empty.
const DefaultID = "default"

// DefaultName is the display name given to auto-created profiles.
const DefaultName = "Default"

// Profile is one isolated study namespace.
type Profile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"createdAt"`
	Subjects  []quiz.Subject   `json:"subjects"`
	Progress  quiz.ProgressMap `json:"progress"`
	Session   session.State    `json:"session"`
}

// New creates an empty profile with initialized maps and the default
// study mode.
func New(id, name string) *Profile {
	return &Profile{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		Progress:  quiz.ProgressMap{},
		Session:   session.State{Mode: session.ModeRandom},
	}
}

// normalize repairs zero-valued fields after deserialization so the rest
// of the system never sees nil maps or an invalid mode.
func (p *Profile) normalize() {
	if p.Progress == nil {
		p.Progress = quiz.ProgressMap{}
	}
	if !p.Session.Mode.Valid() {
		p.Session.Mode = session.ModeRandom
	}
}

// Library implements session.Workspace.
func (p *Profile) Library() []quiz.Subject { return p.Subjects }

// ProgressMap implements session.Workspace.
func (p *Profile) ProgressMap() quiz.ProgressMap { return p.Progress }

// State implements session.Workspace.
func (p *Profile) State() *session.State { return &p.Session }

// Subject returns the subject with the given ID, or nil.
func (p *Profile) Subject(id string) *quiz.Subject {
	for i := range p.Subjects {
		if p.Subjects[i].ID == id {
			return &p.Subjects[i]
		}
	}
	return nil
}
