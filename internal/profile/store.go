package profile

import (
	"sort"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Store is a keyed collection of profiles with one active at a time.
// There is always at least one profile.
type Store struct {
	profiles map[string]*Profile
	activeID string
}

// NewStore creates a store holding a single fresh default profile.
func NewStore() *Store {
	def := New(DefaultID, DefaultName)
	return &Store{
		profiles: map[string]*Profile{def.ID: def},
		activeID: def.ID,
	}
}

// FromSnapshot rebuilds a store from persisted profiles. Zero profiles or
// a dangling active ID are repaired rather than rejected.
func FromSnapshot(profiles map[string]*Profile, activeID string) *Store {
	s := &Store{profiles: profiles, activeID: activeID}
	if s.profiles == nil {
		s.profiles = make(map[string]*Profile)
	}
	for _, p := range s.profiles {
		p.normalize()
	}
	if len(s.profiles) == 0 {
		def := New(DefaultID, DefaultName)
		s.profiles[def.ID] = def
		s.activeID = def.ID
	}
	if s.profiles[s.activeID] == nil {
		s.activeID = s.newestID()
	}
	return s
}

// Create allocates a new profile with a unique ID and makes it active.
func (s *Store) Create(name string) *Profile {
	p := New(uuid.NewString(), name)
	s.profiles[p.ID] = p
	s.activeID = p.ID
	return p
}

// Switch activates the profile with the given ID. Unknown IDs are a no-op.
func (s *Store) Switch(id string) bool {
	if s.profiles[id] == nil {
		return false
	}
	s.activeID = id
	return true
}

// Rename changes a profile's display name. Unknown IDs are a no-op.
func (s *Store) Rename(id, name string) bool {
	p := s.profiles[id]
	if p == nil {
		return false
	}
	p.Name = name
	return true
}

// Delete removes a profile. Deleting the active profile activates the
// most recently created remaining one; deleting the only profile replaces
// it in place with a fresh default under the well-known ID.
func (s *Store) Delete(id string) {
	if s.profiles[id] == nil {
		return
	}
	delete(s.profiles, id)

	if len(s.profiles) == 0 {
		def := New(DefaultID, DefaultName)
		s.profiles[def.ID] = def
		s.activeID = def.ID
		return
	}
	if s.activeID == id {
		s.activeID = s.newestID()
	}
}

// Active returns the active profile.
func (s *Store) Active() *Profile {
	return s.profiles[s.activeID]
}

// ActiveID returns the active profile's ID.
func (s *Store) ActiveID() string {
	return s.activeID
}

// Get returns the profile with the given ID, or nil.
func (s *Store) Get(id string) *Profile {
	return s.profiles[id]
}

// List returns all profiles ordered by creation time.
func (s *Store) List() []*Profile {
	out := make([]*Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Snapshot exposes the raw profile map for persistence.
func (s *Store) Snapshot() map[string]*Profile {
	return s.profiles
}

// ImportSubjects deep-merges subjects into a profile's library.
func (s *Store) ImportSubjects(id string, subjects []quiz.Subject) bool {
	p := s.profiles[id]
	if p == nil {
		return false
	}
	p.Subjects = MergeSubjects(p.Subjects, subjects)
	return true
}

// ImportProfile merges an imported profile into the store. A new ID is
// appended as-is; an existing ID has its library deep-merged and its
// progress overlaid, keeping the existing session state.
func (s *Store) ImportProfile(src *Profile) {
	if src == nil || src.ID == "" {
		return
	}
	src.normalize()

	dst := s.profiles[src.ID]
	if dst == nil {
		s.profiles[src.ID] = src
		return
	}
	if src.Name != "" {
		dst.Name = src.Name
	}
	dst.Subjects = MergeSubjects(dst.Subjects, src.Subjects)
	MergeProgress(dst.Progress, src.Progress)
}

// SetSubjects replaces a profile's entire subject library. Destructive:
// existing subjects not present in the new set are gone.
func (s *Store) SetSubjects(id string, subjects []quiz.Subject) bool {
	p := s.profiles[id]
	if p == nil {
		return false
	}
	p.Subjects = subjects
	return true
}

// DeleteSubject removes a subject and its progress from a profile.
func (s *Store) DeleteSubject(profileID, subjectID string) bool {
	p := s.profiles[profileID]
	if p == nil {
		return false
	}
	for i := range p.Subjects {
		if p.Subjects[i].ID == subjectID {
			p.Subjects = append(p.Subjects[:i], p.Subjects[i+1:]...)
			p.Progress.DeleteSubject(subjectID)
			return true
		}
	}
	return false
}

// newestID returns the ID of the most recently created profile.
func (s *Store) newestID() string {
	list := s.List()
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1].ID
}
