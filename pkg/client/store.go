package client

import (
	"context"
	"strings"
	"time"
)

// Filter selects a subset of notes in views
type Filter string

const (
	FilterAll    Filter = "all"
	FilterPinned Filter = "pinned"
	FilterRecent Filter = "recent"
)

// RecentWindow is how far back FilterRecent reaches
const RecentWindow = 7 * 24 * time.Hour

// Search returns the notes whose title, content or any tag contains query,
// case-insensitively. An empty or whitespace-only query matches everything.
// Input order is preserved.
func Search(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}

	var out []Note
	for _, n := range notes {
		if matchesQuery(&n, q) {
			out = append(out, n)
		}
	}
	return out
}

func matchesQuery(n *Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Apply returns the notes matching f, evaluated at now. Order is preserved.
func Apply(notes []Note, f Filter, now time.Time) []Note {
	switch f {
	case FilterPinned:
		var out []Note
		for _, n := range notes {
			if n.IsPinned {
				out = append(out, n)
			}
		}
		return out
	case FilterRecent:
		cutoff := now.Add(-RecentWindow)
		var out []Note
		for _, n := range notes {
			if n.UpdatedAt.After(cutoff) {
				out = append(out, n)
			}
		}
		return out
	default:
		return notes
	}
}

// Partition splits notes into pinned and unpinned groups, preserving the
// relative order within each group.
func Partition(notes []Note) (pinned, others []Note) {
	for _, n := range notes {
		if n.IsPinned {
			pinned = append(pinned, n)
		} else {
			others = append(others, n)
		}
	}
	return pinned, others
}

// Store is an in-memory snapshot of the caller's notes. It is the local half
// of the data layer: mutations go through Session, which reconciles the
// snapshot from server responses. Store itself never talks to the network.
type Store struct {
	notes []Note
}

// NewStore creates a Store seeded with notes (may be nil)
func NewStore(notes []Note) *Store {
	return &Store{notes: notes}
}

// Notes returns a copy of the current snapshot
func (s *Store) Notes() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes in the snapshot
func (s *Store) Len() int { return len(s.notes) }

// Get returns the note with the given id, or nil
func (s *Store) Get(id string) *Note {
	for i := range s.notes {
		if s.notes[i].ID == id {
			n := s.notes[i]
			return &n
		}
	}
	return nil
}

// Replace swaps the whole snapshot
func (s *Store) Replace(notes []Note) {
	s.notes = notes
}

// Prepend puts a newly created note at the front of the snapshot
func (s *Store) Prepend(n Note) {
	s.notes = append([]Note{n}, s.notes...)
}

// Upsert replaces the note with a matching id in place, or prepends it
// when absent
func (s *Store) Upsert(n Note) {
	for i := range s.notes {
		if s.notes[i].ID == n.ID {
			s.notes[i] = n
			return
		}
	}
	s.Prepend(n)
}

// Remove drops the note with the given id, preserving order
func (s *Store) Remove(id string) {
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return
		}
	}
}

// Search filters the snapshot by query
func (s *Store) Search(query string) []Note {
	return Search(s.notes, query)
}

// Filtered applies f to the snapshot at now
func (s *Store) Filtered(f Filter, now time.Time) []Note {
	return Apply(s.notes, f, now)
}

// Partition splits the snapshot into pinned and unpinned groups
func (s *Store) Partition() (pinned, others []Note) {
	return Partition(s.notes)
}

// Session binds a Client to a Store. Every mutation calls the API first and
// reconciles the local snapshot only from the server's response, so the
// snapshot never diverges from what the server accepted.
type Session struct {
	client *Client
	store  *Store
}

// NewSession creates a Session with an empty snapshot
func NewSession(c *Client) *Session {
	return &Session{client: c, store: NewStore(nil)}
}

// Store exposes the local snapshot for read-side derivations
func (s *Session) Store() *Store { return s.store }

// Refresh replaces the snapshot with the server's current list
func (s *Session) Refresh(ctx context.Context) error {
	notes, err := s.client.ListNotes(ctx)
	if err != nil {
		return err
	}
	s.store.Replace(notes)
	return nil
}

// Create creates a note and prepends the stored version to the snapshot
func (s *Session) Create(ctx context.Context, req *CreateNoteRequest) (*Note, error) {
	note, err := s.client.CreateNote(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store.Prepend(*note)
	return note, nil
}

// Update applies a partial update and reconciles the snapshot
func (s *Session) Update(ctx context.Context, id string, req *UpdateNoteRequest) (*Note, error) {
	note, err := s.client.UpdateNote(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.store.Upsert(*note)
	return note, nil
}

// TogglePin flips the pinned flag of a note, leaving every other field
// untouched
func (s *Session) TogglePin(ctx context.Context, id string) (*Note, error) {
	current := s.store.Get(id)
	if current == nil {
		fetched, err := s.client.GetNote(ctx, id)
		if err != nil {
			return nil, err
		}
		current = fetched
	}

	flipped := !current.IsPinned
	return s.Update(ctx, id, &UpdateNoteRequest{IsPinned: &flipped})
}

// Delete removes a note remotely and drops it from the snapshot
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.store.Remove(id)
	return nil
}
