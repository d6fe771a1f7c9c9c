// Package session holds the per-group lab state: identity, document index,
// and the append-only turn log.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/imfe-lab/aulalab/internal/index"
)

var (
	// ErrInvalidSession indicates missing or blank setup fields
	ErrInvalidSession = errors.New("invalid session setup")

	// ErrSessionNotFound indicates an unknown session ID
	ErrSessionNotFound = errors.New("session not found")
)

// CourseSession is the state of one active lab group. Identity fields are
// immutable after creation; the embedded mutex serializes turn handling so
// at most one turn is in flight per session.
type CourseSession struct {
	sync.Mutex

	ID           uuid.UUID
	CourseCode   string
	GroupID      string
	Participants []string

	Index *index.Index
	Log   *Log
}

// NewCourseSession validates the setup inputs and creates a session.
// Participant names are trimmed; blank entries are dropped; duplicates are
// allowed. The index may be nil while setup is still in progress.
func NewCourseSession(courseCode, groupID string, participants []string, idx *index.Index) (*CourseSession, error) {
	courseCode = strings.TrimSpace(courseCode)
	groupID = strings.TrimSpace(groupID)

	if courseCode == "" {
		return nil, errors.New("course code is required")
	}
	if groupID == "" {
		return nil, errors.New("group ID is required")
	}

	cleaned := make([]string, 0, len(participants))
	for _, p := range participants {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return nil, errors.New("at least one participant is required")
	}

	return &CourseSession{
		ID:           uuid.New(),
		CourseCode:   courseCode,
		GroupID:      groupID,
		Participants: cleaned,
		Index:        idx,
		Log:          NewLog(),
	}, nil
}

// HasParticipant reports whether name is in the participant list
func (s *CourseSession) HasParticipant(name string) bool {
	for _, p := range s.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// ParseParticipants splits a newline-separated participant block into names,
// trimming surrounding whitespace and dropping blank lines
func ParseParticipants(block string) []string {
	var names []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// Registry tracks active sessions by ID. Sessions share no state with each
// other; the registry is only a lookup table.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*CourseSession
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*CourseSession)}
}

// Add registers a session
func (r *Registry) Add(s *CourseSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get returns the session with the given ID
func (r *Registry) Get(id uuid.UUID) (*CourseSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove deletes and returns the session with the given ID
func (r *Registry) Remove(id uuid.UUID) (*CourseSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(r.sessions, id)
	return s, nil
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
