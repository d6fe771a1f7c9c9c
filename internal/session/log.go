package session

import (
	"sync"
	"time"
)

// Turn is one recorded explanation/reply exchange. Immutable once appended.
//
// ResponseLength records the character count of the student's explanation,
// not of the generated reply. The name is kept because it is the column the
// research datasets have always carried.
type Turn struct {
	Timestamp      time.Time
	CourseCode     string
	GroupID        string
	Author         string
	StudentMessage string
	AIResponse     string
	ResponseLength int
}

// Log is the ordered, append-only record of a session's turns. The in-memory
// sequence is authoritative for the session's lifetime; the durable mirror is
// write-only and never read back.
type Log struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewLog creates an empty turn log
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn to the log. Timestamps are kept monotonically
// non-decreasing: a turn stamped earlier than its predecessor (wall clock
// stepping backwards) is clamped to the predecessor's timestamp.
func (l *Log) Append(turn Turn) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.turns); n > 0 && turn.Timestamp.Before(l.turns[n-1].Timestamp) {
		turn.Timestamp = l.turns[n-1].Timestamp
	}

	l.turns = append(l.turns, turn)
}

// Turns returns a copy of the recorded turns in append order
func (l *Log) Turns() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of recorded turns
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}
