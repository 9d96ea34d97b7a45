package console

import "time"

// EntryKind classifies an ops log entry.
type EntryKind uint8

const (
	KindInfo EntryKind = iota + 1
	KindAI
	KindError
)

func (k EntryKind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindAI:
		return "ai"
	case KindError:
		return "error"
	default:
		return "?"
	}
}

// maxLogEntries caps the ops log; once full, the oldest entries are
// evicted first.
const maxLogEntries = 16

// LogEntry is one line of the ops log. IDs are unique within a session
// and strictly increasing in append order, so a renderer can replace
// the list without reordering artifacts.
type LogEntry struct {
	ID   int64
	Text string
	Kind EntryKind
	At   time.Time
}

// logRing is an append-only sequence capped at maxLogEntries. Entries
// are never mutated or removed individually; eviction only drops from
// the front, so survivors keep their insertion order.
type logRing struct {
	entries []LogEntry
	nextID  int64
}

func (r *logRing) append(text string, kind EntryKind, at time.Time) LogEntry {
	r.nextID++
	e := LogEntry{ID: r.nextID, Text: text, Kind: kind, At: at}
	r.entries = append(r.entries, e)
	if len(r.entries) > maxLogEntries {
		r.entries = r.entries[len(r.entries)-maxLogEntries:]
	}
	return e
}

// snapshot returns a copy of the current entries, oldest first.
func (r *logRing) snapshot() []LogEntry {
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
