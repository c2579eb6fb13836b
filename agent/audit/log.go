// Package audit records every orchestration step of a single run as an
// append-only sequence of entries.
package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Entry is immutable once written.
type Entry struct {
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Outcome   Outcome   `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
}

// Log is one run's activity record. It is constructed fresh per run and
// passed explicitly; there is no shared global. Append is not
// synchronized: the baseline operating mode is one active run at a
// time. Concurrent runs would need a mutex here.
type Log struct {
	runID   string
	seq     int
	entries []Entry
	clock   func() time.Time
}

func NewLog() *Log {
	return &Log{
		runID: uuid.NewString(),
		clock: time.Now,
	}
}

// NewLogWithClock pins the timestamp source, for tests.
func NewLogWithClock(clock func() time.Time) *Log {
	l := NewLog()
	if clock != nil {
		l.clock = clock
	}
	return l
}

func (l *Log) RunID() string {
	return l.runID
}

// Append records one step and returns the written entry. Sequence
// numbers increase monotonically from 1.
func (l *Log) Append(actor, action string, outcome Outcome, detail string) Entry {
	l.seq++
	e := Entry{
		Sequence:  l.seq,
		Timestamp: l.clock().UTC(),
		Actor:     actor,
		Action:    action,
		Outcome:   outcome,
		Detail:    detail,
	}
	l.entries = append(l.entries, e)

	log.Debug().
		Str("run_id", l.runID).
		Int("sequence", e.Sequence).
		Str("actor", actor).
		Str("action", action).
		Str("outcome", string(outcome)).
		Str("detail", detail).
		Msg("activity")

	return e
}

func (l *Log) OK(actor, action, detail string) Entry {
	return l.Append(actor, action, OutcomeOK, detail)
}

func (l *Log) Error(actor, action, detail string) Entry {
	return l.Append(actor, action, OutcomeError, detail)
}

// Entries returns a read-only copy of the trace.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	return len(l.entries)
}
