package audit

import (
	"testing"
	"time"
)

func TestAppendSequencesMonotonically(t *testing.T) {
	t.Parallel()

	l := NewLog()
	for i := 0; i < 5; i++ {
		e := l.OK("orchestrator", "step", "detail")
		if e.Sequence != i+1 {
			t.Fatalf("expected sequence %d, got %d", i+1, e.Sequence)
		}
	}

	entries := l.Entries()
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Sequence != i+1 {
			t.Fatalf("entry %d has sequence %d", i, e.Sequence)
		}
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	l := NewLog()
	l.Error("support", "create_ticket", "boom")

	entries := l.Entries()
	entries[0].Detail = "mutated"

	if l.Entries()[0].Detail != "boom" {
		t.Fatal("Entries leaked internal state")
	}
}

func TestLogsAreIndependentPerRun(t *testing.T) {
	t.Parallel()

	a := NewLog()
	b := NewLog()
	a.OK("orchestrator", "receive", "query a")

	if b.Len() != 0 {
		t.Fatalf("log b picked up %d entries from log a", b.Len())
	}
	if a.RunID() == b.RunID() {
		t.Fatal("run ids must be unique per run")
	}
}

func TestAppendUsesClock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLogWithClock(func() time.Time { return fixed })

	e := l.OK("data", "get_customer", "")
	if !e.Timestamp.Equal(fixed) {
		t.Fatalf("unexpected timestamp: %s", e.Timestamp)
	}
}
