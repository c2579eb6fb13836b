package state

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

func newTestRun() *RunContext {
	return NewRunContext("test query", contractx.CallerContext{}, time.Now())
}

func TestPhaseMachineHappyPath(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	if run.Phase() != PhaseReceived {
		t.Fatalf("unexpected initial phase: %s", run.Phase())
	}

	for _, next := range []Phase{PhaseClassified, PhaseDispatching, PhaseAggregating, PhaseCompleted} {
		if err := run.Advance(next); err != nil {
			t.Fatalf("advance to %s: %v", next, err)
		}
	}
}

func TestPhaseMachineRejectsSkips(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	if err := run.Advance(PhaseAggregating); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	// Terminal phases accept nothing.
	run2 := newTestRun()
	if err := run2.Advance(PhaseFailed); err != nil {
		t.Fatalf("advance to failed: %v", err)
	}
	if err := run2.Advance(PhaseClassified); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition out of failed, got %v", err)
	}
}

func TestAttachCustomerIsSetOnce(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	first := &storex.Customer{ID: 1, Name: "Alice Johnson"}
	if err := run.AttachCustomer(first); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := run.AttachCustomer(&storex.Customer{ID: 2}); !errors.Is(err, ErrCustomerAttached) {
		t.Fatalf("expected set-once violation, got %v", err)
	}
	if run.Customer().ID != 1 {
		t.Fatalf("customer was replaced: %+v", run.Customer())
	}
}

func TestRaiseUrgencyNeverLowers(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	run.RaiseUrgency(contractx.UrgencyHigh)
	run.RaiseUrgency(contractx.UrgencyLow)
	if run.Urgency() != contractx.UrgencyHigh {
		t.Fatalf("urgency was lowered to %s", run.Urgency())
	}
}

func TestResultsAccumulate(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	run.AddResult(contractx.TaskResult{Action: contractx.ActionGetCustomer, OK: true})
	run.AddResult(contractx.TaskResult{Action: contractx.ActionCreateTicket, OK: false})

	results := run.Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Action != contractx.ActionGetCustomer {
		t.Fatalf("result order changed: %+v", results)
	}

	// Mutating the returned slice must not touch the run.
	results[0].OK = false
	if !run.Results()[0].OK {
		t.Fatal("Results leaked internal state")
	}
}

func TestCustomerIDResolutionOrder(t *testing.T) {
	t.Parallel()

	callerID := int64(9)
	slotID := int64(4)

	run := NewRunContext("q", contractx.CallerContext{CustomerID: &callerID}, time.Now())

	if id, ok := run.CustomerID(nil); !ok || id != 9 {
		t.Fatalf("expected caller id 9, got %d ok=%t", id, ok)
	}
	if id, ok := run.CustomerID(&slotID); !ok || id != 4 {
		t.Fatalf("expected slot id 4, got %d ok=%t", id, ok)
	}

	if err := run.AttachCustomer(&storex.Customer{ID: 2}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if id, ok := run.CustomerID(&slotID); !ok || id != 2 {
		t.Fatalf("expected attached id 2, got %d ok=%t", id, ok)
	}
}
