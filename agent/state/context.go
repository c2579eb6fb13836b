// Package state holds the per-run context and phase machine. A
// RunContext is freshly constructed for every query and never shared
// across runs.
package state

import (
	"errors"
	"fmt"
	"time"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

type Phase string

const (
	PhaseReceived    Phase = "received"
	PhaseClassified  Phase = "classified"
	PhaseDispatching Phase = "dispatching"
	PhaseAggregating Phase = "aggregating"
	PhaseCompleted   Phase = "completed"
	PhaseFailed      Phase = "failed"
)

var transitions = map[Phase][]Phase{
	PhaseReceived:    {PhaseClassified, PhaseFailed},
	PhaseClassified:  {PhaseDispatching, PhaseFailed},
	PhaseDispatching: {PhaseAggregating, PhaseFailed},
	PhaseAggregating: {PhaseCompleted, PhaseFailed},
}

var (
	ErrInvalidTransition = errors.New("invalid phase transition")
	ErrCustomerAttached  = errors.New("customer already attached")
)

// RunContext accumulates monotonically during one run: fields are only
// ever added, never removed or replaced.
type RunContext struct {
	Query  string
	Caller contractx.CallerContext
	Now    time.Time

	phase      Phase
	customer   *storex.Customer
	urgency    contractx.Urgency
	subResults []contractx.TaskResult
}

func NewRunContext(query string, caller contractx.CallerContext, now time.Time) *RunContext {
	return &RunContext{
		Query:   query,
		Caller:  caller,
		Now:     now.UTC(),
		phase:   PhaseReceived,
		urgency: contractx.UrgencyLow,
	}
}

func (r *RunContext) Phase() Phase {
	return r.phase
}

// Advance moves the run to the next phase, enforcing the machine
// received -> classified -> dispatching -> aggregating -> completed,
// with failed reachable from every non-terminal phase.
func (r *RunContext) Advance(next Phase) error {
	for _, allowed := range transitions[r.phase] {
		if allowed == next {
			r.phase = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.phase, next)
}

// AttachCustomer records the resolved customer. Set-once: a later
// attach for a run that already resolved one is a contract violation.
func (r *RunContext) AttachCustomer(c *storex.Customer) error {
	if c == nil {
		return errors.New("nil customer")
	}
	if r.customer != nil {
		return fmt.Errorf("%w: id=%d", ErrCustomerAttached, r.customer.ID)
	}
	r.customer = c
	return nil
}

func (r *RunContext) Customer() *storex.Customer {
	return r.customer
}

// RaiseUrgency only ever moves urgency upward.
func (r *RunContext) RaiseUrgency(u contractx.Urgency) {
	if u.Exceeds(r.urgency) {
		r.urgency = u
	}
}

func (r *RunContext) Urgency() contractx.Urgency {
	return r.urgency
}

// AddResult appends one sub-task result. Results are never dropped or
// reordered, so later steps can see everything earlier steps produced.
func (r *RunContext) AddResult(res contractx.TaskResult) {
	r.subResults = append(r.subResults, res)
}

func (r *RunContext) Results() []contractx.TaskResult {
	out := make([]contractx.TaskResult, len(r.subResults))
	copy(out, r.subResults)
	return out
}

// CustomerID resolves the effective customer id for this run: an
// already-attached customer wins, then the classified slot, then the
// caller context.
func (r *RunContext) CustomerID(slot *int64) (int64, bool) {
	if r.customer != nil {
		return r.customer.ID, true
	}
	if slot != nil {
		return *slot, true
	}
	if r.Caller.CustomerID != nil {
		return *r.Caller.CustomerID, true
	}
	return 0, false
}
