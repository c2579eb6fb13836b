package contract

import (
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

type AgentType string

const (
	AgentTypeOrchestrator AgentType = "orchestrator"
	AgentTypeData         AgentType = "data"
	AgentTypeSupport      AgentType = "support"
)

// IntentKind names the coordination pattern a classified query needs.
type IntentKind string

const (
	IntentSimpleLookup IntentKind = "simple_lookup"
	IntentNegotiation  IntentKind = "negotiation"
	IntentMultiStep    IntentKind = "multi_step"
	IntentEscalation   IntentKind = "escalation"
	IntentMultiIntent  IntentKind = "multi_intent"
	IntentUnknown      IntentKind = "unknown"
)

// Kinds lists every intent kind the classifier can produce. The
// orchestrator's pattern table must cover all of them.
func Kinds() []IntentKind {
	return []IntentKind{
		IntentSimpleLookup,
		IntentNegotiation,
		IntentMultiStep,
		IntentEscalation,
		IntentMultiIntent,
		IntentUnknown,
	}
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Exceeds reports whether u ranks strictly above other.
func (u Urgency) Exceeds(other Urgency) bool {
	return rank(u) > rank(other)
}

func rank(u Urgency) int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// CallerContext is the fixed set of optional fields a caller may attach
// to a query.
type CallerContext struct {
	CustomerID *int64 `json:"customer_id,omitempty"`
	Channel    string `json:"channel,omitempty"`
}

// Slots are the values extracted from a query independently of which
// rule matched.
type Slots struct {
	CustomerID *int64         `json:"customer_id,omitempty"`
	Email      string         `json:"email,omitempty"`
	Priority   storex.Priority `json:"priority,omitempty"`
	Urgency    Urgency        `json:"urgency,omitempty"`
}

// Intent is produced exactly once per run and never mutated afterwards.
type Intent struct {
	Kind  IntentKind `json:"kind"`
	Rule  string     `json:"rule,omitempty"`
	Slots Slots      `json:"slots"`
}

type Action string

const (
	// Data agent actions.
	ActionGetCustomer            Action = "get_customer"
	ActionListCustomers          Action = "list_customers"
	ActionUpdateCustomer         Action = "update_customer"
	ActionGetCustomerHistory     Action = "get_customer_history"
	ActionActiveOpenTicketReport Action = "active_open_ticket_report"

	// Support agent actions.
	ActionCreateTicket        Action = "create_ticket"
	ActionProvideSupport      Action = "provide_support"
	ActionAssessUrgency       Action = "assess_urgency"
	ActionHighPriorityTickets Action = "high_priority_tickets"
)

// TaskArgs is the enumerated argument set for every action. Fields not
// used by an action stay zero; there is deliberately no open key-value
// bag here so the negotiation contract stays statically checkable.
type TaskArgs struct {
	CustomerID  int64
	CustomerIDs []int64
	Status      storex.CustomerStatus
	Limit       int
	Patch       storex.CustomerPatch
	Issue       string
	Priority    storex.Priority
	Query       string
	Urgency     Urgency
	Customer    *storex.Customer
}

// Task is one unit of work addressed to a specialist agent.
type Task struct {
	Action Action
	Args   TaskArgs
}

// TaskResult carries either a typed payload or a typed error across the
// specialist boundary. Business failures never surface as Go errors
// past this type.
type TaskResult struct {
	Action Action `json:"action"`
	OK     bool   `json:"ok"`
	Text   string `json:"text,omitempty"`

	Customer  *storex.Customer          `json:"customer,omitempty"`
	Customers []storex.Customer         `json:"customers,omitempty"`
	Ticket    *storex.Ticket            `json:"ticket,omitempty"`
	Tickets   []storex.Ticket           `json:"tickets,omitempty"`
	Report    []storex.OpenTicketReport `json:"report,omitempty"`
	Urgency   Urgency                   `json:"urgency,omitempty"`

	Err *ErrorInfo `json:"error,omitempty"`
}

// Failure builds a failed result for the given action.
func Failure(action Action, err error) TaskResult {
	return TaskResult{
		Action: action,
		OK:     false,
		Err:    InfoFrom(action, err),
	}
}
