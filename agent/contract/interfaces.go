package contract

import (
	"context"

	auditx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/audit"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

// Specialist is the polymorphic capability both agent variants expose.
// Handle folds every business-level failure into the TaskResult; it
// never returns an error and never panics across this boundary.
type Specialist interface {
	Name() string
	Handle(ctx context.Context, task Task) TaskResult
}

type Registry interface {
	Data() Specialist
	Support() Specialist
}

// ToolRegistry is the validated operation boundary between specialist
// agents and the backing store. Every operation validates argument
// shape before touching the store; mutations are all-or-nothing.
type ToolRegistry interface {
	GetCustomer(ctx context.Context, id int64) (*storex.Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) ([]storex.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, patch storex.CustomerPatch) (*storex.Customer, error)
	CreateTicket(ctx context.Context, customerID int64, issue string, priority storex.Priority) (*storex.Ticket, error)
	GetCustomerHistory(ctx context.Context, customerID int64) ([]storex.Ticket, error)
	GetTicketsByPriority(ctx context.Context, priority storex.Priority, customerIDs []int64) ([]storex.Ticket, error)
	GetCustomersWithOpenTickets(ctx context.Context) ([]storex.OpenTicketReport, error)
}

// ListFilter narrows list_customers. Zero values mean "no filter" and
// the default limit.
type ListFilter struct {
	Status storex.CustomerStatus
	Limit  int
}

// EscalationNotifier publishes escalated tickets to an external
// channel. Publishing is best-effort: a failed publish never fails the
// run.
type EscalationNotifier interface {
	PublishEscalation(ctx context.Context, e Escalation) error
}

type Escalation struct {
	TicketID   int64           `json:"ticket_id"`
	CustomerID int64           `json:"customer_id"`
	Priority   storex.Priority `json:"priority"`
	Reason     string          `json:"reason"`
}

// Response is the caller-facing result of one orchestration run. Every
// query yields one, degraded or not.
type Response struct {
	Success     bool          `json:"success"`
	Text        string        `json:"text"`
	PatternUsed IntentKind    `json:"pattern_used"`
	Escalated   bool          `json:"escalated,omitempty"`
	Trace       []auditx.Entry `json:"trace"`
	Errors      []ErrorInfo   `json:"errors,omitempty"`
}
