package specialist

import (
	"context"
	"fmt"
	"strings"

	classifierx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/classifier"
	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

// supportAgent owns ticket mutations and composes the human-readable
// response text.
type supportAgent struct {
	tools contractx.ToolRegistry
}

func (a *supportAgent) Name() string {
	return "SupportAgent"
}

func (a *supportAgent) Handle(ctx context.Context, task contractx.Task) contractx.TaskResult {
	switch task.Action {
	case contractx.ActionCreateTicket:
		return a.createTicket(ctx, task)

	case contractx.ActionProvideSupport:
		return contractx.TaskResult{
			Action: task.Action,
			OK:     true,
			Text:   supportText(task.Args.Query, task.Args.Customer),
		}

	case contractx.ActionAssessUrgency:
		urgency := classifierx.AssessUrgency(task.Args.Query)
		if task.Args.Urgency.Exceeds(urgency) {
			urgency = task.Args.Urgency
		}
		return contractx.TaskResult{Action: task.Action, OK: true, Urgency: urgency}

	case contractx.ActionHighPriorityTickets:
		tickets, err := a.tools.GetTicketsByPriority(ctx, storex.PriorityHigh, task.Args.CustomerIDs)
		if err != nil {
			return contractx.Failure(task.Action, err)
		}
		return contractx.TaskResult{Action: task.Action, OK: true, Tickets: tickets}

	default:
		return contractx.Failure(task.Action,
			fmt.Errorf("%w: unknown support action %q", contractx.ErrValidation, task.Action))
	}
}

// createTicket opens a ticket for the customer. High urgency overrides
// whatever priority the task asked for: the ticket is forced to high
// and the response text carries an explicit escalation acknowledgment.
func (a *supportAgent) createTicket(ctx context.Context, task contractx.Task) contractx.TaskResult {
	priority := task.Args.Priority
	if priority == "" {
		priority = storex.PriorityMedium
	}

	escalated := task.Args.Urgency == contractx.UrgencyHigh
	if escalated {
		priority = storex.PriorityHigh
	}

	ticket, err := a.tools.CreateTicket(ctx, task.Args.CustomerID, task.Args.Issue, priority)
	if err != nil {
		return contractx.Failure(task.Action, err)
	}

	text := fmt.Sprintf("Ticket #%d created with %s priority.", ticket.ID, ticket.Priority)
	if escalated {
		text = fmt.Sprintf(
			"This issue has been escalated. Ticket #%d created with high priority and flagged for immediate attention.",
			ticket.ID,
		)
	}

	return contractx.TaskResult{
		Action: task.Action,
		OK:     true,
		Ticket: ticket,
		Text:   text,
	}
}

// supportText mirrors the canned support responses, personalized with
// the resolved customer when one is in context.
func supportText(query string, customer *storex.Customer) string {
	name := "Customer"
	if customer != nil && customer.Name != "" {
		name = customer.Name
	}

	lowered := strings.ToLower(query)
	switch {
	case strings.Contains(lowered, "upgrade"):
		return fmt.Sprintf("Hello %s! I'd be happy to help you upgrade your account. Let me check your current status and available options.", name)
	case strings.Contains(lowered, "cancel"):
		return fmt.Sprintf("Hello %s, I understand you're considering cancellation. Before we proceed, I'd like to understand your concerns. What's prompting this decision?", name)
	case strings.Contains(lowered, "refund"), strings.Contains(lowered, "charge"):
		return fmt.Sprintf("Hello %s, I apologize for any billing issues. I'll escalate this to our billing team immediately. Can you provide more details?", name)
	case strings.Contains(lowered, "help"), strings.Contains(lowered, "support"):
		return fmt.Sprintf("Hello %s! I'm here to help with your inquiry. What can I assist you with today?", name)
	default:
		return fmt.Sprintf("Hello %s! Thank you for reaching out. I'm reviewing your request and will provide assistance shortly.", name)
	}
}
