package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

// PatternSimpleLookup: one data agent call, response is the formatted
// result.
func PatternSimpleLookup(ctx context.Context, in *GraphState, deps Deps) {
	id, ok := in.Run.CustomerID(in.Intent.Slots.CustomerID)
	if !ok {
		appendFailure(in, contractx.ActionGetCustomer,
			fmt.Errorf("%w: customer id not found in query or context", contractx.ErrValidation))
		return
	}

	callSpecialist(ctx, in, deps, deps.Registry.Data(), contractx.Task{
		Action: contractx.ActionGetCustomer,
		Args:   contractx.TaskArgs{CustomerID: id},
	})
}

// PatternNegotiation: the data agent resolves the customer into the run
// context first, then the support agent answers with that context.
func PatternNegotiation(ctx context.Context, in *GraphState, deps Deps) {
	resolveCustomer(ctx, in, deps)

	callSpecialist(ctx, in, deps, deps.Registry.Support(), contractx.Task{
		Action: contractx.ActionProvideSupport,
		Args: contractx.TaskArgs{
			Query:    in.Query,
			Customer: in.Run.Customer(),
		},
	})
}

// PatternMultiStep: one composite data agent call that fans out to
// several tool registry operations internally.
func PatternMultiStep(ctx context.Context, in *GraphState, deps Deps) {
	callSpecialist(ctx, in, deps, deps.Registry.Data(), contractx.Task{
		Action: contractx.ActionActiveOpenTicketReport,
	})
}

// PatternEscalation: negotiation plus urgency assessment, a forced
// high-priority ticket, and the escalation flag on the response.
func PatternEscalation(ctx context.Context, in *GraphState, deps Deps) {
	in.Escalated = true

	urgencyRes := callSpecialist(ctx, in, deps, deps.Registry.Support(), contractx.Task{
		Action: contractx.ActionAssessUrgency,
		Args: contractx.TaskArgs{
			Query:   in.Query,
			Urgency: in.Intent.Slots.Urgency,
		},
	})
	if urgencyRes.OK {
		in.Run.RaiseUrgency(urgencyRes.Urgency)
	}

	resolveCustomer(ctx, in, deps)

	id, ok := in.Run.CustomerID(in.Intent.Slots.CustomerID)
	if !ok {
		appendFailure(in, contractx.ActionCreateTicket,
			fmt.Errorf("%w: customer id required to open an escalated ticket", contractx.ErrValidation))
		return
	}

	ticketRes := callSpecialist(ctx, in, deps, deps.Registry.Support(), contractx.Task{
		Action: contractx.ActionCreateTicket,
		Args: contractx.TaskArgs{
			CustomerID: id,
			Issue:      in.Query,
			Priority:   in.Intent.Slots.Priority,
			Urgency:    contractx.UrgencyHigh,
		},
	})

	notifyEscalation(ctx, in, deps, ticketRes)
}

// PatternMultiIntent: the query decomposes into independent sub-tasks;
// mutations run before reads so reads observe same-run writes. Each
// result is collected on its own: one failure never discards another
// sub-task's success.
func PatternMultiIntent(ctx context.Context, in *GraphState, deps Deps) {
	tasks := decompose(in)
	if len(tasks) == 0 {
		PatternUnknown(ctx, in, deps)
		return
	}

	for _, task := range tasks {
		spec := deps.Registry.Data()
		if task.Action == contractx.ActionCreateTicket {
			spec = deps.Registry.Support()
		}
		callSpecialist(ctx, in, deps, spec, task)
	}
}

// PatternUnknown is the default path: an unclassified query still gets
// a complete response through the support agent.
func PatternUnknown(ctx context.Context, in *GraphState, deps Deps) {
	callSpecialist(ctx, in, deps, deps.Registry.Support(), contractx.Task{
		Action: contractx.ActionProvideSupport,
		Args:   contractx.TaskArgs{Query: in.Query},
	})
}

// resolveCustomer issues the single data agent lookup that enriches the
// run context. Lookup failure degrades to an unpersonalized response;
// it does not stop the pattern.
func resolveCustomer(ctx context.Context, in *GraphState, deps Deps) {
	if in.Run.Customer() != nil {
		return
	}
	id, ok := in.Run.CustomerID(in.Intent.Slots.CustomerID)
	if !ok {
		return
	}

	res := callSpecialist(ctx, in, deps, deps.Registry.Data(), contractx.Task{
		Action: contractx.ActionGetCustomer,
		Args:   contractx.TaskArgs{CustomerID: id},
	})
	if res.OK && res.Customer != nil {
		if err := in.Run.AttachCustomer(res.Customer); err != nil {
			in.Log.Error(actorOrchestrator, "attach_customer", err.Error())
		}
	}
}

func notifyEscalation(ctx context.Context, in *GraphState, deps Deps, ticketRes contractx.TaskResult) {
	if deps.Notifier == nil || !ticketRes.OK || ticketRes.Ticket == nil {
		return
	}

	err := deps.Notifier.PublishEscalation(ctx, contractx.Escalation{
		TicketID:   ticketRes.Ticket.ID,
		CustomerID: ticketRes.Ticket.CustomerID,
		Priority:   ticketRes.Ticket.Priority,
		Reason:     in.Query,
	})
	if err != nil {
		// Notification is best-effort; the run still completes.
		in.Log.Error(actorOrchestrator, "notify_escalation", err.Error())
		return
	}
	in.Log.OK(actorOrchestrator, "notify_escalation",
		fmt.Sprintf("ticket #%d", ticketRes.Ticket.ID))
}

// decompose splits a multi-intent query into its sub-tasks, mutations
// first. Every sub-task resolves its target independently.
func decompose(in *GraphState) []contractx.Task {
	lowered := strings.ToLower(in.Query)
	id, hasID := in.Run.CustomerID(in.Intent.Slots.CustomerID)

	var mutations, reads []contractx.Task

	if strings.Contains(lowered, "update") && strings.Contains(lowered, "email") && in.Intent.Slots.Email != "" && hasID {
		email := in.Intent.Slots.Email
		mutations = append(mutations, contractx.Task{
			Action: contractx.ActionUpdateCustomer,
			Args: contractx.TaskArgs{
				CustomerID: id,
				Patch:      storex.CustomerPatch{Email: &email},
			},
		})
	}

	if strings.Contains(lowered, "create") && strings.Contains(lowered, "ticket") && hasID {
		priority := in.Intent.Slots.Priority
		mutations = append(mutations, contractx.Task{
			Action: contractx.ActionCreateTicket,
			Args: contractx.TaskArgs{
				CustomerID: id,
				Issue:      in.Query,
				Priority:   priority,
				Urgency:    in.Run.Urgency(),
			},
		})
	}

	if strings.Contains(lowered, "show") && (strings.Contains(lowered, "history") || strings.Contains(lowered, "tickets")) && hasID {
		reads = append(reads, contractx.Task{
			Action: contractx.ActionGetCustomerHistory,
			Args:   contractx.TaskArgs{CustomerID: id},
		})
	}

	if (strings.Contains(lowered, "get customer") || strings.Contains(lowered, "customer information")) && hasID {
		reads = append(reads, contractx.Task{
			Action: contractx.ActionGetCustomer,
			Args:   contractx.TaskArgs{CustomerID: id},
		})
	}

	return append(mutations, reads...)
}
