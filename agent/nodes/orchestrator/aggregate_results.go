package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	statex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/state"
)

// AggregateResults folds every TaskResult into response text plus the
// structured errors list. Failures are explained, never dropped.
func AggregateResults(in *GraphState) (*GraphState, error) {
	if in == nil || in.Run == nil {
		return nil, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}

	if err := in.Run.Advance(statex.PhaseAggregating); err != nil {
		return nil, err
	}

	for _, res := range in.Results {
		if !res.OK && res.Err != nil {
			in.Errors = append(in.Errors, *res.Err)
		}
	}

	switch in.Intent.Kind {
	case contractx.IntentSimpleLookup:
		in.Text = simpleLookupText(in.Results)
	case contractx.IntentMultiStep:
		in.Text = openTicketReportText(in.Results)
	case contractx.IntentEscalation:
		in.Text = escalationText(in)
	case contractx.IntentMultiIntent:
		in.Text = multiIntentText(in.Results)
	default:
		in.Text = supportReplyText(in.Results)
	}

	detail := fmt.Sprintf("results=%d errors=%d", len(in.Results), len(in.Errors))
	if partialFailure(in) {
		detail += " partial_failure"
	}
	in.Log.OK(actorOrchestrator, "aggregate", detail)

	return in, nil
}

// partialFailure reports a multi-intent run where at least one, but not
// all, sub-tasks failed.
func partialFailure(in *GraphState) bool {
	if in.Intent.Kind != contractx.IntentMultiIntent {
		return false
	}
	return len(in.Errors) > 0 && len(in.Errors) < len(in.Results)
}

func simpleLookupText(results []contractx.TaskResult) string {
	for _, res := range results {
		if res.OK && res.Customer != nil {
			c := res.Customer
			var b strings.Builder
			b.WriteString("Customer Information:\n")
			fmt.Fprintf(&b, "  ID: %d\n", c.ID)
			fmt.Fprintf(&b, "  Name: %s\n", c.Name)
			fmt.Fprintf(&b, "  Email: %s\n", c.Email)
			fmt.Fprintf(&b, "  Phone: %s\n", c.Phone)
			fmt.Fprintf(&b, "  Status: %s\n", c.Status)
			return b.String()
		}
	}
	return failureText(results)
}

func openTicketReportText(results []contractx.TaskResult) string {
	for _, res := range results {
		if !res.OK || res.Action != contractx.ActionActiveOpenTicketReport {
			continue
		}
		var b strings.Builder
		b.WriteString("Active Customers with Open Tickets:\n\n")
		fmt.Fprintf(&b, "Total: %d customers\n\n", len(res.Report))
		for _, row := range res.Report {
			fmt.Fprintf(&b, "  - %s (ID: %d)\n", row.Name, row.ID)
			fmt.Fprintf(&b, "    Email: %s\n", row.Email)
			fmt.Fprintf(&b, "    Open Tickets: %d\n\n", row.OpenTicketCount)
		}
		return b.String()
	}
	return failureText(results)
}

func escalationText(in *GraphState) string {
	var b strings.Builder
	b.WriteString("ESCALATED TICKET - Priority Support\n\n")

	if c := in.Run.Customer(); c != nil {
		fmt.Fprintf(&b, "Customer: %s (ID: %d)\n", c.Name, c.ID)
		fmt.Fprintf(&b, "Contact: %s\n\n", c.Email)
	}

	fmt.Fprintf(&b, "Urgency: %s\n\n", strings.ToUpper(string(in.Run.Urgency())))

	for _, res := range in.Results {
		if res.Action == contractx.ActionCreateTicket {
			if res.OK {
				b.WriteString(res.Text)
				b.WriteString("\n")
			} else {
				fmt.Fprintf(&b, "Ticket could not be opened: %s\n", res.Err.Message)
			}
		}
	}

	b.WriteString("This issue has been flagged for immediate attention.\n")
	b.WriteString("Expected response time: within 1 hour\n")
	return b.String()
}

func multiIntentText(results []contractx.TaskResult) string {
	var b strings.Builder
	b.WriteString("Multi-Action Request Processed:\n\n")

	for _, res := range results {
		if !res.OK {
			fmt.Fprintf(&b, "x %s failed: %s\n\n", res.Action, res.Err.Message)
			continue
		}
		switch res.Action {
		case contractx.ActionUpdateCustomer:
			b.WriteString("+ Customer record updated successfully\n\n")
		case contractx.ActionCreateTicket:
			fmt.Fprintf(&b, "+ %s\n\n", res.Text)
		case contractx.ActionGetCustomerHistory:
			fmt.Fprintf(&b, "+ Ticket History Retrieved:\n  Total Tickets: %d\n", len(res.Tickets))
			for i, ticket := range res.Tickets {
				if i == 5 {
					break
				}
				fmt.Fprintf(&b, "  - Ticket #%d: %s [%s]\n", ticket.ID, ticket.Issue, ticket.Status)
			}
			b.WriteString("\n")
		case contractx.ActionGetCustomer:
			if res.Customer != nil {
				fmt.Fprintf(&b, "+ Customer: %s (%s, %s)\n\n", res.Customer.Name, res.Customer.Email, res.Customer.Status)
			}
		}
	}
	return b.String()
}

func supportReplyText(results []contractx.TaskResult) string {
	for _, res := range results {
		if res.OK && res.Action == contractx.ActionProvideSupport {
			return res.Text
		}
	}
	return failureText(results)
}

func failureText(results []contractx.TaskResult) string {
	for _, res := range results {
		if !res.OK && res.Err != nil {
			return fmt.Sprintf("We could not complete your request: %s.", res.Err.Message)
		}
	}
	return "We could not complete your request."
}
