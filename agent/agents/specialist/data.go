package specialist

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

// dataAgent owns every customer/ticket read and the customer mutation.
// It delegates to the tool registry and never lets a business failure
// escape as an error.
type dataAgent struct {
	tools contractx.ToolRegistry
}

func (a *dataAgent) Name() string {
	return "CustomerDataAgent"
}

func (a *dataAgent) Handle(ctx context.Context, task contractx.Task) contractx.TaskResult {
	switch task.Action {
	case contractx.ActionGetCustomer:
		customer, err := a.tools.GetCustomer(ctx, task.Args.CustomerID)
		if err != nil {
			return contractx.Failure(task.Action, err)
		}
		return contractx.TaskResult{Action: task.Action, OK: true, Customer: customer}

	case contractx.ActionListCustomers:
		customers, err := a.tools.ListCustomers(ctx, contractx.ListFilter{
			Status: task.Args.Status,
			Limit:  task.Args.Limit,
		})
		if err != nil {
			return contractx.Failure(task.Action, err)
		}
		return contractx.TaskResult{Action: task.Action, OK: true, Customers: customers}

	case contractx.ActionUpdateCustomer:
		customer, err := a.tools.UpdateCustomer(ctx, task.Args.CustomerID, task.Args.Patch)
		if err != nil {
			return contractx.Failure(task.Action, err)
		}
		return contractx.TaskResult{Action: task.Action, OK: true, Customer: customer}

	case contractx.ActionGetCustomerHistory:
		tickets, err := a.tools.GetCustomerHistory(ctx, task.Args.CustomerID)
		if err != nil {
			return contractx.Failure(task.Action, err)
		}
		return contractx.TaskResult{Action: task.Action, OK: true, Tickets: tickets}

	case contractx.ActionActiveOpenTicketReport:
		return a.activeOpenTicketReport(ctx, task)

	default:
		return contractx.Failure(task.Action,
			fmt.Errorf("%w: unknown data action %q", contractx.ErrValidation, task.Action))
	}
}

// activeOpenTicketReport is the composite query: it lists active
// customers, pulls the open-ticket aggregation, and synthesizes the
// intersection into one combined result.
func (a *dataAgent) activeOpenTicketReport(ctx context.Context, task contractx.Task) contractx.TaskResult {
	active, err := a.tools.ListCustomers(ctx, contractx.ListFilter{
		Status: storex.CustomerActive,
		Limit:  100,
	})
	if err != nil {
		return contractx.Failure(task.Action, err)
	}

	report, err := a.tools.GetCustomersWithOpenTickets(ctx)
	if err != nil {
		return contractx.Failure(task.Action, err)
	}

	activeIDs := make(map[int64]struct{}, len(active))
	for _, c := range active {
		activeIDs[c.ID] = struct{}{}
	}

	combined := make([]storex.OpenTicketReport, 0, len(report))
	for _, row := range report {
		if _, ok := activeIDs[row.ID]; ok {
			combined = append(combined, row)
		}
	}

	return contractx.TaskResult{Action: task.Action, OK: true, Report: combined}
}
