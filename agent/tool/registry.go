// Package tool implements the validated operation boundary between
// specialist agents and the backing store. Every operation checks
// argument shape and range before touching the database; mutating
// operations apply all supplied fields or none.
package tool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type Registry struct {
	db  bun.IDB
	now func() time.Time
}

var _ contractx.ToolRegistry = (*Registry)(nil)

func New(db bun.IDB) *Registry {
	return &Registry{
		db:  db,
		now: time.Now,
	}
}

// NewWithClock pins the timestamp source, for tests.
func NewWithClock(db bun.IDB, now func() time.Time) *Registry {
	r := New(db)
	if now != nil {
		r.now = now
	}
	return r
}

func (r *Registry) GetCustomer(ctx context.Context, id int64) (*storex.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive, got %d", contractx.ErrValidation, id)
	}

	customer := new(storex.Customer)
	err := r.db.NewSelect().Model(customer).Where("c.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer id=%d", contractx.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get customer: %v", contractx.ErrUpstream, err)
	}
	return customer, nil
}

func (r *Registry) ListCustomers(ctx context.Context, filter contractx.ListFilter) ([]storex.Customer, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status filter %q", contractx.ErrValidation, filter.Status)
	}
	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit < 0 || limit > maxListLimit {
		return nil, fmt.Errorf("%w: limit must be in 1..%d, got %d", contractx.ErrValidation, maxListLimit, filter.Limit)
	}

	var customers []storex.Customer
	q := r.db.NewSelect().Model(&customers).Order("c.id ASC").Limit(limit)
	if filter.Status != "" {
		q = q.Where("c.status = ?", filter.Status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: list customers: %v", contractx.ErrUpstream, err)
	}
	return customers, nil
}

func (r *Registry) UpdateCustomer(ctx context.Context, id int64, patch storex.CustomerPatch) (*storex.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive, got %d", contractx.ErrValidation, id)
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated := new(storex.Customer)
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*storex.Customer)(nil)).Where("c.id = ?", id).Exists(ctx)
		if err != nil {
			return fmt.Errorf("%w: check customer: %v", contractx.ErrUpstream, err)
		}
		if !exists {
			return fmt.Errorf("%w: customer id=%d", contractx.ErrNotFound, id)
		}

		q := tx.NewUpdate().Model((*storex.Customer)(nil)).Where("id = ?", id)
		if patch.Name != nil {
			q = q.Set("name = ?", *patch.Name)
		}
		if patch.Email != nil {
			q = q.Set("email = ?", *patch.Email)
		}
		if patch.Phone != nil {
			q = q.Set("phone = ?", *patch.Phone)
		}
		if patch.Status != nil {
			q = q.Set("status = ?", *patch.Status)
		}
		q = q.Set("updated_at = ?", r.now().UTC())

		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("%w: update customer: %v", contractx.ErrUpstream, err)
		}

		if err := tx.NewSelect().Model(updated).Where("c.id = ?", id).Scan(ctx); err != nil {
			return fmt.Errorf("%w: reload customer: %v", contractx.ErrUpstream, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Registry) CreateTicket(ctx context.Context, customerID int64, issue string, priority storex.Priority) (*storex.Ticket, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive, got %d", contractx.ErrValidation, customerID)
	}
	if issue == "" {
		return nil, fmt.Errorf("%w: ticket issue is required", contractx.ErrValidation)
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", contractx.ErrValidation, priority)
	}

	ticket := &storex.Ticket{
		CustomerID: customerID,
		Issue:      issue,
		Status:     storex.TicketOpen,
		Priority:   priority,
		CreatedAt:  r.now().UTC(),
	}
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*storex.Customer)(nil)).Where("c.id = ?", customerID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("%w: check customer: %v", contractx.ErrUpstream, err)
		}
		if !exists {
			return fmt.Errorf("%w: customer id=%d", contractx.ErrNotFound, customerID)
		}
		if _, err := tx.NewInsert().Model(ticket).Exec(ctx); err != nil {
			return fmt.Errorf("%w: insert ticket: %v", contractx.ErrUpstream, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *Registry) GetCustomerHistory(ctx context.Context, customerID int64) ([]storex.Ticket, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive, got %d", contractx.ErrValidation, customerID)
	}

	exists, err := r.db.NewSelect().Model((*storex.Customer)(nil)).Where("c.id = ?", customerID).Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: check customer: %v", contractx.ErrUpstream, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: customer id=%d", contractx.ErrNotFound, customerID)
	}

	var tickets []storex.Ticket
	err = r.db.NewSelect().Model(&tickets).
		Where("t.customer_id = ?", customerID).
		Order("t.created_at DESC", "t.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: customer history: %v", contractx.ErrUpstream, err)
	}
	return tickets, nil
}

func (r *Registry) GetTicketsByPriority(ctx context.Context, priority storex.Priority, customerIDs []int64) ([]storex.Ticket, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", contractx.ErrValidation, priority)
	}
	for _, id := range customerIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: customer id must be positive, got %d", contractx.ErrValidation, id)
		}
	}

	var tickets []storex.Ticket
	q := r.db.NewSelect().Model(&tickets).
		ColumnExpr("t.*").
		ColumnExpr("c.name AS customer_name").
		Join("JOIN customers AS c ON c.id = t.customer_id").
		Where("t.priority = ?", priority).
		Order("t.created_at DESC", "t.id DESC")
	if len(customerIDs) > 0 {
		q = q.Where("t.customer_id IN (?)", bun.In(customerIDs))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: tickets by priority: %v", contractx.ErrUpstream, err)
	}
	return tickets, nil
}

func (r *Registry) GetCustomersWithOpenTickets(ctx context.Context) ([]storex.OpenTicketReport, error) {
	var report []storex.OpenTicketReport
	err := r.db.NewSelect().
		TableExpr("customers AS c").
		ColumnExpr("c.id, c.name, c.email, c.status").
		ColumnExpr("COUNT(t.id) AS open_ticket_count").
		Join("JOIN tickets AS t ON t.customer_id = c.id").
		Where("c.status = ?", storex.CustomerActive).
		Where("t.status = ?", storex.TicketOpen).
		GroupExpr("c.id, c.name, c.email, c.status").
		OrderExpr("open_ticket_count DESC, c.id ASC").
		Scan(ctx, &report)
	if err != nil {
		return nil, fmt.Errorf("%w: customers with open tickets: %v", contractx.ErrUpstream, err)
	}
	return report, nil
}
