package store

import (
	"time"

	"github.com/uptrace/bun"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerDisabled CustomerStatus = "disabled"
)

func (s CustomerStatus) Valid() bool {
	return s == CustomerActive || s == CustomerDisabled
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        int64          `bun:"id,pk,autoincrement" json:"id"`
	Name      string         `bun:"name,notnull" json:"name"`
	Email     string         `bun:"email,notnull" json:"email"`
	Phone     string         `bun:"phone" json:"phone,omitempty"`
	Status    CustomerStatus `bun:"status,notnull" json:"status"`
	CreatedAt time.Time      `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,notnull" json:"updated_at"`
}

type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`

	ID         int64        `bun:"id,pk,autoincrement" json:"id"`
	CustomerID int64        `bun:"customer_id,notnull" json:"customer_id"`
	Issue      string       `bun:"issue,notnull" json:"issue"`
	Status     TicketStatus `bun:"status,notnull" json:"status"`
	Priority   Priority     `bun:"priority,notnull" json:"priority"`
	CreatedAt  time.Time    `bun:"created_at,notnull" json:"created_at"`

	Customer *Customer `bun:"rel:belongs-to,join:customer_id=id" json:"-"`

	// CustomerName is filled by joined queries only.
	CustomerName string `bun:"customer_name,scanonly" json:"customer_name,omitempty"`
}

// CustomerPatch is a partial customer update. Nil fields are left
// untouched; the whole patch applies or nothing does.
type CustomerPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *CustomerStatus
}

func (p CustomerPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Status == nil
}

// OpenTicketReport is one row of the active-customers-with-open-tickets
// aggregation.
type OpenTicketReport struct {
	ID              int64          `bun:"id" json:"id"`
	Name            string         `bun:"name" json:"name"`
	Email           string         `bun:"email" json:"email"`
	Status          CustomerStatus `bun:"status" json:"status"`
	OpenTicketCount int            `bun:"open_ticket_count" json:"open_ticket_count"`
}
