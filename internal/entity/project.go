package entity

import "time"

type Project struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Milestone struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
}

type Payment struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"` // PENDING, PAID, OVERDUE
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	ChangeRequestPending  = "pending"
	ChangeRequestApproved = "approved"
	ChangeRequestRejected = "rejected"
)

type ChangeRequest struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Status    string    `json:"status"`
	Hours     float64   `json:"hours"`
	CostCents int64     `json:"cost_cents"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
