package entity

import "time"

// Task and Activity hang off any of lead, client or project; only the
// relevant reference is set.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	LeadID     *string    `json:"lead_id,omitempty"`
	ClientID   *string    `json:"client_id,omitempty"`
	ProjectID  *string    `json:"project_id,omitempty"`
	AssignedTo string     `json:"assigned_to"`
	CreatedBy  string     `json:"created_by"`
	Status     string     `json:"status"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // call, meeting, note, stage_change
	Note      string    `json:"note"`
	LeadID    *string   `json:"lead_id,omitempty"`
	ClientID  *string   `json:"client_id,omitempty"`
	ProjectID *string   `json:"project_id,omitempty"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
