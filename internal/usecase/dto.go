package usecase

import "github.com/vnnovate/crm-core/internal/entity"

// LeadImportItem is one raw record of a bulk import. AssignedTo accepts a
// user id, email, username or unique name; resolution order is fixed.
type LeadImportItem struct {
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to"`
	Stage      string `json:"stage,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Skype      string `json:"skype,omitempty"`
	Telegram   string `json:"telegram,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
}

type ImportItemResult struct {
	Index     int               `json:"index"`
	Created   bool              `json:"created"`
	LeadID    string            `json:"lead_id,omitempty"`
	ContactID string            `json:"contact_id,omitempty"`
	Issues    []ValidationError `json:"issues,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type ImportReport struct {
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
	Total   int                `json:"total"`
	Results []ImportItemResult `json:"results"`
}

type ImportSummary struct {
	RequesterID    string `json:"requester_id"`
	RequesterEmail string `json:"requester_email"`
	Created        int    `json:"created"`
	Failed         int    `json:"failed"`
	Total          int    `json:"total"`
}

// LeadView is one lead as a given requester is allowed to see it. Lead is a
// copy; masked fields are already redacted in it.
type LeadView struct {
	Lead         entity.Lead `json:"lead"`
	Masked       bool        `json:"masked"`
	MaskedFields []string    `json:"masked_fields,omitempty"`
	CanEdit      bool        `json:"can_edit"`
}

// UpdateLeadInput uses nil for "leave unchanged".
type UpdateLeadInput struct {
	Name     *string `json:"name,omitempty"`
	Stage    *string `json:"stage,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Skype    *string `json:"skype,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
}

type CreateUserInput struct {
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// UpdateUserInput uses nil for "leave unchanged". An explicit empty
// ManagerID clears the manager link.
type UpdateUserInput struct {
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	ManagerID *string `json:"manager_id,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type RootType string

const (
	RootClient  RootType = "client"
	RootLead    RootType = "lead"
	RootProject RootType = "project"
	RootUser    RootType = "user"
)

type DeleteOptions struct {
	// ReassignToUserID is required for user deletion: owned records are
	// reassigned to this user, never deleted.
	ReassignToUserID string
}

type CascadeStep struct {
	Name     string `json:"name"`
	Affected int64  `json:"affected"`
}

type DeletionReport struct {
	Root   RootType      `json:"root"`
	RootID string        `json:"root_id"`
	Steps  []CascadeStep `json:"steps"`
}
