package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactFields are all optional; nil means the value was never captured,
// which masking must preserve.
type ContactFields struct {
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Skype    *string `json:"skype,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
}

// HasContactData reports whether any inline contact field is set, which is
// what triggers implicit Contact creation at intake time.
func (f ContactFields) HasContactData() bool {
	return f.Email != nil || f.Phone != nil || f.Skype != nil || f.Telegram != nil || f.LinkedIn != nil
}

const DefaultStage = "new"

type Lead struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	AssignedTo       string  `json:"assigned_to"`
	Stage            string  `json:"stage"`
	PrimaryContactID *string `json:"primary_contact_id,omitempty"`
	ContactFields
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(name, assignedTo, stage, createdBy string, fields ContactFields) (*Lead, error) {
	if stage == "" {
		stage = DefaultStage
	}
	lead := &Lead{
		ID:            uuid.New().String(),
		Name:          name,
		AssignedTo:    assignedTo,
		Stage:         stage,
		ContactFields: fields,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(l.AssignedTo) == "" {
		return errors.New("assigned_to is required")
	}
	return nil
}
