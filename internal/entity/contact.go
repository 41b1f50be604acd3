package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is created implicitly when a Lead carries inline contact data,
// deduplicated by email or phone.
type Contact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	ContactFields
	AssignedTo string    `json:"assigned_to"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewContact(name, assignedTo string, fields ContactFields) (*Contact, error) {
	contact := &Contact{
		ID:            uuid.New().String(),
		Name:          name,
		ContactFields: fields,
		AssignedTo:    assignedTo,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if !c.HasContactData() {
		return errors.New("at least one contact field is required")
	}
	return nil
}
