package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is the converted form of a won Lead. At most one Client per Lead.
type Client struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	LeadID      *string   `json:"lead_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewClient(companyName string, leadID *string) (*Client, error) {
	client := &Client{
		ID:          uuid.New().String(),
		CompanyName: companyName,
		LeadID:      leadID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	return client, nil
}

func (c *Client) Validate() error {
	if strings.TrimSpace(c.CompanyName) == "" {
		return errors.New("company name is required")
	}
	return nil
}
