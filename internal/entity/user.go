package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ManagerID *string   `json:"manager_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewUser(name, username, email string, role Role, managerID *string) (*User, error) {
	user := &User{
		ID:        uuid.New().String(),
		Name:      name,
		Username:  username,
		Email:     email,
		Role:      role,
		ManagerID: managerID,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if !u.Role.Valid() {
		return errors.New("role is invalid")
	}
	if u.Role == RoleAdmin && u.ManagerID != nil {
		return errors.New("admin must not have a manager")
	}
	return nil
}
