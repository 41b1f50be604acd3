package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/vnnovate/crm-core/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateLeadImportItem(item LeadImportItem) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(item.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(item.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(item.AssignedTo) == "" {
		errors = append(errors, ValidationError{"assignedTo", "is required"})
	}

	if item.Email != "" {
		if _, err := mail.ParseAddress(item.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if item.Phone != "" && !isValidPhoneNumber(item.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if len(item.Stage) > 50 {
		errors = append(errors, ValidationError{"stage", "must not exceed 50 characters"})
	}

	return errors
}

func ValidateCreateUserInput(input CreateUserInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Username) == "" {
		errors = append(errors, ValidationError{"username", "is required"})
	} else if strings.Contains(input.Username, " ") {
		errors = append(errors, ValidationError{"username", "must not contain spaces"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Role == "" {
		errors = append(errors, ValidationError{"role", "is required"})
	} else if !entity.Role(input.Role).Valid() {
		errors = append(errors, ValidationError{"role", "must be one of Admin, SalesHead, BDM, BDE"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 7 && len(cleaned) <= 15
}
