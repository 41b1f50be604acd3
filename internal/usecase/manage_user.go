package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

// ManageUserUseCase creates and updates users, enforcing the role hierarchy
// on every manager assignment. Violations reject the change; they are never
// silently corrected.
type ManageUserUseCase struct {
	Users UserRepositoryInterface
	Log   *logrus.Logger
}

func NewManageUserUseCase(users UserRepositoryInterface, log *logrus.Logger) *ManageUserUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ManageUserUseCase{Users: users, Log: log}
}

func (uc *ManageUserUseCase) Create(ctx context.Context, requester *entity.User, input CreateUserInput) (*entity.User, error) {
	if requester == nil || !requester.IsActive {
		return nil, ErrNotAuthenticated
	}
	if !requester.Role.Capabilities().CanCreateUsers {
		return nil, &AccessDeniedError{UserID: requester.ID, Action: "create", Resource: "user"}
	}

	if issues := ValidateCreateUserInput(input); len(issues) > 0 {
		return nil, &ValidationFailedError{Issues: issues}
	}

	role := entity.Role(input.Role)
	if err := uc.checkManagerAssignment(ctx, "", role, input.ManagerID); err != nil {
		return nil, err
	}

	user, err := entity.NewUser(input.Name, input.Username, input.Email, role, input.ManagerID)
	if err != nil {
		return nil, &ValidationFailedError{Issues: []ValidationError{{Field: "user", Message: err.Error()}}}
	}

	if err := uc.Users.Create(ctx, user); err != nil {
		if err == entity.ErrEmailAlreadyExists {
			return nil, &ValidationFailedError{Issues: []ValidationError{{Field: "email", Message: "already exists"}}}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create user: " + err.Error()}
	}

	uc.Log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user created")
	return user, nil
}

func (uc *ManageUserUseCase) Update(ctx context.Context, requester *entity.User, userID string, input UpdateUserInput) (*entity.User, error) {
	if requester == nil || !requester.IsActive {
		return nil, ErrNotAuthenticated
	}
	if !requester.Role.Capabilities().CanCreateUsers {
		return nil, &AccessDeniedError{UserID: requester.ID, Action: "update", Resource: "user"}
	}

	user, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "user", ID: userID}
	}

	role := user.Role
	if input.Role != nil {
		role = entity.Role(*input.Role)
		if !role.Valid() {
			return nil, &ValidationFailedError{Issues: []ValidationError{{Field: "role", Message: "is invalid"}}}
		}
	}

	managerID := user.ManagerID
	if input.ManagerID != nil {
		if *input.ManagerID == "" {
			managerID = nil
		} else {
			managerID = input.ManagerID
		}
	}

	// Role and manager are validated together: changing either can break
	// the hierarchy.
	if err := uc.checkManagerAssignment(ctx, user.ID, role, managerID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	user.Role = role
	user.ManagerID = managerID
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := user.Validate(); err != nil {
		return nil, &ValidationFailedError{Issues: []ValidationError{{Field: "user", Message: err.Error()}}}
	}

	if err := uc.Users.Update(ctx, user); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update user: " + err.Error()}
	}

	uc.Log.WithField("user_id", user.ID).Info("user updated")
	return user, nil
}

func (uc *ManageUserUseCase) checkManagerAssignment(ctx context.Context, userID string, role entity.Role, managerID *string) error {
	if managerID == nil {
		return nil
	}
	if role == entity.RoleAdmin {
		return &HierarchyViolationError{Subordinate: role, Reason: "admin must not have a manager"}
	}
	if userID != "" && *managerID == userID {
		return &HierarchyViolationError{Subordinate: role, Reason: "user may not be their own manager"}
	}

	manager, err := uc.Users.FindByID(ctx, *managerID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if manager == nil {
		return &NotFoundError{Entity: "manager", ID: *managerID}
	}
	if !manager.IsActive {
		return &HierarchyViolationError{Subordinate: role, Manager: manager.Role, Reason: "manager is inactive"}
	}
	if !entity.ValidateHierarchy(role, manager.Role) {
		return &HierarchyViolationError{Subordinate: role, Manager: manager.Role}
	}
	return nil
}
