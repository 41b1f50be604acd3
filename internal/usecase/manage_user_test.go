package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vnnovate/crm-core/internal/entity"
)

func createInput(role entity.Role, managerID *string) CreateUserInput {
	return CreateUserInput{
		Name:      "New User",
		Username:  "new.user",
		Email:     "new.user@corp.io",
		Role:      string(role),
		ManagerID: managerID,
	}
}

func TestCreateUserRequiresCapability(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	for _, role := range []entity.Role{entity.RoleSalesHead, entity.RoleBDM, entity.RoleBDE} {
		_, err := uc.Create(ctx, activeUser("req", role), createInput(entity.RoleBDE, nil))
		var denied *AccessDeniedError
		require.ErrorAs(t, err, &denied, role)
	}
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUserWithValidManager(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	mgrID := "bdm-1"
	users.On("FindByID", ctx, "bdm-1").Return(activeUser("bdm-1", entity.RoleBDM), nil)
	users.On("Create", ctx, mock.Anything).Return(nil)

	user, err := uc.Create(ctx, activeUser("admin", entity.RoleAdmin), createInput(entity.RoleBDE, &mgrID))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBDE, user.Role)
	assert.Equal(t, "bdm-1", *user.ManagerID)
	assert.True(t, user.IsActive)
}

func TestCreateUserRejectsHierarchyViolation(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	mgrID := "bde-2"
	users.On("FindByID", ctx, "bde-2").Return(activeUser("bde-2", entity.RoleBDE), nil)

	_, err := uc.Create(ctx, activeUser("admin", entity.RoleAdmin), createInput(entity.RoleBDM, &mgrID))

	var violation *HierarchyViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, entity.RoleBDM, violation.Subordinate)
	assert.Equal(t, entity.RoleBDE, violation.Manager)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAdminWithManagerRejected(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	mgrID := "sh-1"
	_, err := uc.Create(ctx, activeUser("admin", entity.RoleAdmin), createInput(entity.RoleAdmin, &mgrID))

	var violation *HierarchyViolationError
	require.ErrorAs(t, err, &violation)
	// The manager is never even looked up.
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateUserInactiveManagerRejected(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	mgrID := "bdm-off"
	gone := activeUser("bdm-off", entity.RoleBDM)
	gone.IsActive = false
	users.On("FindByID", ctx, "bdm-off").Return(gone, nil)

	_, err := uc.Create(ctx, activeUser("admin", entity.RoleAdmin), createInput(entity.RoleBDE, &mgrID))

	var violation *HierarchyViolationError
	require.ErrorAs(t, err, &violation)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	users.On("Create", ctx, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	_, err := uc.Create(ctx, activeUser("admin", entity.RoleAdmin), createInput(entity.RoleBDE, nil))

	var failed *ValidationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "email", failed.Issues[0].Field)
}

func TestUpdateUserSelfManagerRejected(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	users.On("FindByID", ctx, "u-1").Return(activeUser("u-1", entity.RoleBDE), nil)

	self := "u-1"
	_, err := uc.Update(ctx, activeUser("admin", entity.RoleAdmin), "u-1", UpdateUserInput{ManagerID: &self})

	var violation *HierarchyViolationError
	require.ErrorAs(t, err, &violation)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUserRoleChangeRevalidatesManager(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	mgrID := "bdm-1"
	existing := activeUser("u-1", entity.RoleBDE)
	existing.ManagerID = &mgrID
	users.On("FindByID", ctx, "u-1").Return(existing, nil)
	users.On("FindByID", ctx, "bdm-1").Return(activeUser("bdm-1", entity.RoleBDM), nil)

	// Promoting a BDE to BDM under a BDM manager breaks the hierarchy.
	newRole := string(entity.RoleBDM)
	_, err := uc.Update(ctx, activeUser("admin", entity.RoleAdmin), "u-1", UpdateUserInput{Role: &newRole})

	var violation *HierarchyViolationError
	require.ErrorAs(t, err, &violation)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUserClearManager(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	mgrID := "bdm-1"
	existing := activeUser("u-1", entity.RoleBDE)
	existing.ManagerID = &mgrID
	users.On("FindByID", ctx, "u-1").Return(existing, nil)
	users.On("Update", ctx, mock.Anything).Return(nil)

	empty := ""
	user, err := uc.Update(ctx, activeUser("admin", entity.RoleAdmin), "u-1", UpdateUserInput{ManagerID: &empty})
	require.NoError(t, err)
	assert.Nil(t, user.ManagerID)
}

func TestUpdateUserNotFound(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	uc := NewManageUserUseCase(users, nil)

	users.On("FindByID", ctx, "ghost").Return(nil, nil)

	_, err := uc.Update(ctx, activeUser("admin", entity.RoleAdmin), "ghost", UpdateUserInput{})

	var missing *NotFoundError
	require.ErrorAs(t, err, &missing)
}
