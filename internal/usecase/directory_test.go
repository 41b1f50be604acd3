package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vnnovate/crm-core/internal/entity"
)

func activeUser(id string, role entity.Role) *entity.User {
	return &entity.User{ID: id, Name: "User " + id, Username: "user-" + id, Email: id + "@corp.io", Role: role, IsActive: true}
}

func TestRequireActive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	d := NewDirectory(repo, nil)

	repo.On("FindByID", ctx, "u-ok").Return(activeUser("u-ok", entity.RoleBDE), nil)
	inactive := activeUser("u-off", entity.RoleBDE)
	inactive.IsActive = false
	repo.On("FindByID", ctx, "u-off").Return(inactive, nil)
	repo.On("FindByID", ctx, "ghost").Return(nil, nil)

	user, err := d.RequireActive(ctx, "u-ok")
	assert.NoError(t, err)
	assert.Equal(t, "u-ok", user.ID)

	_, err = d.RequireActive(ctx, "")
	assert.Equal(t, ErrNotAuthenticated, err)

	_, err = d.RequireActive(ctx, "u-off")
	assert.Equal(t, ErrNotAuthenticated, err)

	_, err = d.RequireActive(ctx, "ghost")
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestResolveTeamDirectReportsOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	d := NewDirectory(repo, nil)

	repo.On("FindByManagerID", ctx, "mgr-1").Return([]*entity.User{
		activeUser("bde-1", entity.RoleBDE),
		activeUser("bde-2", entity.RoleBDE),
	}, nil)

	team, err := d.ResolveTeam(ctx, "mgr-1")
	assert.NoError(t, err)
	assert.Len(t, team, 2)
	assert.True(t, team["bde-1"])
	assert.True(t, team["bde-2"])
}

func TestResolveAssigneeByIDShortCircuits(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	d := NewDirectory(repo, nil)

	repo.On("FindByID", ctx, "u-1").Return(activeUser("u-1", entity.RoleBDE), nil)

	user, err := d.ResolveAssignee(ctx, "u-1")
	assert.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestResolveAssigneeFallsBackThroughChain(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	d := NewDirectory(repo, nil)

	repo.On("FindByID", ctx, "jane@corp.io").Return(nil, nil)
	repo.On("FindByEmail", ctx, "jane@corp.io").Return(activeUser("u-jane", entity.RoleBDE), nil)

	user, err := d.ResolveAssignee(ctx, "jane@corp.io")
	assert.NoError(t, err)
	assert.Equal(t, "u-jane", user.ID)
}

func TestResolveAssigneeAmbiguousNameRejected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	d := NewDirectory(repo, nil)

	repo.On("FindByID", ctx, "Jane Doe").Return(nil, nil)
	repo.On("FindByEmail", ctx, "Jane Doe").Return(nil, nil)
	repo.On("FindByUsername", ctx, "Jane Doe").Return(nil, nil)
	repo.On("FindByName", ctx, "Jane Doe").Return([]*entity.User{
		activeUser("u-1", entity.RoleBDE),
		activeUser("u-2", entity.RoleBDM),
	}, nil)

	_, err := d.ResolveAssignee(ctx, "Jane Doe")
	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "ASSIGNEE_AMBIGUOUS", err.(*DomainError).Code)
}

func TestResolveAssigneeNoMatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	d := NewDirectory(repo, nil)

	repo.On("FindByID", ctx, "ghost").Return(nil, nil)
	repo.On("FindByEmail", ctx, "ghost").Return(nil, nil)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, nil)
	repo.On("FindByName", ctx, "ghost").Return(nil, nil)

	_, err := d.ResolveAssignee(ctx, "ghost")
	assert.Error(t, err)
	assert.Equal(t, "ASSIGNEE_NOT_FOUND", err.(*DomainError).Code)
}

func TestResolveAssigneeInactiveRejected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	d := NewDirectory(repo, nil)

	gone := activeUser("u-gone", entity.RoleBDE)
	gone.IsActive = false
	repo.On("FindByID", ctx, "u-gone").Return(gone, nil)

	_, err := d.ResolveAssignee(ctx, "u-gone")
	assert.Error(t, err)
	assert.Equal(t, "ASSIGNEE_INACTIVE", err.(*DomainError).Code)
}
