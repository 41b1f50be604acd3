package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

// Directory resolves users, manager links and assignee references. It is the
// leaf dependency of the access evaluator and the bulk importer.
type Directory struct {
	Users UserRepositoryInterface
	Log   *logrus.Logger
}

func NewDirectory(users UserRepositoryInterface, log *logrus.Logger) *Directory {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Directory{Users: users, Log: log}
}

// RequireActive loads a user and fails with NotAuthenticated when the id is
// unknown or the account is inactive.
func (d *Directory) RequireActive(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	user, err := d.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: "USER_LOOKUP_FAILED", Message: err.Error()}
	}
	if user == nil || !user.IsActive {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// ResolveTeam returns the ids of the manager's direct reports. One level
// only; BDM visibility is not transitive.
func (d *Directory) ResolveTeam(ctx context.Context, managerID string) (map[string]bool, error) {
	reports, err := d.Users.FindByManagerID(ctx, managerID)
	if err != nil {
		return nil, &TechnicalError{Code: "TEAM_LOOKUP_FAILED", Message: err.Error()}
	}
	team := make(map[string]bool, len(reports))
	for _, r := range reports {
		team[r.ID] = true
	}
	return team, nil
}

type assigneeResolver struct {
	name string
	fn   func(ctx context.Context, ref string) ([]*entity.User, error)
}

// ResolveAssignee resolves a raw assignee reference through an ordered chain
// of strategies: exact id, email, username, unique name (all but id
// case-insensitive). The first strategy with exactly one match wins; more
// than one candidate in the final strategy is rejected, never guessed.
func (d *Directory) ResolveAssignee(ctx context.Context, ref string) (*entity.User, error) {
	resolvers := []assigneeResolver{
		{"id", func(ctx context.Context, ref string) ([]*entity.User, error) {
			u, err := d.Users.FindByID(ctx, ref)
			return single(u), err
		}},
		{"email", func(ctx context.Context, ref string) ([]*entity.User, error) {
			u, err := d.Users.FindByEmail(ctx, ref)
			return single(u), err
		}},
		{"username", func(ctx context.Context, ref string) ([]*entity.User, error) {
			u, err := d.Users.FindByUsername(ctx, ref)
			return single(u), err
		}},
		{"name", d.Users.FindByName},
	}

	for _, r := range resolvers {
		candidates, err := r.fn(ctx, ref)
		if err != nil {
			return nil, &TechnicalError{Code: "ASSIGNEE_LOOKUP_FAILED", Message: err.Error()}
		}
		switch len(candidates) {
		case 0:
			continue
		case 1:
			user := candidates[0]
			if !user.IsActive {
				return nil, &DomainError{Code: "ASSIGNEE_INACTIVE", Message: "matched user is inactive"}
			}
			d.Log.WithFields(logrus.Fields{"ref": ref, "strategy": r.name, "user_id": user.ID}).
				Debug("assignee resolved")
			return user, nil
		default:
			return nil, &DomainError{Code: "ASSIGNEE_AMBIGUOUS", Message: "reference matches more than one user"}
		}
	}

	return nil, &DomainError{Code: "ASSIGNEE_NOT_FOUND", Message: "no user matches the reference"}
}

func single(u *entity.User) []*entity.User {
	if u == nil {
		return nil
	}
	return []*entity.User{u}
}
