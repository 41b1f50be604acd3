package usecase

import (
	"context"

	"github.com/vnnovate/crm-core/internal/entity"
)

// Repository contracts are declared here, on the consumer side. Lookups
// return (nil, nil) when nothing matches; use cases translate that into
// NotFoundError where absence is an error.

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByName(ctx context.Context, name string) ([]*entity.User, error)
	FindByManagerID(ctx context.Context, managerID string) ([]*entity.User, error)
	DetachManager(ctx context.Context, managerID string) (int64, error)
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, l *entity.Lead) error
	Update(ctx context.Context, l *entity.Lead) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	FindAll(ctx context.Context) ([]*entity.Lead, error)
	FindByPrimaryContactID(ctx context.Context, contactID string) ([]*entity.Lead, error)
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error)
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Contact) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Contact, error)
	// FindByEmailOrPhone matches case-insensitively on email, exactly on
	// phone. Empty arguments never match.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Contact, error)
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error)
}

type ClientRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	FindByLeadID(ctx context.Context, leadID string) (*entity.Client, error)
}

type ProjectRepositoryInterface interface {
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	FindByClientID(ctx context.Context, clientID string) ([]*entity.Project, error)
}

type MilestoneRepositoryInterface interface {
	DeleteByProjectID(ctx context.Context, projectID string) (int64, error)
}

type PaymentRepositoryInterface interface {
	DeleteByProjectID(ctx context.Context, projectID string) (int64, error)
}

type ChangeRequestRepositoryInterface interface {
	DeleteByProjectID(ctx context.Context, projectID string) (int64, error)
}

type TaskRepositoryInterface interface {
	DeleteByLeadID(ctx context.Context, leadID string) (int64, error)
	DeleteByClientID(ctx context.Context, clientID string) (int64, error)
	DeleteByProjectID(ctx context.Context, projectID string) (int64, error)
	// ReassignOwner rewrites both assigned_to and created_by.
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error)
}

type ActivityRepositoryInterface interface {
	DeleteByLeadID(ctx context.Context, leadID string) (int64, error)
	DeleteByClientID(ctx context.Context, clientID string) (int64, error)
	DeleteByProjectID(ctx context.Context, projectID string) (int64, error)
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error)
}

// Notifier is the best-effort notification sink. Publish failures are logged
// and swallowed; they must never fail the surrounding operation.
type Notifier interface {
	LeadCreated(ctx context.Context, lead *entity.Lead) error
	LeadWon(ctx context.Context, lead *entity.Lead) error
	ImportCompleted(ctx context.Context, summary ImportSummary) error
}

// TxRunner wraps a function in a single unit of work. The database
// implementation carries a *sql.Tx through the context; test fakes just call
// fn directly.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
