package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

// CascadeDeleteUseCase applies a protective check for each root type and,
// only when it passes, removes (or reassigns) dependents in a fixed order.
// Each cascade runs inside a single unit of work through Tx, so a step
// failure rolls the whole cascade back; the error names the failing step.
type CascadeDeleteUseCase struct {
	Users          UserRepositoryInterface
	Leads          LeadRepositoryInterface
	Contacts       ContactRepositoryInterface
	Clients        ClientRepositoryInterface
	Projects       ProjectRepositoryInterface
	Milestones     MilestoneRepositoryInterface
	Payments       PaymentRepositoryInterface
	ChangeRequests ChangeRequestRepositoryInterface
	Tasks          TaskRepositoryInterface
	Activities     ActivityRepositoryInterface
	Tx             TxRunner
	Log            *logrus.Logger
}

func (uc *CascadeDeleteUseCase) Execute(ctx context.Context, requester *entity.User, root RootType, rootID string, opts DeleteOptions) (*DeletionReport, error) {
	if requester == nil || !requester.IsActive {
		return nil, ErrNotAuthenticated
	}

	switch root {
	case RootClient:
		return uc.deleteClient(ctx, rootID)
	case RootLead:
		return uc.deleteLead(ctx, rootID)
	case RootProject:
		return uc.deleteProject(ctx, rootID)
	case RootUser:
		return uc.deleteUser(ctx, requester, rootID, opts)
	default:
		return nil, &DomainError{Code: "UNSUPPORTED_ROOT", Message: fmt.Sprintf("cannot cascade-delete root type %q", root)}
	}
}

// deleteClient refuses while any project still references the client, then
// removes tasks, activities and the client itself.
func (uc *CascadeDeleteUseCase) deleteClient(ctx context.Context, clientID string) (*DeletionReport, error) {
	client, err := uc.Clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if client == nil {
		return nil, &NotFoundError{Entity: "client", ID: clientID}
	}

	projects, err := uc.Projects.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if len(projects) > 0 {
		ids := make([]string, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		return nil, &IntegrityBlockedError{Entity: "client", Dependent: "project", BlockingCount: len(projects), BlockingIDs: ids}
	}

	report := &DeletionReport{Root: RootClient, RootID: clientID}
	err = uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.step(ctx, report, "delete_tasks", func(ctx context.Context) (int64, error) {
			return uc.Tasks.DeleteByClientID(ctx, clientID)
		}); err != nil {
			return err
		}
		if err := uc.step(ctx, report, "delete_activities", func(ctx context.Context) (int64, error) {
			return uc.Activities.DeleteByClientID(ctx, clientID)
		}); err != nil {
			return err
		}
		return uc.step(ctx, report, "delete_client", func(ctx context.Context) (int64, error) {
			return 1, uc.Clients.Delete(ctx, clientID)
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logReport(report)
	return report, nil
}

// deleteLead refuses while a client references the lead. An orphaned primary
// contact (referenced by no other lead) is deleted along the way.
func (uc *CascadeDeleteUseCase) deleteLead(ctx context.Context, leadID string) (*DeletionReport, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if lead == nil {
		return nil, &NotFoundError{Entity: "lead", ID: leadID}
	}

	client, err := uc.Clients.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if client != nil {
		return nil, &IntegrityBlockedError{Entity: "lead", Dependent: "client", BlockingCount: 1, BlockingIDs: []string{client.ID}}
	}

	report := &DeletionReport{Root: RootLead, RootID: leadID}
	err = uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.step(ctx, report, "delete_tasks", func(ctx context.Context) (int64, error) {
			return uc.Tasks.DeleteByLeadID(ctx, leadID)
		}); err != nil {
			return err
		}
		if err := uc.step(ctx, report, "delete_activities", func(ctx context.Context) (int64, error) {
			return uc.Activities.DeleteByLeadID(ctx, leadID)
		}); err != nil {
			return err
		}

		if lead.PrimaryContactID != nil {
			orphaned, err := uc.contactIsOrphaned(ctx, *lead.PrimaryContactID, leadID)
			if err != nil {
				return err
			}
			if orphaned {
				contactID := *lead.PrimaryContactID
				if err := uc.step(ctx, report, "delete_orphaned_contact", func(ctx context.Context) (int64, error) {
					return 1, uc.Contacts.Delete(ctx, contactID)
				}); err != nil {
					return err
				}
			}
		}

		return uc.step(ctx, report, "delete_lead", func(ctx context.Context) (int64, error) {
			return 1, uc.Leads.Delete(ctx, leadID)
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logReport(report)
	return report, nil
}

// deleteProject cascades unconditionally: milestones, payments, change
// requests, activities, tasks, then the project.
func (uc *CascadeDeleteUseCase) deleteProject(ctx context.Context, projectID string) (*DeletionReport, error) {
	project, err := uc.Projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if project == nil {
		return nil, &NotFoundError{Entity: "project", ID: projectID}
	}

	report := &DeletionReport{Root: RootProject, RootID: projectID}
	steps := []struct {
		name string
		fn   func(ctx context.Context) (int64, error)
	}{
		{"delete_milestones", func(ctx context.Context) (int64, error) { return uc.Milestones.DeleteByProjectID(ctx, projectID) }},
		{"delete_payments", func(ctx context.Context) (int64, error) { return uc.Payments.DeleteByProjectID(ctx, projectID) }},
		{"delete_change_requests", func(ctx context.Context) (int64, error) { return uc.ChangeRequests.DeleteByProjectID(ctx, projectID) }},
		{"delete_activities", func(ctx context.Context) (int64, error) { return uc.Activities.DeleteByProjectID(ctx, projectID) }},
		{"delete_tasks", func(ctx context.Context) (int64, error) { return uc.Tasks.DeleteByProjectID(ctx, projectID) }},
		{"delete_project", func(ctx context.Context) (int64, error) { return 1, uc.Projects.Delete(ctx, projectID) }},
	}

	err = uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, s := range steps {
			if err := uc.step(ctx, report, s.name, s.fn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logReport(report)
	return report, nil
}

// deleteUser reassigns everything the user owns to the target, detaches
// direct reports, then deletes the account. Records are never deleted.
func (uc *CascadeDeleteUseCase) deleteUser(ctx context.Context, requester *entity.User, userID string, opts DeleteOptions) (*DeletionReport, error) {
	if !requester.Role.Capabilities().CanCreateUsers {
		return nil, &AccessDeniedError{UserID: requester.ID, Action: "delete", Resource: "user"}
	}
	if requester.ID == userID {
		return nil, &AccessDeniedError{UserID: requester.ID, Action: "delete", Resource: "own account"}
	}

	var issues []ValidationError
	if opts.ReassignToUserID == "" {
		issues = append(issues, ValidationError{Field: "reassignToUserId", Message: "is required"})
	} else if opts.ReassignToUserID == userID {
		issues = append(issues, ValidationError{Field: "reassignToUserId", Message: "must be a different user"})
	}
	if len(issues) > 0 {
		return nil, &ValidationFailedError{Issues: issues}
	}

	user, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "user", ID: userID}
	}

	target, err := uc.Users.FindByID(ctx, opts.ReassignToUserID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if target == nil {
		return nil, &NotFoundError{Entity: "user", ID: opts.ReassignToUserID}
	}
	if !target.IsActive {
		return nil, &ValidationFailedError{Issues: []ValidationError{{Field: "reassignToUserId", Message: "must be an active user"}}}
	}

	report := &DeletionReport{Root: RootUser, RootID: userID}
	err = uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		reassigns := []struct {
			name string
			fn   func(ctx context.Context, from, to string) (int64, error)
		}{
			{"reassign_leads", uc.Leads.ReassignOwner},
			{"reassign_contacts", uc.Contacts.ReassignOwner},
			{"reassign_tasks", uc.Tasks.ReassignOwner},
			{"reassign_activities", uc.Activities.ReassignOwner},
		}
		for _, r := range reassigns {
			fn := r.fn
			if err := uc.step(ctx, report, r.name, func(ctx context.Context) (int64, error) {
				return fn(ctx, userID, target.ID)
			}); err != nil {
				return err
			}
		}

		// Direct reports lose their manager link rather than pointing at a
		// deleted user.
		if err := uc.step(ctx, report, "detach_reports", func(ctx context.Context) (int64, error) {
			return uc.Users.DetachManager(ctx, userID)
		}); err != nil {
			return err
		}

		return uc.step(ctx, report, "delete_user", func(ctx context.Context) (int64, error) {
			return 1, uc.Users.Delete(ctx, userID)
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logReport(report)
	return report, nil
}

func (uc *CascadeDeleteUseCase) contactIsOrphaned(ctx context.Context, contactID, excludingLeadID string) (bool, error) {
	leads, err := uc.Leads.FindByPrimaryContactID(ctx, contactID)
	if err != nil {
		return false, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	for _, l := range leads {
		if l.ID != excludingLeadID {
			return false, nil
		}
	}
	return true, nil
}

func (uc *CascadeDeleteUseCase) step(ctx context.Context, report *DeletionReport, name string, fn func(ctx context.Context) (int64, error)) error {
	affected, err := fn(ctx)
	if err != nil {
		return &TechnicalError{Code: "CASCADE_STEP_FAILED", Message: fmt.Sprintf("step %q: %v", name, err)}
	}
	report.Steps = append(report.Steps, CascadeStep{Name: name, Affected: affected})
	return nil
}

func (uc *CascadeDeleteUseCase) logReport(report *DeletionReport) {
	log := uc.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{"root": report.Root, "root_id": report.RootID, "steps": len(report.Steps)}).
		Info("cascade delete finished")
}
