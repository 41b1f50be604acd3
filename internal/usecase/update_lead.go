package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

const DefaultWonStage = "won"

// UpdateLeadUseCase applies guarded lead edits. The edit check runs before
// any mutation or side effect; a denied write produces no activity, no event,
// no repository call.
type UpdateLeadUseCase struct {
	Leads    LeadRepositoryInterface
	Access   *AccessEvaluator
	Notifier Notifier
	WonStage string
	Log      *logrus.Logger
}

func NewUpdateLeadUseCase(leads LeadRepositoryInterface, access *AccessEvaluator, notifier Notifier, wonStage string, log *logrus.Logger) *UpdateLeadUseCase {
	if wonStage == "" {
		wonStage = DefaultWonStage
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UpdateLeadUseCase{
		Leads:    leads,
		Access:   access,
		Notifier: notifier,
		WonStage: wonStage,
		Log:      log,
	}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, requester *entity.User, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	if requester == nil || !requester.IsActive {
		return nil, ErrNotAuthenticated
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if lead == nil {
		return nil, &NotFoundError{Entity: "lead", ID: leadID}
	}

	allowed, err := uc.Access.CanEditLead(requester, lead)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &AccessDeniedError{UserID: requester.ID, Action: "edit", Resource: "lead " + lead.ID}
	}

	wasWon := strings.EqualFold(lead.Stage, uc.WonStage)

	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Stage != nil {
		lead.Stage = *input.Stage
	}
	if input.Email != nil {
		lead.Email = input.Email
	}
	if input.Phone != nil {
		lead.Phone = input.Phone
	}
	if input.Skype != nil {
		lead.Skype = input.Skype
	}
	if input.Telegram != nil {
		lead.Telegram = input.Telegram
	}
	if input.LinkedIn != nil {
		lead.LinkedIn = input.LinkedIn
	}

	if err := lead.Validate(); err != nil {
		return nil, &ValidationFailedError{Issues: []ValidationError{{Field: "lead", Message: err.Error()}}}
	}

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update lead: " + err.Error()}
	}

	// Conversion to a client happens in the event consumer, not here; the
	// core only announces the transition.
	if !wasWon && strings.EqualFold(lead.Stage, uc.WonStage) && uc.Notifier != nil {
		if err := uc.Notifier.LeadWon(ctx, lead); err != nil {
			uc.Log.WithError(err).WithField("lead_id", lead.ID).Warn("lead.won notification failed")
		}
	}

	return lead, nil
}
