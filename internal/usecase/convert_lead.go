package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

// ConvertLeadUseCase creates the Client for a won lead. It is driven by the
// lead.won event consumer, keeping stage-change workflow out of the access
// and cascade core. Idempotent: at most one Client per Lead.
type ConvertLeadUseCase struct {
	Leads   LeadRepositoryInterface
	Clients ClientRepositoryInterface
	Log     *logrus.Logger
}

func NewConvertLeadUseCase(leads LeadRepositoryInterface, clients ClientRepositoryInterface, log *logrus.Logger) *ConvertLeadUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ConvertLeadUseCase{Leads: leads, Clients: clients, Log: log}
}

func (uc *ConvertLeadUseCase) Execute(ctx context.Context, leadID string) (*entity.Client, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if lead == nil {
		return nil, &NotFoundError{Entity: "lead", ID: leadID}
	}

	existing, err := uc.Clients.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if existing != nil {
		return existing, nil
	}

	client, err := entity.NewClient(lead.Name, &lead.ID)
	if err != nil {
		return nil, &ValidationFailedError{Issues: []ValidationError{{Field: "company_name", Message: err.Error()}}}
	}

	if err := uc.Clients.Create(ctx, client); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create client: " + err.Error()}
	}

	uc.Log.WithFields(logrus.Fields{"lead_id": lead.ID, "client_id": client.ID}).Info("lead converted to client")
	return client, nil
}
