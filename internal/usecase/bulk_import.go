package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

// BulkImportUseCase validates and commits a batch of raw lead records with
// per-item isolation: one bad record never aborts the batch. A contact
// created for an item is deleted again when a later step of the same item
// fails; a contact that was merely matched is never touched.
type BulkImportUseCase struct {
	Leads     LeadRepositoryInterface
	Contacts  ContactRepositoryInterface
	Directory *Directory
	Notifier  Notifier
	Log       *logrus.Logger
}

func NewBulkImportUseCase(leads LeadRepositoryInterface, contacts ContactRepositoryInterface, directory *Directory, notifier Notifier, log *logrus.Logger) *BulkImportUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BulkImportUseCase{
		Leads:     leads,
		Contacts:  contacts,
		Directory: directory,
		Notifier:  notifier,
		Log:       log,
	}
}

func (uc *BulkImportUseCase) Execute(ctx context.Context, requester *entity.User, items []LeadImportItem) (*ImportReport, error) {
	if requester == nil || !requester.IsActive {
		return nil, ErrNotAuthenticated
	}

	report := &ImportReport{Total: len(items), Results: make([]ImportItemResult, 0, len(items))}

	for i, item := range items {
		result := uc.importOne(ctx, requester, i, item)
		if result.Created {
			report.Created++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, result)
	}

	uc.Log.WithFields(logrus.Fields{
		"requester_id": requester.ID,
		"created":      report.Created,
		"failed":       report.Failed,
		"total":        report.Total,
	}).Info("bulk import finished")

	if uc.Notifier != nil {
		summary := ImportSummary{
			RequesterID:    requester.ID,
			RequesterEmail: requester.Email,
			Created:        report.Created,
			Failed:         report.Failed,
			Total:          report.Total,
		}
		if err := uc.Notifier.ImportCompleted(ctx, summary); err != nil {
			uc.Log.WithError(err).Warn("import summary notification failed")
		}
	}

	return report, nil
}

func (uc *BulkImportUseCase) importOne(ctx context.Context, requester *entity.User, index int, item LeadImportItem) ImportItemResult {
	result := ImportItemResult{Index: index}

	issues := ValidateLeadImportItem(item)

	var assignee *entity.User
	if item.AssignedTo != "" {
		var err error
		assignee, err = uc.Directory.ResolveAssignee(ctx, item.AssignedTo)
		if err != nil {
			if IsDomainError(err) {
				issues = append(issues, ValidationError{Field: "assignedTo", Message: err.Error()})
			} else {
				result.Error = err.Error()
				return result
			}
		}
	}

	if len(issues) > 0 {
		result.Issues = issues
		return result
	}

	fields := contactFieldsFromItem(item)

	// Deduplicate-or-create the contact before the transactional part; the
	// lookup is read-only.
	var contact *entity.Contact
	contactIsNew := false
	if fields.HasContactData() {
		existing, err := uc.Contacts.FindByEmailOrPhone(ctx, item.Email, item.Phone)
		if err != nil {
			result.Error = "contact lookup failed: " + err.Error()
			return result
		}
		if existing != nil {
			contact = existing
		} else {
			contact, err = entity.NewContact(item.Name, assignee.ID, fields)
			if err != nil {
				result.Issues = []ValidationError{{Field: "contact", Message: err.Error()}}
				return result
			}
			contactIsNew = true
		}
	}

	lead, err := entity.NewLead(item.Name, assignee.ID, item.Stage, requester.ID, fields)
	if err != nil {
		result.Issues = []ValidationError{{Field: "lead", Message: err.Error()}}
		return result
	}
	if contact != nil {
		lead.PrimaryContactID = &contact.ID
	}

	txn := NewTransaction(uc.Log)
	if contactIsNew {
		contactID := contact.ID
		txn.AddOperation("create_contact", func(ctx context.Context) error {
			return uc.Contacts.Create(ctx, contact)
		})
		txn.AddCompensation("delete_contact", func(ctx context.Context) error {
			return uc.Contacts.Delete(ctx, contactID)
		})
	}
	txn.AddOperation("create_lead", func(ctx context.Context) error {
		return uc.Leads.Create(ctx, lead)
	})

	if err := txn.Execute(ctx); err != nil {
		uc.Log.WithError(err).WithField("index", index).Warn("import item failed")
		result.Error = err.Error()
		return result
	}

	result.Created = true
	result.LeadID = lead.ID
	if contact != nil {
		result.ContactID = contact.ID
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.LeadCreated(ctx, lead); err != nil {
			uc.Log.WithError(err).WithField("lead_id", lead.ID).Warn("lead.created notification failed")
		}
	}

	return result
}

func contactFieldsFromItem(item LeadImportItem) entity.ContactFields {
	fields := entity.ContactFields{}
	if item.Email != "" {
		fields.Email = strPtr(item.Email)
	}
	if item.Phone != "" {
		fields.Phone = strPtr(item.Phone)
	}
	if item.Skype != "" {
		fields.Skype = strPtr(item.Skype)
	}
	if item.Telegram != "" {
		fields.Telegram = strPtr(item.Telegram)
	}
	if item.LinkedIn != "" {
		fields.LinkedIn = strPtr(item.LinkedIn)
	}
	return fields
}
