package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

// Redaction tokens. Values are replaced only when originally set; nil stays
// nil so the caller can still tell "hidden" from "never captured".
const (
	MaskedEmail = "***@***"
	MaskedPhone = "***-***-****"
	MaskedOther = "***"
)

// AccessEvaluator decides lead visibility, field masking and edit rights for
// a resolved requester. It never mutates anything.
type AccessEvaluator struct {
	Directory *Directory
	Log       *logrus.Logger
}

func NewAccessEvaluator(directory *Directory, log *logrus.Logger) *AccessEvaluator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AccessEvaluator{Directory: directory, Log: log}
}

// EvaluateLeadAccess filters leads down to what the requester may see and
// masks contact fields on team members' leads for BDM requesters.
//
// Visibility:
//   - Admin, SalesHead: everything.
//   - BDM: own leads, direct reports' leads, unassigned leads.
//   - BDE: own leads only.
func (e *AccessEvaluator) EvaluateLeadAccess(ctx context.Context, requester *entity.User, leads []*entity.Lead) ([]LeadView, error) {
	if requester == nil || !requester.IsActive {
		return nil, ErrNotAuthenticated
	}

	var team map[string]bool
	if requester.Role == entity.RoleBDM {
		var err error
		team, err = e.Directory.ResolveTeam(ctx, requester.ID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]LeadView, 0, len(leads))
	for _, lead := range leads {
		if lead == nil || !visible(requester, lead, team) {
			continue
		}

		view := LeadView{
			Lead:    *lead,
			CanEdit: canEdit(requester, lead),
		}

		// Masking applies only to a BDM looking at a direct report's lead.
		if requester.Role == entity.RoleBDM && lead.AssignedTo != requester.ID && team[lead.AssignedTo] {
			view.Lead.ContactFields, view.MaskedFields = maskContactFields(lead.ContactFields)
			view.Masked = len(view.MaskedFields) > 0
		}

		views = append(views, view)
	}

	return views, nil
}

// CanEditLead reports whether the requester may modify the lead. Stricter
// than visibility: a BDM has no edit right on a teammate's lead even though
// it is visible (masked).
func (e *AccessEvaluator) CanEditLead(requester *entity.User, lead *entity.Lead) (bool, error) {
	if requester == nil || !requester.IsActive {
		return false, ErrNotAuthenticated
	}
	return canEdit(requester, lead), nil
}

func visible(requester *entity.User, lead *entity.Lead, team map[string]bool) bool {
	if requester.Role.Capabilities().CanViewAll {
		return true
	}
	switch requester.Role {
	case entity.RoleBDM:
		return lead.AssignedTo == requester.ID || team[lead.AssignedTo] || lead.AssignedTo == ""
	case entity.RoleBDE:
		return lead.AssignedTo == requester.ID
	}
	return false
}

func canEdit(requester *entity.User, lead *entity.Lead) bool {
	if requester.Role.Capabilities().CanEditAll {
		return true
	}
	return lead.AssignedTo == requester.ID
}

func maskContactFields(fields entity.ContactFields) (entity.ContactFields, []string) {
	var masked []string
	out := entity.ContactFields{}

	if fields.Email != nil {
		out.Email = strPtr(MaskedEmail)
		masked = append(masked, "email")
	}
	if fields.Phone != nil {
		out.Phone = strPtr(MaskedPhone)
		masked = append(masked, "phone")
	}
	if fields.Skype != nil {
		out.Skype = strPtr(MaskedOther)
		masked = append(masked, "skype")
	}
	if fields.Telegram != nil {
		out.Telegram = strPtr(MaskedOther)
		masked = append(masked, "telegram")
	}
	if fields.LinkedIn != nil {
		out.LinkedIn = strPtr(MaskedOther)
		masked = append(masked, "linkedin")
	}

	return out, masked
}

func strPtr(s string) *string {
	return &s
}
