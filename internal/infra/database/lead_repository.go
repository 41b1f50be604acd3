package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vnnovate/crm-core/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = "id, name, assigned_to, stage, primary_contact_id, email, phone, skype, telegram, linkedin, created_by, created_at, updated_at"

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, assigned_to, stage, primary_contact_id, email, phone, skype, telegram, linkedin, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := execFrom(ctx, r.DB).ExecContext(ctx, query,
		l.ID, l.Name, l.AssignedTo, l.Stage, l.PrimaryContactID,
		l.Email, l.Phone, l.Skype, l.Telegram, l.LinkedIn,
		l.CreatedBy, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, assigned_to = $3, stage = $4, primary_contact_id = $5,
		    email = $6, phone = $7, skype = $8, telegram = $9, linkedin = $10, updated_at = NOW()
		WHERE id = $1
	`

	_, err := execFrom(ctx, r.DB).ExecContext(ctx, query,
		l.ID, l.Name, l.AssignedTo, l.Stage, l.PrimaryContactID,
		l.Email, l.Phone, l.Skype, l.Telegram, l.LinkedIn,
	)
	return err
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := execFrom(ctx, r.DB).ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := execFrom(ctx, r.DB).QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	return r.findMany(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
}

func (r *LeadRepository) FindByPrimaryContactID(ctx context.Context, contactID string) ([]*entity.Lead, error) {
	return r.findMany(ctx, `SELECT `+leadColumns+` FROM leads WHERE primary_contact_id = $1`, contactID)
}

func (r *LeadRepository) ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	res, err := execFrom(ctx, r.DB).ExecContext(ctx,
		`UPDATE leads SET assigned_to = $2, updated_at = NOW() WHERE assigned_to = $1`,
		fromUserID, toUserID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LeadRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Lead, error) {
	rows, err := execFrom(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.AssignedTo, &l.Stage, &l.PrimaryContactID,
		&l.Email, &l.Phone, &l.Skype, &l.Telegram, &l.LinkedIn,
		&l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
