package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/vnnovate/crm-core/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = "id, name, email, phone, skype, telegram, linkedin, assigned_to, created_at, updated_at"

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, skype, telegram, linkedin, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := execFrom(ctx, r.DB).ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Skype, c.Telegram, c.LinkedIn, c.AssignedTo, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}

	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := execFrom(ctx, r.DB).ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := execFrom(ctx, r.DB).QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// FindByEmailOrPhone is the dedup lookup at lead intake. Empty values never
// match; email matching is case-insensitive.
func (r *ContactRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Contact, error) {
	if email == "" && phone == "" {
		return nil, nil
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE ($1 != '' AND LOWER(email) = LOWER($1))
		   OR ($2 != '' AND phone = $2)
		LIMIT 1
	`

	row := execFrom(ctx, r.DB).QueryRowContext(ctx, query, email, phone)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *ContactRepository) ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	res, err := execFrom(ctx, r.DB).ExecContext(ctx,
		`UPDATE contacts SET assigned_to = $2, updated_at = NOW() WHERE assigned_to = $1`,
		fromUserID, toUserID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Skype, &c.Telegram, &c.LinkedIn,
		&c.AssignedTo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
