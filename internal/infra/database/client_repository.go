package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vnnovate/crm-core/internal/entity"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

const clientColumns = "id, company_name, lead_id, created_at, updated_at"

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, company_name, lead_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := execFrom(ctx, r.DB).ExecContext(ctx, query,
		c.ID, c.CompanyName, c.LeadID, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	_, err := execFrom(ctx, r.DB).ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	row := execFrom(ctx, r.DB).QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

func (r *ClientRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Client, error) {
	row := execFrom(ctx, r.DB).QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE lead_id = $1`, leadID)
	return scanClient(row)
}

func scanClient(row *sql.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.CompanyName, &c.LeadID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
