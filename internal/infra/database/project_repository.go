package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vnnovate/crm-core/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

const projectColumns = "id, client_id, name, status, created_at, updated_at"

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := execFrom(ctx, r.DB).ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	row := execFrom(ctx, r.DB).QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	var p entity.Project
	err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) FindByClientID(ctx context.Context, clientID string) ([]*entity.Project, error) {
	rows, err := execFrom(ctx, r.DB).QueryContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE client_id = $1`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}
