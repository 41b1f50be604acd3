package database

import (
	"context"
	"database/sql"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) DeleteByLeadID(ctx context.Context, leadID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM tasks WHERE lead_id = $1`, leadID)
}

func (r *TaskRepository) DeleteByClientID(ctx context.Context, clientID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM tasks WHERE client_id = $1`, clientID)
}

func (r *TaskRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM tasks WHERE project_id = $1`, projectID)
}

// ReassignOwner rewrites both the assignee and the author reference.
func (r *TaskRepository) ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	query := `
		UPDATE tasks
		SET assigned_to = CASE WHEN assigned_to = $1 THEN $2 ELSE assigned_to END,
		    created_by  = CASE WHEN created_by  = $1 THEN $2 ELSE created_by  END,
		    updated_at  = NOW()
		WHERE assigned_to = $1 OR created_by = $1
	`

	res, err := execFrom(ctx, r.DB).ExecContext(ctx, query, fromUserID, toUserID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
