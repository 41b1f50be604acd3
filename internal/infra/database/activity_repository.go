package database

import (
	"context"
	"database/sql"
)

type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) DeleteByLeadID(ctx context.Context, leadID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM activities WHERE lead_id = $1`, leadID)
}

func (r *ActivityRepository) DeleteByClientID(ctx context.Context, clientID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM activities WHERE client_id = $1`, clientID)
}

func (r *ActivityRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM activities WHERE project_id = $1`, projectID)
}

func (r *ActivityRepository) ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	res, err := execFrom(ctx, r.DB).ExecContext(ctx,
		`UPDATE activities SET user_id = $2 WHERE user_id = $1`,
		fromUserID, toUserID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
