package database

import (
	"context"
	"database/sql"
)

// Milestones, payments and change requests exist only in relation to a
// project; the cascade orchestrator is their sole writer, so these repos
// expose just the bulk delete.

type MilestoneRepository struct {
	DB *sql.DB
}

func NewMilestoneRepository(db *sql.DB) *MilestoneRepository {
	return &MilestoneRepository{DB: db}
}

func (r *MilestoneRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM milestones WHERE project_id = $1`, projectID)
}

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM payments WHERE project_id = $1`, projectID)
}

type ChangeRequestRepository struct {
	DB *sql.DB
}

func NewChangeRequestRepository(db *sql.DB) *ChangeRequestRepository {
	return &ChangeRequestRepository{DB: db}
}

func (r *ChangeRequestRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	return deleteBy(ctx, r.DB, `DELETE FROM change_requests WHERE project_id = $1`, projectID)
}

func deleteBy(ctx context.Context, db *sql.DB, query string, arg any) (int64, error) {
	res, err := execFrom(ctx, db).ExecContext(ctx, query, arg)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
