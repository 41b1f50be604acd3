package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vnnovate/crm-core/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = "id, name, username, email, role, manager_id, is_active, created_at, updated_at"

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, name, username, email, role, manager_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := execFrom(ctx, r.DB).ExecContext(ctx, query,
		u.ID, u.Name, u.Username, u.Email, string(u.Role), u.ManagerID, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		logrus.WithError(err).Error("user insert failed")
		return err
	}

	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, username = $3, email = $4, role = $5, manager_id = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
	`

	_, err := execFrom(ctx, r.DB).ExecContext(ctx, query,
		u.ID, u.Name, u.Username, u.Email, string(u.Role), u.ManagerID, u.IsActive,
	)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := execFrom(ctx, r.DB).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username)
}

func (r *UserRepository) FindByName(ctx context.Context, name string) ([]*entity.User, error) {
	return r.findMany(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *UserRepository) FindByManagerID(ctx context.Context, managerID string) ([]*entity.User, error) {
	return r.findMany(ctx, `SELECT `+userColumns+` FROM users WHERE manager_id = $1`, managerID)
}

func (r *UserRepository) DetachManager(ctx context.Context, managerID string) (int64, error) {
	res, err := execFrom(ctx, r.DB).ExecContext(ctx, `UPDATE users SET manager_id = NULL, updated_at = NOW() WHERE manager_id = $1`, managerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	row := execFrom(ctx, r.DB).QueryRowContext(ctx, query, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *UserRepository) findMany(ctx context.Context, query string, arg any) ([]*entity.User, error) {
	rows, err := execFrom(ctx, r.DB).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &role, &u.ManagerID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
