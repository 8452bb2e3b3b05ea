package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/myerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

const userColumns = `
	u.user_id,
	u.created_at,
	u.updated_at,
	u.name,
	u.email,
	u.password_hash,
	u.role,
	u.reset_code,
	u.reset_expires_at
`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserId,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.ResetCode,
		&u.ResetExpiresAt,
	)
	return u, err
}

func (ur *UserRepo) Create(ctx context.Context, user models.User) (string, error) {
	q := `INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING user_id`

	id := ""
	row := ur.db.pool.QueryRow(ctx, q, user.Name, user.Email, user.PasswordHash, user.Role)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return "", myerrors.ErrEmailRegistered
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (ur *UserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users u WHERE u.user_id = $1`

	u, err := scanUser(ur.db.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, myerrors.ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`

	u, err := scanUser(ur.db.pool.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, myerrors.ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (ur *UserRepo) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	q := `UPDATE users SET password_hash = $2, updated_at = now() WHERE user_id = $1`

	tag, err := ur.db.pool.Exec(ctx, q, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrUserNotFound
	}
	return nil
}

func (ur *UserRepo) SetResetCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	q := `UPDATE users SET reset_code = $2, reset_expires_at = $3, updated_at = now() WHERE user_id = $1`

	tag, err := ur.db.pool.Exec(ctx, q, id, code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrUserNotFound
	}
	return nil
}

// ResetPassword swaps the hash and clears the reset fields in one statement.
func (ur *UserRepo) ResetPassword(ctx context.Context, id string, hash []byte) error {
	q := `
		UPDATE users SET
			password_hash = $2,
			reset_code = NULL,
			reset_expires_at = NULL,
			updated_at = now()
		WHERE user_id = $1
	`

	tag, err := ur.db.pool.Exec(ctx, q, id, hash)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrUserNotFound
	}
	return nil
}
