package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"inkwell/internal/model"
)

type registrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Upsert creates the pending registration, or refreshes the existing row
// for the same email so repeated send-otp calls never pile up rows.
func (r *registrationRepository) Upsert(ctx context.Context, p *model.PendingRegistration) error {
	query := `
		INSERT INTO pending_registrations (name, email, password_hash, code, code_expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    password_hash = EXCLUDED.password_hash,
		    code = EXCLUDED.code,
		    code_expires_at = EXCLUDED.code_expires_at
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query, p.Name, p.Email, p.PasswordHash, p.Code, p.CodeExpiresAt)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("upsert pending registration: %w", err)
	}

	return nil
}

// GetByID retrieves a pending registration by id.
func (r *registrationRepository) GetByID(ctx context.Context, id int64) (*model.PendingRegistration, error) {
	query := `
		SELECT id, name, email, password_hash, code, code_expires_at, created_at
		FROM pending_registrations
		WHERE id = $1
	`

	var p model.PendingRegistration
	err := r.db.GetContext(ctx, &p, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pending registration: %w", err)
	}

	return &p, nil
}

// RefreshCode overwrites the code and expiry in place on the same row.
func (r *registrationRepository) RefreshCode(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE pending_registrations SET code = $1, code_expires_at = $2 WHERE id = $3
	`, code, expiresAt, id)
	if err != nil {
		return fmt.Errorf("refresh code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrRegistrationNotFound
	}

	return nil
}

// Promote inserts the verified user and deletes the pending row in one
// transaction. The delete doubles as the replay guard: if a concurrent
// verify already consumed the row, zero rows are affected and the whole
// transaction rolls back.
func (r *registrationRepository) Promote(ctx context.Context, p *model.PendingRegistration) (*model.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM pending_registrations WHERE id = $1`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("delete pending registration: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, model.ErrRegistrationNotFound
	}

	user := &model.User{
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: &p.PasswordHash,
	}
	row := tx.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING id, is_admin, created_at
	`, user.Name, user.Email, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.IsAdmin, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert promoted user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return user, nil
}

// DeleteExpired purges pending rows whose codes are past expiry. Called
// opportunistically from the send-otp path; there is no background sweeper.
func (r *registrationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM pending_registrations WHERE code_expires_at < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired registrations: %w", err)
	}
	return result.RowsAffected()
}
