package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notesai/internal/auth/model"
	"notesai/internal/common"
	"notesai/pkg/logger"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*model.UserEntity, error) {
	u := &model.UserEntity{Email: email, PasswordHash: passwordHash}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (email, hashed_password) VALUES ($1, $2) RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, common.ErrConflict
		}
		logger.Sugar.Errorf("Failed to create user %s: %v", email, err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.UserEntity, error) {
	u := &model.UserEntity{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, created_at FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to get user by email %s: %v", email, err)
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
