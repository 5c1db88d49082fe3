package repository

import (
	"context"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (email, password_hash, role)
VALUES ($1, $2, $3)
RETURNING id
`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u shared.NewUser) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createUserSQL, u.Email, u.PasswordHash, u.Role).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create user", err)
	}

	return id, nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
