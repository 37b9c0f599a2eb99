package postgres

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type userRepository struct {
	q Querier
}

func NewUserRepository(q Querier) repository.UserRepository {
	return &userRepository{q: q}
}

const userColumns = `id, username, email, password_hash, COALESCE(phone, ''), COALESCE(address, ''), is_admin, created_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, email, password_hash, phone, address, is_admin)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.Phone, u.Address, u.IsAdmin).Scan(&u.ID, &u.CreatedOn)
	return mapError("users.create", err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, "users.get_by_id", query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, "users.get_by_email", query, email)
}

func (r *userRepository) getOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Phone, &u.Address, &u.IsAdmin, &u.CreatedOn)
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}
