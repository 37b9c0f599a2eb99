package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/security"
)

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := security.HashPassword("toolshare-timing-equalizer")
	return hash
})

var passwordTooLong = &domain.ValidationError{Field: "password", Message: "must be at most 72 bytes"}

type authService struct {
	store repository.Store
}

func NewAuthService(store repository.Store) AuthService {
	return &authService{store: store}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	user := &domain.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Phone:    in.Phone,
		Address:  in.Address,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "is required"}
	}
	if len(in.Password) > security.MaxPasswordBytes {
		return nil, passwordTooLong
	}

	hash, err := security.HashPassword(in.Password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return nil, passwordTooLong
	}
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, translate(err)
	}

	user.Tools, user.Bookings, user.Reviews = []domain.Tool{}, []domain.Booking{}, []domain.Review{}
	logger.InfoContext(ctx, "User signed up", "user_id", user.ID)
	return user, nil
}

// Login fails with ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var user *domain.User
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		user, err = tx.Users().GetByEmail(ctx, strings.TrimSpace(email))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				_ = security.CheckPassword(dummyHash(), password)
			}
			return notFoundAs(err, ErrInvalidCredentials)
		}
		if err := security.CheckPassword(user.PasswordHash, password); err != nil {
			return ErrInvalidCredentials
		}
		return loadAccount(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID int32) (*domain.User, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	var user *domain.User
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		if user, err = tx.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		return loadAccount(ctx, tx, user)
	})
	if err != nil {
		// the account behind a live session is gone
		return nil, notFoundAs(err, ErrUnauthenticated)
	}
	return user, nil
}

// loadAccount fills the tools, bookings and reviews shown with the account.
func loadAccount(ctx context.Context, tx repository.Tx, user *domain.User) error {
	var err error
	if user.Tools, err = tx.Tools().ListByOwner(ctx, user.ID); err != nil {
		return err
	}
	if user.Bookings, err = tx.Bookings().ListByBorrower(ctx, user.ID); err != nil {
		return err
	}
	user.Reviews, err = tx.Reviews().ListByReviewer(ctx, user.ID)
	return err
}
