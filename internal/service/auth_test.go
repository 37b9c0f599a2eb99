package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewAuthService(store)

		store.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 1 }).
			Return(nil)

		user, err := svc.Signup(ctx, service.SignupInput{Username: "alice", Email: "alice@test.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
		assert.NotEqual(t, "pw", user.PasswordHash)
		assert.NoError(t, security.CheckPassword(user.PasswordHash, "pw"))
		assert.NotNil(t, user.Tools)
		assert.Empty(t, user.Bookings)
	})

	t.Run("PasswordTooLong", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewAuthService(store)

		_, err := svc.Signup(ctx, service.SignupInput{Username: "alice", Email: "alice@test.com", Password: strings.Repeat("p", 80)})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "password", verr.Field)
		assert.Equal(t, "must be at most 72 bytes", verr.Message)
		store.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PasswordAtLimit", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewAuthService(store)
		store.users.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Signup(ctx, service.SignupInput{Username: "alice", Email: "alice@test.com", Password: strings.Repeat("p", 72)})
		assert.NoError(t, err)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := service.NewAuthService(newMockStore())

		_, err := svc.Signup(ctx, service.SignupInput{Username: "alice", Email: "nope", Password: "pw"})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "email", verr.Field)
	})

	t.Run("MissingPassword", func(t *testing.T) {
		svc := service.NewAuthService(newMockStore())

		_, err := svc.Signup(ctx, service.SignupInput{Username: "alice", Email: "alice@test.com"})
		assert.ErrorContains(t, err, "password")
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewAuthService(store)

		store.users.On("Create", mock.Anything, mock.Anything).Return(&repository.ConstraintError{
			Sentinel:   repository.ErrDuplicate,
			Constraint: "users_username_key",
			Cause:      errors.New("pq: duplicate key"),
		})

		_, err := svc.Signup(ctx, service.SignupInput{Username: "alice", Email: "a2@test.com", Password: "pw"})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "username already taken", verr.Message)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := security.HashPassword("correct")
	require.NoError(t, err)

	store := newMockStore()
	svc := service.NewAuthService(store)
	store.users.On("GetByEmail", mock.Anything, "bob@test.com").Return(&domain.User{ID: 2, Email: "bob@test.com", PasswordHash: hash}, nil)
	store.users.On("GetByEmail", mock.Anything, "ghost@test.com").Return(nil, repository.ErrNotFound)
	store.expectAccount(2, []domain.Tool{{ID: 8, OwnerID: 2, Name: "Drill"}}, []domain.Booking{}, []domain.Review{})

	t.Run("Success", func(t *testing.T) {
		user, err := svc.Login(ctx, "bob@test.com", "correct")
		require.NoError(t, err)
		assert.Equal(t, int32(2), user.ID)
		require.Len(t, user.Tools, 1)
		assert.Equal(t, "Drill", user.Tools[0].Name)
	})

	t.Run("WrongPasswordAndUnknownEmailLookAlike", func(t *testing.T) {
		_, errWrong := svc.Login(ctx, "bob@test.com", "wrong")
		_, errUnknown := svc.Login(ctx, "ghost@test.com", "correct")

		assert.ErrorIs(t, errWrong, service.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("StoreFailure", func(t *testing.T) {
		store.users.On("GetByEmail", mock.Anything, "down@test.com").Return(nil, assert.AnError)
		_, err := svc.Login(ctx, "down@test.com", "x")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := service.NewAuthService(store)

	_, err := svc.CurrentUser(ctx, 0)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	store.users.On("GetByID", mock.Anything, int32(5)).Return(&domain.User{ID: 5, Username: "eve"}, nil)
	store.expectAccount(5, []domain.Tool{}, []domain.Booking{{ID: 3, BorrowerID: 5}}, []domain.Review{{ID: 4, ReviewerID: 5}})
	user, err := svc.CurrentUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "eve", user.Username)
	assert.Len(t, user.Bookings, 1)
	assert.Len(t, user.Reviews, 1)

	store.users.On("GetByID", mock.Anything, int32(6)).Return(nil, repository.ErrNotFound)
	_, err = svc.CurrentUser(ctx, 6)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}
