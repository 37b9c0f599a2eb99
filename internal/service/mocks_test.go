package service_test

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) Create(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockToolRepo) List(ctx context.Context) ([]domain.Tool, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tool), args.Error(1)
}
func (m *MockToolRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Tool), args.Error(1)
}
func (m *MockToolRepo) Update(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) ListByTool(ctx context.Context, toolID int32) ([]domain.Review, error) {
	args := m.Called(ctx, toolID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByReviewer(ctx context.Context, reviewerID int32) ([]domain.Review, error) {
	args := m.Called(ctx, reviewerID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

// mockStore runs every unit of work against the same set of mock repositories.
type mockStore struct {
	users    *MockUserRepo
	tools    *MockToolRepo
	bookings *MockBookingRepo
	reviews  *MockReviewRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		users:    new(MockUserRepo),
		tools:    new(MockToolRepo),
		bookings: new(MockBookingRepo),
		reviews:  new(MockReviewRepo),
	}
}

// expectAccount sets up the tool, booking and review lookups made when an account is loaded.
func (s *mockStore) expectAccount(userID int32, tools []domain.Tool, bookings []domain.Booking, reviews []domain.Review) {
	s.tools.On("ListByOwner", mock.Anything, userID).Return(tools, nil)
	s.bookings.On("ListByBorrower", mock.Anything, userID).Return(bookings, nil)
	s.reviews.On("ListByReviewer", mock.Anything, userID).Return(reviews, nil)
}

func (s *mockStore) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	return fn(s)
}
func (s *mockStore) Ping(ctx context.Context) error { return nil }

func (s *mockStore) Users() repository.UserRepository       { return s.users }
func (s *mockStore) Tools() repository.ToolRepository       { return s.tools }
func (s *mockStore) Bookings() repository.BookingRepository { return s.bookings }
func (s *mockStore) Reviews() repository.ReviewRepository   { return s.reviews }
