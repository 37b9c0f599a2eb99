package service

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
)

// SignupInput carries the fields a new account is created from.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Address  string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	CurrentUser(ctx context.Context, userID int32) (*domain.User, error)
}

type ToolService interface {
	ListTools(ctx context.Context) ([]domain.Tool, error)
	// GetTool returns the tool with its owner populated, plus its reviews.
	GetTool(ctx context.Context, id int32) (*domain.Tool, []domain.Review, error)
	AddTool(ctx context.Context, ownerID int32, tool *domain.Tool) error
	UpdateTool(ctx context.Context, userID, toolID int32, patch domain.ToolPatch) (*domain.Tool, error)
	DeleteTool(ctx context.Context, userID, toolID int32) error
}

type BookingService interface {
	ListMyBookings(ctx context.Context, userID int32) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, borrowerID, toolID int32, start, end time.Time) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	RejectBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
}

type ReviewService interface {
	ListReviews(ctx context.Context, toolID int32) ([]domain.Review, error)
	AddReview(ctx context.Context, reviewerID, toolID int32, rating int, comment string) (*domain.Review, error)
}
