package repository

import (
	"context"
	"errors"

	"toolshare-backend/internal/domain"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate key")
	ErrForeignKey     = errors.New("foreign key violation")
	ErrCheckViolation = errors.New("check constraint violation")
)

// ConstraintError carries the violated constraint so callers can report which
// field clashed. errors.Is matches the wrapped sentinel.
type ConstraintError struct {
	Sentinel   error
	Constraint string
	Cause      error
}

func (e *ConstraintError) Error() string {
	return e.Sentinel.Error() + " (" + e.Constraint + "): " + e.Cause.Error()
}

func (e *ConstraintError) Is(target error) bool { return e.Sentinel == target }
func (e *ConstraintError) Unwrap() error        { return e.Cause }

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	List(ctx context.Context) ([]domain.Tool, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error)
	Update(ctx context.Context, tool *domain.Tool) error
	Delete(ctx context.Context, id int32) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	// GetByID skips bookings whose tool has been deleted.
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByTool(ctx context.Context, toolID int32) ([]domain.Review, error)
	ListByReviewer(ctx context.Context, reviewerID int32) ([]domain.Review, error)
}

// Tx exposes the repositories bound to one unit of work.
type Tx interface {
	Users() UserRepository
	Tools() ToolRepository
	Bookings() BookingRepository
	Reviews() ReviewRepository
}

// Store runs fn inside a transaction: committed when fn returns nil, rolled
// back when it returns an error or panics.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
}
