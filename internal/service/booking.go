package service

import (
	"context"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/metrics"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/utils"
)

type bookingService struct {
	store repository.Store
}

func NewBookingService(store repository.Store) BookingService {
	return &bookingService{store: store}
}

// ListMyBookings returns only the bookings userID made as borrower.
func (s *bookingService) ListMyBookings(ctx context.Context, userID int32) ([]domain.Booking, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	var bookings []domain.Booking
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		bookings, err = tx.Bookings().ListByBorrower(ctx, userID)
		return err
	})
	return bookings, err
}

// CreateBooking prices the booking from the tool's current daily rate and
// stores it as pending. The date order is not enforced: a reversed range
// yields a negative total.
func (s *bookingService) CreateBooking(ctx context.Context, borrowerID, toolID int32, start, end time.Time) (*domain.Booking, error) {
	if borrowerID <= 0 {
		return nil, ErrUnauthenticated
	}

	booking := &domain.Booking{
		ToolID:     toolID,
		BorrowerID: borrowerID,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.BookingStatusPending,
	}

	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		tool, err := tx.Tools().GetByID(ctx, toolID)
		if err != nil {
			return notFoundAs(err, ErrToolNotFound)
		}

		price, err := utils.CalculateBookingPrice(tool.DailyRateCents, start, end)
		if err != nil {
			return &domain.ValidationError{Field: "end_date", Message: "date range is too long for this daily rate"}
		}
		booking.TotalPriceCents = price
		booking.Tool = tool
		if err := tx.Bookings().Create(ctx, booking); err != nil {
			return err
		}
		booking.Borrower, err = tx.Users().GetByID(ctx, borrowerID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	if end.Before(start) {
		logger.WarnContext(ctx, "Booking created with end date before start date",
			"booking_id", booking.ID, "start_date", utils.FormatDate(start), "end_date", utils.FormatDate(end),
			"total_price_cents", booking.TotalPriceCents)
	}
	metrics.IncBookingCreated(string(booking.Status))
	logger.InfoContext(ctx, "Booking created", "booking_id", booking.ID, "tool_id", toolID, "borrower_id", borrowerID)
	return booking, nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	return s.transition(ctx, ownerID, bookingID, domain.BookingStatusApproved)
}

func (s *bookingService) RejectBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	return s.transition(ctx, ownerID, bookingID, domain.BookingStatusRejected)
}

func (s *bookingService) CompleteBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	return s.transition(ctx, ownerID, bookingID, domain.BookingStatusCompleted)
}

// transition moves a booking to next on behalf of the booked tool's owner.
func (s *bookingService) transition(ctx context.Context, ownerID, bookingID int32, next domain.BookingStatus) (*domain.Booking, error) {
	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}

	var booking *domain.Booking
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		if booking, err = tx.Bookings().GetByID(ctx, bookingID); err != nil {
			return notFoundAs(err, ErrBookingNotFound)
		}
		if booking.Tool == nil || booking.Tool.OwnerID != ownerID {
			return ErrForbidden
		}
		if !booking.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		if err := tx.Bookings().UpdateStatus(ctx, bookingID, next); err != nil {
			return notFoundAs(err, ErrBookingNotFound)
		}
		booking.Status = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			logger.WarnContext(ctx, "Rejected booking transition", "booking_id", bookingID, "from", booking.Status, "to", next)
		}
		return nil, err
	}

	metrics.IncBookingTransition(string(next))
	logger.InfoContext(ctx, "Booking status changed", "booking_id", bookingID, "status", next)
	return booking, nil
}
