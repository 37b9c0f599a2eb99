package postgres

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type bookingRepository struct {
	q Querier
}

func NewBookingRepository(q Querier) repository.BookingRepository {
	return &bookingRepository{q: q}
}

// bookingSelect joins the booked tool and the borrower so views and ownership
// checks have them at hand.
const bookingSelect = `SELECT b.id, b.tool_id, b.borrower_id, b.start_date, b.end_date, b.status, b.total_price_cents, b.created_on,
	t.owner_id, t.name, t.daily_rate_cents, u.username
	FROM bookings b JOIN tools t ON t.id = b.tool_id JOIN users u ON u.id = b.borrower_id`

func scanBooking(s rowScanner, b *domain.Booking) error {
	tool := &domain.Tool{}
	borrower := &domain.User{}
	err := s.Scan(&b.ID, &b.ToolID, &b.BorrowerID, &b.StartDate, &b.EndDate, &b.Status, &b.TotalPriceCents, &b.CreatedOn,
		&tool.OwnerID, &tool.Name, &tool.DailyRateCents, &borrower.Username)
	if err != nil {
		return err
	}
	tool.ID = b.ToolID
	borrower.ID = b.BorrowerID
	b.Tool = tool
	b.Borrower = borrower
	return nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (tool_id, borrower_id, start_date, end_date, status, total_price_cents)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, b.ToolID, b.BorrowerID, b.StartDate, b.EndDate, b.Status, b.TotalPriceCents).Scan(&b.ID, &b.CreatedOn)
	return mapError("bookings.create", err)
}

// GetByID reads a booking for status changes; bookings of a deleted tool read as not found.
func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	if err := scanBooking(r.q.QueryRowContext(ctx, bookingSelect+` WHERE b.id = $1 AND t.deleted_on IS NULL`, id), b); err != nil {
		return nil, mapError("bookings.get_by_id", err)
	}
	return b, nil
}

// ListByBorrower keeps bookings of deleted tools; they remain part of the borrower's history.
func (r *bookingRepository) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, bookingSelect+` WHERE b.borrower_id = $1 ORDER BY b.start_date, b.id`, borrowerID)
	if err != nil {
		return nil, mapError("bookings.list_by_borrower", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, mapError("bookings.list_by_borrower", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, mapError("bookings.list_by_borrower", rows.Err())
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	res, err := r.q.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return mapError("bookings.update_status", err)
	}
	return expectAffected(res)
}
