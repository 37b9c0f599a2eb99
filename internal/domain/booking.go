package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

// bookingTransitions lists the allowed moves out of each status.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusApproved, BookingStatusRejected},
	BookingStatusApproved: {BookingStatusCompleted},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              int32         `json:"id"`
	ToolID          int32         `json:"tool_id"`
	BorrowerID      int32         `json:"borrower_id"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	Status          BookingStatus `json:"status"`
	TotalPriceCents int64         `json:"total_price_cents"` // Snapshot of the tool rate at creation time
	CreatedOn       time.Time     `json:"created_on"`
	Tool            *Tool         `json:"tool,omitempty"`     // Populated on reads that join tools
	Borrower        *User         `json:"borrower,omitempty"` // Populated on reads that join users
}
