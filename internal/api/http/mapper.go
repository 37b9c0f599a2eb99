package http

import (
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/utils"
)

// View structs define the JSON shapes. Nested entities appear only as
// summaries, so no view ever points back at its parent.

type UserView struct {
	ID        int32     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedOn time.Time `json:"created_on"`

	Tools    []ToolSummary `json:"tools"`
	Bookings []BookingView `json:"bookings"`
	Reviews  []ReviewView  `json:"reviews"`
}

type UserSummary struct {
	ID       int32  `json:"id"`
	Username string `json:"username"`
}

type ToolView struct {
	ID          int32     `json:"id"`
	OwnerID     int32     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	DailyRate   float64   `json:"daily_rate"`
	Deposit     float64   `json:"deposit"`
	Available   bool      `json:"available"`
	CreatedOn   time.Time `json:"created_on"`
}

type ToolDetailView struct {
	ToolView
	Owner   *UserSummary `json:"owner"`
	Reviews []ReviewView `json:"reviews"`
}

type ToolSummary struct {
	ID        int32   `json:"id"`
	Name      string  `json:"name"`
	DailyRate float64 `json:"daily_rate"`
}

type BookingView struct {
	ID         int32        `json:"id"`
	ToolID     int32        `json:"tool_id"`
	BorrowerID int32        `json:"borrower_id"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	Status     string       `json:"status"`
	TotalPrice float64      `json:"total_price"`
	CreatedOn  time.Time    `json:"created_on"`
	Tool       *ToolSummary `json:"tool,omitempty"`
	Borrower   *UserSummary `json:"borrower,omitempty"`
}

type ReviewView struct {
	ID         int32        `json:"id"`
	ToolID     int32        `json:"tool_id"`
	ReviewerID int32        `json:"reviewer_id"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	CreatedAt  time.Time    `json:"created_at"`
	Reviewer   *UserSummary `json:"reviewer,omitempty"`
	Tool       *ToolSummary `json:"tool,omitempty"`
}

// MapUser renders an account with its tools, bookings and reviews. The nested
// entries leave out the owner, borrower and reviewer, which is the user itself.
func MapUser(u *domain.User) *UserView {
	if u == nil {
		return nil
	}
	view := &UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		IsAdmin:   u.IsAdmin,
		CreatedOn: u.CreatedOn,
		Tools:     make([]ToolSummary, 0, len(u.Tools)),
		Bookings:  MapBookings(u.Bookings),
		Reviews:   MapReviews(u.Reviews),
	}
	for i := range u.Tools {
		view.Tools = append(view.Tools, *MapToolSummary(&u.Tools[i]))
	}
	for i := range view.Bookings {
		view.Bookings[i].Borrower = nil
	}
	for i := range view.Reviews {
		view.Reviews[i].Reviewer = nil
	}
	return view
}

func MapUserSummary(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username}
}

func MapToolSummary(t *domain.Tool) *ToolSummary {
	if t == nil {
		return nil
	}
	return &ToolSummary{
		ID:        t.ID,
		Name:      t.Name,
		DailyRate: utils.AmountFromCents(t.DailyRateCents),
	}
}

func MapTool(t *domain.Tool) ToolView {
	return ToolView{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Name:        t.Name,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		DailyRate:   utils.AmountFromCents(t.DailyRateCents),
		Deposit:     utils.AmountFromCents(t.DepositCents),
		Available:   t.Available,
		CreatedOn:   t.CreatedOn,
	}
}

func MapTools(tools []domain.Tool) []ToolView {
	views := make([]ToolView, 0, len(tools))
	for i := range tools {
		views = append(views, MapTool(&tools[i]))
	}
	return views
}

func MapToolDetail(t *domain.Tool, reviews []domain.Review) ToolDetailView {
	view := ToolDetailView{
		ToolView: MapTool(t),
		Owner:    MapUserSummary(t.Owner),
		Reviews:  MapReviews(reviews),
	}
	for i := range view.Reviews {
		view.Reviews[i].Tool = nil
	}
	return view
}

func MapBooking(b *domain.Booking) BookingView {
	return BookingView{
		ID:         b.ID,
		ToolID:     b.ToolID,
		BorrowerID: b.BorrowerID,
		StartDate:  utils.FormatDate(b.StartDate),
		EndDate:    utils.FormatDate(b.EndDate),
		Status:     string(b.Status),
		TotalPrice: utils.AmountFromCents(b.TotalPriceCents),
		CreatedOn:  b.CreatedOn,
		Tool:       MapToolSummary(b.Tool),
		Borrower:   MapUserSummary(b.Borrower),
	}
}

func MapBookings(bookings []domain.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, MapBooking(&bookings[i]))
	}
	return views
}

func MapReview(r *domain.Review) ReviewView {
	return ReviewView{
		ID:         r.ID,
		ToolID:     r.ToolID,
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		Reviewer:   MapUserSummary(r.Reviewer),
		Tool:       MapToolSummary(r.Tool),
	}
}

func MapReviews(reviews []domain.Review) []ReviewView {
	views := make([]ReviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, MapReview(&reviews[i]))
	}
	return views
}
