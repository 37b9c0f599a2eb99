package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         int32     `json:"id"`
	ToolID     int32     `json:"tool_id"`
	ReviewerID int32     `json:"reviewer_id"`
	Reviewer   *User     `json:"reviewer,omitempty"`
	Tool       *Tool     `json:"tool,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return &ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
	}
	return nil
}
