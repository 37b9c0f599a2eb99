package postgres

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type reviewRepository struct {
	q Querier
}

func NewReviewRepository(q Querier) repository.ReviewRepository {
	return &reviewRepository{q: q}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (tool_id, reviewer_id, rating, comment)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.q.QueryRowContext(ctx, query, rv.ToolID, rv.ReviewerID, rv.Rating, rv.Comment).Scan(&rv.ID, &rv.CreatedAt)
	return mapError("reviews.create", err)
}

// reviewSelect joins the reviewer and the reviewed tool for the review views.
const reviewSelect = `SELECT r.id, r.tool_id, r.reviewer_id, r.rating, COALESCE(r.comment, ''), r.created_at,
	u.username, t.owner_id, t.name, t.daily_rate_cents
	FROM reviews r JOIN users u ON u.id = r.reviewer_id JOIN tools t ON t.id = r.tool_id`

func scanReview(s rowScanner, rv *domain.Review) error {
	reviewer := &domain.User{}
	tool := &domain.Tool{}
	err := s.Scan(&rv.ID, &rv.ToolID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
		&reviewer.Username, &tool.OwnerID, &tool.Name, &tool.DailyRateCents)
	if err != nil {
		return err
	}
	reviewer.ID = rv.ReviewerID
	tool.ID = rv.ToolID
	rv.Reviewer = reviewer
	rv.Tool = tool
	return nil
}

// ListByTool returns reviews oldest first.
func (r *reviewRepository) ListByTool(ctx context.Context, toolID int32) ([]domain.Review, error) {
	return r.list(ctx, "reviews.list_by_tool", reviewSelect+` WHERE r.tool_id = $1 ORDER BY r.created_at, r.id`, toolID)
}

// ListByReviewer includes reviews of deleted tools.
func (r *reviewRepository) ListByReviewer(ctx context.Context, reviewerID int32) ([]domain.Review, error) {
	return r.list(ctx, "reviews.list_by_reviewer", reviewSelect+` WHERE r.reviewer_id = $1 ORDER BY r.created_at, r.id`, reviewerID)
}

func (r *reviewRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, mapError(op, err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, mapError(op, rows.Err())
}
