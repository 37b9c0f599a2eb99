package service

import (
	"context"
	"strings"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type reviewService struct {
	store repository.Store
}

func NewReviewService(store repository.Store) ReviewService {
	return &reviewService{store: store}
}

func (s *reviewService) ListReviews(ctx context.Context, toolID int32) ([]domain.Review, error) {
	var reviews []domain.Review
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		reviews, err = tx.Reviews().ListByTool(ctx, toolID)
		return err
	})
	return reviews, err
}

// AddReview records a 1-5 rating by reviewerID. A missing or deleted tool is
// reported as a validation error on tool_id.
func (s *reviewService) AddReview(ctx context.Context, reviewerID, toolID int32, rating int, comment string) (*domain.Review, error) {
	if reviewerID <= 0 {
		return nil, ErrUnauthenticated
	}

	review := &domain.Review{
		ToolID:     toolID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		tool, err := tx.Tools().GetByID(ctx, toolID)
		if err != nil {
			return notFoundAs(err, &domain.ValidationError{Field: "tool_id", Message: "Tool not found"})
		}
		review.Tool = tool
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}
		reviewer, err := tx.Users().GetByID(ctx, reviewerID)
		if err != nil {
			return err
		}
		review.Reviewer = reviewer
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return review, nil
}
