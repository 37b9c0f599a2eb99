package service_test

import (
	"context"
	"errors"
	"testing"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewService_AddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReviewService(store)

		store.tools.On("GetByID", mock.Anything, int32(1)).Return(&domain.Tool{ID: 1}, nil)
		store.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
		store.users.On("GetByID", mock.Anything, int32(2)).Return(&domain.User{ID: 2, Username: "bob"}, nil)

		rv, err := svc.AddReview(ctx, 2, 1, 4, " handy ")
		require.NoError(t, err)
		assert.Equal(t, "handy", rv.Comment)
		assert.Equal(t, "bob", rv.Reviewer.Username)
		require.NotNil(t, rv.Tool)
		assert.Equal(t, int32(1), rv.Tool.ID)
	})

	for _, rating := range []int{0, 6} {
		t.Run("OutOfRange", func(t *testing.T) {
			store := newMockStore()
			svc := service.NewReviewService(store)

			_, err := svc.AddReview(ctx, 2, 1, rating, "")
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "rating", verr.Field)
			store.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("UnknownTool", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReviewService(store)
		store.tools.On("GetByID", mock.Anything, int32(9)).Return(nil, repository.ErrNotFound)

		_, err := svc.AddReview(ctx, 2, 9, 3, "")
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "tool_id", verr.Field)
	})

	t.Run("Anonymous", func(t *testing.T) {
		_, err := service.NewReviewService(newMockStore()).AddReview(ctx, 0, 1, 3, "")
		assert.ErrorIs(t, err, service.ErrUnauthenticated)
	})
}

func TestReviewService_ListReviews(t *testing.T) {
	store := newMockStore()
	svc := service.NewReviewService(store)
	store.reviews.On("ListByTool", mock.Anything, int32(1)).Return([]domain.Review{{ID: 1}, {ID: 2}}, nil)

	reviews, err := svc.ListReviews(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
