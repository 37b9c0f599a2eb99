package http

import (
	"net/http"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/session"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type createReviewRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	toolID, ok := pathID(r, "tool_id")
	if !ok {
		writeJSON(w, http.StatusOK, []ReviewView{})
		return
	}

	reviews, err := h.svc.ListReviews(r.Context(), toolID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapReviews(reviews))
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserIDFromContext(r.Context())

	toolID, ok := pathID(r, "tool_id")
	if !ok {
		writeServiceError(w, r, &domain.ValidationError{Field: "tool_id", Message: "Tool not found"})
		return
	}

	var req createReviewRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.Rating == nil {
		writeServiceError(w, r, &domain.ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"})
		return
	}

	review, err := h.svc.AddReview(r.Context(), userID, toolID, *req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapReview(review))
}
