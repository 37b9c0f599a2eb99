package http

import (
	"context"
	"math"
	"net/http"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/session"
	"toolshare-backend/internal/utils"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type createBookingRequest struct {
	ToolID    int64  `json:"tool_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserIDFromContext(r.Context())

	bookings, err := h.svc.ListMyBookings(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapBookings(bookings))
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserIDFromContext(r.Context())

	var req createBookingRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.ToolID <= 0 {
		writeServiceError(w, r, &domain.ValidationError{Field: "tool_id", Message: "is required"})
		return
	}
	if req.ToolID > math.MaxInt32 {
		writeServiceError(w, r, service.ErrToolNotFound)
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		writeServiceError(w, r, &domain.ValidationError{Field: "start_date", Message: err.Error()})
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		writeServiceError(w, r, &domain.ValidationError{Field: "end_date", Message: err.Error()})
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), userID, int32(req.ToolID), start, end)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapBooking(booking))
}

func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.ApproveBooking)
}

func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.RejectBooking)
}

func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CompleteBooking)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, service.ErrBookingNotFound)
		return
	}
	userID, _ := session.UserIDFromContext(r.Context())

	booking, err := apply(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapBooking(booking))
}
