package http

import (
	"net/http"
	"strconv"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/session"
	"toolshare-backend/internal/utils"

	"github.com/gorilla/mux"
)

type ToolHandler struct {
	svc service.ToolService
}

func NewToolHandler(svc service.ToolService) *ToolHandler {
	return &ToolHandler{svc: svc}
}

type createToolRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	DailyRate   *float64 `json:"daily_rate"`
	Deposit     *float64 `json:"deposit"`
	Available   *bool    `json:"available"`
}

// patchToolRequest is the complete list of fields a PATCH may carry.
// Anything else in the body is rejected.
type patchToolRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	DailyRate   *float64 `json:"daily_rate"`
	Deposit     *float64 `json:"deposit"`
	Available   *bool    `json:"available"`
}

func (req patchToolRequest) toPatch() (domain.ToolPatch, error) {
	patch := domain.ToolPatch{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	}
	if req.DailyRate != nil {
		cents, err := amountField("daily_rate", *req.DailyRate)
		if err != nil {
			return patch, err
		}
		patch.DailyRateCents = &cents
	}
	if req.Deposit != nil {
		cents, err := amountField("deposit", *req.Deposit)
		if err != nil {
			return patch, err
		}
		patch.DepositCents = &cents
	}
	return patch, nil
}

func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.svc.ListTools(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapTools(tools))
}

func (h *ToolHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, service.ErrToolNotFound)
		return
	}

	tool, reviews, err := h.svc.GetTool(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapToolDetail(tool, reviews))
}

func (h *ToolHandler) CreateTool(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserIDFromContext(r.Context())

	var req createToolRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.DailyRate == nil {
		writeServiceError(w, r, &domain.ValidationError{Field: "daily_rate", Message: "is required"})
		return
	}

	tool := &domain.Tool{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   true,
	}
	if req.Available != nil {
		tool.Available = *req.Available
	}

	var err error
	if tool.DailyRateCents, err = amountField("daily_rate", *req.DailyRate); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.Deposit != nil {
		if tool.DepositCents, err = amountField("deposit", *req.Deposit); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	if err := h.svc.AddTool(r.Context(), userID, tool); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapTool(tool))
}

func (h *ToolHandler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, service.ErrToolNotFound)
		return
	}
	userID, _ := session.UserIDFromContext(r.Context())

	var req patchToolRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeServiceError(w, r, err)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tool, err := h.svc.UpdateTool(r.Context(), userID, id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapTool(tool))
}

func (h *ToolHandler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeServiceError(w, r, service.ErrToolNotFound)
		return
	}
	userID, _ := session.UserIDFromContext(r.Context())

	if err := h.svc.DeleteTool(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a positive integer path variable.
func pathID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func amountField(field string, amount float64) (int64, error) {
	cents, err := utils.CentsFromAmount(amount)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Message: err.Error()}
	}
	return cents, nil
}
