package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	app_errors "linguachat/backend/internal/errors"
	"linguachat/backend/internal/interfaces"
)

// AdminHandler serves the analytics dashboard reads. The privileged
// endpoints require the configured admin token; the per-user endpoint only
// ever returns the caller's own records.
type AdminHandler struct {
	service    interfaces.AdminService
	adminToken string
}

func NewAdminHandler(svc interfaces.AdminService, adminToken string) *AdminHandler {
	return &AdminHandler{service: svc, adminToken: adminToken}
}

func (h *AdminHandler) authorize(r *http.Request) error {
	if h.adminToken == "" {
		return fmt.Errorf("%w: admin access is not configured", app_errors.ErrPermission)
	}
	token := r.Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
		return fmt.Errorf("%w: invalid admin token", app_errors.ErrPermission)
	}
	return nil
}

// ListRecords godoc
// @Summary      All conversation records
// @Description  Returns every analytics record, newest first. Requires the admin token.
// @Tags         Admin
// @Produce      json
// @Param        X-Admin-Token  header  string  true  "Admin token"
// @Success      200  {array}   model.ConversationRecord
// @Failure      403  {object}  ErrorResponse
// @Router       /v1/admin/records [get]
func (h *AdminHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r); err != nil {
		respondWithError(w, err)
		return
	}
	records, err := h.service.Records(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

// GetStats godoc
// @Summary      Conversation aggregates
// @Description  Totals plus per-day, per-language and most-asked-message counts. Requires the admin token.
// @Tags         Admin
// @Produce      json
// @Param        X-Admin-Token  header  string  true  "Admin token"
// @Success      200  {object}  model.ConversationStats
// @Failure      403  {object}  ErrorResponse
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r); err != nil {
		respondWithError(w, err)
		return
	}
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// ListMyRecords godoc
// @Summary      Own conversation records
// @Description  Returns only the calling user's records, newest first.
// @Tags         Records
// @Produce      json
// @Param        X-User-ID  header  string  true  "User ID"
// @Success      200  {array}   model.ConversationRecord
// @Failure      403  {object}  ErrorResponse
// @Router       /v1/records [get]
func (h *AdminHandler) ListMyRecords(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondWithError(w, fmt.Errorf("%w: missing user identity", app_errors.ErrPermission))
		return
	}
	records, err := h.service.RecordsForUser(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}
