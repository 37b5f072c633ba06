package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "linguachat/backend/internal/errors"
	"linguachat/backend/internal/ingest"
	"linguachat/backend/internal/interfaces"
	"linguachat/backend/internal/service"
)

// ConversationHandler handles HTTP requests for the chat itself: sessions,
// message submissions, file attachments, credential replacement and quota.
type ConversationHandler struct {
	service interfaces.ConversationService
}

func NewConversationHandler(svc interfaces.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: svc}
}

// CreateSessionRequest is the DTO for opening a new conversation.
type CreateSessionRequest struct {
	UserID string `json:"user_id" validate:"omitempty,max=100" example:"user-42"`
}

// CredentialRequest is the DTO for replacing the stored API key.
type CredentialRequest struct {
	APIKey string `json:"api_key" validate:"required,min=1" example:"AIza..."`
}

// CreateSession godoc
// @Summary      Open a conversation session
// @Description  Creates a new session with an empty, append-only turn history.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionRequest  body  CreateSessionRequest  false  "Optional user id"
// @Success      201  {object}  model.Session
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *ConversationHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
			return
		}
		if err := validateRequest(&req); err != nil {
			respondWithError(w, err)
			return
		}
	}

	session, err := h.service.StartSession(r.Context(), req.UserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, session)
}

// GetSession godoc
// @Summary      Get a session
// @Description  Returns the session's turn history, state and active file.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  model.Session
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *ConversationHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// SubmitMessage godoc
// @Summary      Submit a user turn
// @Description  Runs one conversation turn: quota gate, language detection, translation, generation, translation back.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        sessionID      path  string                 true  "Session ID"
// @Param        submitRequest  body  service.SubmitRequest  true  "The user's message"
// @Success      200  {object}  service.SubmitResult
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages [post]
func (h *ConversationHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.service.Submit(r.Context(), sessionID, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// UploadFile godoc
// @Summary      Attach a file
// @Description  Uploads a PDF, DOCX, text or image file. Replaces the session's previous attachment.
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        file       formData  file    true  "The file to attach"
// @Success      200  {object}  model.UploadedFile
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      415  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/files [post]
func (h *ConversationHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := r.ParseMultipartForm(ingest.MaxFileSize); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid multipart form", app_errors.ErrValidation))
		return
	}
	part, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: missing form field 'file'", app_errors.ErrValidation))
		return
	}
	defer part.Close()

	data, err := io.ReadAll(io.LimitReader(part, ingest.MaxFileSize+1))
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: could not read upload", app_errors.ErrValidation))
		return
	}

	file, err := h.service.UploadFile(r.Context(), sessionID, header.Filename, data)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, file)
}

// ClearFile godoc
// @Summary      Remove the attached file
// @Tags         Files
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/files [delete]
func (h *ConversationHandler) ClearFile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.service.ClearFile(r.Context(), sessionID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// UpdateCredential godoc
// @Summary      Replace the API credential
// @Description  Stores a new API key, resets the daily usage counter and lifts any quota/credential suspension.
// @Tags         Credential
// @Accept       json
// @Produce      json
// @Param        credentialRequest  body  CredentialRequest  true  "The new API key"
// @Success      200  {object}  quota.Status
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/credential [post]
func (h *ConversationHandler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	status, err := h.service.SetCredential(r.Context(), req.APIKey)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}

// GetUsage godoc
// @Summary      Current quota status
// @Tags         Usage
// @Produce      json
// @Success      200  {object}  quota.Status
// @Router       /v1/usage [get]
func (h *ConversationHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Usage(r.Context()))
}
