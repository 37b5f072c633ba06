package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "linguachat/backend/internal/errors"
	"linguachat/backend/internal/genai"
	"linguachat/backend/internal/ingest"
	"linguachat/backend/internal/language"
	"linguachat/backend/internal/model"
	"linguachat/backend/internal/quota"
	"linguachat/backend/internal/repository"
	"linguachat/backend/internal/speech"
	"linguachat/backend/internal/translate"
)

const (
	limitReachedMessage = "You have reached your daily limit of %d messages. Enter a new API key to continue."
	apologyMessage      = "Sorry, I ran into a problem answering that. Please try again."
	speechFailedMessage = "Voice input failed. Please try typing your message instead."

	// analyticsTimeout bounds the fire-and-forget record writes.
	analyticsTimeout = 5 * time.Second
)

// SubmitRequest is one user submission. VoiceLanguage is set only when the
// text came from speech capture; it then wins over heuristic detection.
type SubmitRequest struct {
	Text          string `json:"text" validate:"required,min=1,max=4000"`
	VoiceLanguage string `json:"voice_language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// SubmitResult reports what one submission did: the turns it appended, the
// session state afterwards, whether the client should prompt for a new
// credential, and the refreshed quota status.
type SubmitResult struct {
	Turns           []model.ChatTurn   `json:"turns"`
	State           model.SessionState `json:"state"`
	NeedsCredential bool               `json:"needs_credential"`
	Usage           quota.Status       `json:"usage"`
}

// session is the orchestrator's in-memory state for one conversation. The
// turn history is append-only for the session's lifetime.
type session struct {
	id         string
	userID     string
	state      model.SessionState
	turns      []model.ChatTurn
	activeFile *model.UploadedFile
	createdAt  time.Time
}

// ConversationService coordinates a user turn end to end: quota gate,
// language detection, translation to and from English, the generation call,
// and the fire-and-forget analytics writes. It also owns the recovery state
// that prompts for a new credential on quota or credential failures.
type ConversationService struct {
	mu         sync.Mutex
	sessions   map[string]*session
	generator  genai.Generator
	translator translate.Translator
	quota      *quota.Controller
	repo       repository.Repository
}

func NewConversationService(generator genai.Generator, translator translate.Translator, quotaCtrl *quota.Controller, repo repository.Repository) *ConversationService {
	return &ConversationService{
		sessions:   make(map[string]*session),
		generator:  generator,
		translator: translator,
		quota:      quotaCtrl,
		repo:       repo,
	}
}

// StartSession opens a new conversation for the given user.
func (s *ConversationService) StartSession(_ context.Context, userID string) (*model.Session, error) {
	if userID == "" {
		userID = "anonymous"
	}
	sess := &session{
		id:        uuid.NewString(),
		userID:    userID,
		state:     model.StateIdle,
		createdAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	slog.Info("Started session", "session_id", sess.id, "user_id", userID)
	return snapshot(sess), nil
}

// GetSession returns the session's current history and state.
func (s *ConversationService) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
	}
	return snapshot(sess), nil
}

// Submit runs the per-turn state machine: Idle -> AwaitingResponse -> Idle.
// A submission while a generation request is in flight is rejected rather
// than raced; the single-flight rule is enforced here, not left to the UI.
func (s *ConversationService) Submit(ctx context.Context, sessionID string, req *SubmitRequest) (*SubmitResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
	}

	switch sess.state {
	case model.StateAwaitingResponse:
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: a response is already being generated", app_errors.ErrConflict)
	case model.StateLimitExceeded, model.StateCredentialInvalid:
		// Suspended until a new credential arrives. No turn, no call.
		result := &SubmitResult{State: sess.state, NeedsCredential: true, Usage: s.quota.CheckLimit()}
		s.mu.Unlock()
		return result, nil
	}

	// Pre-flight quota gate: no generation call is made past the limit.
	status := s.quota.CheckLimit()
	if !status.CanUse {
		turn := s.appendTurnLocked(sess, limitTurn(status.Limit))
		sess.state = model.StateLimitExceeded
		s.recordTurn(sess, turn, false, nil)
		result := &SubmitResult{
			Turns:           []model.ChatTurn{turn},
			State:           sess.state,
			NeedsCredential: true,
			Usage:           status,
		}
		s.mu.Unlock()
		return result, nil
	}

	// Voice-provided language wins over detection.
	lang := req.VoiceLanguage
	if lang == "" {
		lang = language.Detect(req.Text)
	}

	userTurn := s.appendTurnLocked(sess, model.ChatTurn{
		Text:       req.Text,
		IsFromUser: true,
		Language:   lang,
	})
	sess.state = model.StateAwaitingResponse
	activeFile := sess.activeFile
	s.mu.Unlock()

	s.recordTurn(sess, userTurn, true, nil)

	prompt := req.Text
	if lang != language.Default {
		prompt = s.translator.Translate(ctx, req.Text, lang, language.Default)
	}

	answer, err := s.generator.GenerateText(ctx, prompt, activeFile)
	if err != nil {
		return s.finishWithError(sess, userTurn, lang, err)
	}

	if lang != language.Default {
		answer = s.translator.Translate(ctx, answer, language.Default, lang)
	}

	s.mu.Lock()
	assistantTurn := s.appendTurnLocked(sess, model.ChatTurn{
		Text:     answer,
		Language: lang,
	})
	sess.state = model.StateIdle
	s.mu.Unlock()

	s.recordTurn(sess, assistantTurn, true, nil)

	return &SubmitResult{
		Turns: []model.ChatTurn{userTurn, assistantTurn},
		State: model.StateIdle,
		Usage: s.quota.CheckLimit(),
	}, nil
}

// finishWithError maps a generation failure onto the session state: provider
// quota and credential failures suspend the session and ask for a new key,
// anything else appends an apology turn and returns to Idle. No failure
// terminates the session.
func (s *ConversationService) finishWithError(sess *session, userTurn model.ChatTurn, lang string, genErr error) (*SubmitResult, error) {
	errText := genErr.Error()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case errors.Is(genErr, app_errors.ErrQuotaExhausted), errors.Is(genErr, app_errors.ErrAPIQuotaExceeded):
		sess.state = model.StateLimitExceeded
	case errors.Is(genErr, app_errors.ErrInvalidAPIKey):
		sess.state = model.StateCredentialInvalid
	default:
		apology := s.appendTurnLocked(sess, model.ChatTurn{
			Text:     apologyMessage,
			IsSystem: true,
			Language: lang,
		})
		sess.state = model.StateIdle
		s.recordTurn(sess, apology, false, &errText)
		return &SubmitResult{
			Turns: []model.ChatTurn{userTurn, apology},
			State: model.StateIdle,
			Usage: s.quota.CheckLimit(),
		}, nil
	}

	slog.Warn("Generation failed, suspending session until a new credential is supplied.",
		"session_id", sess.id, "state", sess.state, "error", genErr)
	s.recordFailed(sess, userTurn, errText)
	return &SubmitResult{
		Turns:           []model.ChatTurn{userTurn},
		State:           sess.state,
		NeedsCredential: true,
		Usage:           s.quota.CheckLimit(),
	}, nil
}

// UploadFile ingests the upload and makes it the session's active file. A new
// upload silently replaces the previous one; at most one file is retained.
func (s *ConversationService) UploadFile(_ context.Context, sessionID, name string, data []byte) (*model.UploadedFile, error) {
	file, err := ingest.Ingest(name, data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
	}
	sess.activeFile = file
	slog.Info("Attached file to session", "session_id", sessionID, "file", name, "is_image", file.IsImage)
	return file, nil
}

// ClearFile removes the session's active file, if any.
func (s *ConversationService) ClearFile(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
	}
	sess.activeFile = nil
	return nil
}

// SetCredential stores a new API key, resets the local quota, and lifts the
// LimitExceeded/CredentialInvalid suspension on every session.
func (s *ConversationService) SetCredential(_ context.Context, newKey string) (quota.Status, error) {
	if err := s.quota.SetCredential(newKey); err != nil {
		return quota.Status{}, err
	}

	s.mu.Lock()
	for _, sess := range s.sessions {
		if sess.state == model.StateLimitExceeded || sess.state == model.StateCredentialInvalid {
			sess.state = model.StateIdle
		}
	}
	s.mu.Unlock()

	slog.Info("Credential replaced, usage counter reset.")
	return s.quota.CheckLimit(), nil
}

// Usage reports the current quota status.
func (s *ConversationService) Usage(_ context.Context) quota.Status {
	return s.quota.CheckLimit()
}

// ListenSpeech consumes capture-session events until the channel closes or
// the context ends. Result events become voice submissions with the
// recognizer's language tag; recognizer errors surface as a system turn.
func (s *ConversationService) ListenSpeech(ctx context.Context, events <-chan speech.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleSpeechEvent(ctx, ev)
		}
	}
}

func (s *ConversationService) handleSpeechEvent(ctx context.Context, ev speech.Event) {
	switch ev.Kind {
	case speech.EventResult:
		if ev.Transcript == "" {
			return
		}
		req := &SubmitRequest{Text: ev.Transcript, VoiceLanguage: ev.Language}
		if _, err := s.Submit(ctx, ev.SessionID, req); err != nil {
			slog.Warn("Voice submission failed.", "session_id", ev.SessionID, "error", err)
		}
	case speech.EventError:
		slog.Warn("Speech capture error.", "session_id", ev.SessionID, "error", ev.Err)
		s.mu.Lock()
		if sess, ok := s.sessions[ev.SessionID]; ok {
			errText := ev.Err
			turn := s.appendTurnLocked(sess, model.ChatTurn{
				Text:     speechFailedMessage,
				IsSystem: true,
				Language: language.Default,
			})
			s.recordTurn(sess, turn, false, &errText)
		}
		s.mu.Unlock()
	case speech.EventStart, speech.EventEnd:
		slog.Debug("Speech capture event.", "kind", ev.Kind, "session_id", ev.SessionID)
	}
}

// appendTurnLocked stamps identity and time onto the turn and appends it.
// Callers must hold s.mu.
func (s *ConversationService) appendTurnLocked(sess *session, turn model.ChatTurn) model.ChatTurn {
	turn.ID = uuid.NewString()
	turn.Timestamp = time.Now().UTC()
	if turn.Language == "" {
		turn.Language = language.Default
	}
	sess.turns = append(sess.turns, turn)
	return turn
}

// recordTurn writes the analytics row for a turn. Writes are fire-and-forget:
// a failed write is logged and never affects the conversation.
func (s *ConversationService) recordTurn(sess *session, turn model.ChatTurn, success bool, errMessage *string) {
	record := &model.ConversationRecord{
		ID:           uuid.NewString(),
		SessionID:    sess.id,
		Message:      turn.Text,
		IsUser:       turn.IsFromUser,
		Language:     turn.Language,
		Success:      success,
		ErrorMessage: errMessage,
		CreatedAt:    turn.Timestamp,
		UserID:       sess.userID,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analyticsTimeout)
		defer cancel()
		if err := s.repo.SaveRecord(ctx, record); err != nil {
			slog.Warn("Could not save conversation record.", "session_id", sess.id, "error", err)
		}
	}()
}

// recordFailed writes the analytics row for a turn that got no reply.
func (s *ConversationService) recordFailed(sess *session, userTurn model.ChatTurn, errMessage string) {
	failed := userTurn
	failed.IsFromUser = false
	failed.Text = ""
	s.recordTurn(sess, failed, false, &errMessage)
}

func limitTurn(limit int) model.ChatTurn {
	return model.ChatTurn{
		Text:     fmt.Sprintf(limitReachedMessage, limit),
		IsSystem: true,
		Language: language.Default,
	}
}

// snapshot copies the session for callers so the internal slice cannot be
// mutated outside the lock.
func snapshot(sess *session) *model.Session {
	turns := make([]model.ChatTurn, len(sess.turns))
	copy(turns, sess.turns)
	return &model.Session{
		ID:         sess.id,
		UserID:     sess.userID,
		State:      sess.state,
		Turns:      turns,
		ActiveFile: sess.activeFile,
		CreatedAt:  sess.createdAt,
	}
}
