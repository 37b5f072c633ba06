package model

import "time"

// ChatTurn is one entry in a session's conversation history: either a user
// message, an assistant reply, or a system notice (quota reached, apology).
// Turns are immutable once created and the history is append-only for the
// lifetime of a session.
type ChatTurn struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	IsFromUser bool      `json:"is_from_user"`
	IsSystem   bool      `json:"is_system,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Language   string    `json:"language"`
}

// UploadedFile is the single active attachment of a session. Uploading a new
// file replaces the previous one wholesale.
type UploadedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"` // extracted text, or a base64 data URL for images
	IsImage bool   `json:"is_image"`
}

// UsageState is the persisted daily-quota bookkeeping. If ResetDate is not
// today's date, Count must be treated as 0 and ResetDate advanced before any
// read or write.
type UsageState struct {
	Count     int    `json:"count"`
	ResetDate string `json:"reset_date"` // YYYY-MM-DD
	Limit     int    `json:"limit"`
}

// ConversationRecord is the append-only analytics row written for every turn.
// The client only appends; the admin view only reads aggregates.
type ConversationRecord struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Message      string    `json:"message"`
	IsUser       bool      `json:"is_user"`
	Language     string    `json:"language"`
	Success      bool      `json:"success"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       string    `json:"user_id"`
}

// DayCount is one bucket of the per-day aggregate.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// LanguageCount is one bucket of the per-language aggregate.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// MessageCount is one bucket of the message-text aggregate used by the
// admin dashboard's "most asked" view.
type MessageCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ConversationStats bundles the aggregates the admin dashboard renders.
type ConversationStats struct {
	TotalRecords int             `json:"total_records"`
	ByDay        []DayCount      `json:"by_day"`
	ByLanguage   []LanguageCount `json:"by_language"`
	TopMessages  []MessageCount  `json:"top_messages"`
}

// SessionState names the orchestrator's per-session state machine states.
type SessionState string

const (
	// StateIdle means the session can accept a new submission.
	StateIdle SessionState = "idle"
	// StateAwaitingResponse means a generation request is in flight.
	StateAwaitingResponse SessionState = "awaiting_response"
	// StateLimitExceeded suspends turns until a new credential is supplied.
	StateLimitExceeded SessionState = "limit_exceeded"
	// StateCredentialInvalid suspends turns until a new credential is supplied.
	StateCredentialInvalid SessionState = "credential_invalid"
)

// Session is the materialized view of one conversation returned to clients.
type Session struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	State      SessionState  `json:"state"`
	Turns      []ChatTurn    `json:"turns"`
	ActiveFile *UploadedFile `json:"active_file,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
