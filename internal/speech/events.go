// Package speech models the browser's speech-capture facility as an
// asynchronous event source instead of blocking calls. A capture session
// emits Start, then either Result or Error, then End; the orchestrator
// consumes Result events as voice submissions carrying the recognizer's
// language tag, which wins over heuristic detection.
package speech

import (
	app_errors "linguachat/backend/internal/errors"
)

// EventKind discriminates capture-session events.
type EventKind string

const (
	EventStart  EventKind = "start"
	EventResult EventKind = "result"
	EventError  EventKind = "error"
	EventEnd    EventKind = "end"
)

// Event is one message from a capture session.
type Event struct {
	Kind       EventKind `json:"kind"`
	SessionID  string    `json:"session_id"`
	Transcript string    `json:"transcript,omitempty"`
	Language   string    `json:"language,omitempty"`
	Err        string    `json:"error,omitempty"`
}

// ResultEvent builds the event for a finished recognition, carrying the
// recognizer's language tag.
func ResultEvent(sessionID, transcript, lang string) Event {
	return Event{Kind: EventResult, SessionID: sessionID, Transcript: transcript, Language: lang}
}

// ErrorEvent builds the event for a capture failure.
func ErrorEvent(sessionID string, err error) Event {
	return Event{Kind: EventError, SessionID: sessionID, Err: err.Error()}
}

// UnsupportedEvent reports that the capture source cannot run at all on this
// client. Callers should fall back to typed input.
func UnsupportedEvent(sessionID string) Event {
	return ErrorEvent(sessionID, app_errors.ErrSpeechUnsupported)
}
