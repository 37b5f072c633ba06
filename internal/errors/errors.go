package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error types
// without coupling them to implementation details like HTTP status codes. The API
// layer can then use `errors.Is()` to check for these specific errors and map
// them to the correct HTTP responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state of a resource (e.g., submitting a
	// message while a generation request is already in flight).
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller is not authorized to perform
	// the requested action (e.g., reading another user's analytics records).
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)

// Domain errors for the chat pipeline. These are raised by the quota
// controller, the generation client and the ingestion layer, and are caught
// at the orchestration boundary where they become user-visible turns or
// credential prompts. None of them may terminate a session.
var (
	// ErrQuotaExhausted is the local pre-flight error: the daily allowance
	// for this profile is used up. No provider call is made.
	ErrQuotaExhausted = errors.New("daily usage limit reached")

	// ErrAPIQuotaExceeded means the provider itself rejected the request for
	// quota/resource-exhaustion reasons. Triggers a credential prompt.
	ErrAPIQuotaExceeded = errors.New("provider quota exceeded")

	// ErrInvalidAPIKey means the provider rejected the credential. Triggers
	// a credential prompt.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrAPIForbidden means the provider denied access to the requested
	// model or feature.
	ErrAPIForbidden = errors.New("provider access forbidden")

	// ErrGenerationFailed is the explicit fallback category for any provider
	// failure that does not classify into one of the above.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrUnsupportedFileType is raised at upload time for file types the
	// ingestion layer cannot extract. It never produces a chat turn.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrSpeechUnsupported means the speech source reported that capture is
	// not available in the caller's environment.
	ErrSpeechUnsupported = errors.New("speech recognition not supported")

	// ErrSpeechRecognition is a terminal-for-the-capture recognizer failure.
	ErrSpeechRecognition = errors.New("speech recognition failed")
)
