package genai

import (
	"strings"

	app_errors "linguachat/backend/internal/errors"
)

// ErrorClassifier maps a raw provider error to one of the application's
// sentinel errors. Classification is best-effort substring matching against
// an external provider's free-text messages — brittle by nature, which is
// exactly why it sits behind this interface: a provider message change
// degrades to ErrGenerationFailed instead of silently miscategorizing.
type ErrorClassifier interface {
	Classify(err error) error
}

type geminiClassifier struct{}

// NewGeminiClassifier returns the classifier for Gemini-style error messages.
func NewGeminiClassifier() ErrorClassifier {
	return geminiClassifier{}
}

func (geminiClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "quota") || strings.Contains(message, "resource_exhausted") || strings.Contains(message, "resource has been exhausted"):
		return app_errors.ErrAPIQuotaExceeded
	case strings.Contains(message, "api key") || strings.Contains(message, "api_key_invalid") || strings.Contains(message, "invalid_argument"):
		return app_errors.ErrInvalidAPIKey
	case strings.Contains(message, "permission") || strings.Contains(message, "forbidden"):
		return app_errors.ErrAPIForbidden
	default:
		return app_errors.ErrGenerationFailed
	}
}
