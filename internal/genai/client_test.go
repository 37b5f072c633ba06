package genai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "linguachat/backend/internal/errors"
	"linguachat/backend/internal/genai"
	"linguachat/backend/internal/genai/mocks"
	"linguachat/backend/internal/model"
	"linguachat/backend/internal/prefs"
	"linguachat/backend/internal/quota"
)

func setupClient(t *testing.T) (*genai.Client, *mocks.MockProvider, *quota.Controller) {
	provider := mocks.NewMockProvider(t)
	ctrl := quota.NewController(prefs.NewMemoryStore(), 4, "test-key",
		quota.WithClock(func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }))
	client := genai.NewClient(provider, genai.NewGeminiClassifier(), ctrl)
	return client, provider, ctrl
}

func TestClient_GenerateText_PlainPrompt(t *testing.T) {
	client, provider, ctrl := setupClient(t)

	provider.On("Generate", mock.Anything, "test-key", mock.MatchedBy(func(req *genai.Request) bool {
		return req.Prompt == "hello" && req.Inline == nil
	})).Return(&genai.Response{Text: "hi there"}, nil).Once()

	text, err := client.GenerateText(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
	assert.Equal(t, 3, ctrl.CheckLimit().Remaining)
}

func TestClient_GenerateText_DocumentContext(t *testing.T) {
	client, provider, _ := setupClient(t)

	file := &model.UploadedFile{Name: "notes.txt", Content: "the sky is blue"}
	provider.On("Generate", mock.Anything, "test-key", mock.MatchedBy(func(req *genai.Request) bool {
		return req.Prompt == "Based on this document content:\n\nthe sky is blue\n\nUser question: what color?" &&
			req.Inline == nil
	})).Return(&genai.Response{Text: "blue"}, nil).Once()

	text, err := client.GenerateText(context.Background(), "what color?", file)
	require.NoError(t, err)
	assert.Equal(t, "blue", text)
}

func TestClient_GenerateText_ImagePayload(t *testing.T) {
	client, provider, _ := setupClient(t)

	file := &model.UploadedFile{
		Name:    "photo.png",
		Content: "data:image/png;base64,aGVsbG8=",
		IsImage: true,
	}
	provider.On("Generate", mock.Anything, "test-key", mock.MatchedBy(func(req *genai.Request) bool {
		return req.Prompt == "Analyze this image and answer: what is this?" &&
			req.Inline != nil &&
			req.Inline.MIMEType == "image/png" &&
			req.Inline.Data == "aGVsbG8="
	})).Return(&genai.Response{Text: "a greeting"}, nil).Once()

	text, err := client.GenerateText(context.Background(), "what is this?", file)
	require.NoError(t, err)
	assert.Equal(t, "a greeting", text)
}

func TestClient_GenerateText_QuotaExhaustedFailsFast(t *testing.T) {
	client, _, ctrl := setupClient(t)

	for i := 0; i < 4; i++ {
		ctrl.RecordUse()
	}

	_, err := client.GenerateText(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, app_errors.ErrQuotaExhausted)
	// No provider call was made; the mock would fail on an unexpected call.
	assert.Equal(t, 0, ctrl.CheckLimit().Remaining)
}

func TestClient_GenerateText_EmptyResponseFallback(t *testing.T) {
	client, provider, _ := setupClient(t)

	provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(&genai.Response{Text: ""}, nil).Once()

	text, err := client.GenerateText(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestClient_GenerateText_FailureDoesNotRecordUse(t *testing.T) {
	client, provider, ctrl := setupClient(t)

	provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("provider returned 500 INTERNAL: something broke")).Once()

	_, err := client.GenerateText(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, app_errors.ErrGenerationFailed)
	assert.Equal(t, 4, ctrl.CheckLimit().Remaining)
}

func TestClient_GenerateText_ClassifiesProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    error
	}{
		{"quota wording", "provider returned 429 RESOURCE_EXHAUSTED: Quota exceeded for requests", app_errors.ErrAPIQuotaExceeded},
		{"invalid key", "provider returned 400 INVALID_ARGUMENT: API key not valid. Please pass a valid API key.", app_errors.ErrInvalidAPIKey},
		{"forbidden", "provider returned 403 PERMISSION_DENIED: Permission denied on resource", app_errors.ErrAPIForbidden},
		{"unknown", "provider returned 503 UNAVAILABLE: The model is overloaded", app_errors.ErrGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, provider, _ := setupClient(t)
			provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, errors.New(tt.message)).Once()

			_, err := client.GenerateText(context.Background(), "hello", nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
