package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "linguachat/backend/internal/errors"
	mock_genai "linguachat/backend/internal/genai/mocks"
	"linguachat/backend/internal/model"
	"linguachat/backend/internal/prefs"
	"linguachat/backend/internal/quota"
	mock_repo "linguachat/backend/internal/repository/mocks"
	"linguachat/backend/internal/service"
	"linguachat/backend/internal/speech"
	"linguachat/backend/internal/translate"
)

type Mocks struct {
	generator *mock_genai.MockGenerator
	repo      *mock_repo.MockRepository
	quota     *quota.Controller
}

func setupConversationService(t *testing.T) (*service.ConversationService, Mocks) {
	t.Helper()
	mocks := Mocks{
		generator: mock_genai.NewMockGenerator(t),
		repo:      mock_repo.NewMockRepository(t),
		quota: quota.NewController(prefs.NewMemoryStore(), 4, "test-key",
			quota.WithClock(func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) })),
	}
	// Analytics writes are fire-and-forget; tests tolerate any number of them.
	mocks.repo.On("SaveRecord", mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := service.NewConversationService(mocks.generator, translate.NewNoop(), mocks.quota, mocks.repo)
	return svc, mocks
}

func startSession(t *testing.T, svc *service.ConversationService) string {
	t.Helper()
	sess, err := svc.StartSession(context.Background(), "user1")
	require.NoError(t, err)
	require.Equal(t, model.StateIdle, sess.State)
	return sess.ID
}

func TestConversationService_Submit_HappyPath(t *testing.T) {
	ctx := context.Background()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	mocks.generator.On("GenerateText", mock.Anything, "hola, ¿cómo estás?", (*model.UploadedFile)(nil)).
		Return("¡Buenos días!", nil).Once()

	result, err := svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "hola, ¿cómo estás?"})
	require.NoError(t, err)

	require.Len(t, result.Turns, 2)
	userTurn, assistantTurn := result.Turns[0], result.Turns[1]
	assert.True(t, userTurn.IsFromUser)
	assert.Equal(t, "hola, ¿cómo estás?", userTurn.Text)
	assert.Equal(t, "es", userTurn.Language, "detected from the Spanish diacritics")
	assert.False(t, assistantTurn.IsFromUser)
	assert.Equal(t, "¡Buenos días!", assistantTurn.Text)
	assert.Equal(t, "es", assistantTurn.Language, "reply carries the user's language tag")
	assert.Equal(t, model.StateIdle, result.State)
	assert.False(t, result.NeedsCredential)

	sess, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, sess.Turns, 2)
}

func TestConversationService_Submit_VoiceLanguageWinsOverDetection(t *testing.T) {
	ctx := context.Background()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	// Plain ASCII would detect as "en"; the voice tag must win.
	mocks.generator.On("GenerateText", mock.Anything, "bonjour monsieur", (*model.UploadedFile)(nil)).
		Return("Bonjour!", nil).Once()

	result, err := svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "bonjour monsieur", VoiceLanguage: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "fr", result.Turns[0].Language)
	assert.Equal(t, "fr", result.Turns[1].Language)
}

func TestConversationService_Submit_QuotaExhausted(t *testing.T) {
	ctx := context.Background()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	for i := 0; i < 4; i++ {
		mocks.quota.RecordUse()
	}

	result, err := svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "hello"})
	require.NoError(t, err)

	// Exactly one system turn, no generation call (the mock would flag one),
	// counter unchanged.
	require.Len(t, result.Turns, 1)
	assert.True(t, result.Turns[0].IsSystem)
	assert.Contains(t, result.Turns[0].Text, "4")
	assert.Equal(t, model.StateLimitExceeded, result.State)
	assert.True(t, result.NeedsCredential)
	assert.Equal(t, 0, mocks.quota.CheckLimit().Remaining)
}

func TestConversationService_Submit_QuotaExhaustedWritesRecord(t *testing.T) {
	ctx := context.Background()
	generator := mock_genai.NewMockGenerator(t)
	repo := mock_repo.NewMockRepository(t)
	quotaCtrl := quota.NewController(prefs.NewMemoryStore(), 4, "test-key",
		quota.WithClock(func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }))

	// The limit system turn is an appended turn like any other, so it gets
	// its own analytics row. The write is asynchronous; capture it.
	saved := make(chan *model.ConversationRecord, 1)
	repo.On("SaveRecord", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved <- args.Get(1).(*model.ConversationRecord) }).
		Return(nil).Once()

	svc := service.NewConversationService(generator, translate.NewNoop(), quotaCtrl, repo)
	sess, err := svc.StartSession(ctx, "user1")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		quotaCtrl.RecordUse()
	}

	result, err := svc.Submit(ctx, sess.ID, &service.SubmitRequest{Text: "hello"})
	require.NoError(t, err)
	require.Len(t, result.Turns, 1)

	select {
	case record := <-saved:
		assert.Equal(t, sess.ID, record.SessionID)
		assert.Equal(t, result.Turns[0].Text, record.Message)
		assert.False(t, record.IsUser)
		assert.False(t, record.Success)
		assert.Equal(t, "user1", record.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("no analytics record was written for the limit turn")
	}
}

func TestConversationService_Submit_SuspendedUntilNewCredential(t *testing.T) {
	ctx := context.Background()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	for i := 0; i < 4; i++ {
		mocks.quota.RecordUse()
	}
	_, err := svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "hello"})
	require.NoError(t, err)

	// While suspended, submissions append nothing and make no calls.
	result, err := svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "still there?"})
	require.NoError(t, err)
	assert.Empty(t, result.Turns)
	assert.True(t, result.NeedsCredential)

	// A new credential lifts the suspension and restores the allowance.
	status, err := svc.SetCredential(ctx, "fresh-key")
	require.NoError(t, err)
	assert.Equal(t, 4, status.Remaining)

	mocks.generator.On("GenerateText", mock.Anything, "hello again", (*model.UploadedFile)(nil)).
		Return("hi!", nil).Once()
	result, err = svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "hello again"})
	require.NoError(t, err)
	assert.Len(t, result.Turns, 2)
	assert.Equal(t, model.StateIdle, result.State)
}

func TestConversationService_Submit_InvalidKeySuspends(t *testing.T) {
	ctx := context.Background()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	mocks.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: API key not valid", app_errors.ErrInvalidAPIKey)).Once()

	result, err := svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "hello"})
	require.NoError(t, err)

	require.Len(t, result.Turns, 1, "only the user turn is kept")
	assert.Equal(t, model.StateCredentialInvalid, result.State)
	assert.True(t, result.NeedsCredential)
}

func TestConversationService_Submit_GenericFailureAppendsApology(t *testing.T) {
	ctx := context.Background()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	mocks.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: model overloaded", app_errors.ErrGenerationFailed)).Once()

	result, err := svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "hello"})
	require.NoError(t, err)

	require.Len(t, result.Turns, 2)
	assert.True(t, result.Turns[1].IsSystem)
	assert.Equal(t, model.StateIdle, result.State, "generic failures are terminal for the turn only")
	assert.False(t, result.NeedsCredential)
}

func TestConversationService_Submit_UnknownSession(t *testing.T) {
	svc, _ := setupConversationService(t)
	_, err := svc.Submit(context.Background(), "nope", &service.SubmitRequest{Text: "hello"})
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestConversationService_UploadReplacesActiveFile(t *testing.T) {
	ctx := context.Background()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	first, err := svc.UploadFile(ctx, sessionID, "a.txt", []byte("first"))
	require.NoError(t, err)
	assert.False(t, first.IsImage)

	// A new upload silently replaces the previous file.
	second, err := svc.UploadFile(ctx, sessionID, "b.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.True(t, second.IsImage)

	sess, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, sess.ActiveFile)
	assert.Equal(t, "b.png", sess.ActiveFile.Name)

	// The active file rides along on the next generation call.
	mocks.generator.On("GenerateText", mock.Anything, "what is this?", mock.MatchedBy(func(f *model.UploadedFile) bool {
		return f != nil && f.IsImage && f.Name == "b.png"
	})).Return("an image", nil).Once()

	_, err = svc.Submit(ctx, sessionID, &service.SubmitRequest{Text: "what is this?"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearFile(ctx, sessionID))
	sess, err = svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, sess.ActiveFile)
}

func TestConversationService_UploadUnsupportedType(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConversationService(t)
	sessionID := startSession(t, svc)

	_, err := svc.UploadFile(ctx, sessionID, "archive.zip", []byte("PK"))
	assert.ErrorIs(t, err, app_errors.ErrUnsupportedFileType)

	// Ingestion errors never produce a chat turn.
	sess, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, sess.Turns)
}

func TestConversationService_SpeechEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc, mocks := setupConversationService(t)
	sessionID := startSession(t, svc)

	mocks.generator.On("GenerateText", mock.Anything, "hola", (*model.UploadedFile)(nil)).
		Return("¡Hola!", nil).Once()

	events := make(chan speech.Event, 4)
	events <- speech.Event{Kind: speech.EventStart, SessionID: sessionID}
	events <- speech.ResultEvent(sessionID, "hola", "es")
	events <- speech.ErrorEvent(sessionID, app_errors.ErrSpeechRecognition)
	events <- speech.Event{Kind: speech.EventEnd, SessionID: sessionID}
	close(events)

	svc.ListenSpeech(ctx, events)

	sess, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	// Voice turn + assistant reply + the speech-failure notice.
	require.Len(t, sess.Turns, 3)
	assert.Equal(t, "es", sess.Turns[0].Language)
	assert.True(t, sess.Turns[2].IsSystem)
}
