package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguachat/backend/internal/model"
	"linguachat/backend/internal/repository"
)

func seedMemoryRepository(t *testing.T) *repository.MemoryRepository {
	t.Helper()
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	rows := []model.ConversationRecord{
		{ID: "r1", SessionID: "s1", Message: "hola", IsUser: true, Language: "es", Success: true, CreatedAt: base, UserID: "user1"},
		{ID: "r2", SessionID: "s1", Message: "¡Hola!", IsUser: false, Language: "es", Success: true, CreatedAt: base.Add(time.Second), UserID: "user1"},
		{ID: "r3", SessionID: "s2", Message: "hola", IsUser: true, Language: "es", Success: true, CreatedAt: base.Add(24 * time.Hour), UserID: "user2"},
		{ID: "r4", SessionID: "s2", Message: "hello", IsUser: true, Language: "en", Success: true, CreatedAt: base.Add(25 * time.Hour), UserID: "user2"},
	}
	for i := range rows {
		require.NoError(t, repo.SaveRecord(ctx, &rows[i]))
	}
	return repo
}

func TestMemoryRepository_Listing(t *testing.T) {
	repo := seedMemoryRepository(t)
	ctx := context.Background()

	all, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "r4", all[0].ID, "newest first")
	assert.Equal(t, "r1", all[3].ID)

	mine, err := repo.ListRecordsByUser(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "r2", mine[0].ID)

	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMemoryRepository_Aggregates(t *testing.T) {
	repo := seedMemoryRepository(t)
	ctx := context.Background()

	byDay, err := repo.CountByDay(ctx)
	require.NoError(t, err)
	require.Len(t, byDay, 2)
	assert.Equal(t, model.DayCount{Day: "2025-06-02", Count: 2}, byDay[0])
	assert.Equal(t, model.DayCount{Day: "2025-06-01", Count: 2}, byDay[1])

	byLang, err := repo.CountByLanguage(ctx)
	require.NoError(t, err)
	require.Len(t, byLang, 2)
	assert.Equal(t, model.LanguageCount{Language: "es", Count: 3}, byLang[0])

	// Only user messages rank; the limit truncates.
	top, err := repo.TopMessages(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, model.MessageCount{Message: "hola", Count: 2}, top[0])
}

func TestMemoryRepository_AppendOnlyCopies(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	record := &model.ConversationRecord{ID: "r1", Message: "original", IsUser: true}
	require.NoError(t, repo.SaveRecord(ctx, record))

	// Mutating the caller's struct after the save must not change the stored row.
	record.Message = "mutated"

	all, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "original", all[0].Message)
}

func TestMemoryRepository_ConcurrentWrites(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				_ = repo.SaveRecord(ctx, &model.ConversationRecord{
					ID:     fmt.Sprintf("r-%d-%d", n, j),
					IsUser: true,
				})
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, count)
}
