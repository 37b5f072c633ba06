package repository

import (
	"context"
	"sort"
	"sync"

	"linguachat/backend/internal/model"
)

// MemoryRepository is an in-process Repository. It is the degradation target
// when SQLite is unavailable: records then live only for the current process,
// but the conversation keeps working. Ordering matches the SQLite queries.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []model.ConversationRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) SaveRecord(_ context.Context, record *model.ConversationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *MemoryRepository) ListRecords(_ context.Context) ([]model.ConversationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newestFirst(func(model.ConversationRecord) bool { return true }), nil
}

func (r *MemoryRepository) ListRecordsByUser(_ context.Context, userID string) ([]model.ConversationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newestFirst(func(rec model.ConversationRecord) bool { return rec.UserID == userID }), nil
}

func (r *MemoryRepository) CountRecords(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *MemoryRepository) CountByDay(_ context.Context) ([]model.DayCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDay := make(map[string]int)
	for _, rec := range r.records {
		byDay[rec.CreatedAt.UTC().Format("2006-01-02")]++
	}

	counts := make([]model.DayCount, 0, len(byDay))
	for day, count := range byDay {
		counts = append(counts, model.DayCount{Day: day, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Day > counts[j].Day })
	return counts, nil
}

func (r *MemoryRepository) CountByLanguage(_ context.Context) ([]model.LanguageCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byLang := make(map[string]int)
	for _, rec := range r.records {
		byLang[rec.Language]++
	}

	counts := make([]model.LanguageCount, 0, len(byLang))
	for lang, count := range byLang {
		counts = append(counts, model.LanguageCount{Language: lang, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Language < counts[j].Language
	})
	return counts, nil
}

func (r *MemoryRepository) TopMessages(_ context.Context, limit int) ([]model.MessageCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byMessage := make(map[string]int)
	for _, rec := range r.records {
		if rec.IsUser {
			byMessage[rec.Message]++
		}
	}

	counts := make([]model.MessageCount, 0, len(byMessage))
	for message, count := range byMessage {
		counts = append(counts, model.MessageCount{Message: message, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Message < counts[j].Message
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}

// newestFirst filters and reverses the append-ordered log. Callers must hold
// at least the read lock.
func (r *MemoryRepository) newestFirst(keep func(model.ConversationRecord) bool) []model.ConversationRecord {
	out := make([]model.ConversationRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		if keep(r.records[i]) {
			out = append(out, r.records[i])
		}
	}
	return out
}
