package repository

import (
	"context"

	"linguachat/backend/internal/model"
)

// Repository defines the analytics-store operations. Records are append-only:
// the client writes one row per turn and the admin view reads aggregates;
// past records are never mutated.
type Repository interface {
	SaveRecord(ctx context.Context, record *model.ConversationRecord) error

	// ListRecords returns every record, newest first. Admin view only.
	ListRecords(ctx context.Context) ([]model.ConversationRecord, error)

	// ListRecordsByUser returns one user's own records, newest first.
	ListRecordsByUser(ctx context.Context, userID string) ([]model.ConversationRecord, error)

	CountRecords(ctx context.Context) (int, error)
	CountByDay(ctx context.Context) ([]model.DayCount, error)
	CountByLanguage(ctx context.Context) ([]model.LanguageCount, error)
	TopMessages(ctx context.Context, limit int) ([]model.MessageCount, error)
}
