package repository

import (
	"context"
	"database/sql"
	"fmt"

	"linguachat/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveRecord(ctx context.Context, record *model.ConversationRecord) error {
	query := `
		INSERT INTO conversation_records (id, session_id, message, is_user, language, success, error_message, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var errMessage sql.NullString
	if record.ErrorMessage != nil {
		errMessage.String = *record.ErrorMessage
		errMessage.Valid = true
	}
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.SessionID,
		record.Message,
		record.IsUser,
		record.Language,
		record.Success,
		errMessage,
		record.CreatedAt,
		record.UserID,
	)
	if err != nil {
		return fmt.Errorf("could not insert conversation record: %w", err)
	}
	return nil
}

const selectRecordColumns = "SELECT id, session_id, message, is_user, language, success, error_message, created_at, user_id FROM conversation_records"

func (r *sqliteRepository) ListRecords(ctx context.Context) ([]model.ConversationRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectRecordColumns+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *sqliteRepository) ListRecordsByUser(ctx context.Context, userID string) ([]model.ConversationRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectRecordColumns+" WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]model.ConversationRecord, error) {
	var records []model.ConversationRecord
	for rows.Next() {
		var rec model.ConversationRecord
		var errMessage sql.NullString
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Message, &rec.IsUser, &rec.Language, &rec.Success, &errMessage, &rec.CreatedAt, &rec.UserID); err != nil {
			return nil, err
		}
		if errMessage.Valid {
			rec.ErrorMessage = &errMessage.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *sqliteRepository) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversation_records").Scan(&count)
	return count, err
}

func (r *sqliteRepository) CountByDay(ctx context.Context) ([]model.DayCount, error) {
	query := `
		SELECT date(created_at) AS day, COUNT(*)
		FROM conversation_records
		GROUP BY day
		ORDER BY day DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.DayCount
	for rows.Next() {
		var c model.DayCount
		if err := rows.Scan(&c.Day, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *sqliteRepository) CountByLanguage(ctx context.Context) ([]model.LanguageCount, error) {
	query := `
		SELECT language, COUNT(*)
		FROM conversation_records
		GROUP BY language
		ORDER BY COUNT(*) DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.LanguageCount
	for rows.Next() {
		var c model.LanguageCount
		if err := rows.Scan(&c.Language, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *sqliteRepository) TopMessages(ctx context.Context, limit int) ([]model.MessageCount, error) {
	query := `
		SELECT message, COUNT(*)
		FROM conversation_records
		WHERE is_user = TRUE
		GROUP BY message
		ORDER BY COUNT(*) DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.MessageCount
	for rows.Next() {
		var c model.MessageCount
		if err := rows.Scan(&c.Message, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
