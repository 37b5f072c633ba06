package service

import (
	"context"
	"fmt"

	"linguachat/backend/internal/model"
	"linguachat/backend/internal/repository"
)

// topMessagesLimit bounds the "most asked" aggregate on the dashboard.
const topMessagesLimit = 10

// AdminService serves the analytics dashboard: the raw record list and the
// aggregate views. It only ever reads; records are written by the
// conversation pipeline.
type AdminService struct {
	repo repository.Repository
}

func NewAdminService(repo repository.Repository) *AdminService {
	return &AdminService{repo: repo}
}

// Records returns every conversation record, newest first.
func (s *AdminService) Records(ctx context.Context) ([]model.ConversationRecord, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list records: %w", err)
	}
	return records, nil
}

// RecordsForUser returns one user's own records, newest first.
func (s *AdminService) RecordsForUser(ctx context.Context, userID string) ([]model.ConversationRecord, error) {
	records, err := s.repo.ListRecordsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list records for user: %w", err)
	}
	return records, nil
}

// Stats assembles the dashboard aggregates.
func (s *AdminService) Stats(ctx context.Context) (*model.ConversationStats, error) {
	total, err := s.repo.CountRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not count records: %w", err)
	}
	byDay, err := s.repo.CountByDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate by day: %w", err)
	}
	byLanguage, err := s.repo.CountByLanguage(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate by language: %w", err)
	}
	topMessages, err := s.repo.TopMessages(ctx, topMessagesLimit)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate top messages: %w", err)
	}

	return &model.ConversationStats{
		TotalRecords: total,
		ByDay:        byDay,
		ByLanguage:   byLanguage,
		TopMessages:  topMessages,
	}, nil
}
