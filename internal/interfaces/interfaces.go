package interfaces

import (
	"context"

	"linguachat/backend/internal/model"
	"linguachat/backend/internal/quota"
	"linguachat/backend/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// ConversationService defines the contract for the chat orchestration logic.
type ConversationService interface {
	StartSession(ctx context.Context, userID string) (*model.Session, error)
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	Submit(ctx context.Context, sessionID string, req *service.SubmitRequest) (*service.SubmitResult, error)
	UploadFile(ctx context.Context, sessionID, name string, data []byte) (*model.UploadedFile, error)
	ClearFile(ctx context.Context, sessionID string) error
	SetCredential(ctx context.Context, newKey string) (quota.Status, error)
	Usage(ctx context.Context) quota.Status
}

// AdminService defines the contract for the analytics dashboard reads.
type AdminService interface {
	Records(ctx context.Context) ([]model.ConversationRecord, error)
	RecordsForUser(ctx context.Context, userID string) ([]model.ConversationRecord, error)
	Stats(ctx context.Context) (*model.ConversationStats, error)
}
