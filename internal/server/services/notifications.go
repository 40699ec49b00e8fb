package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/repomanager"
)

type NotificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNotificationService(db *sql.DB, m repomanager.RepositoryManager) *NotificationService {
	return &NotificationService{db: db, repomanager: m}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.repomanager.Notifications(s.db).ListByUser(ctx, userID)
}

// MarkRead flags one of the user's notifications as read. Notifications of
// other users are reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	return s.repomanager.Notifications(s.db).MarkRead(ctx, id, userID)
}
