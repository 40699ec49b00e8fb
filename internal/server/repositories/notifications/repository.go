package notifications

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
}
