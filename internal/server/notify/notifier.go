package notify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/notifications"
)

// Notifier delivers an event to one user.
type Notifier interface {
	Notify(ctx context.Context, e Event, userID string) error
}

// StoreNotifier persists rendered events as notification rows, which users
// read back through the notification service.
type StoreNotifier struct {
	repo notifications.Repository
}

func NewStoreNotifier(repo notifications.Repository) *StoreNotifier {
	return &StoreNotifier{repo: repo}
}

func (n *StoreNotifier) Notify(ctx context.Context, e Event, userID string) error {
	title, message, err := Render(e)
	if err != nil {
		return err
	}

	row := &models.Notification{
		UserID:  userID,
		Kind:    string(e.Kind),
		Title:   title,
		Message: message,
	}
	if err := n.repo.Create(ctx, row); err != nil {
		return fmt.Errorf("error storing notification: %w", err)
	}
	return nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event, string) error { return nil }
