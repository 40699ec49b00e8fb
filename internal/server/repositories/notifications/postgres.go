// Package notifications stores the per-user notification inbox.
package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Notification) error {
	query :=
		`INSERT INTO notifications (user_id, kind, title, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, read, created_at, updated_at
		 `
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Kind, n.Title, n.Message).
		Scan(&n.ID, &n.Read, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns the user's notifications, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	query :=
		`SELECT id, user_id, kind, title, message, read, created_at, updated_at FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}
	defer rows.Close()

	var result []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Message, &n.Read, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkRead flags a notification owned by userID as read. Notifications of
// other users are reported as common.ErrNotFound.
func (r *PostgresRepository) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	query :=
		`UPDATE notifications SET read = TRUE, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, kind, title, message, read, created_at, updated_at
		 `
	var n models.Notification
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Message, &n.Read, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &n, nil
}
