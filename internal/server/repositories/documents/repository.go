package documents

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Document, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Document, error)
	ListAll(ctx context.Context) ([]*models.Document, error)
	// NamesLike returns the owner's names equal to base+ext or shaped like base_N+ext.
	NamesLike(ctx context.Context, userID, base, ext string) ([]string, error)
	UpdateStatus(ctx context.Context, doc *models.Document) error
	ListRejectedBefore(ctx context.Context, cutoff time.Time) ([]*models.Document, error)
	Delete(ctx context.Context, id string) error
}
