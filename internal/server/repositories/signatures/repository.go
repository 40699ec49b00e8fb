package signatures

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, sig *models.Signature) error
	// Stats returns the number of signatures and the highest order used so far.
	Stats(ctx context.Context, documentID string) (count int, maxOrder int, err error)
	ListByDocument(ctx context.Context, documentID string) ([]*models.Signature, error)
	Latest(ctx context.Context, documentID string) (*models.Signature, error)
	DeleteByDocument(ctx context.Context, documentID string) (int64, error)
}
