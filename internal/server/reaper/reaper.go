// Package reaper purges rejected documents once their retention period has
// passed.
package reaper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/server/blobstore"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/repomanager"
)

const (
	DefaultInterval  = 24 * time.Hour
	DefaultRetention = 30 * 24 * time.Hour
)

// errSkipped marks a document that changed after it was selected.
var errSkipped = errors.New("document no longer eligible")

type Reaper struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blobstore.Store
	logger      logging.Logger
	interval    time.Duration
	retention   time.Duration
	now         func() time.Time
}

func New(db *sql.DB, m repomanager.RepositoryManager, store blobstore.Store, l logging.Logger,
	interval, retention time.Duration) *Reaper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Reaper{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      l.With("module", "reaper"),
		interval:    interval,
		retention:   retention,
		now:         time.Now,
	}
}

// Run purges once at start and then every interval until ctx is done.
func (r *Reaper) Run(ctx context.Context) error {
	r.logger.Info(ctx, "Starting reaper", "interval", r.interval, "retention", r.retention)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.tick(ctx)

		select {
		case <-ctx.Done():
			r.logger.Info(ctx, "Stopping reaper...")
			return nil
		case <-ticker.C:
		}
	}
}

func (r *Reaper) tick(ctx context.Context) {
	n, err := r.RunOnce(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Error(ctx, "reaper run failed", "error", err)
		return
	}
	if n > 0 {
		r.logger.Info(ctx, "rejected documents purged", "count", n)
	}
}

// RunOnce purges every REJECTED document rejected at or before now minus
// the retention period and returns how many were removed. Each document is
// handled in its own transaction; a failure is logged and the scan goes on.
func (r *Reaper) RunOnce(ctx context.Context) (int, error) {
	cutoff := r.now().Add(-r.retention)

	docs, err := r.repomanager.Documents(r.db).ListRejectedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error listing expired documents: %w", err)
	}

	purged := 0
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return purged, err
		}

		// A started document always completes, even if ctx is cancelled meanwhile.
		err := r.purge(context.WithoutCancel(ctx), d.ID, cutoff)
		switch {
		case err == nil:
			purged++
		case errors.Is(err, errSkipped):
			r.logger.Debug(ctx, "document skipped", "document_id", d.ID)
		default:
			r.logger.Error(ctx, "document purge failed", "document_id", d.ID, "error", err)
		}
	}
	return purged, nil
}

func (r *Reaper) purge(ctx context.Context, id string, cutoff time.Time) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		docs := r.repomanager.Documents(tx)

		doc, err := docs.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc.Status != models.StatusRejected || doc.RejectedAt == nil || doc.RejectedAt.After(cutoff) {
			return errSkipped
		}

		if err := r.store.Delete(ctx, doc.StorageKey); err != nil {
			if errors.Is(err, blobstore.ErrNotExist) {
				r.logger.Warn(ctx, "document bytes already missing", "document_id", doc.ID, "storage_key", doc.StorageKey)
			} else {
				r.logger.Error(ctx, "document bytes not deleted", "document_id", doc.ID, "storage_key", doc.StorageKey, "error", err)
			}
		}

		n, err := r.repomanager.Signatures(tx).DeleteByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		if err := docs.Delete(ctx, doc.ID); err != nil {
			return err
		}

		r.logger.Info(ctx, "document purged", "document_id", doc.ID, "name", doc.Name, "signatures", n)
		return nil
	})
}
