package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/hashx"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/server/blobstore"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/notify"
	"github.com/dmitrijs2005/docflow/internal/server/permissions"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docflow/internal/server/workflow"
)

// signAttempts bounds retries after a sign_order collision.
const signAttempts = 3

// SignatureService is the signature ledger: an append-only, gapless,
// per-document sequence of content digests.
type SignatureService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blobstore.Store
	notifier    notify.Notifier
	logger      logging.Logger
	now         func() time.Time
}

func NewSignatureService(db *sql.DB, m repomanager.RepositoryManager, store blobstore.Store,
	n notify.Notifier, l logging.Logger) *SignatureService {
	return &SignatureService{
		db:          db,
		repomanager: m,
		store:       store,
		notifier:    n,
		logger:      l.With("module", "signatures"),
		now:         time.Now,
	}
}

// AddSignature appends a signature over the document's current bytes and
// moves the document to SIGNED. Everything happens in one transaction
// holding the document row lock.
func (s *SignatureService) AddSignature(ctx context.Context, documentID, signerID string) (*models.Signature, error) {
	var (
		sig *models.Signature
		tr  workflow.Transition
	)

	err := dbx.WithTxRetry(ctx, s.db, nil, signAttempts, common.ErrVersionConflict, func(ctx context.Context, tx dbx.DBTX) error {
		docs := s.repomanager.Documents(tx)
		sigs := s.repomanager.Signatures(tx)

		doc, err := docs.GetByIDForUpdate(ctx, documentID)
		if err != nil {
			return err
		}

		signer, err := activeUser(ctx, s.repomanager.Users(tx), signerID)
		if err != nil {
			return err
		}

		// The cap binds every signer, whatever the role.
		count, maxOrder, err := sigs.Stats(ctx, doc.ID)
		if err != nil {
			return err
		}
		if count >= models.MaxSignatures {
			return fmt.Errorf("%w: document %s already has the maximum of %d signatures",
				common.ErrLimitExceeded, doc.ID, models.MaxSignatures)
		}
		if !permissions.Can(signer.Role, permissions.ActionSign) {
			return fmt.Errorf("%w: role %s cannot sign documents", common.ErrForbidden, signer.Role)
		}
		if err := workflow.Check(workflow.AttemptSignature(signer.Role, doc.Status), signer.Role, doc.Status, models.StatusSigned); err != nil {
			return err
		}

		data, err := s.store.Get(ctx, doc.StorageKey)
		if err != nil {
			return err
		}

		now := s.now()
		sig = &models.Signature{
			DocumentID: doc.ID,
			UserID:     signer.ID,
			Order:      maxOrder + 1,
			Digest:     hashx.Sum(data),
			SignedAt:   now,
		}
		if err := sigs.Create(ctx, sig); err != nil {
			return err
		}

		tr = workflow.Apply(doc, models.StatusSigned, now)
		return docs.UpdateStatus(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "document signed", "document_id", sig.DocumentID, "signer_id", sig.UserID, "order", sig.Order)
	notifyOwner(ctx, s.notifier, s.logger, tr)
	return sig, nil
}

// ListSignatures returns the document's signatures in order.
func (s *SignatureService) ListSignatures(ctx context.Context, documentID, userID string) ([]*models.Signature, error) {
	user, err := activeUser(ctx, s.repomanager.Users(s.db), userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !canView(user, doc) {
		return nil, fmt.Errorf("%w: document %s", common.ErrNotFound, documentID)
	}
	return s.repomanager.Signatures(s.db).ListByDocument(ctx, doc.ID)
}
