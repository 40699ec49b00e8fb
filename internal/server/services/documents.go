// Package services contains the server-side business logic: document
// upload and lifecycle, the signature ledger, users and notifications.
package services

import (
	"context"
	"database/sql"
	"errors"
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
	"github.com/dmitrijs2005/docflow/internal/server/repositories/users"
	"github.com/dmitrijs2005/docflow/internal/server/workflow"
)

// nameAttempts bounds how often Upload re-picks a name after losing a race
// for it to a concurrent upload by the same owner.
const nameAttempts = 5

// Download is the verified content of a signed document.
type Download struct {
	Document    *models.Document
	Data        []byte
	ContentType string
	Digest      string
}

type DocumentService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	store         blobstore.Store
	notifier      notify.Notifier
	logger        logging.Logger
	maxUploadSize int64
	now           func() time.Time
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, store blobstore.Store,
	n notify.Notifier, l logging.Logger, maxUploadSize int64) *DocumentService {
	return &DocumentService{
		db:            db,
		repomanager:   m,
		store:         store,
		notifier:      n,
		logger:        l.With("module", "documents"),
		maxUploadSize: maxUploadSize,
		now:           time.Now,
	}
}

// Upload validates req, stores the bytes and records a new IN_REVIEW
// document under a name unique for the owner.
func (s *DocumentService) Upload(ctx context.Context, req UploadRequest) (*models.Document, error) {
	if err := ValidateUpload(req, s.maxUploadSize); err != nil {
		return nil, err
	}

	owner, err := activeUser(ctx, s.repomanager.Users(s.db), req.OwnerID)
	if err != nil {
		return nil, err
	}
	if !permissions.Can(owner.Role, permissions.ActionUpload) {
		return nil, fmt.Errorf("%w: role %s cannot upload documents", common.ErrForbidden, owner.Role)
	}

	now := s.now()
	key := blobstore.NewKey(now)
	if err := s.store.Put(ctx, key, req.Data); err != nil {
		return nil, err
	}

	doc := &models.Document{
		UserID:     owner.ID,
		StorageKey: key,
		Size:       int64(len(req.Data)),
		Status:     models.StatusInReview,
	}
	base, ext := splitName(cleanFileName(req.FileName))

	err = dbx.WithTxRetry(ctx, s.db, nil, nameAttempts, common.ErrAlreadyExists, func(ctx context.Context, tx dbx.DBTX) error {
		docs := s.repomanager.Documents(tx)

		taken, err := docs.NamesLike(ctx, owner.ID, base, ext)
		if err != nil {
			return err
		}
		doc.Name = UniqueName(base, ext, taken)

		return docs.Create(ctx, doc)
	})
	if err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.logger.Warn(ctx, "orphaned document bytes", "storage_key", key, "error", derr)
		}
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	s.logger.Info(ctx, "document uploaded", "document_id", doc.ID, "owner_id", owner.ID, "name", doc.Name, "size", doc.Size)
	return doc, nil
}

// List returns every document for reviewing roles and the user's own
// documents otherwise, newest first.
func (s *DocumentService) List(ctx context.Context, userID string) ([]*models.Document, error) {
	user, err := activeUser(ctx, s.repomanager.Users(s.db), userID)
	if err != nil {
		return nil, err
	}

	docs := s.repomanager.Documents(s.db)
	if permissions.SeesAllDocuments(user.Role) {
		return docs.ListAll(ctx)
	}
	return docs.ListByOwner(ctx, user.ID)
}

// Get returns a document the user is allowed to see.
func (s *DocumentService) Get(ctx context.Context, documentID, userID string) (*models.Document, error) {
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
	return doc, nil
}

// ChangeState moves a document to target on behalf of the acting user and
// notifies the owner once the change is committed.
func (s *DocumentService) ChangeState(ctx context.Context, documentID, actorID string, target models.Status) (*models.Document, error) {
	if _, ok := models.ParseStatus(string(target)); !ok {
		return nil, invalid("unknown status %q", target)
	}

	var (
		doc *models.Document
		tr  workflow.Transition
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error

		docs := s.repomanager.Documents(tx)
		doc, err = docs.GetByIDForUpdate(ctx, documentID)
		if err != nil {
			return err
		}

		actor, err := activeUser(ctx, s.repomanager.Users(tx), actorID)
		if err != nil {
			return err
		}

		if err := workflow.Check(workflow.Attempt(actor.Role, doc.Status, target), actor.Role, doc.Status, target); err != nil {
			return err
		}

		tr = workflow.Apply(doc, target, s.now())
		return docs.UpdateStatus(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "document state changed", "document_id", doc.ID, "actor_id", actorID, "from", tr.From, "to", tr.To)
	notifyOwner(ctx, s.notifier, s.logger, tr)
	return doc, nil
}

// Reject is ChangeState to REJECTED.
func (s *DocumentService) Reject(ctx context.Context, documentID, actorID string) (*models.Document, error) {
	return s.ChangeState(ctx, documentID, actorID, models.StatusRejected)
}

// AllowedTransitions lists the statuses the user may move the document to.
func (s *DocumentService) AllowedTransitions(ctx context.Context, documentID, userID string) ([]models.Status, error) {
	doc, err := s.Get(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return workflow.AllowedTransitions(user.Role, doc.Status), nil
}

// VerifyAndFetch returns the document bytes only if they still hash to the
// digest recorded by the latest signature.
func (s *DocumentService) VerifyAndFetch(ctx context.Context, documentID string) (*Download, error) {
	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	latest, err := s.repomanager.Signatures(s.db).Latest(ctx, doc.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", common.ErrNoSignatures, doc.ID)
		}
		return nil, err
	}

	data, err := s.store.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, err
	}

	digest := hashx.Sum(data)
	if !hashx.Equal(digest, latest.Digest) {
		s.logger.Error(ctx, "document digest mismatch",
			"document_id", doc.ID, "signature_order", latest.Order, "expected", latest.Digest, "actual", digest)
		return nil, fmt.Errorf("%w: document %s does not match signature %d", common.ErrIntegrity, doc.ID, latest.Order)
	}

	return &Download{Document: doc, Data: data, ContentType: common.PDFContentType, Digest: digest}, nil
}

// Download is VerifyAndFetch for a document the user is allowed to see.
func (s *DocumentService) Download(ctx context.Context, documentID, userID string) (*Download, error) {
	if _, err := s.Get(ctx, documentID, userID); err != nil {
		return nil, err
	}
	return s.VerifyAndFetch(ctx, documentID)
}

// notifyOwner tells the owner about a committed transition. Failures are
// logged only; the transition stands.
func notifyOwner(ctx context.Context, n notify.Notifier, l logging.Logger, tr workflow.Transition) {
	if err := n.Notify(ctx, notify.NewStatusChanged(tr.Name, tr.To), tr.OwnerID); err != nil {
		l.Warn(ctx, "notification failed", "document_id", tr.DocumentID, "owner_id", tr.OwnerID, "error", err)
	}
}

// activeUser loads id and refuses deactivated accounts.
func activeUser(ctx context.Context, repo users.Repository, id string) (*models.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: %w", common.ErrForbidden, common.ErrInactiveUser)
	}
	return user, nil
}

// canView reports whether user may read doc: owners, reviewers and signers.
func canView(user *models.User, doc *models.Document) bool {
	return doc.UserID == user.ID ||
		permissions.Can(user.Role, permissions.ActionReview) ||
		permissions.Can(user.Role, permissions.ActionSign)
}
