package grpc

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/services"
)

type fakeUsers struct {
	users       map[string]*models.User
	passwords   map[string]string
	token       func(u *models.User) string
	deleteCalls [][2]string
	deleteErr   error
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u := &models.User{ID: "id-" + name, Name: name, Email: email, Role: role, IsActive: true}
	f.users[email] = u
	f.passwords[email] = password
	return u, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, ok := f.users[email]
	if !ok || f.passwords[email] != password {
		return "", nil, common.ErrUnauthorized
	}
	return f.token(u), u, nil
}

func (f *fakeUsers) Me(ctx context.Context, userID string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) DeleteUser(ctx context.Context, actorID, id string) error {
	f.deleteCalls = append(f.deleteCalls, [2]string{actorID, id})
	return f.deleteErr
}

type fakeDocuments struct {
	docs     map[string]*models.Document
	uploads  []services.UploadRequest
	err      error
	download *services.Download
}

func (f *fakeDocuments) Upload(ctx context.Context, req services.UploadRequest) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, req)
	d := &models.Document{ID: "doc-1", UserID: req.OwnerID, Name: req.FileName, Size: int64(len(req.Data)), Status: models.StatusInReview}
	f.docs[d.ID] = d
	return d, nil
}

func (f *fakeDocuments) List(ctx context.Context, userID string) ([]*models.Document, error) {
	var out []*models.Document
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, f.err
}

func (f *fakeDocuments) Get(ctx context.Context, documentID, userID string) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[documentID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return d, nil
}

func (f *fakeDocuments) ChangeState(ctx context.Context, documentID, actorID string, target models.Status) (*models.Document, error) {
	d, err := f.Get(ctx, documentID, actorID)
	if err != nil {
		return nil, err
	}
	d.Status = target
	return d, nil
}

func (f *fakeDocuments) Reject(ctx context.Context, documentID, actorID string) (*models.Document, error) {
	return f.ChangeState(ctx, documentID, actorID, models.StatusRejected)
}

func (f *fakeDocuments) AllowedTransitions(ctx context.Context, documentID, userID string) ([]models.Status, error) {
	if _, err := f.Get(ctx, documentID, userID); err != nil {
		return nil, err
	}
	return []models.Status{models.StatusSigned, models.StatusRejected}, nil
}

func (f *fakeDocuments) Download(ctx context.Context, documentID, userID string) (*services.Download, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.download, nil
}

type fakeSignatures struct {
	sigs []*models.Signature
	err  error
}

func (f *fakeSignatures) AddSignature(ctx context.Context, documentID, signerID string) (*models.Signature, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := &models.Signature{ID: "sig", DocumentID: documentID, UserID: signerID, Order: len(f.sigs) + 1, Digest: "ab"}
	f.sigs = append(f.sigs, s)
	return s, nil
}

func (f *fakeSignatures) ListSignatures(ctx context.Context, documentID, userID string) ([]*models.Signature, error) {
	return f.sigs, f.err
}

type fakeNotifications struct {
	rows []*models.Notification
}

func (f *fakeNotifications) List(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	for _, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return n, nil
		}
	}
	return nil, common.ErrNotFound
}

type fixture struct {
	users         *fakeUsers
	documents     *fakeDocuments
	signatures    *fakeSignatures
	notifications *fakeNotifications
	server        *GRPCServer
}

func newFixture(secret string, token func(u *models.User) string) *fixture {
	f := &fixture{
		users:         &fakeUsers{users: map[string]*models.User{}, passwords: map[string]string{}, token: token},
		documents:     &fakeDocuments{docs: map[string]*models.Document{}},
		signatures:    &fakeSignatures{},
		notifications: &fakeNotifications{},
	}
	f.server = NewGRPCServer("127.0.0.1:0", logging.Discard(), secret, 1<<20,
		f.users, f.documents, f.signatures, f.notifications)
	return f
}
