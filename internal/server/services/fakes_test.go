package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/server/blobstore"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/notify"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/documents"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/signatures"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/users"
)

// samplePDF is the smallest document ValidateUpload accepts.
func samplePDF(marker string) []byte {
	return []byte("%PDF-1.4\n" +
		"1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n" +
		"2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n" +
		"3 0 obj << /Type /Page /Parent 2 0 R >> endobj\n" +
		"% " + marker + "\n" +
		"trailer << /Root 1 0 R >>\n%%EOF\n")
}

// pdfOfSize returns a valid document of exactly n bytes.
func pdfOfSize(n int) []byte {
	head := "%PDF-1.4\n1 0 obj << /Type /Page >> endobj\n"
	tail := "\n%%EOF\n"
	return []byte(head + "%" + strings.Repeat("x", n-len(head)-len(tail)-1) + tail)
}

// --- users ---

type memUsers struct {
	users.Repository
	byID      map[string]*models.User
	deleteErr error
	deleted   []string
}

func (m *memUsers) add(id string, role models.Role) *models.User {
	u := &models.User{ID: id, Name: id, Email: id + "@example.com", Role: role, IsActive: true}
	m.byID[id] = u
	return u
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, x := range m.byID {
		if x.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	cp := *u
	cp.ID = fmt.Sprintf("user-%d", len(m.byID)+1)
	cp.CreatedAt = time.Now()
	m.byID[cp.ID] = &cp
	return &cp, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// --- documents ---

type memDocs struct {
	documents.Repository
	mu         sync.Mutex
	seq        int
	byID       map[string]*models.Document
	createErrs []error
	updateErr  error
	clock      func() time.Time
}

func (m *memDocs) Create(ctx context.Context, d *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		return err
	}
	for _, x := range m.byID {
		if x.UserID == d.UserID && x.Name == d.Name {
			return common.ErrAlreadyExists
		}
	}
	m.seq++
	d.ID = fmt.Sprintf("doc-%d", m.seq)
	d.UploadedAt = m.clock().Add(time.Duration(m.seq) * time.Second)
	cp := *d
	m.byID[d.ID] = &cp
	return nil
}

func (m *memDocs) GetByID(ctx context.Context, id string) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDocs) GetByIDForUpdate(ctx context.Context, id string) (*models.Document, error) {
	return m.GetByID(ctx, id)
}

func (m *memDocs) list(keep func(*models.Document) bool) []*models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Document
	for _, d := range m.byID {
		if keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out
}

func (m *memDocs) ListByOwner(ctx context.Context, userID string) ([]*models.Document, error) {
	return m.list(func(d *models.Document) bool { return d.UserID == userID }), nil
}

func (m *memDocs) ListAll(ctx context.Context) ([]*models.Document, error) {
	return m.list(func(*models.Document) bool { return true }), nil
}

func (m *memDocs) NamesLike(ctx context.Context, userID, base, ext string) ([]string, error) {
	var names []string
	for _, d := range m.list(func(d *models.Document) bool { return d.UserID == userID }) {
		if d.Name == base+ext || (strings.HasPrefix(d.Name, base+"_") && strings.HasSuffix(d.Name, ext)) {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

func (m *memDocs) UpdateStatus(ctx context.Context, d *models.Document) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[d.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *d
	m.byID[d.ID] = &cp
	return nil
}

// --- signatures ---

type memSigs struct {
	signatures.Repository
	mu         sync.Mutex
	byDoc      map[string][]*models.Signature
	createErrs []error
}

func (m *memSigs) Create(ctx context.Context, s *models.Signature) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		return err
	}
	for _, x := range m.byDoc[s.DocumentID] {
		if x.Order == s.Order {
			return common.ErrVersionConflict
		}
	}
	s.ID = fmt.Sprintf("sig-%s-%d", s.DocumentID, s.Order)
	cp := *s
	m.byDoc[s.DocumentID] = append(m.byDoc[s.DocumentID], &cp)
	return nil
}

func (m *memSigs) Stats(ctx context.Context, documentID string) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	maxOrder := 0
	for _, s := range m.byDoc[documentID] {
		maxOrder = max(maxOrder, s.Order)
	}
	return len(m.byDoc[documentID]), maxOrder, nil
}

func (m *memSigs) ListByDocument(ctx context.Context, documentID string) ([]*models.Signature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.byDoc[documentID])
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memSigs) Latest(ctx context.Context, documentID string) (*models.Signature, error) {
	list, _ := m.ListByDocument(ctx, documentID)
	if len(list) == 0 {
		return nil, common.ErrNotFound
	}
	return list[len(list)-1], nil
}

// --- notifications ---

type memNotifications struct {
	notifications.Repository
	rows []*models.Notification
}

func (m *memNotifications) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	for _, n := range m.rows {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return n, nil
		}
	}
	return nil, common.ErrNotFound
}

// --- blob store ---

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	putErr  error
	deleted []string
}

func (s *memStore) Put(ctx context.Context, key string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(data)
	return nil
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", blobstore.ErrNotExist, key)
	}
	return slices.Clone(b), nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return fmt.Errorf("%w: %s", blobstore.ErrNotExist, key)
	}
	delete(s.data, key)
	s.deleted = append(s.deleted, key)
	return nil
}

// --- notifier ---

type sent struct {
	userID string
	event  notify.Event
}

type recordingNotifier struct {
	sent []sent
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, e notify.Event, userID string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sent{userID: userID, event: e})
	return nil
}

// --- repository manager ---

type fakeRepoManager struct {
	u *memUsers
	d *memDocs
	s *memSigs
	n *memNotifications
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) Documents(dbx.DBTX) documents.Repository         { return m.d }
func (m *fakeRepoManager) Signatures(dbx.DBTX) signatures.Repository       { return m.s }
func (m *fakeRepoManager) Notifications(dbx.DBTX) notifications.Repository { return m.n }

// env is a wired set of services over in-memory fakes. The sqlmock only
// sees transaction boundaries.
type env struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	rm       *fakeRepoManager
	store    *memStore
	notifier *recordingNotifier
	now      time.Time

	docs  *DocumentService
	sigs  *SignatureService
	users *UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	e := &env{
		db:   db,
		mock: mock,
		now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return e.now }

	e.rm = &fakeRepoManager{
		u: &memUsers{byID: map[string]*models.User{}},
		d: &memDocs{byID: map[string]*models.Document{}, clock: clock},
		s: &memSigs{byDoc: map[string][]*models.Signature{}},
		n: &memNotifications{},
	}
	e.store = &memStore{data: map[string][]byte{}}
	e.notifier = &recordingNotifier{}

	e.docs = NewDocumentService(db, e.rm, e.store, e.notifier, logging.Discard(), 1<<20)
	e.docs.now = clock
	e.sigs = NewSignatureService(db, e.rm, e.store, e.notifier, logging.Discard())
	e.sigs.now = clock
	e.users = NewUserService(db, e.rm, logging.Discard(), "test-secret", time.Hour)

	return e
}

// expectTx queues one committed transaction.
func (e *env) expectTx() {
	e.mock.ExpectBegin()
	e.mock.ExpectCommit()
}

// expectFailedTx queues one rolled back transaction.
func (e *env) expectFailedTx() {
	e.mock.ExpectBegin()
	e.mock.ExpectRollback()
}

func (e *env) upload(t *testing.T, ownerID, name string, data []byte) *models.Document {
	t.Helper()
	e.expectTx()
	doc, err := e.docs.Upload(context.Background(), UploadRequest{
		OwnerID: ownerID, FileName: name, ContentType: common.PDFContentType, Data: data,
	})
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}
	return doc
}

func (e *env) verifyMock(t *testing.T) {
	t.Helper()
	if err := e.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
