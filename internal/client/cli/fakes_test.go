package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/docflow/internal/api"
	"github.com/dmitrijs2005/docflow/internal/client/client"
	"github.com/dmitrijs2005/docflow/internal/client/config"
)

// fakeClient records calls; methods not overridden panic through the nil
// embedded interface.
type fakeClient struct {
	client.Client

	token   string
	calls   []string
	err     error
	pingErr error

	regName, regEmail, regRole string
	password                   string

	uploadName string
	uploadData []byte

	docs     []api.Document
	download *api.DownloadResponse
}

func (f *fakeClient) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeClient) LoggedIn() bool { return f.token != "" }
func (f *fakeClient) Close() error   { return nil }
func (f *fakeClient) Logout()        { f.token = "" }

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) Register(_ context.Context, name, email string, password []byte, role string) (*api.User, error) {
	f.record("register")
	f.regName, f.regEmail, f.regRole, f.password = name, email, role, string(password)
	if f.err != nil {
		return nil, f.err
	}
	if role == "" {
		role = "EMPLOYEE"
	}
	return &api.User{ID: "u1", Email: email, Role: role}, nil
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) (*api.User, error) {
	f.record("login")
	f.password = string(password)
	if f.err != nil {
		return nil, f.err
	}
	f.token = "tok"
	return &api.User{ID: "u1", Email: email, Role: "SIGNER"}, nil
}

func (f *fakeClient) Me(context.Context) (*api.User, error) {
	f.record("me")
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: "u1", Name: "Sam", Email: "sam@example.com", Role: "SIGNER", IsActive: true}, nil
}

func (f *fakeClient) DeleteUser(_ context.Context, id string) error {
	f.record("deleteuser " + id)
	return f.err
}

func (f *fakeClient) Upload(_ context.Context, name string, data []byte) (*api.Document, error) {
	f.record("upload")
	f.uploadName, f.uploadData = name, data
	if f.err != nil {
		return nil, f.err
	}
	return &api.Document{ID: "d1", Name: name, Status: "IN_REVIEW"}, nil
}

func (f *fakeClient) ListDocuments(context.Context) ([]api.Document, error) {
	f.record("list")
	return f.docs, f.err
}

func (f *fakeClient) GetDocument(_ context.Context, id string) (*api.Document, error) {
	f.record("show " + id)
	if f.err != nil {
		return nil, f.err
	}
	signed := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	return &api.Document{ID: id, Name: "a.pdf", OwnerID: "u1", Status: "SIGNED", SignedAt: &signed}, nil
}

func (f *fakeClient) AllowedTransitions(_ context.Context, id string) ([]string, error) {
	f.record("transitions " + id)
	return []string{"SIGNED", "REJECTED"}, f.err
}

func (f *fakeClient) ChangeState(_ context.Context, id, status string) (*api.Document, error) {
	f.record("state " + id + " " + status)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Document{ID: id, Status: status}, nil
}

func (f *fakeClient) Reject(_ context.Context, id string) (*api.Document, error) {
	return f.ChangeState(context.Background(), id, "REJECTED")
}

func (f *fakeClient) Download(_ context.Context, id string) (*api.DownloadResponse, error) {
	f.record("download " + id)
	return f.download, f.err
}

func (f *fakeClient) Sign(_ context.Context, id string) (*api.Signature, error) {
	f.record("sign " + id)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Signature{DocumentID: id, Order: 2, Digest: "abc"}, nil
}

func (f *fakeClient) ListSignatures(_ context.Context, id string) ([]api.Signature, error) {
	f.record("signatures " + id)
	return []api.Signature{{Order: 1, SignerID: "s1", Digest: "abc"}}, f.err
}

func (f *fakeClient) ListNotifications(context.Context) ([]api.Notification, error) {
	f.record("notifications")
	return []api.Notification{{ID: "n1", Title: "Document status changed", Message: "The document 'a.pdf' changed status to: 'Signed'."}}, f.err
}

func (f *fakeClient) MarkNotificationRead(_ context.Context, id string) (*api.Notification, error) {
	f.record("read " + id)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Notification{ID: id, Read: true}, nil
}

// newTestApp returns an App on fc whose prompts read from input.
func newTestApp(t *testing.T, fc *fakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadDir = t.TempDir()
	return &App{config: cfg, client: fc, reader: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
