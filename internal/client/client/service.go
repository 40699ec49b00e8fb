package client

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/api"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	LoggedIn() bool

	Register(ctx context.Context, name, email string, password []byte, role string) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) (*api.User, error)
	Logout()
	Me(ctx context.Context) (*api.User, error)
	DeleteUser(ctx context.Context, userID string) error

	Upload(ctx context.Context, fileName string, data []byte) (*api.Document, error)
	ListDocuments(ctx context.Context) ([]api.Document, error)
	GetDocument(ctx context.Context, documentID string) (*api.Document, error)
	AllowedTransitions(ctx context.Context, documentID string) ([]string, error)
	ChangeState(ctx context.Context, documentID, status string) (*api.Document, error)
	Reject(ctx context.Context, documentID string) (*api.Document, error)
	Download(ctx context.Context, documentID string) (*api.DownloadResponse, error)

	Sign(ctx context.Context, documentID string) (*api.Signature, error)
	ListSignatures(ctx context.Context, documentID string) ([]api.Signature, error)

	ListNotifications(ctx context.Context) ([]api.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) (*api.Notification, error)
}
