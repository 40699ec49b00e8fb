package grpc

import (
	"github.com/dmitrijs2005/docflow/internal/api"
	"github.com/dmitrijs2005/docflow/internal/server/models"
)

func userToAPI(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func documentToAPI(d *models.Document) api.Document {
	return api.Document{
		ID:         d.ID,
		OwnerID:    d.UserID,
		Name:       d.Name,
		Size:       d.Size,
		Status:     string(d.Status),
		UploadedAt: d.UploadedAt,
		RejectedAt: d.RejectedAt,
		SignedAt:   d.SignedAt,
	}
}

func signatureToAPI(s *models.Signature) api.Signature {
	return api.Signature{
		ID:         s.ID,
		DocumentID: s.DocumentID,
		SignerID:   s.UserID,
		Order:      s.Order,
		Digest:     s.Digest,
		SignedAt:   s.SignedAt,
	}
}

func notificationToAPI(n *models.Notification) api.Notification {
	return api.Notification{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
