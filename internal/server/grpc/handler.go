package grpc

import (
	"context"

	"github.com/dmitrijs2005/docflow/internal/api"
	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/services"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.UserResponse, error) {

	s.logger.Info(ctx, "Registration request", "email", req.Email, "role", req.Role)

	role := models.RoleEmployee
	if req.Role != "" {
		r, ok := models.ParseRole(req.Role)
		if !ok {
			return nil, &common.ValidationError{Reason: "unknown role " + req.Role}
		}
		role = r
	}

	user, err := s.users.Register(ctx, req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	return &api.UserResponse{User: userToAPI(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	token, user, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &api.LoginResponse{AccessToken: token, User: userToAPI(user)}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *api.Empty) (*api.UserResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Me(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &api.UserResponse{User: userToAPI(user)}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *api.DeleteUserRequest) (*api.Empty, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteUser(ctx, p.UserID, req.UserID); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Upload(ctx context.Context, req *api.UploadRequest) (*api.DocumentResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Upload(ctx, services.UploadRequest{
		OwnerID:     p.UserID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Data:        req.Data,
	})
	if err != nil {
		return nil, err
	}

	return &api.DocumentResponse{Document: documentToAPI(doc)}, nil
}

func (s *GRPCServer) Sign(ctx context.Context, req *api.DocumentRequest) (*api.SignatureResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	sig, err := s.signatures.AddSignature(ctx, req.DocumentID, p.UserID)
	if err != nil {
		return nil, err
	}

	return &api.SignatureResponse{Signature: signatureToAPI(sig)}, nil
}

func (s *GRPCServer) Reject(ctx context.Context, req *api.DocumentRequest) (*api.DocumentResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Reject(ctx, req.DocumentID, p.UserID)
	if err != nil {
		return nil, err
	}

	return &api.DocumentResponse{Document: documentToAPI(doc)}, nil
}

func (s *GRPCServer) ChangeState(ctx context.Context, req *api.ChangeStateRequest) (*api.DocumentResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	target, ok := models.ParseStatus(req.Status)
	if !ok {
		return nil, &common.ValidationError{Reason: "unknown status " + req.Status}
	}

	doc, err := s.documents.ChangeState(ctx, req.DocumentID, p.UserID, target)
	if err != nil {
		return nil, err
	}

	return &api.DocumentResponse{Document: documentToAPI(doc)}, nil
}

func (s *GRPCServer) ListDocuments(ctx context.Context, _ *api.Empty) (*api.ListDocumentsResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.List(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	resp := &api.ListDocumentsResponse{Documents: make([]api.Document, 0, len(docs))}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, documentToAPI(d))
	}
	return resp, nil
}

func (s *GRPCServer) GetDocument(ctx context.Context, req *api.DocumentRequest) (*api.DocumentResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Get(ctx, req.DocumentID, p.UserID)
	if err != nil {
		return nil, err
	}

	return &api.DocumentResponse{Document: documentToAPI(doc)}, nil
}

func (s *GRPCServer) AllowedTransitions(ctx context.Context, req *api.DocumentRequest) (*api.AllowedTransitionsResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := s.documents.AllowedTransitions(ctx, req.DocumentID, p.UserID)
	if err != nil {
		return nil, err
	}

	resp := &api.AllowedTransitionsResponse{Statuses: make([]string, 0, len(statuses))}
	for _, st := range statuses {
		resp.Statuses = append(resp.Statuses, string(st))
	}
	return resp, nil
}

func (s *GRPCServer) ListSignatures(ctx context.Context, req *api.DocumentRequest) (*api.ListSignaturesResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	sigs, err := s.signatures.ListSignatures(ctx, req.DocumentID, p.UserID)
	if err != nil {
		return nil, err
	}

	resp := &api.ListSignaturesResponse{Signatures: make([]api.Signature, 0, len(sigs))}
	for _, sig := range sigs {
		resp.Signatures = append(resp.Signatures, signatureToAPI(sig))
	}
	return resp, nil
}

func (s *GRPCServer) Download(ctx context.Context, req *api.DocumentRequest) (*api.DownloadResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	dl, err := s.documents.Download(ctx, req.DocumentID, p.UserID)
	if err != nil {
		return nil, err
	}

	return &api.DownloadResponse{
		Document:    documentToAPI(dl.Document),
		ContentType: dl.ContentType,
		Digest:      dl.Digest,
		Data:        dl.Data,
	}, nil
}

func (s *GRPCServer) ListNotifications(ctx context.Context, _ *api.Empty) (*api.ListNotificationsResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.notifications.List(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	resp := &api.ListNotificationsResponse{Notifications: make([]api.Notification, 0, len(list))}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, notificationToAPI(n))
	}
	return resp, nil
}

func (s *GRPCServer) MarkNotificationRead(ctx context.Context, req *api.NotificationRequest) (*api.NotificationResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.notifications.MarkRead(ctx, req.NotificationID, p.UserID)
	if err != nil {
		return nil, err
	}

	return &api.NotificationResponse{Notification: notificationToAPI(n)}, nil
}
