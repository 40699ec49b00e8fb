package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docflow/internal/api"
	"github.com/dmitrijs2005/docflow/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.Client
	health      healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewDocflowClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient dials the endpoint. Extra options are appended after the
// defaults, so tests can swap the dialer.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

// Ping asks the health service whether the document service is serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, name, email string, password []byte, role string) (*api.User, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Name: name, Email: email, Password: string(password), Role: role})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

// Login keeps the returned access token for all later calls.
func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*api.User, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.AccessToken)
	return &resp.User, nil
}

func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	resp, err := s.client.Me(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.client.DeleteUser(ctx, &api.DeleteUserRequest{UserID: userID}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Upload(ctx context.Context, fileName string, data []byte) (*api.Document, error) {
	resp, err := s.client.Upload(ctx, &api.UploadRequest{FileName: fileName, ContentType: common.PDFContentType, Data: data})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Document, nil
}

func (s *GRPCClient) ListDocuments(ctx context.Context) ([]api.Document, error) {
	resp, err := s.client.ListDocuments(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Documents, nil
}

func (s *GRPCClient) GetDocument(ctx context.Context, documentID string) (*api.Document, error) {
	resp, err := s.client.GetDocument(ctx, &api.DocumentRequest{DocumentID: documentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Document, nil
}

func (s *GRPCClient) AllowedTransitions(ctx context.Context, documentID string) ([]string, error) {
	resp, err := s.client.AllowedTransitions(ctx, &api.DocumentRequest{DocumentID: documentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Statuses, nil
}

func (s *GRPCClient) ChangeState(ctx context.Context, documentID, status string) (*api.Document, error) {
	resp, err := s.client.ChangeState(ctx, &api.ChangeStateRequest{DocumentID: documentID, Status: status})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Document, nil
}

func (s *GRPCClient) Reject(ctx context.Context, documentID string) (*api.Document, error) {
	resp, err := s.client.Reject(ctx, &api.DocumentRequest{DocumentID: documentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Document, nil
}

func (s *GRPCClient) Download(ctx context.Context, documentID string) (*api.DownloadResponse, error) {
	resp, err := s.client.Download(ctx, &api.DocumentRequest{DocumentID: documentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Sign(ctx context.Context, documentID string) (*api.Signature, error) {
	resp, err := s.client.Sign(ctx, &api.DocumentRequest{DocumentID: documentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Signature, nil
}

func (s *GRPCClient) ListSignatures(ctx context.Context, documentID string) ([]api.Signature, error) {
	resp, err := s.client.ListSignatures(ctx, &api.DocumentRequest{DocumentID: documentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Signatures, nil
}

func (s *GRPCClient) ListNotifications(ctx context.Context) ([]api.Notification, error) {
	resp, err := s.client.ListNotifications(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Notifications, nil
}

func (s *GRPCClient) MarkNotificationRead(ctx context.Context, notificationID string) (*api.Notification, error) {
	resp, err := s.client.MarkNotificationRead(ctx, &api.NotificationRequest{NotificationID: notificationID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Notification, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %s", st.Message())
	}
}
