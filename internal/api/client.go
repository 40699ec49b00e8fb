package api

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls the document service over a connection, always with the
// JSON content subtype.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, MethodRegister, in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c, MethodLogin, in, opts)
}

func (c *Client) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, MethodMe, in, opts)
}

func (c *Client) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, MethodDeleteUser, in, opts)
}

func (c *Client) Upload(ctx context.Context, in *UploadRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c, MethodUpload, in, opts)
}

func (c *Client) Sign(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*SignatureResponse, error) {
	return invoke[SignatureResponse](ctx, c, MethodSign, in, opts)
}

func (c *Client) Reject(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c, MethodReject, in, opts)
}

func (c *Client) ChangeState(ctx context.Context, in *ChangeStateRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c, MethodChangeState, in, opts)
}

func (c *Client) ListDocuments(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListDocumentsResponse, error) {
	return invoke[ListDocumentsResponse](ctx, c, MethodListDocuments, in, opts)
}

func (c *Client) GetDocument(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c, MethodGetDocument, in, opts)
}

func (c *Client) AllowedTransitions(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*AllowedTransitionsResponse, error) {
	return invoke[AllowedTransitionsResponse](ctx, c, MethodAllowedTransitions, in, opts)
}

func (c *Client) ListSignatures(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*ListSignaturesResponse, error) {
	return invoke[ListSignaturesResponse](ctx, c, MethodListSignatures, in, opts)
}

func (c *Client) Download(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*DownloadResponse, error) {
	return invoke[DownloadResponse](ctx, c, MethodDownload, in, opts)
}

func (c *Client) ListNotifications(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListNotificationsResponse, error) {
	return invoke[ListNotificationsResponse](ctx, c, MethodListNotifications, in, opts)
}

func (c *Client) MarkNotificationRead(ctx context.Context, in *NotificationRequest, opts ...grpc.CallOption) (*NotificationResponse, error) {
	return invoke[NotificationResponse](ctx, c, MethodMarkNotificationRead, in, opts)
}
