package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "docflow.DocumentService"

const (
	MethodRegister             = "Register"
	MethodLogin                = "Login"
	MethodMe                   = "Me"
	MethodDeleteUser           = "DeleteUser"
	MethodUpload               = "Upload"
	MethodSign                 = "Sign"
	MethodReject               = "Reject"
	MethodChangeState          = "ChangeState"
	MethodListDocuments        = "ListDocuments"
	MethodGetDocument          = "GetDocument"
	MethodAllowedTransitions   = "AllowedTransitions"
	MethodListSignatures       = "ListSignatures"
	MethodDownload             = "Download"
	MethodListNotifications    = "ListNotifications"
	MethodMarkNotificationRead = "MarkNotificationRead"
)

// FullMethod returns the gRPC path of method, e.g.
// "/docflow.DocumentService/Upload".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// DocumentServiceServer is implemented by the server.
type DocumentServiceServer interface {
	Register(context.Context, *RegisterRequest) (*UserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Me(context.Context, *Empty) (*UserResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*Empty, error)
	Upload(context.Context, *UploadRequest) (*DocumentResponse, error)
	Sign(context.Context, *DocumentRequest) (*SignatureResponse, error)
	Reject(context.Context, *DocumentRequest) (*DocumentResponse, error)
	ChangeState(context.Context, *ChangeStateRequest) (*DocumentResponse, error)
	ListDocuments(context.Context, *Empty) (*ListDocumentsResponse, error)
	GetDocument(context.Context, *DocumentRequest) (*DocumentResponse, error)
	AllowedTransitions(context.Context, *DocumentRequest) (*AllowedTransitionsResponse, error)
	ListSignatures(context.Context, *DocumentRequest) (*ListSignaturesResponse, error)
	Download(context.Context, *DocumentRequest) (*DownloadResponse, error)
	ListNotifications(context.Context, *Empty) (*ListNotificationsResponse, error)
	MarkNotificationRead(context.Context, *NotificationRequest) (*NotificationResponse, error)
}

// unary builds the method descriptor for one request/response pair.
func unary[Req, Resp any](name string, call func(DocumentServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DocumentServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DocumentServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocumentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, DocumentServiceServer.Register),
		unary(MethodLogin, DocumentServiceServer.Login),
		unary(MethodMe, DocumentServiceServer.Me),
		unary(MethodDeleteUser, DocumentServiceServer.DeleteUser),
		unary(MethodUpload, DocumentServiceServer.Upload),
		unary(MethodSign, DocumentServiceServer.Sign),
		unary(MethodReject, DocumentServiceServer.Reject),
		unary(MethodChangeState, DocumentServiceServer.ChangeState),
		unary(MethodListDocuments, DocumentServiceServer.ListDocuments),
		unary(MethodGetDocument, DocumentServiceServer.GetDocument),
		unary(MethodAllowedTransitions, DocumentServiceServer.AllowedTransitions),
		unary(MethodListSignatures, DocumentServiceServer.ListSignatures),
		unary(MethodDownload, DocumentServiceServer.Download),
		unary(MethodListNotifications, DocumentServiceServer.ListNotifications),
		unary(MethodMarkNotificationRead, DocumentServiceServer.MarkNotificationRead),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "docflow",
}

func RegisterDocumentServiceServer(s grpc.ServiceRegistrar, srv DocumentServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
