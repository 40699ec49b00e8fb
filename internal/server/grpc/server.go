// Package grpc exposes the docflow services over gRPC with a JSON codec.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/docflow/internal/api"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type userSvc interface {
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
}

type documentSvc interface {
	Upload(ctx context.Context, req services.UploadRequest) (*models.Document, error)
	List(ctx context.Context, userID string) ([]*models.Document, error)
	Get(ctx context.Context, documentID, userID string) (*models.Document, error)
	ChangeState(ctx context.Context, documentID, actorID string, target models.Status) (*models.Document, error)
	Reject(ctx context.Context, documentID, actorID string) (*models.Document, error)
	AllowedTransitions(ctx context.Context, documentID, userID string) ([]models.Status, error)
	Download(ctx context.Context, documentID, userID string) (*services.Download, error)
}

type signatureSvc interface {
	AddSignature(ctx context.Context, documentID, signerID string) (*models.Signature, error)
	ListSignatures(ctx context.Context, documentID, userID string) ([]*models.Signature, error)
}

type notificationSvc interface {
	List(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
}

type GRPCServer struct {
	address       string
	logger        logging.Logger
	jwtSecret     []byte
	maxMsgSize    int
	users         userSvc
	documents     documentSvc
	signatures    signatureSvc
	notifications notificationSvc
}

var _ api.DocumentServiceServer = (*GRPCServer)(nil)

// NewGRPCServer wires the services behind one gRPC endpoint. maxUploadSize
// sizes the message limits; uploads travel base64 encoded inside one message.
func NewGRPCServer(address string, l logging.Logger, secretKey string, maxUploadSize int64,
	us userSvc, ds documentSvc, ss signatureSvc, ns notificationSvc) *GRPCServer {
	return &GRPCServer{
		address:       address,
		logger:        l.With("module", "grpc_server"),
		jwtSecret:     []byte(secretKey),
		maxMsgSize:    messageLimit(maxUploadSize),
		users:         us,
		documents:     ds,
		signatures:    ss,
		notifications: ns,
	}
}

// messageLimit leaves room for base64 expansion and the JSON envelope.
func messageLimit(maxUploadSize int64) int {
	return int(maxUploadSize/3*4) + 64*1024
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.errorInterceptor, s.accessTokenInterceptor),
		grpc.MaxRecvMsgSize(s.maxMsgSize),
		grpc.MaxSendMsgSize(s.maxMsgSize),
	)

	api.RegisterDocumentServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
