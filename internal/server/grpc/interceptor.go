package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/api"
	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods may be called without an access token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodRegister): true,
	api.FullMethod(api.MethodLogin):    true,
}

// accessTokenInterceptor resolves the access_token metadata to a principal
// for every method of the document service except the public ones.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] || !isServiceMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	principal, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(auth.WithPrincipal(ctx, principal), req)
}

func isServiceMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/"+api.ServiceName+"/")
}

// errorInterceptor turns domain errors returned by handlers into status
// errors and logs the ones clients only see as internal.
func (s *GRPCServer) errorInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}
	if _, ok := status.FromError(err); ok {
		return nil, err
	}

	st := toStatus(err)
	if st.Code() == codes.Internal {
		s.logger.Error(ctx, "request failed", "method", info.FullMethod, "error", err)
	} else {
		s.logger.Debug(ctx, "request refused", "method", info.FullMethod, "code", st.Code().String(), "error", err)
	}
	return nil, st.Err()
}

// principal returns the caller resolved by accessTokenInterceptor.
func principal(ctx context.Context) (*auth.Principal, error) {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return p, nil
}
