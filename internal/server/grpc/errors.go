package grpc

import (
	"errors"

	"github.com/dmitrijs2005/docflow/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorCodes is checked in order; the first match wins.
var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrUnauthorized, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrNotFound, codes.NotFound},
	{common.ErrForbidden, codes.PermissionDenied},
	{common.ErrValidation, codes.InvalidArgument},
	{common.ErrLimitExceeded, codes.ResourceExhausted},
	{common.ErrIntegrity, codes.DataLoss},
	{common.ErrNoSignatures, codes.FailedPrecondition},
	{common.ErrUserHasDocuments, codes.FailedPrecondition},
	{common.ErrUserHasSignatures, codes.FailedPrecondition},
	{common.ErrAlreadyExists, codes.AlreadyExists},
	{common.ErrVersionConflict, codes.Aborted},
}

// toStatus maps a domain error to a gRPC status. Unknown errors, storage
// failures included, become Internal with a generic message.
func toStatus(err error) *status.Status {
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			return status.New(m.code, err.Error())
		}
	}
	return status.New(codes.Internal, "internal error")
}
