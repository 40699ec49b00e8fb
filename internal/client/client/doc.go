// Package client contains the client-side transport for docflow.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     document service: account management, document upload and lifecycle,
//     signatures, verified downloads and notifications.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the access token obtained at login via an
//     interceptor, and maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound.
// The server message is kept in the wrapped error text.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
