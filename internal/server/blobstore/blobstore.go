// Package blobstore keeps the raw document bytes outside the database.
// Two backends exist: a local directory and an S3-compatible bucket.
package blobstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/google/uuid"
)

// ErrNotExist reports a key with no bytes behind it. It matches
// common.ErrStorageIO, since a row pointing at nothing is an inconsistency.
var ErrNotExist = fmt.Errorf("%w: object does not exist", common.ErrStorageIO)

type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key returns ErrNotExist where
	// the backend can tell.
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh storage key partitioned by upload date.
func NewKey(now time.Time) string {
	return fmt.Sprintf("documents/%d/%02d/%02d/%s.pdf", now.Year(), now.Month(), now.Day(), uuid.New())
}

func ioError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", common.ErrStorageIO, op, key, err)
}
