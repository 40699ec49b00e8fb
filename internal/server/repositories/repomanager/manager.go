package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/documents"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/signatures"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services decide the transactional scope.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	Signatures(db dbx.DBTX) signatures.Repository
	Notifications(db dbx.DBTX) notifications.Repository
}
