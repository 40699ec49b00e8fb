// Package server initializes and runs the docflow server: it opens the
// database, applies migrations, picks the blob storage backend, and runs the
// gRPC endpoint next to the reaper until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/server/blobstore"
	"github.com/dmitrijs2005/docflow/internal/server/config"
	"github.com/dmitrijs2005/docflow/internal/server/notify"
	"github.com/dmitrijs2005/docflow/internal/server/reaper"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docflow/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/docflow/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
	reaper *reaper.Reaper
}

// seams for tests
var (
	openDB     = repomanager.OpenPostgres
	newRepoMgr = repomanager.NewPostgresRepositoryManager
	newS3Store = func(ctx context.Context, cfg blobstore.S3Config) (blobstore.Store, error) {
		return blobstore.NewS3Store(ctx, cfg)
	}
	logOutput io.Writer = os.Stdout
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(logOutput, parseLevel(c.LogLevel))

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoMgr()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	notifier := notify.NewStoreNotifier(rm.Notifications(db))

	us := services.NewUserService(db, rm, logger, c.SecretKey, c.AccessTokenValidityDuration)
	ds := services.NewDocumentService(db, rm, store, notifier, logger, c.MaxUploadSize)
	ss := services.NewSignatureService(db, rm, store, notifier, logger)
	ns := services.NewNotificationService(db, rm)

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, c.SecretKey, c.MaxUploadSize, us, ds, ss, ns)
	rp := reaper.New(db, rm, store, logger, c.ReaperInterval, c.RetentionPeriod)

	return &App{config: c, logger: logger, db: db, server: srv, reaper: rp}, nil
}

func newStore(ctx context.Context, c *config.Config) (blobstore.Store, error) {
	switch c.StorageBackend {
	case config.StorageFS:
		return blobstore.NewFSStore(c.StorageDir)
	case config.StorageS3:
		return newS3Store(ctx, blobstore.S3Config{
			User:     c.S3RootUser,
			Password: c.S3RootPassword,
			Bucket:   c.S3Bucket,
			Region:   c.S3Region,
			Endpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Run serves until ctx is cancelled or the process receives SIGINT, SIGTERM
// or SIGQUIT. The first component to fail stops the others.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.server.Run(ctx) })
	g.Go(func() error { return app.reaper.Run(ctx) })

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "error closing db", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")

	return err
}
