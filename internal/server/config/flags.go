package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docflow/internal/flagx"
)

var serverFlags = []string{
	"-a", "-d", "-s", "-t", "-storage", "-dir", "-u", "-p", "-b", "-g", "-e",
	"-m", "-reaper-interval", "-retention", "-log-level",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            gRPC bind address (e.g., ":50051")
//	-d string            PostgreSQL DSN
//	-s string            JWT HMAC secret key
//	-t int               access token validity, minutes
//	-storage string      byte storage backend, fs or s3
//	-dir string          directory for the fs backend
//	-u string            S3 root user
//	-p string            S3 root password
//	-b string            S3 bucket name
//	-g string            S3 region
//	-e string            S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-m int               max upload size, bytes
//	-reaper-interval dur how often rejected documents are purged
//	-retention dur       how long rejected documents are kept
//	-log-level string    debug, info, warn or error
//
// os.Args is filtered with flagx.FilterArgs first so the -c/-config flag
// handled by parseFile does not trip this flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "byte storage backend (fs|s3)")
	fs.StringVar(&config.StorageDir, "dir", config.StorageDir, "storage directory for the fs backend")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.Int64Var(&config.MaxUploadSize, "m", config.MaxUploadSize, "max upload size (in bytes)")
	fs.DurationVar(&config.ReaperInterval, "reaper-interval", config.ReaperInterval, "reaper interval")
	fs.DurationVar(&config.RetentionPeriod, "retention", config.RetentionPeriod, "retention period for rejected documents")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
