package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/docflow/internal/flagx"
	"github.com/spf13/pflag"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is first filtered down to the flags handled here, so the shared
// -c/-config flag does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "--addr", "-i", "--interval", "--timeout", "-o", "--download-dir",
	})

	fs := pflag.NewFlagSet("main", pflag.ContinueOnError)

	fs.StringVarP(&cfg.ServerEndpointAddr, "addr", "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.IntP("interval", "i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "deadline for a single request")
	fs.StringVarP(&cfg.DownloadDir, "download-dir", "o", cfg.DownloadDir, "directory for downloaded documents")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
