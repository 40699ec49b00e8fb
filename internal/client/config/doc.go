// Package config loads runtime configuration for the docflow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a, --addr string           address:port of the backend gRPC endpoint
//	-i, --interval int          online status check interval (seconds)
//	    --timeout duration      deadline for a single request
//	-o, --download-dir string   directory verified downloads are written to
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "30s",
//	  "download_dir": "downloads"
//	}
package config
