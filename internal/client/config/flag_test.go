package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "short flags", args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "10", "-o", "out"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", OnlineCheckInterval: 10 * time.Second, DownloadDir: "out"}},
		{name: "long flags", args: []string{"cmd", "--addr=host:1", "--interval", "2", "--timeout", "5s", "--download-dir", "dl"},
			expected: &Config{ServerEndpointAddr: "host:1", OnlineCheckInterval: 2 * time.Second, RequestTimeout: 5 * time.Second, DownloadDir: "dl"}},
		{name: "unknown flags are ignored", args: []string{"cmd", "-c", "cli.json", "-x", "-a", ":1"},
			expected: &Config{ServerEndpointAddr: ":1"}},
		{name: "incorrect check interval", args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "abc"}, expectPanic: true},
		{name: "incorrect timeout", args: []string{"cmd", "--timeout", "later"}, expectPanic: true},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
