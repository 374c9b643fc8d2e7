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
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    func(c *Config)
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://10.0.0.5:8000/api", "-t", "12", "-i", "3", "-cache", "none", "-db", "/tmp/sk.db"},
			expected: func(c *Config) {
				c.APIBaseURL = "http://10.0.0.5:8000/api"
				c.RequestTimeout = 12 * time.Second
				c.OnlineCheckInterval = 3 * time.Second
				c.CacheBackend = CacheNone
				c.StoragePath = "/tmp/sk.db"
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"cmd", "-c", "conf.json", "-v", "-db", "x.db"},
			expected: func(c *Config) { c.StoragePath = "x.db" },
		},
		{
			name:     "no flags keep sub-second values",
			args:     []string{"cmd"},
			expected: func(c *Config) { c.RequestTimeout = 1500 * time.Millisecond },
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := defaults()
			config.RequestTimeout = 1500 * time.Millisecond

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			want := defaults()
			want.RequestTimeout = 1500 * time.Millisecond
			tt.expected(want)

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(want, config))
		})
	}
}
