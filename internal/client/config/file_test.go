package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile_SourcesAndFormats(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json with string and integer durations", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{
			"api_base_url": "http://json.example/api",
			"request_timeout": "15s",
			"redirect_delay": 250000000
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := defaults()
		parseFile(cfg)

		assert.Equal(t, "http://json.example/api", cfg.APIBaseURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 250*time.Millisecond, cfg.RedirectDelay)
		assert.Equal(t, 60*time.Second, cfg.UploadTimeout, "absent fields keep their value")
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeTemp(t, "cfg.yml", "cache_backend: redis\nredis_addr: cache:6379\ncache_duration: 2m\n"+
			"otlp_endpoint: otel:4318\notlp_insecure: true\ntrace_sample_rate: 0.5\n")
		os.Args = []string{"testbin", "-c", path}

		cfg := defaults()
		parseFile(cfg)

		assert.Equal(t, CacheRedis, cfg.CacheBackend)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 2*time.Minute, cfg.CacheDuration)
		assert.Equal(t, "otel:4318", cfg.TraceEndpoint)
		assert.True(t, cfg.TraceInsecure)
		assert.Equal(t, 0.5, cfg.TraceSampleRate)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := defaults()
		cfg.StoragePath = "keep.db"
		parseFile(cfg)

		assert.Equal(t, "keep.db", cfg.StoragePath)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := writeTemp(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("bad duration → panics", func(t *testing.T) {
		bad := writeTemp(t, "bad.yaml", "request_timeout: later\n")
		os.Args = []string{"testbin", "-c", bad}

		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "nope.json")}

		require.Panics(t, func() { parseFile(defaults()) })
	})
}
