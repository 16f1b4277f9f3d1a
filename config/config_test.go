package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ghkit/config"
)

const sampleSettings = `
token: secret-token
base_url: https://ghe.example.com/api/v3/
user_agent: my-tool
timeout: 30s
retry:
  max_attempts: 5
  min_wait: 2s
  max_wait: 1m
`

func TestParse_full_document(t *testing.T) {
	t.Parallel()

	st, err := config.Parse([]byte(sampleSettings))

	require.NoError(t, err)
	assert.Equal(t, "secret-token", st.Token)
	assert.Equal(
		t,
		"https://ghe.example.com/api/v3/",
		st.BaseURL,
	)
	assert.Equal(t, "my-tool", st.UserAgent)
	assert.Equal(t, 30*time.Second, st.Timeout)
	assert.Equal(t, 5, st.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, st.Retry.MinWait)
	assert.Equal(t, time.Minute, st.Retry.MaxWait)
}

func TestParse_empty_document(t *testing.T) {
	t.Parallel()

	st, err := config.Parse(nil)

	require.NoError(t, err)
	assert.Equal(t, config.Settings{}, st)
}

func TestParse_malformed_yaml(t *testing.T) {
	t.Parallel()

	_, err := config.Parse([]byte("token: [unclosed"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing settings")
}

func TestLoad_reads_file(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(
		t,
		os.WriteFile(pa, []byte(sampleSettings), 0o600),
	)

	st, err := config.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, "secret-token", st.Token)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/settings.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading settings")
}

func TestTransport_carries_all_fields(t *testing.T) {
	t.Parallel()

	st, err := config.Parse([]byte(sampleSettings))
	require.NoError(t, err)

	cfg := st.Transport()

	assert.Equal(t, "secret-token", cfg.Token)
	assert.Equal(
		t,
		"https://ghe.example.com/api/v3/",
		cfg.BaseURL,
	)
	assert.Equal(t, "my-tool", cfg.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
}
