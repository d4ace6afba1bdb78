package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires a session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects a short session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "short")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
		t.Setenv("SERVER_PORT", "")
		t.Setenv("BACKEND_TIMEOUT", "")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8091", cfg.ServerPort)
		assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
		assert.Equal(t, uint(3), cfg.Backend.Retries)
		assert.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
		t.Setenv("BACKEND_TIMEOUT", "2s")
		t.Setenv("BACKEND_RETRIES", "5")
		t.Setenv("SESSION_SECURE", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
		assert.Equal(t, uint(5), cfg.Backend.Retries)
		assert.True(t, cfg.Session.Secure)
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
		t.Setenv("BACKEND_RETRIES", "many")
		_, err := Load()
		assert.Error(t, err)
	})
}
