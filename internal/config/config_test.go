package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)

	assert.Equal(t, "WP-Migration-Scanner/0.1", cfg.Scanner.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Scanner.ProbeTimeout)
	assert.Equal(t, 10*time.Second, cfg.Scanner.FetchTimeout)
	assert.Equal(t, 15*time.Second, cfg.Scanner.PageTimeout)
	assert.Equal(t, 10*time.Second, cfg.Scanner.RedirectTimeout)
	assert.False(t, cfg.Scanner.AllowPrivateHosts)

	assert.Equal(t, float64(10), cfg.Scanner.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Scanner.RateLimit.BurstSize)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}
