package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/matches", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			{Path: "/jobs/", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	}
}

func TestLimiterEnforcesBurst(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/matches", "POST")
		assert.True(t, allowed, "request %d within burst", i)
		assert.Equal(t, 2, info.Limit)
	}

	allowed, info := limiter.Allow("10.0.0.1", "/matches", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesClients(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/matches", "POST")
		require.True(t, allowed)
	}
	exhausted, _ := limiter.Allow("10.0.0.1", "/matches", "POST")
	assert.False(t, exhausted)

	allowed, _ := limiter.Allow("10.0.0.2", "/matches", "POST")
	assert.True(t, allowed, "one client's exhaustion must not limit another")
}

func TestLimiterWhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.9"] = true
	cfg.Blacklist["10.0.0.6"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.9", "/matches", "POST")
		assert.True(t, allowed, "whitelisted clients are never limited")
	}

	allowed, _ := limiter.Allow("10.0.0.6", "/health", "POST")
	assert.False(t, allowed, "blacklisted clients are always refused")
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/matches", "POST")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	t.Run("health is unlimited", func(t *testing.T) {
		match := MatchEndpoint("/health", "GET", configs)
		require.NotNil(t, match)
		assert.Equal(t, 0, match.Limit)
	})

	t.Run("exact match", func(t *testing.T) {
		match := MatchEndpoint("/matches", "POST", configs)
		require.NotNil(t, match)
		assert.Equal(t, "/matches", match.Path)
	})

	t.Run("prefix match covers sub-resources", func(t *testing.T) {
		match := MatchEndpoint("/jobs/JOB_20250901143015/matches", "POST", configs)
		require.NotNil(t, match)
		assert.Equal(t, "/jobs/", match.Path)
	})

	t.Run("unmatched path uses default", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/candidates", "GET", configs))
	})
}
