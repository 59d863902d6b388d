package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/stretchr/testify/assert"
)

func testConfig() config.RateLimiterConfig {
	return config.RateLimiterConfig{
		Enabled:              true,
		RequestsPerTimeFrame: 100,
		TimeFrame:            time.Minute,
		AuthAttempts:         5,
		AuthTimeFrame:        15 * time.Minute,
		AIGenerations:        20,
		AITimeFrame:          time.Hour,
		Invitations:          50,
		InvitationTimeFrame:  24 * time.Hour,
	}
}

func TestAllowRejectsRequestAfterLimit(t *testing.T) {
	rl := NewRateLimiter(testConfig(), nil, nil)
	ctx := context.Background()

	for _, rule := range []Rule{rl.Rules.Auth, rl.Rules.AI, rl.Rules.Invitation} {
		for i := 0; i < rule.Limit; i++ {
			res := rl.Allow(ctx, rule, "10.0.0.1")
			assert.True(t, res.Allowed, "%s request %d should pass", rule.Name, i+1)
			assert.Equal(t, rule.Limit-i-1, res.Remaining)
		}

		res := rl.Allow(ctx, rule, "10.0.0.1")
		assert.False(t, res.Allowed, "%s request %d should be rejected", rule.Name, rule.Limit+1)
		assert.Greater(t, res.RetryAfter, time.Duration(0))

		// Other clients keep their own window
		assert.True(t, rl.Allow(ctx, rule, "10.0.0.2").Allowed)
	}
}

func TestRulesAreIndependent(t *testing.T) {
	rl := NewRateLimiter(testConfig(), nil, nil)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		rl.Allow(ctx, rl.Rules.Auth, "ip")
	}
	assert.False(t, rl.Allow(ctx, rl.Rules.Auth, "ip").Allowed)
	assert.True(t, rl.Allow(ctx, rl.Rules.AI, "ip").Allowed)
}

func TestWindowResets(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	rl := NewRateLimiter(testConfig(), store, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(ctx, rl.Rules.Auth, "ip").Allowed)
	}
	assert.False(t, rl.Allow(ctx, rl.Rules.Auth, "ip").Allowed)

	now = now.Add(15 * time.Minute)
	assert.True(t, rl.Allow(ctx, rl.Rules.Auth, "ip").Allowed)
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	rl := NewRateLimiter(cfg, nil, nil)

	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allow(context.Background(), rl.Rules.Auth, "ip").Allowed)
	}
}

type failingStore struct{}

func (failingStore) Take(context.Context, string, int64, int64, time.Duration) (int64, time.Duration, bool, error) {
	return 0, 0, false, errors.New("redis down")
}

func TestStoreErrorFailsOpen(t *testing.T) {
	rl := NewRateLimiter(testConfig(), failingStore{}, nil)
	assert.True(t, rl.Allow(context.Background(), rl.Rules.Auth, "ip").Allowed)
}

func TestAllowNChargesEveryHit(t *testing.T) {
	rl := NewRateLimiter(testConfig(), nil, nil)
	ctx := context.Background()

	res := rl.AllowN(ctx, rl.Rules.AI, "ip", 15)
	assert.True(t, res.Allowed)
	assert.Equal(t, 5, res.Remaining)

	// A batch that does not fit is refused whole and charges nothing
	res = rl.AllowN(ctx, rl.Rules.AI, "ip", 6)
	assert.False(t, res.Allowed)
	assert.Equal(t, 5, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(ctx, rl.Rules.AI, "ip").Allowed)
	}
	assert.False(t, rl.Allow(ctx, rl.Rules.AI, "ip").Allowed)
}

func TestAllowNCannotExceedLimitInOneWindow(t *testing.T) {
	rl := NewRateLimiter(testConfig(), nil, nil)
	ctx := context.Background()

	charged := 0
	for i := 0; i < 25; i++ {
		if rl.AllowN(ctx, rl.Rules.AI, "ip", 3).Allowed {
			charged += 3
		}
	}
	assert.LessOrEqual(t, charged, rl.Rules.AI.Limit)
	assert.Equal(t, 18, charged)
}
