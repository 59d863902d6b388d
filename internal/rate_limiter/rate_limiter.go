package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"go.uber.org/zap"
)

// Rule is a named fixed window. Keys are namespaced by rule so the same client can be
// tracked independently per route group.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
}

type Rules struct {
	Global     Rule
	Auth       Rule
	AI         Rule
	Invitation Rule
}

func RulesFromConfig(cfg config.RateLimiterConfig) Rules {
	return Rules{
		Global:     Rule{Name: "global", Limit: cfg.RequestsPerTimeFrame, Window: cfg.TimeFrame},
		Auth:       Rule{Name: "auth", Limit: cfg.AuthAttempts, Window: cfg.AuthTimeFrame},
		AI:         Rule{Name: "ai", Limit: cfg.AIGenerations, Window: cfg.AITimeFrame},
		Invitation: Rule{Name: "invitation", Limit: cfg.Invitations, Window: cfg.InvitationTimeFrame},
	}
}

// Store counts hits in a window. Take adds n hits unless that would push the count past
// limit, and returns the count after the call, the time left before the window resets and
// whether the hits were added.
type Store interface {
	Take(ctx context.Context, key string, n, limit int64, window time.Duration) (int64, time.Duration, bool, error)
}

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type FixedWindowRateLimiter struct {
	store   Store
	logger  *zap.SugaredLogger
	enabled bool
	Rules   Rules
}

func NewRateLimiter(cfg config.RateLimiterConfig, store Store, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return NewFixedWindowLimiter(cfg, store, logger)
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, store Store, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	if store == nil {
		store = NewMemoryStore()
	}

	return &FixedWindowRateLimiter{
		store:   store,
		logger:  logger,
		enabled: cfg.Enabled,
		Rules:   RulesFromConfig(cfg),
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.enabled
}

// Allow records one hit for key under rule.
func (rl *FixedWindowRateLimiter) Allow(ctx context.Context, rule Rule, key string) Result {
	return rl.AllowN(ctx, rule, key, 1)
}

// AllowN records n hits at once, or none when they do not all fit in the window. Store
// failures fail open so a broken Redis does not take the API down.
func (rl *FixedWindowRateLimiter) AllowN(ctx context.Context, rule Rule, key string, n int) Result {
	if !rl.enabled || rule.Limit <= 0 || rule.Window <= 0 {
		return Result{Allowed: true, Remaining: rule.Limit}
	}
	if n < 1 {
		n = 1
	}

	count, ttl, taken, err := rl.store.Take(ctx, fmt.Sprintf("ratelimit:%s:%s", rule.Name, key), int64(n), int64(rule.Limit), rule.Window)
	if err != nil {
		rl.logger.Errorf("Rate limiter store error for rule %s: %v", rule.Name, err)
		return Result{Allowed: true, Remaining: rule.Limit}
	}

	remaining := rule.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	if !taken {
		return Result{Allowed: false, Remaining: remaining, RetryAfter: ttl}
	}

	return Result{Allowed: true, Remaining: remaining}
}
