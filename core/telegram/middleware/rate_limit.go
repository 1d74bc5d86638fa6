package middleware

import (
	"sync"
	"time"

	"log/slog"

	"github.com/LizardKing131313/tg-bots/core/i18n"
	"github.com/LizardKing131313/tg-bots/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Limiter is a per-user sliding-window rate limiter. A user may produce at
// most Limit updates within any Window; older timestamps are evicted lazily
// on the next check for that user.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[int64][]time.Time
	now    func() time.Time
}

// NewLimiter builds a limiter allowing limit events per window for each user.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		seen:   make(map[int64][]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether the user may proceed and, if so, records the event.
func (l *Limiter) Allow(userID int64) bool {
	if l == nil || l.limit <= 0 || l.window <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	stamps := l.seen[userID]

	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.limit {
		l.seen[userID] = kept
		return false
	}
	l.seen[userID] = append(kept, now)
	return true
}

// RateLimitMiddleware throttles updates per user. Limited messages get a
// localized notice, limited callbacks get a bare answer so the client stops
// its spinner; both are swallowed without reaching the handler.
func RateLimitMiddleware(limiter *Limiter) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || limiter.Allow(user.ID) {
				return next(c)
			}

			logger.TG.Warn("rate limit",
				slog.String("event", "tg.rate_limit"),
				slog.Int64("user_id", user.ID),
				slog.Bool("rate_limited", true),
			)

			if c.Callback() != nil {
				return c.Respond()
			}
			return c.Send(i18n.T(c)("user.limit"))
		}
	}
}
