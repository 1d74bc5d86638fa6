package telegram

import (
	"time"

	coreconfig "github.com/LizardKing131313/tg-bots/core/config"
	"github.com/LizardKing131313/tg-bots/core/i18n"
	"github.com/LizardKing131313/tg-bots/core/telegram/middleware"
	"github.com/LizardKing131313/tg-bots/core/telegram/state"
)

// DefaultMiddlewares builds the shared middleware chain for bots. Order
// matters: panics are caught first, every update gets a logging context and a
// bound translator before the limiter can answer in the user's language, and
// keyboard cleanup wraps the innermost handler so it sees tracked sends.
func DefaultMiddlewares(cfg *coreconfig.Config, tr *i18n.Translator, store state.Manager) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
	}

	if tr != nil {
		mws = append(mws, Middleware{Name: "i18n", Use: i18n.Middleware(tr)})
	}

	if cfg != nil && cfg.RateLimit.PerUser > 0 {
		window := time.Duration(cfg.RateLimit.WindowSec) * time.Second
		limiter := middleware.NewLimiter(cfg.RateLimit.PerUser, window)
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use:  middleware.RateLimitMiddleware(limiter),
		})
	}

	mws = append(mws, Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware})

	if store != nil {
		mws = append(mws, Middleware{
			Name: "keyboard_cleanup",
			Use:  middleware.KeyboardCleanupMiddleware(store),
		})
	}

	return mws
}
