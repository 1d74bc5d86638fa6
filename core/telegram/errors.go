package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/LizardKing131313/tg-bots/core/i18n"
	"github.com/LizardKing131313/tg-bots/core/logger"

	tele "gopkg.in/telebot.v4"
)

// unreachableMarkers identify API errors where sending anything further to
// the chat is pointless.
var unreachableMarkers = []string{
	"bot was blocked by the user",
	"user is deactivated",
	"chat not found",
	"chat_id is empty",
}

// sleepFn is swappable in tests.
var sleepFn = time.Sleep

type errorClass int

const (
	classCancelled errorClass = iota
	classFlood
	classClientError
	classUnexpected
)

// classifyError maps a handler error to its handling class.
func classifyError(err error) errorClass {
	if errors.Is(err, context.Canceled) {
		return classCancelled
	}
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return classFlood
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 400 || apiErr.Code == 403) {
		return classClientError
	}
	return classUnexpected
}

// chatUnreachable reports whether the error text marks the chat as gone.
func chatUnreachable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range unreachableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// OnError returns the global error hook for tele.Settings. Cancellations are
// quiet, flood waits are honored, client-side API errors are warnings, and
// anything else is logged as an error with a localized fallback notice sent
// to the user when the chat is still reachable.
func OnError(err error, c tele.Context) {
	var updID int
	var chatID int64
	if c != nil {
		updID = c.Update().ID
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
	}

	switch classifyError(err) {
	case classCancelled:
		logger.TG.Debug("update cancelled",
			slog.String("event", "tg.handler.cancelled"),
			slog.Int("update_id", updID),
		)

	case classFlood:
		var flood tele.FloodError
		errors.As(err, &flood)
		wait := time.Duration(flood.RetryAfter) * time.Second
		logger.TG.Warn("flood control",
			slog.String("event", "tg.flood"),
			slog.Int("update_id", updID),
			slog.Int64("chat_id", chatID),
			slog.Duration("backoff_ms", logger.RoundMS(wait)),
		)
		sleepFn(wait)

	case classClientError:
		var apiErr *tele.Error
		errors.As(err, &apiErr)
		logger.TG.Warn("telegram api rejected request",
			slog.String("event", "tg.api.client_error"),
			slog.Int("update_id", updID),
			slog.Int64("chat_id", chatID),
			slog.Int("err_code", apiErr.Code),
			slog.String("err", apiErr.Error()),
		)

	default:
		logger.TG.Error("handler failed",
			slog.String("event", "tg.handler.error"),
			slog.Int("update_id", updID),
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		if c == nil || c.Chat() == nil || chatUnreachable(err) {
			return
		}
		if sendErr := c.Send(i18n.T(c)("user.fallback")); sendErr != nil {
			logger.TG.Warn("fallback notice failed",
				slog.String("event", "tg.fallback.error"),
				slog.Int64("chat_id", chatID),
				slog.String("err", sendErr.Error()),
			)
		}
	}
}
