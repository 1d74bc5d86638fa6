package middleware

import (
	"errors"
	"strconv"

	"log/slog"

	"github.com/LizardKing131313/tg-bots/core/logger"
	"github.com/LizardKing131313/tg-bots/core/telegram/helpers"
	"github.com/LizardKing131313/tg-bots/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// KeyboardCleanupMiddleware keeps at most one live inline keyboard per user.
//
// On a plain message the previously tracked keyboard is stripped before the
// handler runs. On a callback the triggering message loses its keyboard after
// the handler returns, unless the handler edited that message in place (see
// helpers.MarkEditInPlace). Either way a keyboard sent during the handler via
// helpers.SendTracked becomes the new tracked one.
func KeyboardCleanupMiddleware(store state.Manager) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || store == nil {
				return next(c)
			}
			if cb := c.Callback(); cb != nil {
				return cleanupAfterCallback(c, store, next, user.ID, cb)
			}
			if c.Message() != nil {
				return cleanupAroundMessage(c, store, next, user.ID)
			}
			return next(c)
		}
	}
}

func cleanupAroundMessage(c tele.Context, store state.Manager, next tele.HandlerFunc, userID int64) error {
	if last := store.LastInline(userID); last != 0 {
		if chat := c.Chat(); chat != nil {
			stripMarkup(c, chat.ID, last)
		}
		store.SetLastInline(userID, 0)
	}

	err := next(c)

	promoteNext(store, userID)
	return err
}

func cleanupAfterCallback(c tele.Context, store state.Manager, next tele.HandlerFunc, userID int64, cb *tele.Callback) error {
	err := next(c)

	if !helpers.EditInPlace(c) {
		switch {
		case cb.Message != nil && cb.Message.Chat != nil:
			stripMarkup(c, cb.Message.Chat.ID, cb.Message.ID)
			if store.LastInline(userID) == cb.Message.ID {
				store.SetLastInline(userID, 0)
			}
		case cb.MessageID != "":
			stripInlineMarkup(c, cb.MessageID)
		}
	}

	promoteNext(store, userID)
	return err
}

func promoteNext(store state.Manager, userID int64) {
	if id := store.TakeNextInline(userID); id != 0 {
		store.SetLastInline(userID, id)
	}
}

// stripMarkup removes the inline keyboard from a message addressed by chat
// and message id.
func stripMarkup(c tele.Context, chatID int64, messageID int) {
	stripRef(c, &tele.StoredMessage{ChatID: chatID, MessageID: strconv.Itoa(messageID)})
}

// stripInlineMarkup removes the keyboard from a message sent via the bot in
// inline mode. Such messages carry no chat reference, so the zero ChatID
// routes the edit through inline_message_id.
func stripInlineMarkup(c tele.Context, inlineID string) {
	stripRef(c, &tele.StoredMessage{MessageID: inlineID})
}

// stripRef performs the edit. Stale ids are expected (message deleted,
// keyboard already gone), so API 400s are only logged at debug level.
func stripRef(c tele.Context, ref *tele.StoredMessage) {
	if _, err := c.Bot().EditReplyMarkup(ref, nil); err != nil {
		var apiErr *tele.Error
		if errors.As(err, &apiErr) && apiErr.Code == 400 {
			logger.TG.Debug("keyboard cleanup skipped",
				slog.String("event", "tg.kb.cleanup_skip"),
				slog.Int64("chat_id", ref.ChatID),
				slog.String("kb", ref.MessageID),
				slog.String("err", err.Error()),
			)
			return
		}
		logger.TG.Warn("keyboard cleanup failed",
			slog.String("event", "tg.kb.cleanup_fail"),
			slog.Int64("chat_id", ref.ChatID),
			slog.String("kb", ref.MessageID),
			slog.String("err", err.Error()),
		)
	}
}
