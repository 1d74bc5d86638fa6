package router

import (
	"strings"
	"time"

	"github.com/LizardKing131313/tg-bots/core/i18n"
	tg "github.com/LizardKing131313/tg-bots/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// FlowGate is the minimal surface the text router needs from a form engine.
type FlowGate interface {
	InFlow(userID int64) bool
	Handle(c tele.Context) error
}

// TextTrigger binds a localized message key to a handler. The trigger fires
// when the incoming text equals the key's translation in any loaded language,
// so reply-keyboard buttons keep working after the user switches locale.
type TextTrigger struct {
	Key     string
	Handler tele.HandlerFunc
}

// TextOptions controls routing of plain text updates.
type TextOptions struct {
	Flow     FlowGate
	Triggers []TextTrigger
	Unknown  tele.HandlerFunc
}

// TextRoute builds the handler for tele.OnText. Priority: registered
// commands, localized text triggers, the active form, then the registry's
// text fallback.
func TextRoute(reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil && strings.HasPrefix(strings.TrimSpace(text), "/") {
			if key, cmd, ok := reg.LookupCommand(strings.TrimSpace(text)); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		for _, trig := range opts.Triggers {
			if trig.Handler == nil || !i18n.TextEquals(c, trig.Key, text) {
				continue
			}
			name := "trigger." + normalizeHandlerName(trig.Key)
			return handleWithSummary(c, name, start, "", "", func() error {
				return trig.Handler(c)
			})
		}

		if opts.Flow != nil {
			if user := c.Sender(); user != nil && opts.Flow.InFlow(user.ID) {
				return handleWithSummary(c, "flow", start, "", "", func() error {
					return opts.Flow.Handle(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.Unknown != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.Unknown(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  handler,
	}
}
