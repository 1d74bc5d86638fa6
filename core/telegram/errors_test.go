package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/LizardKing131313/tg-bots/core/logger"

	tele "gopkg.in/telebot.v4"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want errorClass
	}{
		{"cancelled", context.Canceled, classCancelled},
		{"wrapped cancelled", fmt.Errorf("handler: %w", context.Canceled), classCancelled},
		{"flood", tele.FloodError{RetryAfter: 5}, classFlood},
		{"bad request", &tele.Error{Code: 400, Description: "Bad Request: message is too long"}, classClientError},
		{"forbidden", &tele.Error{Code: 403, Description: "Forbidden"}, classClientError},
		{"server error", &tele.Error{Code: 502, Description: "Bad Gateway"}, classUnexpected},
		{"plain error", errors.New("boom"), classUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyError(tc.err); got != tc.want {
				t.Errorf("classifyError(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

// discardTGLogger swaps the component logger for the test's duration since
// the hook logs on every path.
func discardTGLogger(t *testing.T) {
	t.Helper()
	prev := logger.TG
	logger.TG = slog.New(slog.NewTextHandler(io.Discard, nil))
	t.Cleanup(func() { logger.TG = prev })
}

// errorStubContext is the minimal context surface OnError touches. The
// embedded nil interface panics on anything else, which keeps the hook's
// footprint honest.
type errorStubContext struct {
	tele.Context
	chat  *tele.Chat
	sends []interface{}
}

func (c *errorStubContext) Update() tele.Update    { return tele.Update{ID: 1} }
func (c *errorStubContext) Chat() *tele.Chat       { return c.chat }
func (c *errorStubContext) Get(string) interface{} { return nil }

func (c *errorStubContext) Send(what interface{}, _ ...interface{}) error {
	c.sends = append(c.sends, what)
	return nil
}

func TestOnErrorFloodWaitsRetryAfter(t *testing.T) {
	discardTGLogger(t)

	var slept time.Duration
	prevSleep := sleepFn
	sleepFn = func(d time.Duration) { slept = d }
	defer func() { sleepFn = prevSleep }()

	OnError(tele.FloodError{RetryAfter: 3}, nil)

	if slept != 3*time.Second {
		t.Errorf("slept %v, want 3s", slept)
	}
}

func TestOnErrorFallbackNotice(t *testing.T) {
	discardTGLogger(t)

	cases := []struct {
		name      string
		err       error
		wantSends int
	}{
		{"unexpected error notifies once", errors.New("boom"), 1},
		{"blocked user stays quiet", errors.New("telegram: Forbidden: bot was blocked by the user (403)"), 0},
		{"deactivated user stays quiet", errors.New("telegram: Forbidden: user is deactivated (403)"), 0},
		{"client error stays quiet", &tele.Error{Code: 400, Description: "Bad Request: message is too long"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &errorStubContext{chat: &tele.Chat{ID: 9}}

			OnError(tc.err, c)

			if len(c.sends) != tc.wantSends {
				t.Fatalf("fallback sends = %d, want %d", len(c.sends), tc.wantSends)
			}
			if tc.wantSends == 1 && c.sends[0] != "user.fallback" {
				t.Errorf("sent %v, want the user.fallback message", c.sends[0])
			}
		})
	}
}

func TestOnErrorWithoutChatSkipsFallback(t *testing.T) {
	discardTGLogger(t)

	c := &errorStubContext{}
	OnError(errors.New("boom"), c)

	if len(c.sends) != 0 {
		t.Errorf("fallback sends = %d, want 0 without a chat", len(c.sends))
	}
}

func TestChatUnreachable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("telegram: Forbidden: bot was blocked by the user (403)"), true},
		{errors.New("telegram: Forbidden: user is deactivated (403)"), true},
		{errors.New("telegram: Bad Request: chat not found (400)"), true},
		{errors.New("telegram: Bad Request: chat_id is empty (400)"), true},
		{errors.New("telegram: Bad Request: message is too long (400)"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := chatUnreachable(tc.err); got != tc.want {
			t.Errorf("chatUnreachable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
