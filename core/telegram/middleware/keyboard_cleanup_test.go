package middleware

import (
	"testing"

	"github.com/LizardKing131313/tg-bots/core/telegram/helpers"
	"github.com/LizardKing131313/tg-bots/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// stubAPI records EditReplyMarkup calls and hands out incrementing message
// ids on Send. Unused API methods panic through the embedded nil interface.
type stubAPI struct {
	tele.API
	strips []tele.StoredMessage
	nextID int
}

func (a *stubAPI) EditReplyMarkup(msg tele.Editable, _ *tele.ReplyMarkup) (*tele.Message, error) {
	id, chatID := msg.MessageSig()
	a.strips = append(a.strips, tele.StoredMessage{MessageID: id, ChatID: chatID})
	return &tele.Message{}, nil
}

func (a *stubAPI) Send(_ tele.Recipient, _ interface{}, _ ...interface{}) (*tele.Message, error) {
	a.nextID++
	return &tele.Message{ID: 100 + a.nextID, Chat: &tele.Chat{ID: 9}}, nil
}

type stubContext struct {
	tele.Context
	api    tele.API
	sender *tele.User
	chat   *tele.Chat
	msg    *tele.Message
	cb     *tele.Callback
	vals   map[string]interface{}
}

func (c *stubContext) Bot() tele.API             { return c.api }
func (c *stubContext) Sender() *tele.User        { return c.sender }
func (c *stubContext) Chat() *tele.Chat          { return c.chat }
func (c *stubContext) Message() *tele.Message    { return c.msg }
func (c *stubContext) Callback() *tele.Callback  { return c.cb }
func (c *stubContext) Recipient() tele.Recipient { return c.chat }

func (c *stubContext) Set(key string, val interface{}) {
	if c.vals == nil {
		c.vals = make(map[string]interface{})
	}
	c.vals[key] = val
}

func (c *stubContext) Get(key string) interface{} { return c.vals[key] }

func messageContext(api *stubAPI, userID int64) *stubContext {
	return &stubContext{
		api:    api,
		sender: &tele.User{ID: userID},
		chat:   &tele.Chat{ID: 9},
		msg:    &tele.Message{ID: 1, Chat: &tele.Chat{ID: 9}},
	}
}

func inlineMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(m.Data("Next", "next")))
	return m
}

func runCleanup(t *testing.T, store state.Manager, c tele.Context, handler tele.HandlerFunc) {
	t.Helper()
	if err := KeyboardCleanupMiddleware(store)(handler)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
}

func TestCleanupStripsTrackedKeyboardBeforeMessageHandler(t *testing.T) {
	api := &stubAPI{}
	store := state.NewMemoryManager()
	store.SetLastInline(7, 41)

	var seenDuringHandler []tele.StoredMessage
	runCleanup(t, store, messageContext(api, 7), func(tele.Context) error {
		seenDuringHandler = append([]tele.StoredMessage(nil), api.strips...)
		return nil
	})

	if len(seenDuringHandler) != 1 {
		t.Fatalf("strips before handler = %d, want 1", len(seenDuringHandler))
	}
	if got := seenDuringHandler[0]; got.MessageID != "41" || got.ChatID != 9 {
		t.Errorf("stripped %+v, want message 41 in chat 9", got)
	}
	if got := store.LastInline(7); got != 0 {
		t.Errorf("last inline = %d, want 0 after strip with no new send", got)
	}
}

func TestCleanupConsecutiveTrackedSendsLeaveOneKeyboard(t *testing.T) {
	api := &stubAPI{}
	store := state.NewMemoryManager()

	send := func(c tele.Context) error {
		return helpers.SendTracked(c, store, "pick one", inlineMarkup())
	}

	runCleanup(t, store, messageContext(api, 7), send)
	first := store.LastInline(7)
	if first == 0 {
		t.Fatal("first tracked send was not promoted to last inline")
	}
	if len(api.strips) != 0 {
		t.Fatalf("strips after first turn = %d, want 0", len(api.strips))
	}

	runCleanup(t, store, messageContext(api, 7), send)
	second := store.LastInline(7)

	if len(api.strips) != 1 {
		t.Fatalf("strips after second turn = %d, want 1", len(api.strips))
	}
	if got := api.strips[0].MessageID; got != "101" {
		t.Errorf("stripped message %s, want 101 (the first keyboard)", got)
	}
	if second == first || second == 0 {
		t.Errorf("last inline = %d, want the second send's id (first was %d)", second, first)
	}
	if got := store.TakeNextInline(7); got != 0 {
		t.Errorf("next inline = %d, want consumed", got)
	}
}

func TestCleanupAfterCallbackStripsTriggerMessage(t *testing.T) {
	api := &stubAPI{}
	store := state.NewMemoryManager()
	store.SetLastInline(7, 41)

	c := &stubContext{
		api:    api,
		sender: &tele.User{ID: 7},
		chat:   &tele.Chat{ID: 9},
		cb:     &tele.Callback{Message: &tele.Message{ID: 41, Chat: &tele.Chat{ID: 9}}},
	}

	handlerRan := false
	runCleanup(t, store, c, func(tele.Context) error {
		handlerRan = true
		if len(api.strips) != 0 {
			t.Error("strip happened before the callback handler")
		}
		return nil
	})

	if !handlerRan {
		t.Fatal("handler did not run")
	}
	if len(api.strips) != 1 {
		t.Fatalf("strips = %d, want 1", len(api.strips))
	}
	if got := api.strips[0]; got.MessageID != "41" || got.ChatID != 9 {
		t.Errorf("stripped %+v, want message 41 in chat 9", got)
	}
	if got := store.LastInline(7); got != 0 {
		t.Errorf("last inline = %d, want cleared after stripping the tracked message", got)
	}
}

func TestCleanupSkipsStripWhenHandlerEditedInPlace(t *testing.T) {
	api := &stubAPI{}
	store := state.NewMemoryManager()
	store.SetLastInline(7, 41)

	c := &stubContext{
		api:    api,
		sender: &tele.User{ID: 7},
		chat:   &tele.Chat{ID: 9},
		cb:     &tele.Callback{Message: &tele.Message{ID: 41, Chat: &tele.Chat{ID: 9}}},
	}

	runCleanup(t, store, c, func(c tele.Context) error {
		helpers.MarkEditInPlace(c)
		return nil
	})

	if len(api.strips) != 0 {
		t.Fatalf("strips = %d, want 0 after in-place edit", len(api.strips))
	}
	if got := store.LastInline(7); got != 41 {
		t.Errorf("last inline = %d, want 41 kept alive", got)
	}
}

func TestCleanupStripsByInlineMessageID(t *testing.T) {
	api := &stubAPI{}
	store := state.NewMemoryManager()

	c := &stubContext{
		api:    api,
		sender: &tele.User{ID: 7},
		cb:     &tele.Callback{MessageID: "inline-abc"},
	}

	runCleanup(t, store, c, func(tele.Context) error { return nil })

	if len(api.strips) != 1 {
		t.Fatalf("strips = %d, want 1 for inline-mode callback", len(api.strips))
	}
	got := api.strips[0]
	if got.MessageID != "inline-abc" {
		t.Errorf("stripped message id %q, want inline-abc", got.MessageID)
	}
	if got.ChatID != 0 {
		t.Errorf("chat id = %d, want 0 so the edit routes via inline_message_id", got.ChatID)
	}
}

func TestPromoteNextMovesPendingKeyboard(t *testing.T) {
	store := state.NewMemoryManager()
	store.SetLastInline(1, 10)
	store.SetNextInline(1, 20)

	promoteNext(store, 1)

	if got := store.LastInline(1); got != 20 {
		t.Errorf("last inline = %d, want 20", got)
	}
	if got := store.TakeNextInline(1); got != 0 {
		t.Errorf("next inline should be consumed, got %d", got)
	}
}

func TestPromoteNextKeepsLastWhenNothingPending(t *testing.T) {
	store := state.NewMemoryManager()
	store.SetLastInline(1, 10)

	promoteNext(store, 1)

	if got := store.LastInline(1); got != 10 {
		t.Errorf("last inline = %d, want unchanged 10", got)
	}
}
