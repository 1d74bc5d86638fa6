package helpers

import (
	"github.com/LizardKing131313/tg-bots/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

const editInPlaceKey = "kb_edit_in_place"

// MarkEditInPlace tells the keyboard cleanup middleware that the handler
// edited the triggering message itself and its keyboard must stay.
func MarkEditInPlace(c tele.Context) {
	if c != nil {
		c.Set(editInPlaceKey, true)
	}
}

// EditInPlace reports whether the current update was marked by MarkEditInPlace.
func EditInPlace(c tele.Context) bool {
	if c == nil {
		return false
	}
	v, _ := c.Get(editInPlaceKey).(bool)
	return v
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	if len(opts) > 0 && opts[0] != nil {
		return c.Send(text, opts[0])
	}
	return c.Send(text)
}

// SendTracked sends text with optional markup and, when the markup carries an
// inline keyboard, records the sent message id so the keyboard cleanup
// middleware can strip it once the user moves on.
func SendTracked(c tele.Context, store state.Manager, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}

	var msg *tele.Message
	var err error
	if rm != nil {
		msg, err = c.Bot().Send(c.Recipient(), text, rm)
	} else {
		msg, err = c.Bot().Send(c.Recipient(), text)
	}
	if err != nil {
		return err
	}

	user := c.Sender()
	if store != nil && user != nil && msg != nil && rm != nil && len(rm.InlineKeyboard) > 0 {
		store.SetNextInline(user.ID, msg.ID)
	}
	return nil
}

// SendTrackedHTML is SendTracked with HTML parse mode.
func SendTrackedHTML(c tele.Context, store state.Manager, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: rm}

	msg, err := c.Bot().Send(c.Recipient(), text, opts)
	if err != nil {
		return err
	}

	user := c.Sender()
	if store != nil && user != nil && msg != nil && rm != nil && len(rm.InlineKeyboard) > 0 {
		store.SetNextInline(user.ID, msg.ID)
	}
	return nil
}

// EditTracked edits the callback's own message in place and keeps its
// keyboard out of the post-handler cleanup.
func EditTracked(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	MarkEditInPlace(c)
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return c.Edit(text, &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: rm})
}
