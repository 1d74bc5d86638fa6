package helpers

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

type sendRecorder struct {
	tele.Context
	sent []interface{}
	opts [][]interface{}
	vals map[string]interface{}
}

func (c *sendRecorder) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	c.opts = append(c.opts, opts)
	return nil
}

func (c *sendRecorder) Set(key string, val interface{}) {
	if c.vals == nil {
		c.vals = make(map[string]interface{})
	}
	c.vals[key] = val
}

func (c *sendRecorder) Get(key string) interface{} { return c.vals[key] }

func TestSendTextPlain(t *testing.T) {
	c := &sendRecorder{}
	if err := SendText(c, "hello"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "hello" {
		t.Errorf("sent = %v, want one plain %q", c.sent, "hello")
	}
	if len(c.opts[0]) != 0 {
		t.Errorf("opts = %v, want none for plain text", c.opts[0])
	}
}

func TestSendTextPassesOptionsThrough(t *testing.T) {
	c := &sendRecorder{}
	opts := &tele.SendOptions{DisableNotification: true}
	if err := SendText(c, "quiet", opts); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if len(c.opts[0]) != 1 || c.opts[0][0] != opts {
		t.Errorf("opts = %v, want the provided SendOptions", c.opts[0])
	}
}

func TestEditInPlaceFlag(t *testing.T) {
	if EditInPlace(nil) {
		t.Error("nil context should not report edit-in-place")
	}
	MarkEditInPlace(nil)

	c := &sendRecorder{}
	if EditInPlace(c) {
		t.Error("fresh context should not report edit-in-place")
	}
	MarkEditInPlace(c)
	if !EditInPlace(c) {
		t.Error("marked context should report edit-in-place")
	}
}
