package questionnaire

import (
	"strings"
	"testing"
)

func TestStepMarkupFirstStep(t *testing.T) {
	tr := echoKeys(map[string]string{
		"hint.name":        "Your name.",
		"action.hint.show": "Hint",
		"action.cancel":    "Cancel",
	})
	m := stepMarkup(tr, Form.Resolve(FieldName), false)

	// Hint row on top, no back on the first step, cancel closes the keyboard.
	if len(m.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.InlineKeyboard))
	}
	if len(m.InlineKeyboard[0]) != 1 || m.InlineKeyboard[0][0].Text != "Hint" {
		t.Errorf("top row = %v", m.InlineKeyboard[0])
	}
	if len(m.InlineKeyboard[1]) != 1 || m.InlineKeyboard[1][0].Text != "Cancel" {
		t.Errorf("bottom row = %v", m.InlineKeyboard[1])
	}
}

func TestStepMarkupSkippableStep(t *testing.T) {
	tr := echoKeys(map[string]string{
		"hint.city":        "Optional.",
		"action.hint.show": "Hint",
		"action.back":      "Back",
		"action.skip":      "Skip",
		"action.cancel":    "Cancel",
	})
	m := stepMarkup(tr, Form.Resolve(FieldCity), false)

	if len(m.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.InlineKeyboard))
	}
	// Hint and back share the top row.
	top := m.InlineKeyboard[0]
	if len(top) != 2 || top[0].Text != "Hint" || top[1].Text != "Back" {
		t.Errorf("top row = %v", top)
	}
	// Skip and cancel share the final row.
	bottom := m.InlineKeyboard[1]
	if len(bottom) != 2 || bottom[0].Text != "Skip" || bottom[1].Text != "Cancel" {
		t.Errorf("bottom row = %v", bottom)
	}
}

func TestStepMarkupHintShownTogglesToHide(t *testing.T) {
	tr := echoKeys(map[string]string{
		"hint.age":         "Digits only.",
		"action.hint.hide": "Hide",
		"action.back":      "Back",
		"action.cancel":    "Cancel",
	})
	m := stepMarkup(tr, Form.Resolve(FieldAge), true)

	if got := m.InlineKeyboard[0][0].Text; got != "Hide" {
		t.Errorf("hint toggle = %q, want the hide control while the hint is visible", got)
	}
}

func TestStepPromptProgressAndHint(t *testing.T) {
	tr := echoKeys(map[string]string{
		"form.ask.age": "How old are you?",
		"hint.age":     "Digits only.",
		"hint.title":   "Hint",
	})
	step := Form.Resolve(FieldAge)

	plain := stepPrompt(tr, step, false)
	if want := "2/3 — How old are you?"; plain != want {
		t.Errorf("prompt = %q, want %q", plain, want)
	}

	withHint := stepPrompt(tr, step, true)
	if withHint == plain {
		t.Error("hint prompt must differ from the plain one")
	}
	if want := "<b>Hint</b>\nDigits only."; !strings.Contains(withHint, want) {
		t.Errorf("hint block missing from %q", withHint)
	}
}
