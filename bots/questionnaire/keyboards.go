package questionnaire

import (
	"fmt"

	"github.com/LizardKing131313/tg-bots/core/flow"
	"github.com/LizardKing131313/tg-bots/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Callback uniques for the questionnaire's inline controls.
const (
	cbBack     = "q_back"
	cbSkip     = "q_skip"
	cbCancel   = "q_cancel"
	cbHintShow = "q_hint_show"
	cbHintHide = "q_hint_hide"
)

// stepPrompt renders "order/total" progress followed by the step's question,
// optionally appending the hint block.
func stepPrompt(t func(string) string, step *flow.Step, withHint bool) string {
	text := fmt.Sprintf("%d/%d — %s", step.OrderNumber(), Form.Len(), t("form.ask."+step.Name()))
	if withHint {
		text += "\n\n<b>" + t("hint.title") + "</b>\n" + t("hint."+step.Name())
	}
	return text
}

// stepMarkup builds the navigation controls for a step. The hint toggle and
// back share the top row when both apply, skip and cancel close the keyboard,
// and cancel is always present.
func stepMarkup(t func(string) string, step *flow.Step, hintShown bool) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn

	var top []keyboard.InlineBtn
	if hintKey := "hint." + step.Name(); t(hintKey) != hintKey {
		if hintShown {
			top = append(top, keyboard.InlineBtn{Text: t("action.hint.hide"), Unique: cbHintHide, Data: step.Name()})
		} else {
			top = append(top, keyboard.InlineBtn{Text: t("action.hint.show"), Unique: cbHintShow, Data: step.Name()})
		}
	}
	if step.Previous() != nil {
		top = append(top, keyboard.InlineBtn{Text: t("action.back"), Unique: cbBack})
	}
	if len(top) > 0 {
		rows = append(rows, top)
	}

	var bottom []keyboard.InlineBtn
	if step.CanSkip() {
		bottom = append(bottom, keyboard.InlineBtn{Text: t("action.skip"), Unique: cbSkip})
	}
	bottom = append(bottom, keyboard.InlineBtn{Text: t("action.cancel"), Unique: cbCancel})
	rows = append(rows, bottom)

	return keyboard.InlineButtonsRows(rows...)
}

// controlKeyboard is the persistent reply keyboard with cancel and restart.
func controlKeyboard(t func(string) string) *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{t("action.cancel"), t("action.restart")})
}
