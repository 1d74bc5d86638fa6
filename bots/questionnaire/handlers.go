package questionnaire

import (
	"strings"

	"log/slog"

	"github.com/LizardKing131313/tg-bots/core/flow"
	"github.com/LizardKing131313/tg-bots/core/i18n"
	"github.com/LizardKing131313/tg-bots/core/logger"
	"github.com/LizardKing131313/tg-bots/core/telegram/callbacks"
	tghelpers "github.com/LizardKing131313/tg-bots/core/telegram/helpers"
	"github.com/LizardKing131313/tg-bots/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// startForm clears any previous run, enters the first step, and shows the
// persistent cancel/restart controls.
func (a *App) startForm(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	t := i18n.T(c)

	a.states.Clear(user.ID)
	first := Form.First()
	a.states.SetStep(user.ID, first.Qualified())

	if err := c.Send(t("form.start"), controlKeyboard(t)); err != nil {
		return err
	}
	return a.sendStep(c, first)
}

// cancelForm leaves the flow and removes the persistent controls.
func (a *App) cancelForm(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	a.states.Clear(user.ID)
	return c.Send(i18n.T(c)("cancel.done"), keyboard.RemoveKeyboard())
}

// sendStep renders the step's prompt with navigation controls as a new
// tracked message.
func (a *App) sendStep(c tele.Context, step *flow.Step) error {
	t := i18n.T(c)
	return tghelpers.SendTrackedHTML(c, a.states, stepPrompt(t, step, false), stepMarkup(t, step, false))
}

// editStep re-renders the current prompt in place, toggling the hint block.
func (a *App) editStep(c tele.Context, step *flow.Step, withHint bool) error {
	t := i18n.T(c)
	return tghelpers.EditTracked(c, stepPrompt(t, step, withHint), stepMarkup(t, step, withHint))
}

// currentStep resolves the sender's step, or nil when not in the flow.
func (a *App) currentStep(c tele.Context) *flow.Step {
	user := c.Sender()
	if user == nil {
		return nil
	}
	return Form.Resolve(a.states.StepToken(user.ID))
}

// InFlow reports whether the user has an active questionnaire.
func (a *App) InFlow(userID int64) bool {
	return Form.Resolve(a.states.StepToken(userID)) != nil
}

// Handle consumes a plain text update while the questionnaire is active:
// validate the value for the current step, store it, and advance.
func (a *App) Handle(c tele.Context) error {
	user := c.Sender()
	step := a.currentStep(c)
	if user == nil || step == nil {
		return nil
	}
	t := i18n.T(c)
	text := strings.TrimSpace(c.Text())

	switch step.Name() {
	case FieldAge:
		if _, ok := ParseAge(text); !ok {
			return c.Send(t("form.validation.age"))
		}
	default:
		if text == "" {
			return a.sendStep(c, step)
		}
	}

	a.states.UpdateData(user.ID, map[string]string{step.Name(): text})
	return a.advance(c, step)
}

// advance moves to the next step or finishes when the last one is done.
func (a *App) advance(c tele.Context, step *flow.Step) error {
	user := c.Sender()
	next := step.Next()
	if next == nil {
		return a.finish(c)
	}
	a.states.SetStep(user.ID, next.Qualified())
	logger.FLOW.Debug("step transition",
		slog.String("event", "flow.step"),
		slog.Int64("user_id", user.ID),
		slog.String("flow", Form.Name()),
		slog.String("step", next.Name()),
		slog.Int("step_order", next.OrderNumber()),
	)
	return a.sendStep(c, next)
}

// finish renders the summary from the collected fields and clears the flow.
// City falls back to the localized unknown placeholder when skipped.
func (a *App) finish(c tele.Context) error {
	user := c.Sender()
	t := i18n.T(c)

	data := a.states.Data(user.ID)
	a.states.Clear(user.ID)

	a.persist(c, user.ID, data)

	return c.Send(buildSummary(t, data), keyboard.RemoveKeyboard())
}

// buildSummary fills the summary template from the collected fields. A
// skipped or empty city renders the localized unknown placeholder.
func buildSummary(t func(string) string, data map[string]string) string {
	city := data[FieldCity]
	if strings.TrimSpace(city) == "" {
		city = t("form.city.unknown")
	}
	return strings.NewReplacer(
		"{name}", data[FieldName],
		"{age}", data[FieldAge],
		"{city}", city,
	).Replace(t("form.summary"))
}

// persist stores the finished questionnaire when a database is configured.
// Storage failures are logged and never surface to the user.
func (a *App) persist(c tele.Context, userID int64, data map[string]string) {
	if a.repo == nil {
		return
	}
	age, _ := ParseAge(data[FieldAge])
	sub := Submission{
		UserID: userID,
		Name:   data[FieldName],
		Age:    age,
		City:   data[FieldCity],
	}
	ctx := tghelpers.BuildContext(c)
	if err := a.repo.Save(ctx, sub); err != nil {
		logger.DB.Warn("submission save failed",
			slog.String("event", "db.submission.save"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return
	}
	if total, err := a.repo.CountByUser(ctx, userID); err == nil {
		logger.DB.Debug("submission stored",
			slog.String("event", "db.submission.stored"),
			slog.Int64("user_id", userID),
			slog.Int("total", total),
		)
	}
}

// onBack moves one step back. On the first step the press was already
// acknowledged by the callback router, so nothing changes visibly.
func (a *App) onBack(c tele.Context) error {
	step := a.currentStep(c)
	if step == nil {
		return nil
	}
	prev := step.Previous()
	if prev == nil {
		return nil
	}
	a.states.SetStep(c.Sender().ID, prev.Qualified())
	return a.sendStep(c, prev)
}

// onSkip advances past a skippable step; on the last step it finishes with
// the field left empty.
func (a *App) onSkip(c tele.Context) error {
	step := a.currentStep(c)
	if step == nil || !step.CanSkip() {
		return nil
	}
	return a.advance(c, step)
}

func (a *App) onCancel(c tele.Context) error {
	if a.currentStep(c) == nil {
		return nil
	}
	return a.cancelForm(c)
}

// hintStep resolves the current step for a hint toggle. A payload naming a
// different step means the control belongs to an older prompt and is stale.
func (a *App) hintStep(c tele.Context) *flow.Step {
	step := a.currentStep(c)
	if step == nil {
		return nil
	}
	if payload := callbacks.CallbackPayload(c); payload != "" && payload != step.Name() {
		return nil
	}
	return step
}

func (a *App) onHintShow(c tele.Context) error {
	step := a.hintStep(c)
	if step == nil {
		return nil
	}
	return a.editStep(c, step, true)
}

func (a *App) onHintHide(c tele.Context) error {
	step := a.hintStep(c)
	if step == nil {
		return nil
	}
	return a.editStep(c, step, false)
}
