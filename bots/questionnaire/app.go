package questionnaire

import (
	"github.com/LizardKing131313/tg-bots/core/bootstrap"
	coreconfig "github.com/LizardKing131313/tg-bots/core/config"
	"github.com/LizardKing131313/tg-bots/core/i18n"
	coretelegram "github.com/LizardKing131313/tg-bots/core/telegram"
	"github.com/LizardKing131313/tg-bots/core/telegram/commands"
	"github.com/LizardKing131313/tg-bots/core/telegram/router"
	"github.com/LizardKing131313/tg-bots/core/telegram/state"
)

// BotName is the directory name under bots/ and the i18n catalog id.
const BotName = "questionnaire"

// App wires the questionnaire flow to the shared bot runtime.
type App struct {
	cfg    *coreconfig.Config
	states state.Manager
	tr     *i18n.Translator
	repo   *Repository
}

// New assembles the questionnaire application from bootstrapped
// infrastructure.
func New(cfg *coreconfig.Config, boot *bootstrap.Result) *App {
	return &App{
		cfg:    cfg,
		states: boot.States,
		tr:     boot.Translator,
		repo:   NewRepository(boot.DB),
	}
}

// TelegramRunOptions builds the registry, routes, and middleware chain.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.startForm,
		Description: "Start the questionnaire",
	})
	reg.RegisterCommand("/form", commands.Command{
		Handler:     a.startForm,
		Description: "Restart the questionnaire",
		Aliases:     []string{"restart"},
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.cancelForm,
		Description: "Cancel the questionnaire",
	})

	_ = reg.RegisterCallback(cbBack, a.onBack)
	_ = reg.RegisterCallback(cbSkip, a.onSkip)
	_ = reg.RegisterCallback(cbCancel, a.onCancel)
	_ = reg.RegisterCallback(cbHintShow, a.onHintShow)
	_ = reg.RegisterCallback(cbHintHide, a.onHintHide)

	routes := []coretelegram.Route{
		router.TextRoute(reg, router.TextOptions{
			Flow: a,
			Triggers: []router.TextTrigger{
				{Key: "action.cancel", Handler: a.onCancel},
				{Key: "action.restart", Handler: a.startForm},
			},
		}),
		router.CallbackRoute(reg, router.CallbackOptions{}),
	}

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, a.tr, a.states),
		Routes:      routes,
	}, nil
}
