package echo

import (
	"github.com/LizardKing131313/tg-bots/core/bootstrap"
	coreconfig "github.com/LizardKing131313/tg-bots/core/config"
	"github.com/LizardKing131313/tg-bots/core/i18n"
	coretelegram "github.com/LizardKing131313/tg-bots/core/telegram"
	"github.com/LizardKing131313/tg-bots/core/telegram/commands"
	"github.com/LizardKing131313/tg-bots/core/telegram/helpers"
	"github.com/LizardKing131313/tg-bots/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// BotName is the directory name under bots/ and the i18n catalog id.
const BotName = "echo"

// App is the minimal demo bot: greet on /start, repeat everything else.
type App struct {
	cfg *coreconfig.Config
	tr  *i18n.Translator
}

// New assembles the echo application.
func New(cfg *coreconfig.Config, boot *bootstrap.Result) *App {
	return &App{cfg: cfg, tr: boot.Translator}
}

func (a *App) greet(c tele.Context) error {
	return c.Send(i18n.T(c)("label.echo.greeting"))
}

// echo repeats the incoming text verbatim, so no parse mode is applied.
func (a *App) echo(c tele.Context) error {
	return helpers.SendText(c, c.Text())
}

// TelegramRunOptions builds the registry, routes, and middleware chain.
// The echo bot has no forms, so it runs without keyboard state.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.greet,
		Description: "Show the greeting",
	})
	reg.SetTextFallback(a.echo)

	routes := []coretelegram.Route{
		router.TextRoute(reg, router.TextOptions{}),
	}

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, a.tr, nil),
		Routes:      routes,
	}, nil
}
