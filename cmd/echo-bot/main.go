package main

import (
	"log"

	"github.com/LizardKing131313/tg-bots/bots/echo"
	"github.com/LizardKing131313/tg-bots/core/bootstrap"
	corecmd "github.com/LizardKing131313/tg-bots/core/cmd"
	coreconfig "github.com/LizardKing131313/tg-bots/core/config"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "configs/echo.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return coreconfig.Load(echo.BotName, path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()
			boot, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return echo.New(cfg, boot), nil
		},
	})
	if err != nil {
		log.Fatalf("echo bot: %v", err)
	}
}
