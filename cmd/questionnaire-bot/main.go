package main

import (
	"log"

	"github.com/LizardKing131313/tg-bots/bots/questionnaire"
	"github.com/LizardKing131313/tg-bots/core/bootstrap"
	corecmd "github.com/LizardKing131313/tg-bots/core/cmd"
	coreconfig "github.com/LizardKing131313/tg-bots/core/config"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "configs/questionnaire.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return coreconfig.Load(questionnaire.BotName, path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()
			boot, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return questionnaire.New(cfg, boot), nil
		},
	})
	if err != nil {
		log.Fatalf("questionnaire bot: %v", err)
	}
}
