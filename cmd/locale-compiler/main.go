package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/LizardKing131313/tg-bots/core/i18n"
)

func main() {
	app := &cli.App{
		Name:  "locale-compiler",
		Usage: "Merge global and per-bot message catalogs into the compiled cache",
		Description: `Merges YAML catalogs per language. Bot entries override global ones
key by key, and the result is written to .i18n_cache/<bot>/locales/<lang>/messages.json.

Examples:
  locale-compiler --all
  locale-compiler --bot questionnaire_bot
  locale-compiler --all --include-global --keep-source`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Compile catalogs for every bot under bots/",
			},
			&cli.StringFlag{
				Name:  "bot",
				Usage: "Compile catalogs for a single bot",
			},
			&cli.BoolFlag{
				Name:  "include-global",
				Usage: "Also compile the standalone global catalog",
			},
			&cli.BoolFlag{
				Name:    "keep-source",
				Aliases: []string{"keep-po"},
				Usage:   "Write the merged source catalog next to the compiled one",
			},
			&cli.StringFlag{
				Name:  "root",
				Value: ".",
				Usage: "Project root containing locales/ and bots/",
			},
		},
		Action: runCompile,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCompile(c *cli.Context) error {
	root := c.String("root")
	keepSource := c.Bool("keep-source")

	if bot := c.String("bot"); bot != "" {
		available, err := i18n.AvailableBots(root)
		if err != nil {
			return err
		}
		if !contains(available, bot) && bot != i18n.GlobalBot {
			return fmt.Errorf("unknown bot %q, available: %s", bot, strings.Join(available, ", "))
		}
		res, err := i18n.CompileBot(root, bot, keepSource)
		if err != nil {
			return err
		}
		report(res)
		return nil
	}

	if !c.Bool("all") {
		return fmt.Errorf("nothing to do: pass --all or --bot <name>")
	}

	results, err := i18n.CompileAll(root, c.Bool("include-global"), keepSource)
	if err != nil {
		return err
	}
	for _, res := range results {
		report(res)
	}
	return nil
}

func report(res i18n.CompileResult) {
	fmt.Printf("compiled %s: %s -> %s\n", res.Bot, strings.Join(res.Languages, ", "), res.OutDir)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
