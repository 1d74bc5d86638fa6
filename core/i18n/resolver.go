package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LizardKing131313/tg-bots/core/logger"
)

const (
	// CacheDirName is where compiled catalogs live, relative to the project root.
	CacheDirName = ".i18n_cache"
	// LocalesDirName names source and compiled catalog directories.
	LocalesDirName = "locales"
	// DefaultLanguage is used when a catalog path carries no language segment
	// and as the translation fallback language.
	DefaultLanguage = "en"
)

// ResolveLocalesDir finds the catalog directory for a bot: the compiled
// cache is preferred, then the bot's own source catalogs, then the global
// ones. A missing directory on all three levels is a startup-time error.
func ResolveLocalesDir(root, botName string) (string, error) {
	ctx := context.Background()

	cacheDir := filepath.Join(root, CacheDirName, botName, LocalesDirName)
	botDir := filepath.Join(root, "bots", botName, LocalesDirName)
	globalDir := filepath.Join(root, LocalesDirName)

	if dirExists(cacheDir) {
		logger.Debug(ctx, "i18n", "locales.resolved",
			slog.String("bot", botName),
			slog.String("path", cacheDir),
			slog.String("source", "cache"),
		)
		return cacheDir, nil
	}
	if dirExists(botDir) {
		logger.Warn(ctx, "i18n", "locales.cache_missing",
			slog.String("bot", botName),
			slog.String("path", botDir),
			slog.String("source", "bot"),
		)
		return botDir, nil
	}
	if dirExists(globalDir) {
		logger.Warn(ctx, "i18n", "locales.cache_missing",
			slog.String("bot", botName),
			slog.String("path", globalDir),
			slog.String("source", "global"),
		)
		return globalDir, nil
	}

	return "", fmt.Errorf(
		"locales not found for bot %s; checked: %s, %s, %s (create locales or build the cache first)",
		botName, cacheDir, botDir, globalDir,
	)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
