package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalBot is the pseudo-bot whose cache holds only the global catalogs.
const GlobalBot = "global"

// CompileResult summarizes one bot's catalog compilation.
type CompileResult struct {
	Bot       string
	Languages []string
	OutDir    string
}

// AvailableBots lists bot directories under root/bots.
func AvailableBots(root string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, "bots"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var bots []string
	for _, e := range entries {
		if e.IsDir() {
			bots = append(bots, e.Name())
		}
	}
	sort.Strings(bots)
	return bots, nil
}

// LangFromPath infers a catalog's language from the path segment following
// the locales directory, defaulting to DefaultLanguage when absent.
func LangFromPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i, p := range parts {
		if p == LocalesDirName && i+1 < len(parts)-1 {
			return parts[i+1]
		}
	}
	return DefaultLanguage
}

// CompileBot merges the global catalogs with the bot's own (bot entries
// override global ones per key) and writes one compiled JSON catalog per
// language into the bot's cache directory. The bot's cache is recreated
// from scratch on every run. With keepSource the merged YAML is written
// alongside the JSON.
func CompileBot(root, bot string, keepSource bool) (CompileResult, error) {
	res := CompileResult{Bot: bot}

	byLang := make(map[string][]string)
	scan := func(dir string) error {
		if !dirExists(dir) {
			return nil
		}
		return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isCatalogSource(path) {
				return nil
			}
			lang := LangFromPath(path)
			byLang[lang] = append(byLang[lang], path)
			return nil
		})
	}

	// Global first so bot catalogs override on merge.
	if err := scan(filepath.Join(root, LocalesDirName)); err != nil {
		return res, fmt.Errorf("i18n: scan global catalogs: %w", err)
	}
	if bot != GlobalBot {
		if err := scan(filepath.Join(root, "bots", bot, LocalesDirName)); err != nil {
			return res, fmt.Errorf("i18n: scan bot catalogs: %w", err)
		}
	}

	cacheRoot := filepath.Join(root, CacheDirName, bot)
	if err := os.RemoveAll(cacheRoot); err != nil {
		return res, fmt.Errorf("i18n: reset cache %s: %w", cacheRoot, err)
	}
	res.OutDir = filepath.Join(cacheRoot, LocalesDirName)
	if err := os.MkdirAll(res.OutDir, 0o755); err != nil {
		return res, fmt.Errorf("i18n: create cache %s: %w", res.OutDir, err)
	}

	for lang, files := range byLang {
		// Walk order already puts global before bot; keep file order stable
		// within each tier.
		merged := make(map[string]string)
		for _, f := range files {
			cat, err := loadYAMLCatalog(f)
			if err != nil {
				return res, err
			}
			for k, v := range cat {
				merged[k] = v
			}
		}
		if err := writeCompiled(res.OutDir, lang, merged, keepSource); err != nil {
			return res, err
		}
		res.Languages = append(res.Languages, lang)
	}
	sort.Strings(res.Languages)
	return res, nil
}

// CompileAll compiles every bot under root/bots; the global pseudo-bot is
// included only when asked for.
func CompileAll(root string, includeGlobal, keepSource bool) ([]CompileResult, error) {
	bots, err := AvailableBots(root)
	if err != nil {
		return nil, err
	}
	if includeGlobal {
		bots = append(bots, GlobalBot)
	}
	results := make([]CompileResult, 0, len(bots))
	for _, bot := range bots {
		res, err := CompileBot(root, bot, keepSource)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func writeCompiled(outDir, lang string, merged map[string]string, keepSource bool) error {
	langDir := filepath.Join(outDir, lang)
	if err := os.MkdirAll(langDir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(langDir, compiledCatalogName), append(data, '\n'), 0o644); err != nil {
		return err
	}

	if keepSource {
		src, err := yaml.Marshal(merged)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(langDir, "messages.yaml"), src, 0o644); err != nil {
			return err
		}
	}
	return nil
}
