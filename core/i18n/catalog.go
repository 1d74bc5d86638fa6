// Package i18n loads translation catalogs and exposes per-update message
// lookup for Telegram bots. Source catalogs are flat YAML key/value files,
// one directory per language; the locale compiler merges them into JSON
// caches per bot.
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

const compiledCatalogName = "messages.json"

// Translator resolves message keys to localized strings. Lookup is total:
// a key missing from both the requested language and the default language
// is echoed back unchanged.
type Translator struct {
	defaultLang string
	catalogs    map[string]map[string]string
}

// NewTranslator loads all language catalogs found under dir. Each
// subdirectory of dir is a language code holding either a compiled
// messages.json or YAML source files.
func NewTranslator(dir string) (*Translator, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales dir %s: %w", dir, err)
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		catalogs:    make(map[string]map[string]string),
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		lang := e.Name()
		cat, err := loadLanguageDir(filepath.Join(dir, lang))
		if err != nil {
			return nil, fmt.Errorf("i18n: load catalog %s: %w", lang, err)
		}
		t.catalogs[lang] = cat
	}
	return t, nil
}

// Get returns the localized text for key in lang, falling back to the
// default language and finally to the key itself. It never fails.
func (t *Translator) Get(lang, key string) string {
	if t == nil {
		return key
	}
	if cat, ok := t.catalogs[lang]; ok {
		if msg, ok := cat[key]; ok && msg != "" {
			return msg
		}
	}
	if lang != t.defaultLang {
		if cat, ok := t.catalogs[t.defaultLang]; ok {
			if msg, ok := cat[key]; ok && msg != "" {
				return msg
			}
		}
	}
	return key
}

// Languages returns the sorted language codes loaded into this translator.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.catalogs))
	for lang := range t.catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Bind returns a lookup function fixed to one language.
func (t *Translator) Bind(lang string) func(string) string {
	return func(key string) string { return t.Get(lang, key) }
}

func loadLanguageDir(dir string) (map[string]string, error) {
	compiled := filepath.Join(dir, compiledCatalogName)
	if _, err := os.Stat(compiled); err == nil {
		return loadJSONCatalog(compiled)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isCatalogSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	merged := make(map[string]string)
	for _, f := range files {
		cat, err := loadYAMLCatalog(f)
		if err != nil {
			return nil, err
		}
		for k, v := range cat {
			merged[k] = v
		}
	}
	return merged, nil
}

func isCatalogSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func loadYAMLCatalog(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat := make(map[string]string)
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cat, nil
}

func loadJSONCatalog(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat := make(map[string]string)
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cat, nil
}
