package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveLocalesDirPreference(t *testing.T) {
	root := t.TempDir()
	cacheDir := filepath.Join(root, CacheDirName, "echo_bot", LocalesDirName)
	botDir := filepath.Join(root, "bots", "echo_bot", LocalesDirName)
	globalDir := filepath.Join(root, LocalesDirName)

	if _, err := ResolveLocalesDir(root, "echo_bot"); err == nil {
		t.Fatal("expected error when no locales exist at all")
	}

	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if got, err := ResolveLocalesDir(root, "echo_bot"); err != nil || got != globalDir {
		t.Errorf("ResolveLocalesDir = %q, %v; want global dir", got, err)
	}

	if err := os.MkdirAll(botDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if got, _ := ResolveLocalesDir(root, "echo_bot"); got != botDir {
		t.Errorf("ResolveLocalesDir = %q; want bot dir over global", got)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if got, _ := ResolveLocalesDir(root, "echo_bot"); got != cacheDir {
		t.Errorf("ResolveLocalesDir = %q; want cache dir over bot dir", got)
	}
}

func TestTranslatorLookupAndFallback(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, filepath.Join(dir, "en", "messages.yaml"),
		"greeting: Hello\nonly.en: English only\n")
	writeCatalog(t, filepath.Join(dir, "ru", "messages.yaml"),
		"greeting: Привет\n")

	tr, err := NewTranslator(dir)
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}

	if got := tr.Get("ru", "greeting"); got != "Привет" {
		t.Errorf("ru greeting = %q", got)
	}
	if got := tr.Get("ru", "only.en"); got != "English only" {
		t.Errorf("fallback to en = %q", got)
	}
	if got := tr.Get("de", "greeting"); got != "Hello" {
		t.Errorf("unknown lang falls back to en, got %q", got)
	}
	if got := tr.Get("en", "no.such.key"); got != "no.such.key" {
		t.Errorf("missing key should echo, got %q", got)
	}
}

func TestTranslatorReadsCompiledCatalog(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, filepath.Join(dir, "en", "messages.json"),
		`{"greeting": "Compiled hello"}`)
	// A stray YAML should lose to the compiled catalog.
	writeCatalog(t, filepath.Join(dir, "en", "messages.yaml"),
		"greeting: Source hello\n")

	tr, err := NewTranslator(dir)
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	if got := tr.Get("en", "greeting"); got != "Compiled hello" {
		t.Errorf("greeting = %q, want compiled value", got)
	}
}

func TestLangFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{filepath.Join("locales", "ru", "messages.yaml"), "ru"},
		{filepath.Join("bots", "echo_bot", "locales", "de", "extra", "a.yaml"), "de"},
		{filepath.Join("locales", "messages.yaml"), DefaultLanguage},
		{"messages.yaml", DefaultLanguage},
	}
	for _, tc := range cases {
		if got := LangFromPath(tc.path); got != tc.want {
			t.Errorf("LangFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestCompileBotOverridesGlobal(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, filepath.Join(root, "locales", "en", "messages.yaml"),
		"hello: Global hello\nbye: Goodbye\n")
	writeCatalog(t, filepath.Join(root, "bots", "test_bot", "locales", "en", "messages.yaml"),
		"hello: Bot hello\n")

	res, err := CompileBot(root, "test_bot", false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(res.Languages) != 1 || res.Languages[0] != "en" {
		t.Fatalf("languages = %v, want [en]", res.Languages)
	}

	tr, err := NewTranslator(res.OutDir)
	if err != nil {
		t.Fatalf("load compiled: %v", err)
	}
	if got := tr.Get("en", "hello"); got != "Bot hello" {
		t.Errorf("bot catalog should override global: hello = %q", got)
	}
	if got := tr.Get("en", "bye"); got != "Goodbye" {
		t.Errorf("global-only key should survive merge: bye = %q", got)
	}
}

func TestCompileBotWithoutOwnCatalogs(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, filepath.Join(root, "locales", "en", "messages.yaml"),
		"hello: Global hello\n")
	if err := os.MkdirAll(filepath.Join(root, "bots", "bare_bot"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := CompileBot(root, "bare_bot", false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	tr, err := NewTranslator(res.OutDir)
	if err != nil {
		t.Fatalf("load compiled: %v", err)
	}
	if got := tr.Get("en", "hello"); got != "Global hello" {
		t.Errorf("bare bot should inherit global entries: hello = %q", got)
	}
}

func TestCompileKeepSourceWritesMergedYAML(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, filepath.Join(root, "locales", "en", "messages.yaml"),
		"hello: Global hello\n")

	res, err := CompileBot(root, GlobalBot, true)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(res.OutDir, "en", "messages.yaml")); err != nil {
		t.Errorf("merged yaml missing: %v", err)
	}
}

func TestAvailableBots(t *testing.T) {
	root := t.TempDir()
	for _, b := range []string{"echo_bot", "questionnaire_bot"} {
		if err := os.MkdirAll(filepath.Join(root, "bots", b), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	bots, err := AvailableBots(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(bots) != 2 || bots[0] != "echo_bot" || bots[1] != "questionnaire_bot" {
		t.Errorf("AvailableBots = %v", bots)
	}
}
