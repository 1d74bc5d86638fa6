package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{Bot: "echo_bot"}
	cfg.Telegram.Token = "123456:ABC-DEF"

	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.RateLimit.PerUser != 3 {
		t.Errorf("rate_limit.per_user = %d, want 3", cfg.RateLimit.PerUser)
	}
	if cfg.RateLimit.WindowSec != 1 {
		t.Errorf("rate_limit.window_sec = %d, want 1", cfg.RateLimit.WindowSec)
	}
	if cfg.I18n.Bot != "echo_bot" {
		t.Errorf("i18n.bot = %q, want echo_bot", cfg.I18n.Bot)
	}
	if cfg.Database.Enabled() {
		t.Error("database should stay disabled without a host")
	}
}

func TestValidateToken(t *testing.T) {
	cases := []struct {
		token string
		ok    bool
	}{
		{"123456:ABC-DEF", true},
		{"  123456:ABC-DEF  ", true},
		{"", false},
		{"   ", false},
		{"put-your-telegram-bot-token-here", false},
		{"PUT-YOUR-TELEGRAM-BOT-TOKEN-HERE-and-more", false},
	}
	for _, tc := range cases {
		err := ValidateToken(tc.token)
		if tc.ok && err != nil {
			t.Errorf("ValidateToken(%q) = %v, want nil", tc.token, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidateToken(%q) = nil, want error", tc.token)
		}
	}
}

func TestNormalizeRejectsPlaceholderToken(t *testing.T) {
	cfg := &Config{Bot: "echo_bot"}
	cfg.Telegram.Token = "put-your-telegram-bot-token-here"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected placeholder token to be rejected")
	}
}

func TestSelectEnvFilePrefersBotEnv(t *testing.T) {
	root := t.TempDir()
	botDir := filepath.Join(root, "bots", "questionnaire_bot")
	if err := os.MkdirAll(botDir, 0o755); err != nil {
		t.Fatal(err)
	}
	botEnv := filepath.Join(botDir, ".env")
	rootEnv := filepath.Join(root, ".env")
	for _, p := range []string{botEnv, rootEnv} {
		if err := os.WriteFile(p, []byte("BOT_TOKEN=x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if got := SelectEnvFile(root, "questionnaire_bot"); got != botEnv {
		t.Errorf("SelectEnvFile = %q, want %q", got, botEnv)
	}
	if got := SelectEnvFile(root, "echo_bot"); got != rootEnv {
		t.Errorf("SelectEnvFile (no bot env) = %q, want %q", got, rootEnv)
	}
}

func TestSelectEnvFileOverride(t *testing.T) {
	t.Setenv("ENV_FILE", "/tmp/custom.env")
	if got := SelectEnvFile(t.TempDir(), "echo_bot"); got != "/tmp/custom.env" {
		t.Errorf("SelectEnvFile = %q, want ENV_FILE override", got)
	}
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := &Config{Bot: "echo_bot"}
	cfg.Telegram.Token = "123456:ABC"
	cfg.Telegram.RunMode = "webhook"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected webhook mode without url to fail")
	}
}
