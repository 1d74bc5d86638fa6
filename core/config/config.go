package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const tokenPlaceholder = "put-your-telegram-bot-token-here"

// TelegramConfig holds Telegram bot related settings that are common for all bots.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// RateLimitConfig holds settings for the per-user sliding window limiter.
type RateLimitConfig struct {
	PerUser   int `yaml:"per_user" envconfig:"RATE_LIMIT_PER_USER"`
	WindowSec int `yaml:"window_sec" envconfig:"RATE_LIMIT_WINDOW_SEC"`
}

// I18nConfig selects which bot's compiled locale catalogs are used.
type I18nConfig struct {
	Bot string `yaml:"bot" envconfig:"I18N_BOT"`
	// Root overrides the project root; empty means the working directory.
	Root string `yaml:"root" envconfig:"I18N_ROOT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// DatabaseConfig holds optional submission storage settings.
// Persistence stays disabled while Host is empty.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Enabled reports whether submission persistence is configured.
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.Host) != ""
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Config aggregates the configuration that belongs to the reusable core.
type Config struct {
	Bot       string          `yaml:"-"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	I18n      I18nConfig      `yaml:"i18n"`
	Logging   LoggingConfig   `yaml:"logging"`
	Database  DatabaseConfig  `yaml:"database"`
}

// CoreConfig lets *Config satisfy the runner's config carrier directly.
func (c *Config) CoreConfig() *Config {
	return c
}

// SelectEnvFile resolves which .env file applies for a bot.
// ENV_FILE wins, then bots/<bot>/.env, then the repo root .env.
func SelectEnvFile(root, botName string) string {
	if override := strings.TrimSpace(os.Getenv("ENV_FILE")); override != "" {
		return override
	}
	if botName != "" {
		botEnv := filepath.Join(root, "bots", botName, ".env")
		if _, err := os.Stat(botEnv); err == nil {
			return botEnv
		}
	}
	rootEnv := filepath.Join(root, ".env")
	if _, err := os.Stat(rootEnv); err == nil {
		return rootEnv
	}
	return ""
}

// Load reads configuration for the named bot from an optional YAML file,
// a .env file, and environment variables, in increasing priority.
// The bot identity is always explicit; there is no auto-detection.
func Load(botName, path string) (*Config, error) {
	if strings.TrimSpace(botName) == "" {
		return nil, fmt.Errorf("config: bot name is required")
	}

	var cfg Config
	cfg.Bot = botName

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	root := cfg.I18n.Root
	if root == "" {
		root = "."
	}
	if envFile := SelectEnvFile(root, botName); envFile != "" {
		// godotenv does not override variables already present in the process env.
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if err := ValidateToken(cfg.Telegram.Token); err != nil {
		return err
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.RateLimit.PerUser <= 0 {
		cfg.RateLimit.PerUser = 3
	}
	if cfg.RateLimit.WindowSec <= 0 {
		cfg.RateLimit.WindowSec = 1
	}

	if strings.TrimSpace(cfg.I18n.Bot) == "" {
		cfg.I18n.Bot = cfg.Bot
	}

	if cfg.Database.Enabled() {
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
		if cfg.Database.MaxConnections <= 0 {
			cfg.Database.MaxConnections = 4
		}
	}
	return nil
}

// ValidateToken fails fast when the bot token is missing or left as a placeholder.
func ValidateToken(token string) error {
	vv := strings.TrimSpace(token)
	if vv == "" || strings.HasPrefix(strings.ToLower(vv), tokenPlaceholder) {
		return fmt.Errorf("BOT_TOKEN is not set (check .env); set a real token instead of a placeholder")
	}
	return nil
}
