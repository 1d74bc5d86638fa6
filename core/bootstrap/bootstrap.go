package bootstrap

import (
	"fmt"
	"strings"

	"log/slog"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/LizardKing131313/tg-bots/core/config"
	coredatabase "github.com/LizardKing131313/tg-bots/core/database"
	"github.com/LizardKing131313/tg-bots/core/i18n"
	"github.com/LizardKing131313/tg-bots/core/logger"
	"github.com/LizardKing131313/tg-bots/core/telegram/state"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	// Root is the project root used for locale resolution. Defaults to ".".
	Root string

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(coredatabase.Config) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
// DB stays nil when persistence is not configured.
type Result struct {
	DB         *sqlx.DB
	Translator *i18n.Translator
	States     state.Manager
}

// Run initializes the logger, connects to the database when one is
// configured, and loads the bot's compiled message catalogs.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}
	cfg := opts.Config

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	res := &Result{States: state.NewMemoryManager()}

	if cfg.Database.Enabled() {
		dbCfg := databaseConfig(cfg.Database)

		connect := opts.Connect
		if connect == nil {
			connect = coredatabase.Connect
		}
		db, err := connect(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
		}

		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		if err := migrate(dbCfg); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
		res.DB = db
	}

	root := opts.Root
	if root == "" {
		root = cfg.I18n.Root
	}
	if root == "" {
		root = "."
	}
	localesDir, err := i18n.ResolveLocalesDir(root, cfg.I18n.Bot)
	if err != nil {
		closeResult(res)
		return nil, fmt.Errorf("bootstrap: locales missing: %w", err)
	}
	tr, err := i18n.NewTranslator(localesDir)
	if err != nil {
		closeResult(res)
		return nil, fmt.Errorf("bootstrap: catalog load failed: %w", err)
	}
	res.Translator = tr
	logger.I18N.Info("catalogs loaded",
		slog.String("event", "i18n.loaded"),
		slog.String("bot", cfg.I18n.Bot),
		slog.String("path", localesDir),
		slog.String("lang", strings.Join(tr.Languages(), ",")),
	)

	return res, nil
}

// Close releases bootstrap-owned resources.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

func closeResult(r *Result) {
	if r != nil && r.DB != nil {
		_ = r.DB.Close()
	}
}

func databaseConfig(d coreconfig.DatabaseConfig) coredatabase.Config {
	return coredatabase.Config{
		Host:           d.Host,
		Port:           d.Port,
		User:           d.User,
		Password:       d.Password,
		Name:           d.Name,
		SSLMode:        d.SSLMode,
		MaxConnections: d.MaxConnections,
	}
}
