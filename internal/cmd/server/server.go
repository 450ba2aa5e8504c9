// Package server wires configuration, storage, and the web server for the
// site's single process.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/beanhall/beanhall/internal/account"
	accountsqlite "github.com/beanhall/beanhall/internal/account/sqlite"
	"github.com/beanhall/beanhall/internal/platform/config"
	"github.com/beanhall/beanhall/internal/web"
)

// Config holds the server command configuration.
//
// Environment variables provide the defaults; flags override them.
type Config struct {
	HTTPAddr   string        `env:"BEANHALL_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath     string        `env:"BEANHALL_DB_PATH" envDefault:"beanhall.db"`
	AppName    string        `env:"BEANHALL_APP_NAME" envDefault:"Beanhall"`
	SessionTTL time.Duration `env:"BEANHALL_SESSION_TTL" envDefault:"12h"`
}

// ParseConfig parses the environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.AppName, "app-name", cfg.AppName, "Site name shown in pages")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle session lifetime")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run opens storage, seeds the default accounts, and serves HTTP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	store, err := accountsqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open account store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	accounts := account.NewService(store)
	if err := accounts.EnsureDefaultAccounts(ctx); err != nil {
		return fmt.Errorf("seed default accounts: %w", err)
	}
	if total, err := store.CountAccounts(ctx); err == nil {
		log.Printf("account store ready at %s with %d accounts", cfg.DBPath, total)
	}

	srv, err := web.NewServer(web.Config{
		HTTPAddr:   cfg.HTTPAddr,
		AppName:    cfg.AppName,
		SessionTTL: cfg.SessionTTL,
	}, accounts)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
