package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danhigham/contestdash/internal/authn"
	"github.com/danhigham/contestdash/internal/config"
	"github.com/danhigham/contestdash/internal/domain"
	"github.com/danhigham/contestdash/internal/state"
	"github.com/danhigham/contestdash/internal/telegram"
	"github.com/danhigham/contestdash/internal/ui"
)

func main() {
	cfgDir := config.Dir()
	cfgPath := flag.String("config", filepath.Join(cfgDir, "config.yaml"), "path to config file")
	dashURL := flag.String("url", "", "dashboard URL including ?tg_id=")
	useTelegram := flag.Bool("telegram", false, "sign in to Telegram to fill a missing tg_id")
	phone := flag.String("phone", "", "phone number for Telegram sign-in")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	switch {
	case errors.Is(err, fs.ErrNotExist) && *dashURL != "":
		cfg = &config.Config{Theme: string(domain.ThemeDefault), LogLevel: "info"}
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load config from %s: %v\n", *cfgPath, err)
		fmt.Fprintf(os.Stderr, "\nCreate the config file with:\n")
		fmt.Fprintf(os.Stderr, "  mkdir -p %s\n", cfgDir)
		fmt.Fprintf(os.Stderr, "  cat > %s << 'EOF'\n", *cfgPath)
		fmt.Fprintf(os.Stderr, "dashboard:\n  url: \"https://example.org/dashboard?tg_id=123\"\nEOF\n")
		fmt.Fprintf(os.Stderr, "\nor pass the link directly with -url.\n")
		os.Exit(1)
	}
	if *dashURL != "" {
		cfg.Dashboard.URL = *dashURL
	}

	// Log to a file so the terminal stays clean
	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", cfgDir, err)
		os.Exit(1)
	}
	logger, err := newLogger(filepath.Join(cfgDir, "contestdash.log"), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *useTelegram {
		if !cfg.Telegram.Enabled() {
			fmt.Fprintln(os.Stderr, "-telegram needs telegram.api_id and telegram.api_hash in the config")
			os.Exit(1)
		}
		resolver := telegram.NewResolver(
			cfg.Telegram.APIID,
			cfg.Telegram.APIHash,
			cfgDir,
			telegram.NewPromptAuth(os.Stdin, os.Stdout, *phone),
			logger.Named("telegram"),
		)
		resolved, err := resolver.ResolveURL(ctx, cfg.Dashboard.URL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Telegram sign-in failed: %v\n", err)
			os.Exit(1)
		}
		cfg.Dashboard.URL = resolved
	}

	identifier, _ := authn.IdentifierFromURL(cfg.Dashboard.URL)
	client := authn.NewClient(cfg.Dashboard.AuthBase(), cfg.Dashboard.RequestTimeout)
	authenticator := authn.NewAuthenticator(client, logger.Named("authn"))
	logger.Info("starting dashboard",
		zap.String("api_base", cfg.Dashboard.AuthBase()),
		zap.Bool("has_identifier", identifier != ""),
	)

	// Create store (drawFunc will be set after app is created)
	store := state.New(nil)
	store.SetTheme(domain.ParseTheme(cfg.Theme))

	app := ui.NewApp(ctx, store, func(ctx context.Context) domain.Outcome {
		return authenticator.Authenticate(ctx, identifier)
	}, logger.Named("ui"))
	store.SetDrawFunc(app.DrawFunc())

	// Run TUI (blocks until quit)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(path, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logCfg.OutputPaths = []string{path}
	logCfg.ErrorOutputPaths = []string{path}
	return logCfg.Build()
}
