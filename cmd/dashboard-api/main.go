package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/codingconcepts/env"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/danhigham/contestdash/internal/accounts"
	"github.com/danhigham/contestdash/internal/authapi"
)

type Config struct {
	BindAddr   string `env:"BIND_ADDR"`
	ListenPort uint16 `env:"LISTEN_PORT" default:"8000"`

	DatabaseURL    string `env:"DATABASE_URL" required:"true"`
	CreatorID      int64  `env:"CREATOR_ID" default:"0"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" default:"*"`
	LogLevel       string `env:"LOG_LEVEL" default:"info"`
}

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("error loading .env file: %v", err)
	}
	config := Config{}
	if err := env.Set(&config); err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger, err := newLogger(config.LogLevel)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer logger.Sync()

	ctx, close := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer close()

	db, err := accounts.Open(ctx, config.DatabaseURL)
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer db.Close()

	repo := accounts.NewRepository(db, logger.Named("accounts"))
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("error preparing schema", zap.Error(err))
	}

	r := mux.NewRouter()
	authapi.New(repo, config.CreatorID, logger.Named("authapi")).RegisterRoutes(r)

	handler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(config.AllowedOrigins, ","),
		AllowedMethods: []string{http.MethodGet},
	}).Handler(r)

	addr := fmt.Sprintf("%s:%d", config.BindAddr, config.ListenPort)
	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	logger.Info("listening", zap.String("addr", addr))
	if err := serve(ctx, server, logger); err != nil {
		logger.Fatal("error running server", zap.Error(err))
	}
	logger.Info("server closed")
}

// serve runs server until ctx is done or the listener fails, whichever comes
// first, then shuts it down.
func serve(ctx context.Context, server *http.Server, logger *zap.Logger) error {
	wg, ctx := errgroup.WithContext(ctx)
	wg.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	wg.Go(func() error {
		<-ctx.Done()
		logger.Info("closing server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return wg.Wait()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
