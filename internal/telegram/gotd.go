package telegram

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"

	"github.com/danhigham/contestdash/internal/authn"
)

// Resolver signs in to Telegram as the operator and reports their user id,
// which is the dashboard's session identifier.
type Resolver struct {
	apiID      int
	apiHash    string
	sessionDir string
	authFlow   auth.UserAuthenticator
	logger     *zap.Logger
}

func NewResolver(apiID int, apiHash, sessionDir string, authFlow auth.UserAuthenticator, logger *zap.Logger) *Resolver {
	return &Resolver{
		apiID:      apiID,
		apiHash:    apiHash,
		sessionDir: sessionDir,
		authFlow:   authFlow,
		logger:     logger,
	}
}

// SelfID connects, authenticates if the stored session is missing or expired,
// and returns the signed-in user's id.
func (r *Resolver) SelfID(ctx context.Context) (int64, error) {
	client := telegram.NewClient(r.apiID, r.apiHash, telegram.Options{
		Logger:         r.logger.Named("gotd"),
		SessionStorage: &session.FileStorage{Path: filepath.Join(r.sessionDir, "session.json")},
	})

	var id int64
	err := client.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(r.authFlow, auth.SendCodeOptions{})
		if err := client.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("auth: %w", err)
		}

		self, err := client.Self(ctx)
		if err != nil {
			return fmt.Errorf("get self: %w", err)
		}
		id = self.ID
		r.logger.Info("resolved telegram identity", zap.Int64("id", id), zap.String("username", self.Username))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ResolveURL returns dashboardURL unchanged when it already carries an
// identifier, otherwise it fills tg_id with the signed-in user's id.
func (r *Resolver) ResolveURL(ctx context.Context, dashboardURL string) (string, error) {
	if _, ok := authn.IdentifierFromURL(dashboardURL); ok {
		return dashboardURL, nil
	}
	id, err := r.SelfID(ctx)
	if err != nil {
		return "", err
	}
	return authn.WithIdentifier(dashboardURL, strconv.FormatInt(id, 10))
}
