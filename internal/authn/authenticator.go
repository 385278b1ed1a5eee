package authn

import (
	"context"

	"go.uber.org/zap"

	"github.com/danhigham/contestdash/internal/domain"
)

const (
	msgMissingIdentifier = "missing tg_id"
	msgConnectionError   = "connection error"
	msgNotAuthorized     = "not authorized"
)

// Fetcher retrieves an authorization result for an identifier.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) (*domain.AuthResult, error)
}

// Authenticator turns a session identifier into exactly one Outcome.
type Authenticator struct {
	fetcher Fetcher
	logger  *zap.Logger
}

func NewAuthenticator(fetcher Fetcher, logger *zap.Logger) *Authenticator {
	return &Authenticator{fetcher: fetcher, logger: logger}
}

// Authenticate makes at most one call to the auth endpoint. There is no retry.
func (a *Authenticator) Authenticate(ctx context.Context, identifier string) domain.Outcome {
	if identifier == "" {
		return domain.Outcome{Kind: domain.OutcomeMissingIdentifier, Message: msgMissingIdentifier}
	}

	result, err := a.fetcher.Fetch(ctx, identifier)
	if err != nil {
		a.logger.Error("authorization failed", zap.String("tg_id", identifier), zap.Error(err))
		return domain.Outcome{Kind: domain.OutcomeConnectionError, Message: msgConnectionError, Err: err}
	}

	out := Classify(*result)
	if out.Kind == domain.OutcomeStandard && !result.Role.Known() {
		a.logger.Warn("unexpected role treated as user", zap.String("role", string(result.Role)))
	}
	a.logger.Info("authorization settled",
		zap.String("tg_id", identifier),
		zap.Stringer("outcome", out.Kind),
		zap.String("role", string(out.Role)),
	)
	return out
}

// Classify maps a decoded server response to an Outcome. Any role other than
// creator or admin is treated as a regular user.
func Classify(r domain.AuthResult) domain.Outcome {
	if !r.Authorized {
		msg := r.Message
		if msg == "" {
			msg = msgNotAuthorized
		}
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: msg}
	}
	if r.Role.Privileged() {
		return domain.Outcome{Kind: domain.OutcomePrivileged, TelegramID: r.TelegramID, Role: r.Role}
	}
	return domain.Outcome{Kind: domain.OutcomeStandard, TelegramID: r.TelegramID, Role: r.Role}
}
