// Package authapi serves the authorization endpoint the dashboard calls on load.
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/danhigham/contestdash/internal/accounts"
	"github.com/danhigham/contestdash/internal/domain"
)

const (
	msgUserNotFound = "user not found"
	msgServerError  = "server error while checking access, try again later"
)

// UserStore is the subset of the accounts repository the server needs.
type UserStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*accounts.User, error)
	Create(ctx context.Context, u *accounts.User) error
	UpdateUsername(ctx context.Context, telegramID int64, username string) error
}

// Response is the JSON body of GET /api/auth.
type Response struct {
	Authorized bool        `json:"authorized"`
	TelegramID int64       `json:"telegram_id,omitempty"`
	Role       domain.Role `json:"role,omitempty"`
	Message    string      `json:"message,omitempty"`
}

type Server struct {
	users     UserStore
	creatorID int64
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a Server. creatorID is bootstrapped as the creator the first
// time it authenticates; zero disables bootstrapping.
func New(users UserStore, creatorID int64, logger *zap.Logger) *Server {
	return &Server{
		users:     users,
		creatorID: creatorID,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Server) RegisterRoutes(r *mux.Router) {
	r.Path("/api/auth").Methods(http.MethodGet).HandlerFunc(s.handleAuth)
	r.Path("/healthz").Methods(http.MethodGet).HandlerFunc(s.handleHealth)
}

func (s *Server) handleAuth(res http.ResponseWriter, req *http.Request) {
	raw := req.URL.Query().Get("tg_id")
	if raw == "" {
		http.Error(res, "'tg_id' URL parameter is required", http.StatusBadRequest)
		return
	}
	tgID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(res, "'tg_id' must be an integer", http.StatusBadRequest)
		return
	}

	username := strings.TrimPrefix(strings.TrimSpace(req.URL.Query().Get("username")), "@")
	s.writeJSON(res, s.authorize(req.Context(), tgID, username))
}

// authorize resolves tgID to a role. A non-empty username is stored on first
// login and refreshed when it differs from the stored one.
func (s *Server) authorize(ctx context.Context, tgID int64, username string) Response {
	logger := s.logger.With(zap.Int64("tg_id", tgID))

	user, err := s.users.GetByTelegramID(ctx, tgID)
	if errors.Is(err, accounts.ErrNotFound) && s.creatorID != 0 && tgID == s.creatorID {
		logger.Info("bootstrapping creator account")
		user = &accounts.User{TelegramID: tgID, Username: username, Role: domain.RoleCreator, CreatedAt: s.now().UTC()}
		err = s.users.Create(ctx, user)
	}
	if errors.Is(err, accounts.ErrNotFound) {
		logger.Warn("user not found")
		return Response{Authorized: false, Message: msgUserNotFound}
	}
	if err != nil {
		logger.Error("failed to resolve user", zap.Error(err))
		return Response{Authorized: false, Message: msgServerError}
	}

	if username != "" && username != user.Username {
		if err := s.users.UpdateUsername(ctx, tgID, username); err != nil {
			logger.Warn("failed to refresh username", zap.Error(err))
		} else {
			logger.Info("username refreshed", zap.String("old", user.Username), zap.String("new", username))
		}
	}

	logger.Info("authorized", zap.String("role", string(user.Role)))
	return Response{Authorized: true, TelegramID: user.TelegramID, Role: user.Role}
}

func (s *Server) handleHealth(res http.ResponseWriter, req *http.Request) {
	s.writeJSON(res, map[string]bool{"ok": true})
}

func (s *Server) writeJSON(res http.ResponseWriter, v any) {
	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(v); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}
