package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/service/auth"
)

// TokenIssuer is the part of the auth service the login endpoints use.
type TokenIssuer interface {
	Login(ctx context.Context, username, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	if tokens == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tokens cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		tokens: tokens,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.tokens.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Debug("login rejected", slog.String("username", req.Username))
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    TokenTypeBearer,
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	access, err := h.tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken: access,
		TokenType:   TokenTypeBearer,
	})
}
