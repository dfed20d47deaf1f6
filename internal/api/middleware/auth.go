package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/redact"
)

// Client-facing details of authorization failures.
const (
	MsgAuthorizationRequired = "Authorization header required"
	MsgInvalidAuthFormat     = "Invalid authorization format"
	MsgForbiddenRole         = "Insufficient permissions for this resource"
)

// TokenVerifier resolves a bearer token to its principal.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Principal, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate verifies the bearer token of the request and places the
// resolved principal in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgAuthorizationRequired)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgInvalidAuthFormat)
			return
		}

		principal, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			var de *domain.Error
			if errors.As(err, &de) && de.Kind == domain.KindUnauthorized {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, de.Detail, err,
					shared.WithElevatedLogLevel())
				return
			}
			logger.FromContextOrDefault(r.Context(), slog.Default()).
				Error("failed to verify token", redact.ErrorAttr(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.WithPrincipal(r.Context(), principal)
		ctx = logger.WithLogger(ctx, logger.FromContextOrDefault(ctx, slog.Default()).With(
			slog.String("subject_id", principal.SubjectID.String()),
			slog.String("role", string(principal.Role))))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose principal has none of roles. It must
// run after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := shared.PrincipalFrom(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, MsgAuthorizationRequired)
				return
			}
			if !slices.Contains(roles, p.Role) {
				shared.RespondWithError(w, r, http.StatusForbidden, MsgForbiddenRole)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal extracts the principal from the request context.
func GetPrincipal(r *http.Request) (*domain.Principal, bool) {
	return shared.PrincipalFrom(r.Context())
}
