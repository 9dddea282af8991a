package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	pkgAuth "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/auth"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/config"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(cfg, r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithRole(ctx, string(claims.Role))
			ctx = WithShopperID(ctx, fmt.Sprintf("user-%d", claims.UserID))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID,
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds the context from a bearer token when one is present but
// lets anonymous requests through. Guests carry their cart slot in the
// X-Shopper-Id header instead.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if strings.TrimSpace(r.Header.Get("Authorization")) != "" {
				claims, err := claimsFromRequest(cfg, r)
				if err != nil {
					responses.WriteError(ctx, logg, w, err)
					return
				}
				ctx = WithUserID(ctx, claims.UserID)
				ctx = WithRole(ctx, string(claims.Role))
				ctx = WithShopperID(ctx, fmt.Sprintf("user-%d", claims.UserID))
			} else if guest := strings.TrimSpace(r.Header.Get("X-Shopper-Id")); guest != "" {
				ctx = WithShopperID(ctx, "guest-"+guest)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromRequest(cfg config.JWTConfig, r *http.Request) (*pkgAuth.AccessTokenClaims, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	return claims, nil
}
