package middleware

import (
	"net/http"
	"strings"

	"github.com/vuminhngo/techstore-backend/api/responses"
	pkgerrors "github.com/vuminhngo/techstore-backend/pkg/errors"
	"github.com/vuminhngo/techstore-backend/pkg/logger"
)

// Identity headers set by the fronting auth proxy. Authentication itself
// happens upstream; this service only trusts and propagates the result.
const (
	userIDHeader = "X-User-Id"
	roleHeader   = "X-User-Role"
)

const RoleAdmin = "admin"

// Identity copies the proxy-asserted user id and role into the request
// context. Requests without an identity pass through; the Require* guards
// reject them where one is mandatory.
func Identity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := strings.TrimSpace(r.Header.Get(userIDHeader))
			role := strings.TrimSpace(r.Header.Get(roleHeader))

			if userID != "" {
				ctx = WithUserID(ctx, userID)
				if logg != nil {
					ctx = logg.WithUserID(ctx, userID)
				}
			}
			if role != "" {
				ctx = WithRole(ctx, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that carry no asserted user identity.
func RequireUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests whose asserted role is not admin.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing"))
				return
			}
			if RoleFromContext(r.Context()) != RoleAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
