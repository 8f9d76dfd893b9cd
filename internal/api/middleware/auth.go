package middleware

import (
	"context"
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
)

type contextKey string

const principalKey contextKey = "principal"

// SessionMiddleware resolves the session cookie into a policy principal and
// stores it in the request context. Requests without a valid session pass
// through with no principal; enforcement happens per-route.
func SessionMiddleware(sessions *services.SessionService, users principalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessions.CookieName())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			data, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			principal := &policy.Principal{UserID: data.UserID, Role: data.Role}
			if users != nil {
				// The managed-resource link can change after login, so it is
				// loaded fresh rather than baked into the session.
				if managed, err := users.GetManagedResourceID(r.Context(), data.UserID); err == nil && managed != nil {
					principal.ManagedResourceID = *managed
				}
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalLoader fetches the managed resource link for a user.
type principalLoader interface {
	GetManagedResourceID(ctx context.Context, userID string) (*string, error)
}

// PrincipalFromContext returns the authenticated principal, or nil for
// anonymous requests.
func PrincipalFromContext(ctx context.Context) *policy.Principal {
	principal, _ := ctx.Value(principalKey).(*policy.Principal)
	return principal
}

// WithPrincipal returns a context carrying the principal. Used by handler
// tests.
func WithPrincipal(ctx context.Context, principal *policy.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}
