package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/adapters/cache"
	"github.com/advocacy-resources/advo-sub001/internal/api/middleware"
	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
	redisclient "github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/redis"
)

type fixedLoader struct {
	managed map[string]string
}

func (l *fixedLoader) GetManagedResourceID(_ context.Context, userID string) (*string, error) {
	if id, ok := l.managed[userID]; ok {
		return &id, nil
	}
	return nil, nil
}

func newSessionService(t *testing.T) *services.SessionService {
	t.Helper()
	mr := miniredis.RunT(t)
	provider := cache.NewRedisAdapter(redisclient.NewClientFromAddr(mr.Addr()))
	hashKey := []byte("0123456789abcdef0123456789abcdef")
	blockKey := []byte("fedcba9876543210fedcba9876543210")
	return services.NewSessionService(provider, hashKey, blockKey, "rd_session", 3600)
}

func capturePrincipal(captured **policy.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = middleware.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware_ResolvesPrincipal(t *testing.T) {
	sessions := newSessionService(t)
	loader := &fixedLoader{managed: map[string]string{"rep-1": "res-9"}}
	mw := middleware.SessionMiddleware(sessions, loader)

	cookieValue, err := sessions.Create(context.Background(), &entities.User{ID: "rep-1", Role: entities.RoleBusinessRep})
	require.NoError(t, err)

	var principal *policy.Principal
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "rd_session", Value: cookieValue})
	mw(capturePrincipal(&principal)).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, principal)
	assert.Equal(t, "rep-1", principal.UserID)
	assert.Equal(t, entities.RoleBusinessRep, principal.Role)
	assert.Equal(t, "res-9", principal.ManagedResourceID)
}

func TestSessionMiddleware_AnonymousWithoutCookie(t *testing.T) {
	sessions := newSessionService(t)
	mw := middleware.SessionMiddleware(sessions, &fixedLoader{})

	var principal *policy.Principal
	req := httptest.NewRequest("GET", "/api/resources/r1", nil)
	mw(capturePrincipal(&principal)).ServeHTTP(httptest.NewRecorder(), req)

	assert.Nil(t, principal)
}

func TestSessionMiddleware_TamperedCookieIsAnonymous(t *testing.T) {
	sessions := newSessionService(t)
	mw := middleware.SessionMiddleware(sessions, &fixedLoader{})

	var principal *policy.Principal
	req := httptest.NewRequest("GET", "/api/resources/r1", nil)
	req.AddCookie(&http.Cookie{Name: "rd_session", Value: "not-a-real-session"})
	mw(capturePrincipal(&principal)).ServeHTTP(httptest.NewRecorder(), req)

	assert.Nil(t, principal)
}
