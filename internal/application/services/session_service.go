package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/providers"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionData is what a valid session resolves to.
type SessionData struct {
	UserID string        `json:"user_id"`
	Role   entities.Role `json:"role"`
}

// SessionService issues and resolves cookie-backed sessions. The cookie
// carries only an encrypted session ID; the session state lives in Redis
// under session:<id> with a TTL.
type SessionService struct {
	cache      providers.CacheProvider
	codec      *securecookie.SecureCookie
	cookieName string
	ttlSeconds int
}

// NewSessionService creates a new session service
func NewSessionService(cache providers.CacheProvider, hashKey, blockKey []byte, cookieName string, ttlSeconds int) *SessionService {
	return &SessionService{
		cache:      cache,
		codec:      securecookie.New(hashKey, blockKey),
		cookieName: cookieName,
		ttlSeconds: ttlSeconds,
	}
}

// CookieName returns the session cookie name
func (s *SessionService) CookieName() string {
	return s.cookieName
}

// TTLSeconds returns the session lifetime in seconds
func (s *SessionService) TTLSeconds() int {
	return s.ttlSeconds
}

// Create stores a new session for the user and returns the encoded cookie
// value.
func (s *SessionService) Create(ctx context.Context, user *entities.User) (string, error) {
	sessionID := uuid.New().String()

	data, err := json.Marshal(SessionData{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode session", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+sessionID, data, s.ttlSeconds); err != nil {
		return "", apperrors.NewInternalError("failed to store session", err)
	}

	encoded, err := s.codec.Encode(s.cookieName, sessionID)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode session cookie", err)
	}
	return encoded, nil
}

// Resolve decodes the cookie value and loads the session. A tampered cookie
// or an expired session both come back as unauthorized.
func (s *SessionService) Resolve(ctx context.Context, cookieValue string) (*SessionData, error) {
	var sessionID string
	if err := s.codec.Decode(s.cookieName, cookieValue, &sessionID); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid session cookie")
	}

	raw, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("session expired")
	}

	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("corrupt session %s", sessionID), err)
	}
	return &data, nil
}

// Destroy deletes the session behind the cookie value. An already-invalid
// cookie is not an error; logout is idempotent.
func (s *SessionService) Destroy(ctx context.Context, cookieValue string) error {
	var sessionID string
	if err := s.codec.Decode(s.cookieName, cookieValue, &sessionID); err != nil {
		return nil
	}
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
