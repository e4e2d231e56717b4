// internal/app/system/auth/auth.go
//
// Package auth is the authorization gate boundary: it resolves the
// calling member from a bearer token and enforces sign-in and role
// requirements. It authenticates the caller only; per-resource tenant
// checks stay in the stores, which always filter by organization.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"go.uber.org/zap"
)

// User is the resolved caller identity injected into the request
// context. It is refetched from storage on every request so role
// changes and deactivations take effect immediately.
type User struct {
	ID             string
	Name           string
	Email          string
	Role           string
	OrganizationID string
}

// UserFetcher loads fresh caller data for a verified member id.
// Implementations return nil when the member no longer exists or is
// inactive, which ends the request with 401.
type UserFetcher interface {
	FetchUser(ctx context.Context, memberID string) *User
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the caller from context and a found flag.
func CurrentUser(r *http.Request) (*User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*User)
	return u, ok
}

func withUser(r *http.Request, u *User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a caller directly, bypassing token verification.
// Test helper only.
func WithTestUser(r *http.Request, u *User) *http.Request {
	return withUser(r, u)
}

type claims struct {
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

// NewTokenManager builds a TokenManager. The signing secret must be
// non-empty; short secrets are accepted with a warning for dev use.
func NewTokenManager(secret string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide 32+ random chars")
	}
	if len(secret) < 32 && logger != nil {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// SetUserFetcher wires the per-request user loader. Must be called
// before the middleware is mounted.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) { tm.fetcher = f }

// Issue mints a signed token for the given member id.
func (tm *TokenManager) Issue(memberID string) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// verify parses a token string and returns the member id.
func (tm *TokenManager) verify(tokenString string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	if c.Subject == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return c.Subject, nil
}

// LoadBearerUser injects the caller into context when the request
// carries a valid bearer token. Requests without a token (or with an
// invalid one) continue anonymously; RequireSignedIn decides whether
// that matters.
func (tm *TokenManager) LoadBearerUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		memberID, err := tm.verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if tm.fetcher != nil {
			if u := tm.fetcher.FetchUser(r.Context(), memberID); u != nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures a caller is present (set by LoadBearerUser),
// answering 401 otherwise.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpx.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the caller holds one of the allowed roles:
// 401 when not signed in, 403 when signed in with the wrong role.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				httpx.Unauthorized(w)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				httpx.Forbidden(w, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
