package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

type ctxKey string

const (
	sessionCookieName = "session"
	userCtxKey        = ctxKey("user")
	sessionTTL        = 14 * 24 * time.Hour
)

// UserVerifier is an optional callback to validate that a session's user is still signed in.
// Set it during app bootstrap via SetUserVerifier. If nil, no extra verification is performed.
type UserVerifier func(ctx context.Context, username string) bool

var (
	mu       sync.RWMutex
	verifier UserVerifier
	secret   = "devsessionsecret"
)

// SetUserVerifier configures the global verifier used by RequireAuth.
func SetUserVerifier(v UserVerifier) {
	mu.Lock()
	defer mu.Unlock()
	verifier = v
}

// SetSecret replaces the HMAC key used to sign session cookies. Empty keeps the current one.
func SetSecret(s string) {
	if s == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	secret = s
}

func sign(payload string) string {
	mu.RLock()
	key := secret
	mu.RUnlock()
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie carrying the username.
func CreateSession(w http.ResponseWriter, username string) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(username))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie and returns the username.
func ParseSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	payload, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(sign(payload))) {
		return "", false
	}
	name, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(name) == 0 {
		return "", false
	}
	return string(name), true
}

// WithUser stores the username in context.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userCtxKey, username)
}

// UserFromContext extracts the username.
func UserFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(userCtxKey).(string)
	return name, ok && name != ""
}

// Middleware attaches the username to the request context if present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name, ok := ParseSession(r); ok {
			r = r.WithContext(WithUser(r.Context(), name))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth answers 401 JSON unless the request carries a verified session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		mu.RLock()
		v := verifier
		mu.RUnlock()
		if v != nil && !v(r.Context(), name) {
			// signed out elsewhere or the login changed
			ClearSession(w)
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprint(w, `{"error":"unauthorized"}`)
}
