package middlewareinternal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/core"
	"github.com/Evgen-Mutagen/online-banking/internal/types"
	"github.com/Evgen-Mutagen/online-banking/internal/util/logger"
	"go.uber.org/zap"
)

const (
	CookieName = "jwt"
	cookieTTL  = 24 * time.Hour
)

var errNoToken = errors.New("no session token")

// SessionMiddleware resolves the request's session from its token. Requests
// without a usable token get a fresh guest session and a cookie for it.
func SessionMiddleware(authService core.AuthService, sessions core.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, err := resolve(r, authService, sessions)
			if err != nil {
				logger.Log.Debug("Starting new session",
					zap.String("path", r.URL.Path),
					zap.Error(err))

				sid = sessions.Create().ID
				token, err := authService.IssueToken(sid)
				if err != nil {
					logger.Log.Error("Failed to issue session token", zap.Error(err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					Expires:  time.Now().Add(cookieTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), types.SessionIDKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(r *http.Request, authService core.AuthService, sessions core.SessionStore) (string, error) {
	tokenString, err := extractToken(r)
	if err != nil {
		return "", err
	}
	sid, err := authService.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	// The token may outlive the session, e.g. across a restart or a sweep.
	if _, err := sessions.Get(sid); err != nil {
		return "", err
	}
	return sid, nil
}

// RequireAuth rejects requests whose session is not authenticated.
func RequireAuth(sessions core.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, _ := GetSessionIDFromContext(r.Context())
			st, err := sessions.Get(sid)
			if err != nil || !st.Authenticated() {
				logger.Log.Debug("Unauthenticated request",
					zap.String("path", r.URL.Path),
					zap.String("session_id", sid))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Activity counts the request as user activity, restarting the inactivity
// countdown of an authenticated session.
func Activity(sessions core.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sid, ok := GetSessionIDFromContext(r.Context()); ok {
				if _, err := sessions.Touch(sid); err != nil {
					logger.Log.Debug("Activity on unknown session",
						zap.String("session_id", sid),
						zap.Error(err))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errNoToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errNoToken
	}

	return parts[1], nil
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(types.SessionIDKey).(string)
	return sid, ok
}
