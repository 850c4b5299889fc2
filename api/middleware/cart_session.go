package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jordanveras/threadline-backend/pkg/logger"
)

// CartSessionCookie carries the anonymous session id that scopes cart and
// wishlist snapshots to a single browser.
const CartSessionCookie = "tl_cart"

const cartSessionTTL = 30 * 24 * time.Hour

type sessionCtxKey struct{}

// CartSession assigns each request a stable session id. An existing cookie is
// reused when it holds a valid uuid; anything else gets a fresh id and a
// refreshed cookie.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(CartSessionCookie); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CartSessionCookie,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(cartSessionTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionID attaches a session id to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// SessionID returns the session id attached by CartSession, or "" when the
// middleware did not run.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return id
	}
	return ""
}
