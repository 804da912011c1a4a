// Package middleware provides HTTP middlewares for sessions, authorization
// and logging.
package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/filecms/internal/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// UnauthorizedMessage is flashed when a signed-out client hits a protected route.
const UnauthorizedMessage = "You must be signed in to do that"

// WithSession loads the session of every request and stores it in the
// request context. A cookie that cannot be decoded is replaced by a fresh
// session; the decode failure is only logged.
func WithSession(store *session.Store, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r)
			if err != nil {
				logger.Debug("discarding undecodable session cookie", zap.Error(err))
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by WithSession, or nil
// when the middleware did not run.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

// RequireSignedIn rejects requests whose session has no signed-in user.
//
// The rejection flashes UnauthorizedMessage, points Location at the index
// and answers 401 Unauthorized without calling next, so the protected
// handler never touches storage.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess != nil && sess.SignedIn() {
			next.ServeHTTP(w, r)
			return
		}
		if sess != nil {
			sess.SetMessage(UnauthorizedMessage)
			_ = sess.Save(r, w)
		}
		w.Header().Set("Location", "/")
		http.Error(w, UnauthorizedMessage, http.StatusUnauthorized)
	})
}
