package middleware

import (
	"context"
	"net/http"

	"go-log-viewer/internal/auth"
	"go-log-viewer/internal/model"
)

type contextKey string

const actorContextKey contextKey = "audit_actor"

// BasicAuth rejects requests the authenticator does not accept and stores the
// caller identity in the request context.
func BasicAuth(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := authenticator.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				WriteUnauthorized(w)
				return
			}

			actor.IP = ClientIP(r)
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WriteUnauthorized sends the Basic challenge.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", auth.Challenge())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte("Authentication required"))
}

func WithActor(ctx context.Context, actor model.AuditActor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

func ActorFromContext(ctx context.Context) (model.AuditActor, bool) {
	actor, ok := ctx.Value(actorContextKey).(model.AuditActor)
	return actor, ok
}
