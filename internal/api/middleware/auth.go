package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

const msgUnauthenticated = "missing or invalid session token"

// Auth извлекает субъекта из заголовка Authorization: Bearer <jwt>.
// Без валидного токена запрос отклоняется с 401.
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthenticated)
				return
			}

			actor, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладёт субъекта в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает субъекта сессии из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	if !ok || !actor.IsAuthenticated() {
		return domain.Actor{}, false
	}
	return actor, true
}
