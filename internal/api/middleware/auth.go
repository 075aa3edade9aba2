package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ProviderBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
)

const (
	// HeaderUserID ID пользователя, проставляется API-шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя, проставляется API-шлюзом
	HeaderUserRole = "X-User-Role"
)

const msgUnauthorized = "требуется аутентификация"

type contextKey string

const actorKey contextKey = "actor"

// WithActor кладет аутентифицированного пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает аутентифицированного пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID достает ID аутентифицированного пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.ID, true
}

// Auth аутентификация по заголовкам X-User-ID и X-User-Role
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := parseActor(r.Header.Get(HeaderUserID), r.Header.Get(HeaderUserRole))
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func parseActor(rawID, rawRole string) (domain.Actor, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return domain.Actor{}, false
	}

	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return domain.Actor{}, false
	}

	return domain.Actor{ID: id, Role: role}, true
}
