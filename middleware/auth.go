package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"notesai/internal/auth/model"
	"notesai/internal/common"
	"notesai/pkg/logger"
	"notesai/pkg/response"
)

type contextKey string

const UserKey contextKey = "user"

type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*model.UserEntity, error)
}

// AuthMiddleware resolves the bearer token to a user before the wrapped
// handler runs. The user is available through CurrentUser.
func AuthMiddleware(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				response.Unauthorized(w, "Not authenticated")
				return
			}

			user, err := resolver.ResolveCurrentUser(r.Context(), tokenString)
			if err != nil {
				if errors.Is(err, common.ErrUnauthenticated) {
					response.Unauthorized(w, "Could not validate credentials")
					return
				}
				logger.Sugar.Errorf("Failed to resolve user: %v", err)
				response.Error(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentUser(ctx context.Context) (*model.UserEntity, bool) {
	user, ok := ctx.Value(UserKey).(*model.UserEntity)
	return user, ok && user != nil
}

func WithUser(ctx context.Context, user *model.UserEntity) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
