package middleware

import (
	"context"
	"net/http"

	"mediconnect/internal/domain/entity"
	"mediconnect/internal/usecase"
	"mediconnect/pkg/response"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

type AuthMiddleware struct {
	sessionUsecase usecase.SessionUsecase
}

func NewAuthMiddleware(sessionUsecase usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		sessionUsecase: sessionUsecase,
	}
}

// Authenticate rejects the request unless somebody is signed in.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := m.sessionUsecase.Current()
		if user == nil {
			response.Unauthorized(w, "Not signed in")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identify attaches the signed-in user, if any, without rejecting anonymous requests.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := m.sessionUsecase.Current(); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext extracts the signed-in user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}
