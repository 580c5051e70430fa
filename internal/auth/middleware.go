package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const authContextKey contextKey = "postboard_auth"

// RequestAuth binds one authenticated principal to one inbound request. It is
// built exactly once, by Middleware, before any handler logic runs.
type RequestAuth struct {
	User  *User
	Token string
}

func WithRequestAuth(ctx context.Context, ra *RequestAuth) context.Context {
	return context.WithValue(ctx, authContextKey, ra)
}

func RequestAuthFrom(ctx context.Context) (*RequestAuth, bool) {
	ra, ok := ctx.Value(authContextKey).(*RequestAuth)
	return ra, ok
}

// PrincipalStore resolves the token's subject id to a live user record.
type PrincipalStore interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}

func Middleware(tokens *Tokens, users PrincipalStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")
			userID, err := tokens.Authenticate(token)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				// A signed token for a since-deleted user is an
				// authentication failure, not a server error.
				if errors.Is(err, ErrUserNotFound) {
					w.WriteHeader(http.StatusUnauthorized)
				} else {
					w.WriteHeader(http.StatusInternalServerError)
				}
				return
			}
			ctx := WithRequestAuth(r.Context(), &RequestAuth{User: user, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
