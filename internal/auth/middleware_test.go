package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePrincipalStore struct {
	users map[int64]*User
}

func (f *fakePrincipalStore) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	tokens := NewTokens("test-secret")
	mw := Middleware(tokens, &fakePrincipalStore{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	tokens := NewTokens("test-secret")
	mw := Middleware(tokens, &fakePrincipalStore{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a bad token")
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsUnknownPrincipal(t *testing.T) {
	tokens := NewTokens("test-secret")
	mw := Middleware(tokens, &fakePrincipalStore{users: map[int64]*User{}})

	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for a deleted principal")
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddlewareResolvesPrincipal(t *testing.T) {
	tokens := NewTokens("test-secret")
	store := &fakePrincipalStore{users: map[int64]*User{
		7: {ID: 7, Username: "alice", Role: RoleRegular},
	}}
	mw := Middleware(tokens, store)

	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	var got *RequestAuth
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = RequestAuthFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.User == nil || got.User.ID != 7 {
		t.Fatalf("expected request auth for user 7, got %+v", got)
	}
	if got.Token != tok {
		t.Fatalf("expected raw token to be carried on the request auth")
	}
}
