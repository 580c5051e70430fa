package httpserver

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"postboard/internal/auth"
	"postboard/internal/posts"
)

func NewRouter(
	logger *slog.Logger,
	authSvc *auth.Service,
	tokens *auth.Tokens,
	userStore auth.PrincipalStore,
	postStore posts.PostStore,
) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Auth
	mux.Handle("/api/v1/auth/login", loginHandler(authSvc, logger))

	// Posts
	collection := &posts.CollectionHandler{
		Store:  postStore,
		Logger: logger,
	}
	detail := &posts.DetailHandler{
		Store:  postStore,
		Logger: logger,
	}

	secured := auth.Middleware(tokens, userStore)
	mux.Handle("/api/v1/posts", secured(collection))
	mux.Handle("/api/v1/posts/", secured(detail))

	// CORS wrapper (simple, for local UI/tools).
	return withCORS(mux)
}
