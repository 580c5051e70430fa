package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"postboard/internal/auth"
)

// PostStore is the storage surface the handlers need. *Store satisfies it;
// tests substitute fakes.
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, scope ListScope) ([]Post, error)
	Create(ctx context.Context, title, content string, authorID int64) (*Post, error)
	Update(ctx context.Context, id int64, title, content string) (*Post, error)
	SetHidden(ctx context.Context, id int64, hidden bool) error
	Delete(ctx context.Context, id int64) error
}

func writeDenial(w http.ResponseWriter, d Decision) {
	switch d.Denial {
	case DenyForbidden:
		w.WriteHeader(http.StatusForbidden)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type postBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CollectionHandler serves /api/v1/posts: GET lists the posts visible to the
// principal, POST creates a new one.
type CollectionHandler struct {
	Store  PostStore
	Logger *slog.Logger
}

func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ra, ok := auth.RequestAuthFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, ra.User)
	case http.MethodPost:
		h.create(w, r, ra.User)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CollectionHandler) list(w http.ResponseWriter, r *http.Request, user *auth.User) {
	result, err := h.Store.List(r.Context(), ScopeFor(user))
	if err != nil {
		h.Logger.Error("list posts", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CollectionHandler) create(w http.ResponseWriter, r *http.Request, user *auth.User) {
	var body postBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if d := CanCreate(user); !d.Allowed {
		writeDenial(w, d)
		return
	}
	post, err := h.Store.Create(r.Context(), body.Title, body.Content, user.ID)
	if err != nil {
		h.Logger.Error("create post", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// DetailHandler serves /api/v1/posts/{id} and the /{id}/hide and /{id}/show
// visibility flips.
type DetailHandler struct {
	Store  PostStore
	Logger *slog.Logger
}

func (h *DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ra, ok := auth.RequestAuthFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// Path is /api/v1/posts/{id} or /api/v1/posts/{id}/{action}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || len(parts) > 5 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if len(parts) == 5 {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch parts[4] {
		case "hide":
			h.setHidden(w, r, ra.User, id, true)
		case "show":
			h.setHidden(w, r, ra.User, id, false)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, ra.User, id)
	case http.MethodPut:
		h.update(w, r, ra.User, id)
	case http.MethodDelete:
		h.delete(w, r, ra.User, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// resolve fetches the post for a policy check. A missing post comes back as
// nil so the policy can pick the denial kind; only infra failures are
// reported here.
func (h *DetailHandler) resolve(w http.ResponseWriter, r *http.Request, id int64) (*Post, bool) {
	post, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, true
		}
		h.Logger.Error("get post", "err", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}
	return post, true
}

func (h *DetailHandler) get(w http.ResponseWriter, r *http.Request, user *auth.User, id int64) {
	post, ok := h.resolve(w, r, id)
	if !ok {
		return
	}
	if d := CanRead(user, post); !d.Allowed {
		writeDenial(w, d)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *DetailHandler) update(w http.ResponseWriter, r *http.Request, user *auth.User, id int64) {
	var body postBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	post, ok := h.resolve(w, r, id)
	if !ok {
		return
	}
	if d := CanMutate(user, post); !d.Allowed {
		writeDenial(w, d)
		return
	}
	updated, err := h.Store.Update(r.Context(), id, body.Title, body.Content)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Logger.Error("update post", "err", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *DetailHandler) setHidden(w http.ResponseWriter, r *http.Request, user *auth.User, id int64, hidden bool) {
	post, ok := h.resolve(w, r, id)
	if !ok {
		return
	}
	if d := CanMutate(user, post); !d.Allowed {
		writeDenial(w, d)
		return
	}
	if err := h.Store.SetHidden(r.Context(), id, hidden); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Logger.Error("set post visibility", "err", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DetailHandler) delete(w http.ResponseWriter, r *http.Request, user *auth.User, id int64) {
	post, ok := h.resolve(w, r, id)
	if !ok {
		return
	}
	if d := CanMutate(user, post); !d.Allowed {
		writeDenial(w, d)
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Logger.Error("delete post", "err", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
