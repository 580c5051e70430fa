package posts

import "time"

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	IsHidden  bool      `json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListScope describes which posts a principal may see. All overrides ViewerID;
// otherwise the visible set is every public post plus the viewer's own hidden
// posts.
type ListScope struct {
	All      bool
	ViewerID int64
}
