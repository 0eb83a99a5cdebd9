package domain

import "time"

// Post represents a published article. Author and Comments are populated by
// repositories that load relations; plain reads may leave them empty.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	AuthorID  int64     `json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	Comments  []Comment `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPatch carries a partial post update with merge semantics.
type PostPatch struct {
	Title   *string
	Content *string
	Image   *string
}

func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Image == nil
}

// PostPage is one page of the feed along with the unfiltered total, which the
// transport layer turns into pagination metadata.
type PostPage struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
}
