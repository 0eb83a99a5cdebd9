package repository

import (
	"context"

	"github.com/inkwell/backend/domain"
)

// MaxPageLimit caps the page size; larger requests are served the cap.
const MaxPageLimit = 100

type PostFilter struct {
	AuthorID int64 // 0 means all authors
	Page     int
	Limit    int
}

// Normalize clamps page and limit so that the query limit, the offset and
// the reported page size all agree. Callers derive offsets and pagination
// metadata from the normalized filter only.
func (f PostFilter) Normalize() PostFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}

func (f PostFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}

type PostRepository interface {
	// GetByID loads the post with its author and comments (comment authors
	// included).
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	// List returns one page of posts, newest first, with relations loaded,
	// plus the total count matching the filter.
	List(ctx context.Context, filter PostFilter) ([]domain.Post, int64, error)
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
	// ListImages returns every image path currently referenced by a post.
	ListImages(ctx context.Context) ([]string, error)
}
