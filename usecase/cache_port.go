package usecase

import (
	"context"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
)

// FeedCache abstracts the posts feed cache so use cases stay storage-agnostic.
// A miss is reported as (nil, nil); cache errors are never fatal for the
// request, callers log and fall through to the primary store.
type FeedCache interface {
	GetPage(ctx context.Context, filter repository.PostFilter) (*domain.PostPage, error)
	SetPage(ctx context.Context, filter repository.PostFilter, page *domain.PostPage) error
	// Invalidate marks every cached page stale. Called after any post or
	// comment write, since the feed embeds comments.
	Invalidate(ctx context.Context) error
}
