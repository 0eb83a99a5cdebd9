package post

import (
	"context"

	"go.uber.org/zap"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
	"github.com/inkwell/backend/usecase"
)

type UseCase struct {
	posts  repository.PostRepository
	cache  usecase.FeedCache
	logger *zap.Logger
}

func New(posts repository.PostRepository, cache usecase.FeedCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		posts:  posts,
		cache:  cache,
		logger: logger,
	}
}

// List serves the paginated feed, preferring the cache. Cache failures are
// never fatal: the request falls through to Postgres.
func (uc *UseCase) List(ctx context.Context, filter repository.PostFilter) (*domain.PostPage, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetPage(ctx, filter)
		if err != nil {
			uc.logger.Warn("feed cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	posts, total, err := uc.posts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &domain.PostPage{Posts: posts, Total: total}
	if uc.cache != nil {
		if err := uc.cache.SetPage(ctx, filter, page); err != nil {
			uc.logger.Warn("feed cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return uc.posts.GetByID(ctx, id)
}

func (uc *UseCase) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	uc.invalidateFeed(ctx)
	return post, nil
}

// Update applies a partial update after the ownership check.
func (uc *UseCase) Update(ctx context.Context, id int64, patch domain.PostPatch, actor *domain.User) (*domain.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.EnsureOwner(post.AuthorID, actor); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Image != nil {
		post.Image = *patch.Image
	}

	if err := uc.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	uc.invalidateFeed(ctx)
	return post, nil
}

func (uc *UseCase) Delete(ctx context.Context, id int64, actor *domain.User) error {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.EnsureOwner(post.AuthorID, actor); err != nil {
		return err
	}

	if err := uc.posts.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateFeed(ctx)
	return nil
}

func (uc *UseCase) invalidateFeed(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("feed cache invalidation failed", zap.Error(err))
	}
}
