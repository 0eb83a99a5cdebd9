package comment

import (
	"context"

	"go.uber.org/zap"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
	"github.com/inkwell/backend/usecase"
)

type UseCase struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	cache    usecase.FeedCache
	logger   *zap.Logger
}

func New(comments repository.CommentRepository, posts repository.PostRepository, cache usecase.FeedCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		comments: comments,
		posts:    posts,
		cache:    cache,
		logger:   logger,
	}
}

// Create attaches a comment to an existing post on behalf of the actor.
func (uc *UseCase) Create(ctx context.Context, content string, postID int64, actor *domain.User) (*domain.Comment, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uc.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content: content,
		UserID:  actor.ID,
		PostID:  postID,
	}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	uc.invalidateFeed(ctx)
	return comment, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	return uc.comments.GetByID(ctx, id)
}

func (uc *UseCase) ListAll(ctx context.Context) ([]domain.Comment, error) {
	return uc.comments.ListAll(ctx)
}

func (uc *UseCase) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	return uc.comments.ListByPost(ctx, postID)
}

func (uc *UseCase) ListByUser(ctx context.Context, userID int64) ([]domain.Comment, error) {
	return uc.comments.ListByUser(ctx, userID)
}

// Update changes a comment's content after the ownership check.
func (uc *UseCase) Update(ctx context.Context, id int64, content string, actor *domain.User) (*domain.Comment, error) {
	comment, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.EnsureOwner(comment.UserID, actor); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := uc.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	uc.invalidateFeed(ctx)
	return comment, nil
}

func (uc *UseCase) Delete(ctx context.Context, id int64, actor *domain.User) error {
	comment, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.EnsureOwner(comment.UserID, actor); err != nil {
		return err
	}

	if err := uc.comments.Delete(ctx, id); err != nil {
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
