package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
)

// relationLimit caps how many posts are loaded on the user detail view.
const relationLimit = 100

type UseCase struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	logger   *zap.Logger
}

func New(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

func (uc *UseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

// Get returns the user with their posts and comments loaded.
func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, _, err := uc.posts.List(ctx, repository.PostFilter{AuthorID: id, Page: 1, Limit: relationLimit})
	if err != nil {
		return nil, err
	}
	comments, err := uc.comments.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Posts = posts
	user.Comments = comments
	return user, nil
}
