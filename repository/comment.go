package repository

import (
	"context"

	"github.com/inkwell/backend/domain"
)

type CommentRepository interface {
	// GetByID loads the comment with its user and post relations.
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListAll(ctx context.Context) ([]domain.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
}
