package repository

import (
	"context"

	"github.com/inkwell/backend/domain"
)

type UserRepository interface {
	// Create persists a new user and fills ID and timestamps. A colliding
	// email yields domain.ErrEmailTaken (backed by the unique index, which is
	// the authoritative guard against concurrent registrations).
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}
