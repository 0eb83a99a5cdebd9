package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/pkg/password"
	"github.com/inkwell/backend/pkg/token"
	"github.com/inkwell/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	tokens *token.Manager
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Manager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new user and mints a token for it. The email pre-check
// only improves the error message; the unique index closes the race between
// two concurrent registrations.
func (uc *UseCase) Register(ctx context.Context, name, email, plain string) (*domain.User, string, error) {
	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	raw, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	uc.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, raw, nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password produce the identical error.
func (uc *UseCase) Login(ctx context.Context, email, plain string) (*domain.User, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !password.Verify(plain, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	raw, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, raw, nil
}

// ResolveIdentity maps a verified token subject back to a user. A subject
// that no longer resolves (user deleted after issuance) is unauthorized.
func (uc *UseCase) ResolveIdentity(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update. Absent fields are left untouched;
// a present password is re-hashed before persisting.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID int64, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if _, err := uc.users.GetByEmail(ctx, *patch.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Password != nil {
		hash, err := password.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
