package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/pkg/password"
	"github.com/inkwell/backend/pkg/token"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	*stored = *user
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeUserRepo, *token.Manager) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := token.NewManager("test-secret", "inkwell-test", time.Hour)
	return New(repo, tokens, nil), repo, tokens
}

func TestRegisterThenLogin(t *testing.T) {
	uc, _, tokens := newTestUseCase(t)
	ctx := context.Background()

	user, raw, err := uc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, user.Email, claims.Email)

	logged, loginToken, err := uc.Login(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	// Both tokens must verify independently.
	_, err = tokens.Verify(loginToken)
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	// Different name and password must not matter.
	_, _, err = uc.Register(ctx, "Other", "ana@x.com", "different")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginDoesNotLeakWhichCheckFailed(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, _, wrongPassword := uc.Login(ctx, "ana@x.com", "wrong")
	_, _, unknownEmail := uc.Login(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestResolveIdentity(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	ctx := context.Background()

	registered, _, err := uc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	resolved, err := uc.ResolveIdentity(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)

	// A subject that stopped resolving (user deleted after issuance) is
	// unauthorized, not merely not found.
	delete(repo.users, registered.ID)
	_, err = uc.ResolveIdentity(ctx, registered.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateProfileNameOnly(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	ctx := context.Background()

	user, _, err := uc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	originalHash := repo.users[user.ID].PasswordHash

	name := "Anabela"
	updated, err := uc.UpdateProfile(ctx, user.ID, domain.ProfilePatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Anabela", updated.Name)
	assert.Equal(t, "ana@x.com", updated.Email)
	assert.Equal(t, originalHash, repo.users[user.ID].PasswordHash)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	ctx := context.Background()

	ana, _, err := uc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	_, _, err = uc.Register(ctx, "Bob", "bob@x.com", "secret2")
	require.NoError(t, err)

	taken := "bob@x.com"
	_, err = uc.UpdateProfile(ctx, ana.ID, domain.ProfilePatch{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// The original record is untouched.
	assert.Equal(t, "ana@x.com", repo.users[ana.ID].Email)
}

func TestUpdateProfilePasswordRehashed(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	ctx := context.Background()

	user, _, err := uc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	originalHash := repo.users[user.ID].PasswordHash

	newPassword := "secret2"
	_, err = uc.UpdateProfile(ctx, user.ID, domain.ProfilePatch{Password: &newPassword})
	require.NoError(t, err)

	stored := repo.users[user.ID].PasswordHash
	assert.NotEqual(t, originalHash, stored)
	assert.True(t, password.Verify("secret2", stored))

	_, _, err = uc.Login(ctx, "ana@x.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = uc.Login(ctx, "ana@x.com", "secret2")
	assert.NoError(t, err)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	name := "X"
	_, err := uc.UpdateProfile(context.Background(), 99, domain.ProfilePatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
