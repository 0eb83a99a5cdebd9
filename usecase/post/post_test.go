package post

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
)

type fakePostRepo struct {
	posts   map[int64]*domain.Post
	nextID  int64
	updates int
	deletes int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*domain.Post), nextID: 1}
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	if p, ok := f.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domain.ErrPostNotFound
}

func (f *fakePostRepo) List(_ context.Context, filter repository.PostFilter) ([]domain.Post, int64, error) {
	var out []domain.Post
	for _, p := range f.posts {
		if filter.AuthorID != 0 && p.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	post.ID = f.nextID
	f.nextID++
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) Update(_ context.Context, post *domain.Post) error {
	stored, ok := f.posts[post.ID]
	if !ok {
		return domain.ErrPostNotFound
	}
	*stored = *post
	f.updates++
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(f.posts, id)
	f.deletes++
	return nil
}

func (f *fakePostRepo) ListImages(_ context.Context) ([]string, error) {
	var out []string
	for _, p := range f.posts {
		if p.Image != "" {
			out = append(out, p.Image)
		}
	}
	return out, nil
}

// fakeCache serves one canned page and records traffic.
type fakeCache struct {
	page        *domain.PostPage
	getErr      error
	setErr      error
	gets        int
	sets        int
	invalidates int
}

func (f *fakeCache) GetPage(context.Context, repository.PostFilter) (*domain.PostPage, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.page, nil
}

func (f *fakeCache) SetPage(_ context.Context, _ repository.PostFilter, page *domain.PostPage) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.page = page
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidates++
	f.page = nil
	return nil
}

func seedPost(repo *fakePostRepo, authorID int64, title string) *domain.Post {
	p := &domain.Post{Title: title, Content: "body", AuthorID: authorID}
	_ = repo.Create(context.Background(), p)
	return p
}

func TestListCacheHitSkipsRepository(t *testing.T) {
	repo := newFakePostRepo()
	cached := &domain.PostPage{Posts: []domain.Post{{ID: 42, Title: "cached"}}, Total: 1}
	cache := &fakeCache{page: cached}
	uc := New(repo, cache, nil)

	page, err := uc.List(context.Background(), repository.PostFilter{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, cached, page)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 0, cache.sets)
}

func TestListCacheMissFillsCache(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, 1, "first")
	cache := &fakeCache{}
	uc := New(repo, cache, nil)

	page, err := uc.List(context.Background(), repository.PostFilter{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, page, cache.page)
}

func TestListCacheFailureFallsThrough(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, 1, "first")
	cache := &fakeCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	uc := New(repo, cache, nil)

	page, err := uc.List(context.Background(), repository.PostFilter{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestListWithoutCache(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, 1, "first")
	uc := New(repo, nil, nil)

	page, err := uc.List(context.Background(), repository.PostFilter{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestCreateInvalidatesFeed(t *testing.T) {
	repo := newFakePostRepo()
	cache := &fakeCache{}
	uc := New(repo, cache, nil)

	created, err := uc.Create(context.Background(), &domain.Post{Title: "t", Content: "c", AuthorID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 1, cache.invalidates)
}

func TestUpdateByOwner(t *testing.T) {
	repo := newFakePostRepo()
	cache := &fakeCache{}
	uc := New(repo, cache, nil)
	post := seedPost(repo, 1, "original")

	title := "renamed"
	updated, err := uc.Update(context.Background(), post.ID, domain.PostPatch{Title: &title}, &domain.User{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, 1, cache.invalidates)
}

func TestUpdateByNonOwner(t *testing.T) {
	repo := newFakePostRepo()
	uc := New(repo, nil, nil)
	post := seedPost(repo, 1, "original")

	title := "hijacked"
	_, err := uc.Update(context.Background(), post.ID, domain.PostPatch{Title: &title}, &domain.User{ID: 2})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, repo.updates)
	assert.Equal(t, "original", repo.posts[post.ID].Title)
}

func TestUpdateMissingPost(t *testing.T) {
	uc := New(newFakePostRepo(), nil, nil)

	title := "x"
	_, err := uc.Update(context.Background(), 99, domain.PostPatch{Title: &title}, &domain.User{ID: 1})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestDeleteByOwner(t *testing.T) {
	repo := newFakePostRepo()
	cache := &fakeCache{}
	uc := New(repo, cache, nil)
	post := seedPost(repo, 1, "doomed")

	require.NoError(t, uc.Delete(context.Background(), post.ID, &domain.User{ID: 1}))
	assert.Empty(t, repo.posts)
	assert.Equal(t, 1, cache.invalidates)
}

func TestDeleteByNonOwner(t *testing.T) {
	repo := newFakePostRepo()
	uc := New(repo, nil, nil)
	post := seedPost(repo, 1, "kept")

	err := uc.Delete(context.Background(), post.ID, &domain.User{ID: 2})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, repo.posts, 1)
	assert.Equal(t, 0, repo.deletes)
}
