package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/inkwell/backend/api/transport"
	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
	postUC "github.com/inkwell/backend/usecase/post"
)

type recordingPostRepo struct {
	posts      map[int64]*domain.Post
	total      int64
	lastFilter repository.PostFilter
	deletes    int
}

func (r *recordingPostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *recordingPostRepo) List(_ context.Context, filter repository.PostFilter) ([]domain.Post, int64, error) {
	r.lastFilter = filter
	return nil, r.total, nil
}

func (r *recordingPostRepo) Create(context.Context, *domain.Post) error { return nil }
func (r *recordingPostRepo) Update(context.Context, *domain.Post) error { return nil }

func (r *recordingPostRepo) Delete(_ context.Context, id int64) error {
	delete(r.posts, id)
	r.deletes++
	return nil
}

func (r *recordingPostRepo) ListImages(context.Context) ([]string, error) { return nil, nil }

func newPostHandler(repo *recordingPostRepo) *PostHandler {
	return NewPostHandler(postUC.New(repo, nil, nil), nil, 0, nil, nil)
}

func TestListClampsOverCapLimit(t *testing.T) {
	repo := &recordingPostRepo{total: 250}
	h := newPostHandler(repo)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/posts?page=2&limit=200")
	h.List(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	// The clamped limit drives the query, the offset and the metadata
	// alike: page 2 starts at row 100, not at row 200.
	assert.Equal(t, repository.MaxPageLimit, repo.lastFilter.Limit)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, repository.MaxPageLimit, repo.lastFilter.Offset())

	var envelope struct {
		Meta transport.PageMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	assert.Equal(t, repository.MaxPageLimit, envelope.Meta.Limit)
	assert.Equal(t, 2, envelope.Meta.Page)
	assert.Equal(t, 3, envelope.Meta.TotalPages)
	assert.Equal(t, int64(250), envelope.Meta.Total)
}

func TestListDefaultsPageAndLimit(t *testing.T) {
	repo := &recordingPostRepo{}
	h := newPostHandler(repo)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/posts")
	h.List(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, defaultPageLimit, repo.lastFilter.Limit)
}

func TestDeleteRespondsWithoutBody(t *testing.T) {
	repo := &recordingPostRepo{posts: map[int64]*domain.Post{
		5: {ID: 5, Title: "doomed", AuthorID: 1},
	}}
	h := newPostHandler(repo)

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", "5")
	ctx.SetUserValue("auth_user", &domain.User{ID: 1})
	h.Delete(ctx)

	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
	assert.Equal(t, 1, repo.deletes)
}
