package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/inkwell/backend/api/transport"
	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/internal/infrastructure/blob"
	"github.com/inkwell/backend/internal/middleware"
	"github.com/inkwell/backend/pkg/httpcontext"
	"github.com/inkwell/backend/repository"
	postUC "github.com/inkwell/backend/usecase/post"
)

// UploadPathPrefix is where stored images are served from; posts persist the
// full path so clients can use it verbatim.
const UploadPathPrefix = "/api/uploads/"

const defaultPageLimit = 5

type PostHandler struct {
	baseHandler
	uc             *postUC.UseCase
	blobs          *blob.Store
	maxUploadBytes int64
}

func NewPostHandler(uc *postUC.UseCase, blobs *blob.Store, maxUploadBytes int64, adapter *httpcontext.Adapter, logger *zap.Logger) *PostHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &PostHandler{
		baseHandler:    newBaseHandler(adapter, logger),
		uc:             uc,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
	}
}

// @Summary List posts, newest first
// @Tags posts
// @Router /api/posts [get]
func (h *PostHandler) List(ctx *fasthttp.RequestCtx) {
	h.list(ctx, 0)
}

// @Summary List posts by author
// @Tags posts
// @Router /api/posts/user/{userId} [get]
func (h *PostHandler) ListByUser(ctx *fasthttp.RequestCtx) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		h.respondInvalid(ctx, "invalid user id")
		return
	}
	h.list(ctx, userID)
}

func (h *PostHandler) list(ctx *fasthttp.RequestCtx, authorID int64) {
	filter := repository.PostFilter{
		AuthorID: authorID,
		Page:     parseInt(string(ctx.QueryArgs().Peek("page")), 1),
		Limit:    parseInt(string(ctx.QueryArgs().Peek("limit")), defaultPageLimit),
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	filter = filter.Normalize()

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	meta := transport.NewPageMeta(page.Total, filter.Page, filter.Limit)
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(page.Posts, meta))
}

// @Summary Get a single post with relations
// @Tags posts
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx, "id")
	if !ok {
		h.respondInvalid(ctx, "invalid post id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	post, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, post)
}

// @Summary Create a post (JSON or multipart with an image)
// @Tags posts
// @Router /api/posts [post]
func (h *PostHandler) Create(ctx *fasthttp.RequestCtx) {
	actor := middleware.UserFromRequest(ctx)

	post, ok := h.parseCreate(ctx, actor)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, post)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update an owned post
// @Tags posts
// @Router /api/posts/{id} [patch]
func (h *PostHandler) Update(ctx *fasthttp.RequestCtx) {
	actor := middleware.UserFromRequest(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		h.respondInvalid(ctx, "invalid post id")
		return
	}

	var req transport.PostUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, req.Patch(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete an owned post
// @Tags posts
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(ctx *fasthttp.RequestCtx) {
	actor := middleware.UserFromRequest(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		h.respondInvalid(ctx, "invalid post id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id, actor); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

func (h *PostHandler) parseCreate(ctx *fasthttp.RequestCtx, actor *domain.User) (*domain.Post, bool) {
	contentType := string(ctx.Request.Header.ContentType())
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.parseMultipart(ctx, actor)
	}

	var req transport.PostCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}
	if req.Title == "" || req.Content == "" {
		h.respondInvalid(ctx, "title and content are required")
		return nil, false
	}

	return &domain.Post{
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		AuthorID: actor.ID,
	}, true
}

func (h *PostHandler) parseMultipart(ctx *fasthttp.RequestCtx, actor *domain.User) (*domain.Post, bool) {
	form, err := ctx.MultipartForm()
	if err != nil {
		h.respondInvalid(ctx, "invalid multipart form")
		return nil, false
	}

	post := &domain.Post{
		Title:    formValue(form.Value, "title"),
		Content:  formValue(form.Value, "content"),
		AuthorID: actor.ID,
	}
	if post.Title == "" || post.Content == "" {
		h.respondInvalid(ctx, "title and content are required")
		return nil, false
	}

	files := form.File["image"]
	if len(files) == 0 {
		return post, true
	}

	header := files[0]
	if header.Size > h.maxUploadBytes {
		h.respondInvalid(ctx, "image too large")
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		h.respondError(ctx, err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		h.respondError(ctx, err)
		return nil, false
	}
	if int64(len(data)) > h.maxUploadBytes {
		h.respondInvalid(ctx, "image too large")
		return nil, false
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	if err := h.blobs.Put(name, data); err != nil {
		h.respondError(ctx, err)
		return nil, false
	}

	post.Image = UploadPathPrefix + name
	return post, true
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
