package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/inkwell/backend/api/transport"
	"github.com/inkwell/backend/internal/middleware"
	"github.com/inkwell/backend/pkg/httpcontext"
	commentUC "github.com/inkwell/backend/usecase/comment"
)

type CommentHandler struct {
	baseHandler
	uc *commentUC.UseCase
}

func NewCommentHandler(uc *commentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List all comments
// @Tags comments
// @Router /api/comments [get]
func (h *CommentHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.uc.ListAll(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comments)
}

// @Summary Get a single comment
// @Tags comments
// @Router /api/comments/{id} [get]
func (h *CommentHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx, "id")
	if !ok {
		h.respondInvalid(ctx, "invalid comment id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comment, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comment)
}

// @Summary List comments on a post
// @Tags comments
// @Router /api/comments/post/{postId} [get]
func (h *CommentHandler) ListByPost(ctx *fasthttp.RequestCtx) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		h.respondInvalid(ctx, "invalid post id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.uc.ListByPost(stdCtx, postID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comments)
}

// @Summary List comments by a user
// @Tags comments
// @Router /api/comments/user/{userId} [get]
func (h *CommentHandler) ListByUser(ctx *fasthttp.RequestCtx) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		h.respondInvalid(ctx, "invalid user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.uc.ListByUser(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comments)
}

// @Summary Comment on a post
// @Tags comments
// @Router /api/comments [post]
func (h *CommentHandler) Create(ctx *fasthttp.RequestCtx) {
	actor := middleware.UserFromRequest(ctx)

	var req transport.CommentCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Content == "" || req.PostID <= 0 {
		h.respondInvalid(ctx, "content and post_id are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comment, err := h.uc.Create(stdCtx, req.Content, req.PostID, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, comment)
}

// @Summary Update an owned comment
// @Tags comments
// @Router /api/comments/{id} [patch]
func (h *CommentHandler) Update(ctx *fasthttp.RequestCtx) {
	actor := middleware.UserFromRequest(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		h.respondInvalid(ctx, "invalid comment id")
		return
	}

	var req transport.CommentUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Content == "" {
		h.respondInvalid(ctx, "content is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comment, err := h.uc.Update(stdCtx, id, req.Content, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comment)
}

// @Summary Delete an owned comment
// @Tags comments
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(ctx *fasthttp.RequestCtx) {
	actor := middleware.UserFromRequest(ctx)

	id, ok := pathID(ctx, "id")
	if !ok {
		h.respondInvalid(ctx, "invalid comment id")
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
