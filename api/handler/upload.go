package handler

import (
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/inkwell/backend/api/transport"
	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/internal/infrastructure/blob"
	"github.com/inkwell/backend/pkg/httpcontext"
)

type UploadHandler struct {
	baseHandler
	blobs *blob.Store
}

func NewUploadHandler(blobs *blob.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		baseHandler: newBaseHandler(adapter, logger),
		blobs:       blobs,
	}
}

// @Summary Serve an uploaded post image
// @Tags uploads
// @Router /api/uploads/{name} [get]
func (h *UploadHandler) Serve(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("name").(string)
	if name == "" {
		h.respondInvalid(ctx, "missing file name")
		return
	}

	data, err := h.blobs.Get(name)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "file not found", nil))
			return
		}
		h.respondError(ctx, err)
		return
	}

	ctx.Response.Header.SetContentType(http.DetectContentType(data))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(data)
}
