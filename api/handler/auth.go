package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/inkwell/backend/api/transport"
	"github.com/inkwell/backend/internal/middleware"
	"github.com/inkwell/backend/pkg/httpcontext"
	authUC "github.com/inkwell/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register a new user
// @Tags auth
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Name == "" || req.Password == "" || !validEmail(req.Email) {
		h.respondInvalid(ctx, "name, email and password are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, token, err := h.uc.Register(stdCtx, req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.AuthResponse{User: user, Token: token})
}

// @Summary Log in with email and password
// @Tags auth
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondInvalid(ctx, "email and password are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, token, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.AuthResponse{User: user, Token: token})
}

// @Summary Get the authenticated profile
// @Tags auth
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)
	h.respondSuccess(ctx, http.StatusOK, transport.ProfileResponse{User: user})
}

// @Summary Update the authenticated profile
// @Tags auth
// @Router /api/auth/profile [patch]
func (h *AuthHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Email != nil && !validEmail(*req.Email) {
		h.respondInvalid(ctx, "invalid email")
		return
	}
	if req.Password != nil && *req.Password == "" {
		h.respondInvalid(ctx, "password must not be empty")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProfile(stdCtx, user.ID, req.Patch())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.ProfileResponse{User: updated})
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
