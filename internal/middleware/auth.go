package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/inkwell/backend/api/transport"
	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/pkg/token"
)

// userKey is where the gate stores the resolved identity on the request.
const userKey = "auth_user"

const resolveTimeout = 5 * time.Second

// IdentityResolver maps a verified token subject to a live user record.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID int64) (*domain.User, error)
}

// Auth is the request gate: it extracts the bearer token, verifies it,
// resolves the identity and attaches it to the request. It fails closed with
// 401 on a missing, malformed, badly signed or expired token, and when the
// subject no longer resolves to a user. Routes not wrapped by it stay public.
func Auth(tokens *token.Manager, resolver IdentityResolver, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			raw := extractToken(ctx)
			if raw == "" {
				reject(ctx)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				logger.Warn("token rejected", zap.Error(err))
				reject(ctx)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				reject(ctx)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
			defer cancel()

			user, err := resolver.ResolveIdentity(stdCtx, userID)
			if err != nil {
				logger.Warn("identity no longer resolves", zap.Int64("user_id", userID), zap.Error(err))
				reject(ctx)
				return
			}

			ctx.SetUserValue(userKey, user)
			next(ctx)
		}
	}
}

// UserFromRequest returns the identity the gate attached, or nil on a public
// route. Handlers read this; they never re-derive identity.
func UserFromRequest(ctx *fasthttp.RequestCtx) *domain.User {
	user, _ := ctx.UserValue(userKey).(*domain.User)
	return user
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), "unauthorized", nil))
	ctx.SetBody(body)
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
