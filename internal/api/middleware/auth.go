package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xportshq/xports-api/internal/api/handler/v1/response"
	"github.com/xportshq/xports-api/internal/pkg/jwthelper"
)

const (
	// ContextKeyUserID and ContextKeyUserEmail are where VerifyJWT leaves
	// the authenticated identity for downstream handlers.
	ContextKeyUserID    = "auth.user_id"
	ContextKeyUserEmail = "auth.user_email"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token. Every failure
// renders the same 401 so callers can't probe which part was wrong.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(ctx, response.ErrTokenNotValid(errors.New("authorization header is missing")))
			ctx.Abort()
			return
		}

		segments := strings.SplitN(header, " ", 2)
		if len(segments) != 2 || !strings.EqualFold(segments[0], "Bearer") {
			response.RenderErr(ctx, response.ErrTokenNotValid(errors.New("authorization header is not a bearer token")))
			ctx.Abort()
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, segments[1])
		if err != nil {
			response.RenderErr(ctx, response.ErrTokenNotValid(err))
			ctx.Abort()
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrTokenNotValid(errors.New("user agent mismatch")))
			ctx.Abort()
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyUserEmail, claims.Email)
		ctx.Next()
	}
}
