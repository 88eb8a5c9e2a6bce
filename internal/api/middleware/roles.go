package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xportshq/xports-api/internal/api/handler/v1/response"
	"github.com/xportshq/xports-api/internal/domain"
)

type RoleLookup interface {
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// RequireRole guards a route group behind a set of allowed roles. The
// role is read fresh from storage on every request so a demotion takes
// effect immediately, not at token expiry.
func RequireRole(svc RoleLookup, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(ctx *gin.Context) {
		email := ctx.GetString(ContextKeyUserEmail)
		if email == "" {
			response.RenderErr(ctx, response.ErrTokenNotValid(fmt.Errorf("missing authenticated identity")))
			ctx.Abort()
			return
		}

		user, err := svc.GetUserByEmail(ctx.Request.Context(), email)
		if err != nil {
			response.RenderErr(ctx, response.ErrTokenNotValid(fmt.Errorf("middleware.RequireRole -> svc.GetUserByEmail -> %w", err)))
			ctx.Abort()
			return
		}

		if _, ok := allowed[user.Role]; !ok {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v does not hold a required role", user.ID)))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
