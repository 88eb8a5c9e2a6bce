package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xportshq/xports-api/internal/api/handler/v1/response"
	"github.com/xportshq/xports-api/internal/api/middleware"
	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/service"
)

type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context, search string) ([]domain.User, error)
	ApplyForCreator(ctx context.Context, email string) error
	UpdateRole(ctx context.Context, id uint, role string) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// getUserFromContext loads the full account of the authenticated caller.
// VerifyJWT has already stashed the email; this resolves it against
// storage so handlers always see current role and status.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	email := ctx.GetString(middleware.ContextKeyUserEmail)
	if email == "" {
		return domain.User{}, response.ErrTokenNotValid(errors.New("missing authenticated identity"))
	}

	user, err := uSvc.GetUserByEmail(ctx.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrTokenNotValid(errors.New("account no longer exists"))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("v1.getUserFromContext -> uSvc.GetUserByEmail -> %w", err))
	}

	return user, nil
}
