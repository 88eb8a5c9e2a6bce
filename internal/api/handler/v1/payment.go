package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xportshq/xports-api/internal/api/handler/v1/request"
	"github.com/xportshq/xports-api/internal/api/handler/v1/response"
	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/service"
)

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, contestID uint, customerEmail, participantName string) (domain.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error)
	ConfirmPayment(ctx context.Context, sessionID string) (domain.Submission, bool, error)
}

type PaymentHandler struct {
	svc  PaymentService
	uSvc UserService
}

func NewPaymentHandler(svc PaymentService, uSvc UserService) *PaymentHandler {
	return &PaymentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateCheckoutSession godoc
// @Summary      Create a hosted checkout session
// @Description  Prices the session from the stored contest and returns the hosted payment page URL.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCheckoutSessionRequest  true  "request body"
// @Success      200      {object}  domain.CheckoutSession
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/create-checkout-session [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandleCreateCheckoutSession(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateCheckoutSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.CreateCheckoutSession(ctx.Request.Context(), req.ContestID, user.Email, user.Name)
	if err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contest", "ID", req.ContestID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCheckoutSession -> h.svc.CreateCheckoutSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleGetSession godoc
// @Summary      Retrieve a checkout session
// @Tags         payments
// @Produce      json
// @Param        sessionID  path      string  true  "Checkout session ID"
// @Success      200        {object}  domain.CheckoutSession
// @Failure      401        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /payments/session/{sessionID} [get]
// @Security     BearerAuth
func (h *PaymentHandler) HandleGetSession(ctx *gin.Context) {
	session, err := h.svc.GetCheckoutSession(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetCheckoutSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandlePaymentSuccess godoc
// @Summary      Confirm a completed payment
// @Description  Verifies the session with the payment provider and records the participation slot. Replaying the same session is acknowledged without recording anything twice.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.PaymentSuccessRequest  true  "request body"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/payment-success [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandlePaymentSuccess(ctx *gin.Context) {
	var req request.PaymentSuccessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	_, alreadyProcessed, err := h.svc.ConfirmPayment(ctx.Request.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotCompleted),
			errors.Is(err, service.ErrSessionNotUsable):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrContestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contest", "session", req.SessionID))
		default:
			err = fmt.Errorf("v1.HandlePaymentSuccess -> h.svc.ConfirmPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	if alreadyProcessed {
		ctx.JSON(http.StatusOK, response.MessageResponse{
			Success: true,
			Message: "Already processed",
		})
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Success: true,
		Message: "Payment recorded",
	})
}
