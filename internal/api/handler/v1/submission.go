package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xportshq/xports-api/internal/api/handler/v1/request"
	"github.com/xportshq/xports-api/internal/api/handler/v1/response"
	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/service"
)

type SubmissionService interface {
	RegisterTask(ctx context.Context, participantEmail string, contestID uint, submissionLink string) (domain.Submission, error)
	CheckRegistration(ctx context.Context, participantEmail string, contestID uint) (bool, domain.Submission, error)
	ListByContest(ctx context.Context, contestID uint) ([]domain.Submission, error)
	ListByParticipant(ctx context.Context, participantEmail string) ([]domain.Submission, error)
}

type SubmissionHandler struct {
	svc        SubmissionService
	contestSvc ContestService
	uSvc       UserService
}

func NewSubmissionHandler(svc SubmissionService, contestSvc ContestService, uSvc UserService) *SubmissionHandler {
	return &SubmissionHandler{
		svc:        svc,
		contestSvc: contestSvc,
		uSvc:       uSvc,
	}
}

// HandleRegisterTask godoc
// @Summary      Submit work for a contest
// @Description  Attaches the submission link to the caller's paid slot. Requires a completed payment and accepts one submission per contest.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterTaskRequest  true  "request body"
// @Success      200      {object}  domain.Submission
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /submissions/register-task [post]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleRegisterTask(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submission, err := h.svc.RegisterTask(ctx.Request.Context(), user.Email, req.ContestID, req.SubmissionLink)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("paid registration", "contestID", req.ContestID))
		case errors.Is(err, service.ErrAlreadySubmitted):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegisterTask -> h.svc.RegisterTask -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, submission)
}

// HandleCheckRegistration godoc
// @Summary      Check the caller's registration in a contest
// @Tags         submissions
// @Produce      json
// @Param        contest_id  query     int  true  "Contest ID"
// @Success      200         {object}  response.RegistrationCheckResponse
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /submissions/check [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleCheckRegistration(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	contestID, err := strconv.ParseUint(ctx.Query("contest_id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid contest ID: %w", err)))
		return
	}

	registered, submission, err := h.svc.CheckRegistration(ctx.Request.Context(), user.Email, uint(contestID))
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckRegistration -> h.svc.CheckRegistration -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp := response.RegistrationCheckResponse{
		Registered: registered,
	}
	if registered {
		resp.SubmissionStatus = submission.SubmissionStatus
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleListContestSubmissions godoc
// @Summary      List submissions for an owned contest
// @Tags         submissions
// @Produce      json
// @Param        contestID  path      int  true  "Contest ID"
// @Success      200        {array}   domain.Submission
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /contests/{contestID}/submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleListContestSubmissions(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid contest ID: %w", err)))
		return
	}

	contest, err := h.contestSvc.GetContest(ctx.Request.Context(), uint(contestID))
	if err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contest", "ID", contestID))
			return
		}

		err = fmt.Errorf("v1.HandleListContestSubmissions -> h.contestSvc.GetContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if contest.OwnerEmail != user.Email && user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v does not own contest %v", user.ID, contestID)))
		return
	}

	submissions, err := h.svc.ListByContest(ctx.Request.Context(), uint(contestID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListContestSubmissions -> h.svc.ListByContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// HandleListParticipations godoc
// @Summary      List the caller's contest participations
// @Tags         submissions
// @Produce      json
// @Success      200  {array}   domain.Submission
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions/participate [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleListParticipations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissions, err := h.svc.ListByParticipant(ctx.Request.Context(), user.Email)
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipations -> h.svc.ListByParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}
