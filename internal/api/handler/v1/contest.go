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

type ContestService interface {
	CreateContest(ctx context.Context, contest domain.Contest) (domain.Contest, error)
	ListContests(ctx context.Context, query domain.ContestQuery) ([]domain.Contest, int64, error)
	GetContest(ctx context.Context, id uint) (domain.Contest, error)
	ListContestsByOwner(ctx context.Context, ownerEmail string) ([]domain.Contest, error)
	UpdateContest(ctx context.Context, contest domain.Contest) (int64, error)
	DeleteContest(ctx context.Context, id uint, ownerEmail string) (int64, error)
	SetContestStatus(ctx context.Context, id uint, status string) error
	AdminDeleteContest(ctx context.Context, id uint) error
	DeclareWinner(ctx context.Context, contestID, submissionID uint, ownerEmail string) error
	ListWinners(ctx context.Context) ([]domain.Contest, error)
	TopPerformers(ctx context.Context) ([]domain.TopPerformer, error)
}

type ContestHandler struct {
	svc  ContestService
	uSvc UserService
}

func NewContestHandler(svc ContestService, uSvc UserService) *ContestHandler {
	return &ContestHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateContest godoc
// @Summary      Create a new contest
// @Description  Creates a contest owned by the caller. New contests start in pending status.
// @Tags         contests
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateContestRequest  true  "request body"
// @Success      201      {object}  domain.Contest
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /contests [post]
// @Security     BearerAuth
func (h *ContestHandler) HandleCreateContest(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateContestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateContest(ctx.Request.Context(), domain.Contest{
		OwnerEmail:  user.Email,
		OwnerName:   user.Name,
		ContestName: req.ContestName,
		ContestType: req.ContestType,
		Image:       req.Image,
		Price:       req.Price,
		PrizeMoney:  req.PrizeMoney,
		Description: req.Description,
		Instruction: req.Instruction,
		Deadline:    req.Deadline,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateContest -> h.svc.CreateContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListContests godoc
// @Summary      List contests
// @Description  Public. Paginated, filterable by type and status, searchable by name, ordered by popularity.
// @Tags         contests
// @Produce      json
// @Param        page    query     int     false  "page number"
// @Param        limit   query     int     false  "page size"
// @Param        type    query     string  false  "contest type"
// @Param        status  query     string  false  "contest status"
// @Param        search  query     string  false  "search by name"
// @Success      200     {object}  response.ContestListResponse
// @Failure      500     {object}  response.Err
// @Router       /contests [get]
func (h *ContestHandler) HandleListContests(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	contests, total, err := h.svc.ListContests(ctx.Request.Context(), domain.ContestQuery{
		Page:   page,
		Limit:  limit,
		Type:   ctx.Query("type"),
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleListContests -> h.svc.ListContests -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ContestListResponse{
		Data:  contests,
		Total: total,
	})
}

// HandleGetContest godoc
// @Summary      Get a contest by ID
// @Description  Public. Returns an array holding the contest, or an empty array when it doesn't exist.
// @Tags         contests
// @Produce      json
// @Param        contestID  path      int  true  "Contest ID"
// @Success      200        {array}   domain.Contest
// @Failure      400        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /contests/{contestID} [get]
func (h *ContestHandler) HandleGetContest(ctx *gin.Context) {
	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid contest ID: %w", err)))
		return
	}

	contest, err := h.svc.GetContest(ctx.Request.Context(), uint(contestID))
	if err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			ctx.JSON(http.StatusOK, []domain.Contest{})
			return
		}

		err = fmt.Errorf("v1.HandleGetContest -> h.svc.GetContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, []domain.Contest{contest})
}

// HandleListOwnContests godoc
// @Summary      List the caller's contests
// @Tags         contests
// @Produce      json
// @Success      200  {array}   domain.Contest
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contests/mine [get]
// @Security     BearerAuth
func (h *ContestHandler) HandleListOwnContests(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	contests, err := h.svc.ListContestsByOwner(ctx.Request.Context(), user.Email)
	if err != nil {
		err = fmt.Errorf("v1.HandleListOwnContests -> h.svc.ListContestsByOwner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, contests)
}

// HandleUpdateContest godoc
// @Summary      Update an owned contest
// @Description  Edits only when the contest belongs to the caller. A mismatch modifies nothing.
// @Tags         contests
// @Accept       json
// @Produce      json
// @Param        contestID  path      int                           true  "Contest ID"
// @Param        request    body      request.UpdateContestRequest  true  "request body"
// @Success      200        {object}  map[string]int64
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /contests/{contestID} [put]
// @Security     BearerAuth
func (h *ContestHandler) HandleUpdateContest(ctx *gin.Context) {
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

	var req request.UpdateContestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	affected, err := h.svc.UpdateContest(ctx.Request.Context(), domain.Contest{
		ID:          uint(contestID),
		OwnerEmail:  user.Email,
		ContestName: req.ContestName,
		ContestType: req.ContestType,
		Image:       req.Image,
		Price:       req.Price,
		PrizeMoney:  req.PrizeMoney,
		Description: req.Description,
		Instruction: req.Instruction,
		Deadline:    req.Deadline,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateContest -> h.svc.UpdateContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	// Zero rows means the contest doesn't exist or belongs to someone
	// else; the caller only sees the count either way.
	ctx.JSON(http.StatusOK, gin.H{"modified_count": affected})
}

// HandleDeleteContest godoc
// @Summary      Delete an owned contest
// @Description  Deletes only when the contest belongs to the caller. A mismatch deletes nothing.
// @Tags         contests
// @Produce      json
// @Param        contestID  path      int  true  "Contest ID"
// @Success      200        {object}  map[string]int64
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /contests/{contestID} [delete]
// @Security     BearerAuth
func (h *ContestHandler) HandleDeleteContest(ctx *gin.Context) {
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

	affected, err := h.svc.DeleteContest(ctx.Request.Context(), uint(contestID), user.Email)
	if err != nil {
		err = fmt.Errorf("v1.HandleDeleteContest -> h.svc.DeleteContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted_count": affected})
}

// HandleSetContestStatus godoc
// @Summary      Set a contest's status
// @Description  Admin only. The status comes from the query string.
// @Tags         admin
// @Produce      json
// @Param        contestID  path      int     true  "Contest ID"
// @Param        status     query     string  true  "new status"
// @Success      200        {object}  response.MessageResponse
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/contests/{contestID}/status [patch]
// @Security     BearerAuth
func (h *ContestHandler) HandleSetContestStatus(ctx *gin.Context) {
	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid contest ID: %w", err)))
		return
	}

	status := ctx.Query("status")
	if status == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("status query parameter is required")))
		return
	}

	if err := h.svc.SetContestStatus(ctx.Request.Context(), uint(contestID), status); err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contest", "ID", contestID))
			return
		}

		err = fmt.Errorf("v1.HandleSetContestStatus -> h.svc.SetContestStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Success: true,
		Message: "Contest status updated",
	})
}

// HandleAdminDeleteContest godoc
// @Summary      Delete any contest
// @Description  Admin only, ignores ownership.
// @Tags         admin
// @Produce      json
// @Param        contestID  path      int  true  "Contest ID"
// @Success      200        {object}  response.MessageResponse
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/contests/{contestID} [delete]
// @Security     BearerAuth
func (h *ContestHandler) HandleAdminDeleteContest(ctx *gin.Context) {
	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid contest ID: %w", err)))
		return
	}

	if err := h.svc.AdminDeleteContest(ctx.Request.Context(), uint(contestID)); err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contest", "ID", contestID))
			return
		}

		err = fmt.Errorf("v1.HandleAdminDeleteContest -> h.svc.AdminDeleteContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Success: true,
		Message: "Contest deleted",
	})
}

// HandleDeclareWinner godoc
// @Summary      Declare a contest winner
// @Description  Marks the contest completed and records the winning submission. Owner only, once per contest.
// @Tags         contests
// @Accept       json
// @Produce      json
// @Param        contestID  path      int                           true  "Contest ID"
// @Param        request    body      request.DeclareWinnerRequest  true  "request body"
// @Success      200        {object}  response.MessageResponse
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /contests/{contestID}/winner [post]
// @Security     BearerAuth
func (h *ContestHandler) HandleDeclareWinner(ctx *gin.Context) {
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

	var req request.DeclareWinnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.DeclareWinner(ctx.Request.Context(), uint(contestID), req.SubmissionID, user.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contest", "ID", contestID))
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("submission", "ID", req.SubmissionID))
		case errors.Is(err, service.ErrNotContestOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrSubmissionNotInContest),
			errors.Is(err, service.ErrWinnerAlreadyDeclared):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleDeclareWinner -> h.svc.DeclareWinner -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Success: true,
		Message: "Winner declared",
	})
}

// HandleListWinners godoc
// @Summary      List completed contests with winners
// @Tags         contests
// @Produce      json
// @Success      200  {array}   domain.Contest
// @Failure      500  {object}  response.Err
// @Router       /contests/winners [get]
func (h *ContestHandler) HandleListWinners(ctx *gin.Context) {
	winners, err := h.svc.ListWinners(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListWinners -> h.svc.ListWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, winners)
}

// HandleTopPerformers godoc
// @Summary      List the top contest winners
// @Description  Ranks winners by number of wins, then by total prize money earned.
// @Tags         contests
// @Produce      json
// @Success      200  {array}   domain.TopPerformer
// @Failure      500  {object}  response.Err
// @Router       /contests/top-performers [get]
func (h *ContestHandler) HandleTopPerformers(ctx *gin.Context) {
	performers, err := h.svc.TopPerformers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleTopPerformers -> h.svc.TopPerformers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, performers)
}
