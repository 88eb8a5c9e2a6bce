package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xportshq/xports-api/internal/api/handler/v1/response"
	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/service"
)

type mockContestService struct {
	mock.Mock
}

func (m *mockContestService) CreateContest(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	args := m.Called(ctx, contest)
	return args.Get(0).(domain.Contest), args.Error(1)
}

func (m *mockContestService) ListContests(ctx context.Context, query domain.ContestQuery) ([]domain.Contest, int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Contest), args.Get(1).(int64), args.Error(2)
}

func (m *mockContestService) GetContest(ctx context.Context, id uint) (domain.Contest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Contest), args.Error(1)
}

func (m *mockContestService) ListContestsByOwner(ctx context.Context, ownerEmail string) ([]domain.Contest, error) {
	args := m.Called(ctx, ownerEmail)
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *mockContestService) UpdateContest(ctx context.Context, contest domain.Contest) (int64, error) {
	args := m.Called(ctx, contest)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestService) DeleteContest(ctx context.Context, id uint, ownerEmail string) (int64, error) {
	args := m.Called(ctx, id, ownerEmail)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestService) SetContestStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockContestService) AdminDeleteContest(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockContestService) DeclareWinner(ctx context.Context, contestID, submissionID uint, ownerEmail string) error {
	args := m.Called(ctx, contestID, submissionID, ownerEmail)
	return args.Error(0)
}

func (m *mockContestService) ListWinners(ctx context.Context) ([]domain.Contest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *mockContestService) TopPerformers(ctx context.Context) ([]domain.TopPerformer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TopPerformer), args.Error(1)
}

func newContestTestRouter(svc ContestService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewContestHandler(svc, nil)
	router.GET("/api/v1/contests", handler.HandleListContests)
	router.GET("/api/v1/contests/winners", handler.HandleListWinners)
	router.GET("/api/v1/contests/top-performers", handler.HandleTopPerformers)
	router.GET("/api/v1/contests/:contestID", handler.HandleGetContest)

	return router
}

func TestContestHandler_HandleGetContest(t *testing.T) {
	t.Run("wraps the contest in an array", func(t *testing.T) {
		svc := new(mockContestService)
		svc.On("GetContest", mock.Anything, uint(7)).
			Return(domain.Contest{ID: 7, ContestName: "Logo Design Sprint"}, nil)

		router := newContestTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contests/7", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got []domain.Contest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, uint(7), got[0].ID)
	})

	t.Run("a missing contest yields an empty array, not a 404", func(t *testing.T) {
		svc := new(mockContestService)
		svc.On("GetContest", mock.Anything, uint(404)).
			Return(domain.Contest{}, service.ErrContestNotFound)

		router := newContestTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contests/404", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("rejects a non-numeric id", func(t *testing.T) {
		router := newContestTestRouter(new(mockContestService))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contests/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContestHandler_HandleListContests(t *testing.T) {
	svc := new(mockContestService)
	svc.On("ListContests", mock.Anything, domain.ContestQuery{
		Page:   2,
		Limit:  5,
		Type:   "design",
		Search: "logo",
	}).Return([]domain.Contest{{ID: 7}, {ID: 9}}, int64(12), nil)

	router := newContestTestRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contests?page=2&limit=5&type=design&search=logo", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got response.ContestListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(12), got.Total)
	assert.Len(t, got.Data, 2)
}

func TestContestHandler_HandleTopPerformers(t *testing.T) {
	svc := new(mockContestService)
	svc.On("TopPerformers", mock.Anything).Return([]domain.TopPerformer{
		{WinnerEmail: "alex@example.com", Wins: 3, TotalEarnings: 150000},
		{WinnerEmail: "sam@example.com", Wins: 2, TotalEarnings: 90000},
	}, nil)

	router := newContestTestRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contests/top-performers", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.TopPerformer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "alex@example.com", got[0].WinnerEmail)
}
