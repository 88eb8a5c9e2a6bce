package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xportshq/xports-api/internal/domain"
)

type mockContestRepo struct {
	mock.Mock
}

func (m *mockContestRepo) Create(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	args := m.Called(ctx, contest)
	return args.Get(0).(domain.Contest), args.Error(1)
}

func (m *mockContestRepo) FindPage(ctx context.Context, query domain.ContestQuery) ([]domain.Contest, int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Contest), args.Get(1).(int64), args.Error(2)
}

func (m *mockContestRepo) GetByID(ctx context.Context, id uint) (domain.Contest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Contest), args.Error(1)
}

func (m *mockContestRepo) FindByOwner(ctx context.Context, ownerEmail string) ([]domain.Contest, error) {
	args := m.Called(ctx, ownerEmail)
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *mockContestRepo) UpdateOwned(ctx context.Context, contest domain.Contest) (int64, error) {
	args := m.Called(ctx, contest)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) DeleteOwned(ctx context.Context, id uint, ownerEmail string) (int64, error) {
	args := m.Called(ctx, id, ownerEmail)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) SetWinner(ctx context.Context, contestID, submissionID uint, winnerPhoto string) error {
	args := m.Called(ctx, contestID, submissionID, winnerPhoto)
	return args.Error(0)
}

func (m *mockContestRepo) FindWinners(ctx context.Context) ([]domain.Contest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *mockContestRepo) TopPerformers(ctx context.Context, limit int) ([]domain.TopPerformer, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.TopPerformer), args.Error(1)
}

type mockContestUserRepo struct {
	mock.Mock
}

func (m *mockContestUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockContestSubmissionRepo struct {
	mock.Mock
}

func (m *mockContestSubmissionRepo) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func TestContestService_CreateContest_ForcesPendingStatus(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c domain.Contest) bool {
		return c.Status == domain.ContestStatusPending && c.ParticipantsCount == 0
	})).Return(domain.Contest{ID: 1, Status: domain.ContestStatusPending}, nil)

	svc := NewContestService(repo, new(mockContestUserRepo), new(mockContestSubmissionRepo))

	created, err := svc.CreateContest(context.Background(), domain.Contest{
		ContestName: "Logo Design Sprint",
		Status:      "accepted", // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ContestStatusPending, created.Status)
	repo.AssertExpectations(t)
}

func TestContestService_ListContests_ClampsPagination(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("FindPage", mock.Anything, domain.ContestQuery{Page: 1, Limit: 10}).
		Return([]domain.Contest{}, int64(0), nil)

	svc := NewContestService(repo, new(mockContestUserRepo), new(mockContestSubmissionRepo))

	_, _, err := svc.ListContests(context.Background(), domain.ContestQuery{Page: -3, Limit: 0})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestContestService_DeclareWinner(t *testing.T) {
	t.Run("declares and stores the winner photo", func(t *testing.T) {
		repo := new(mockContestRepo)
		repo.On("GetByID", mock.Anything, uint(7)).Return(domain.Contest{
			ID:         7,
			OwnerEmail: "owner@example.com",
			Status:     domain.ContestStatusAccepted,
		}, nil)
		repo.On("SetWinner", mock.Anything, uint(7), uint(3), "https://cdn.test/alex.png").Return(nil)

		submissionRepo := new(mockContestSubmissionRepo)
		submissionRepo.On("FindByID", mock.Anything, uint(3)).Return(domain.Submission{
			ID:               3,
			ContestID:        7,
			ParticipantEmail: "alex@example.com",
		}, nil)

		userRepo := new(mockContestUserRepo)
		userRepo.On("FindByEmail", mock.Anything, "alex@example.com").Return(domain.User{
			Email: "alex@example.com",
			Photo: "https://cdn.test/alex.png",
		}, nil)

		svc := NewContestService(repo, userRepo, submissionRepo)

		err := svc.DeclareWinner(context.Background(), 7, 3, "owner@example.com")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a submission from another contest", func(t *testing.T) {
		repo := new(mockContestRepo)
		repo.On("GetByID", mock.Anything, uint(7)).Return(domain.Contest{
			ID:         7,
			OwnerEmail: "owner@example.com",
			Status:     domain.ContestStatusAccepted,
		}, nil)

		submissionRepo := new(mockContestSubmissionRepo)
		submissionRepo.On("FindByID", mock.Anything, uint(3)).Return(domain.Submission{
			ID:        3,
			ContestID: 99,
		}, nil)

		svc := NewContestService(repo, new(mockContestUserRepo), submissionRepo)

		err := svc.DeclareWinner(context.Background(), 7, 3, "owner@example.com")
		assert.ErrorIs(t, err, ErrSubmissionNotInContest)
		repo.AssertNotCalled(t, "SetWinner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a caller who does not own the contest", func(t *testing.T) {
		repo := new(mockContestRepo)
		repo.On("GetByID", mock.Anything, uint(7)).Return(domain.Contest{
			ID:         7,
			OwnerEmail: "owner@example.com",
			Status:     domain.ContestStatusAccepted,
		}, nil)

		svc := NewContestService(repo, new(mockContestUserRepo), new(mockContestSubmissionRepo))

		err := svc.DeclareWinner(context.Background(), 7, 3, "intruder@example.com")
		assert.ErrorIs(t, err, ErrNotContestOwner)
	})

	t.Run("rejects a second declaration", func(t *testing.T) {
		repo := new(mockContestRepo)
		repo.On("GetByID", mock.Anything, uint(7)).Return(domain.Contest{
			ID:          7,
			OwnerEmail:  "owner@example.com",
			Status:      domain.ContestStatusCompleted,
			WinnerEmail: "alex@example.com",
		}, nil)

		svc := NewContestService(repo, new(mockContestUserRepo), new(mockContestSubmissionRepo))

		err := svc.DeclareWinner(context.Background(), 7, 4, "owner@example.com")
		assert.ErrorIs(t, err, ErrWinnerAlreadyDeclared)
	})
}

func TestContestService_SetContestStatus_NotFound(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("UpdateStatus", mock.Anything, uint(404), "accepted").Return(int64(0), nil)

	svc := NewContestService(repo, new(mockContestUserRepo), new(mockContestSubmissionRepo))

	err := svc.SetContestStatus(context.Background(), 404, "accepted")
	assert.ErrorIs(t, err, ErrContestNotFound)
}

func TestContestService_UpdateContest_ReportsZeroRowsOnOwnerMismatch(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("UpdateOwned", mock.Anything, mock.Anything).Return(int64(0), nil)

	svc := NewContestService(repo, new(mockContestUserRepo), new(mockContestSubmissionRepo))

	affected, err := svc.UpdateContest(context.Background(), domain.Contest{
		ID:         7,
		OwnerEmail: "intruder@example.com",
	})
	require.NoError(t, err)
	assert.Zero(t, affected)
}
