package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository"
)

type mockSubmissionRepo struct {
	mock.Mock
}

func (m *mockSubmissionRepo) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *mockSubmissionRepo) FindByParticipantAndContest(ctx context.Context, participantEmail string, contestID uint) (domain.Submission, error) {
	args := m.Called(ctx, participantEmail, contestID)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *mockSubmissionRepo) MarkSubmitted(ctx context.Context, participantEmail string, contestID uint, link string, at time.Time) (domain.Submission, error) {
	args := m.Called(ctx, participantEmail, contestID, link, at)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *mockSubmissionRepo) FindByContest(ctx context.Context, contestID uint) ([]domain.Submission, error) {
	args := m.Called(ctx, contestID)
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *mockSubmissionRepo) FindByParticipant(ctx context.Context, participantEmail string) ([]domain.Submission, error) {
	args := m.Called(ctx, participantEmail)
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func TestSubmissionService_RegisterTask(t *testing.T) {
	t.Run("marks the paid slot submitted", func(t *testing.T) {
		repo := new(mockSubmissionRepo)
		repo.On("MarkSubmitted", mock.Anything, "alex@example.com", uint(7), "https://github.com/alex/entry", mock.Anything).
			Return(domain.Submission{
				ID:               3,
				ContestID:        7,
				SubmissionStatus: domain.SubmissionStatusSubmitted,
				SubmissionLink:   "https://github.com/alex/entry",
			}, nil)

		svc := NewSubmissionService(repo)

		submission, err := svc.RegisterTask(context.Background(), "alex@example.com", 7, "https://github.com/alex/entry")
		require.NoError(t, err)
		assert.Equal(t, domain.SubmissionStatusSubmitted, submission.SubmissionStatus)
	})

	t.Run("fails without a paid slot", func(t *testing.T) {
		repo := new(mockSubmissionRepo)
		repo.On("MarkSubmitted", mock.Anything, "alex@example.com", uint(7), mock.Anything, mock.Anything).
			Return(domain.Submission{}, repository.ErrSubmissionNotFound)

		svc := NewSubmissionService(repo)

		_, err := svc.RegisterTask(context.Background(), "alex@example.com", 7, "https://github.com/alex/entry")
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})

	t.Run("fails on a second submission", func(t *testing.T) {
		repo := new(mockSubmissionRepo)
		repo.On("MarkSubmitted", mock.Anything, "alex@example.com", uint(7), mock.Anything, mock.Anything).
			Return(domain.Submission{}, repository.ErrAlreadySubmitted)

		svc := NewSubmissionService(repo)

		_, err := svc.RegisterTask(context.Background(), "alex@example.com", 7, "https://github.com/alex/entry")
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})
}

func TestSubmissionService_CheckRegistration(t *testing.T) {
	t.Run("reports an existing slot", func(t *testing.T) {
		repo := new(mockSubmissionRepo)
		repo.On("FindByParticipantAndContest", mock.Anything, "alex@example.com", uint(7)).
			Return(domain.Submission{ID: 3, SubmissionStatus: domain.SubmissionStatusPending}, nil)

		svc := NewSubmissionService(repo)

		registered, submission, err := svc.CheckRegistration(context.Background(), "alex@example.com", 7)
		require.NoError(t, err)
		assert.True(t, registered)
		assert.Equal(t, domain.SubmissionStatusPending, submission.SubmissionStatus)
	})

	t.Run("a missing slot is not an error", func(t *testing.T) {
		repo := new(mockSubmissionRepo)
		repo.On("FindByParticipantAndContest", mock.Anything, "alex@example.com", uint(7)).
			Return(domain.Submission{}, repository.ErrSubmissionNotFound)

		svc := NewSubmissionService(repo)

		registered, _, err := svc.CheckRegistration(context.Background(), "alex@example.com", 7)
		require.NoError(t, err)
		assert.False(t, registered)
	})
}
